package report

import (
	"fmt"
	"io"
)

// HighestLabel renders the highest polling candidate, or NoDataLabel.
func (s Summary) HighestLabel(scale Scale) string {
	if !s.HasLeader {
		return NoDataLabel
	}
	leader := s.Leader
	leader.Percentage = scale.Apply(leader.Percentage)
	return leader.String()
}

// WriteText writes the text report to w.
func (s Summary) WriteText(w io.Writer, scale Scale) error {
	lv := scale.pair(s.LikelyVoter)
	change := scale.pair(s.HistoryChange)

	_, err := fmt.Fprintf(w,
		"Highest Polling Candidate: %s\n"+
			"Likely Voter Polling Average:\n"+
			"  %s: %s\n"+
			"  %s: %s\n"+
			"Polling History Change:\n"+
			"  %s: %s\n"+
			"  %s: %s\n",
		s.HighestLabel(scale),
		s.Names.A, formatPercent(lv.A),
		s.Names.B, formatPercent(lv.B),
		s.Names.A, formatChange(change.A),
		s.Names.B, formatChange(change.B),
	)
	return err
}
