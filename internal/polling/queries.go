package polling

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"pollcli/pkg/contracts/domain"
)

// HistoryWindow is the number of records in the earliest and in the latest
// window compared by HistoryChange.
const HistoryWindow = 30

// MinHistoryRecords is the smallest dataset HistoryChange computes on.
const MinHistoryRecords = 2 * HistoryWindow

// Winner identifies the leading side of a HighestAverage result.
type Winner int

const (
	WinnerCandidateA Winner = iota
	WinnerCandidateB
	WinnerTie
)

// TieLabel labels a HighestAverage result where both means are equal.
const TieLabel = "Tie"

// Leader is the result of HighestAverage.
type Leader struct {
	Winner     Winner
	Label      string
	Percentage float64
}

// String renders the leader as "<Label> <pct>%" with one decimal place.
func (l Leader) String() string {
	return fmt.Sprintf("%s %.1f%%", l.Label, l.Percentage)
}

// Average returns the unweighted mean of each candidate's results over all
// records. Sample size does not weight the mean. ok is false for an empty dataset.
func (d *Dataset) Average() (avg domain.CandidatePair, ok bool) {
	if d.IsEmpty() {
		return domain.CandidatePair{}, false
	}
	return means(d.records), true
}

// HighestAverage returns the candidate with the strictly higher mean result,
// labelled with the candidate's name, or a "Tie" leader when the means are
// equal. ok is false for an empty dataset.
func (d *Dataset) HighestAverage(names domain.CandidateNames) (Leader, bool) {
	avg, ok := d.Average()
	if !ok {
		return Leader{}, false
	}

	switch {
	case avg.A > avg.B:
		return Leader{Winner: WinnerCandidateA, Label: names.A, Percentage: avg.A}, true
	case avg.B > avg.A:
		return Leader{Winner: WinnerCandidateB, Label: names.B, Percentage: avg.B}, true
	default:
		return Leader{Winner: WinnerTie, Label: TieLabel, Percentage: avg.A}, true
	}
}

// LikelyVoterAverage returns the unweighted mean of each candidate's results
// over the records whose sample type is exactly "LV". With no such records
// it returns (0, 0).
func (d *Dataset) LikelyVoterAverage() domain.CandidatePair {
	lv := d.filter(domain.PollRecord.IsLikelyVoter)
	if len(lv) == 0 {
		return domain.CandidatePair{}
	}
	return means(lv)
}

// HistoryChange returns, per candidate, the mean of the latest HistoryWindow
// records minus the mean of the earliest HistoryWindow records. Positive
// values are gains. Datasets with fewer than MinHistoryRecords records
// return (0, 0).
func (d *Dataset) HistoryChange() domain.CandidatePair {
	n := len(d.records)
	if n < MinHistoryRecords {
		return domain.CandidatePair{}
	}

	earliest := means(d.records[:HistoryWindow])
	latest := means(d.records[n-HistoryWindow:])

	return domain.CandidatePair{
		A: latest.A - earliest.A,
		B: latest.B - earliest.B,
	}
}

// means computes the unweighted means of both result columns; records must not be empty.
func means(records []domain.PollRecord) domain.CandidatePair {
	a := make([]float64, len(records))
	b := make([]float64, len(records))
	for i, r := range records {
		a[i] = r.CandidateA
		b[i] = r.CandidateB
	}
	return domain.CandidatePair{
		A: stat.Mean(a, nil),
		B: stat.Mean(b, nil),
	}
}
