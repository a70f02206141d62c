package report

// Metric names used in exported tables.
const (
	MetricHighestAverage     = "highest_average"
	MetricLikelyVoterAverage = "likely_voter_average"
	MetricHistoryChange      = "history_change"
)

// TableHeaders are the column names of an exported summary.
var TableHeaders = []string{"Metric", "Candidate", "Value"}

// Row is one exported figure. Value is unset when HasValue is false.
type Row struct {
	Metric    string
	Candidate string
	Value     float64
	HasValue  bool
}

// Table flattens the summary into export rows, values converted by scale.
func (s Summary) Table(scale Scale) []Row {
	lv := scale.pair(s.LikelyVoter)
	change := scale.pair(s.HistoryChange)

	highest := Row{Metric: MetricHighestAverage, Candidate: NoDataLabel}
	if s.HasLeader {
		highest = Row{
			Metric:    MetricHighestAverage,
			Candidate: s.Leader.Label,
			Value:     scale.Apply(s.Leader.Percentage),
			HasValue:  true,
		}
	}

	return []Row{
		highest,
		{Metric: MetricLikelyVoterAverage, Candidate: s.Names.A, Value: lv.A, HasValue: true},
		{Metric: MetricLikelyVoterAverage, Candidate: s.Names.B, Value: lv.B, HasValue: true},
		{Metric: MetricHistoryChange, Candidate: s.Names.A, Value: change.A, HasValue: true},
		{Metric: MetricHistoryChange, Candidate: s.Names.B, Value: change.B, HasValue: true},
	}
}

// ingestRows lists the ingestion counters as label/value pairs.
func (s Summary) ingestRows() [][2]interface{} {
	return [][2]interface{}{
		{"Source", s.Source},
		{"Rows", s.Stats.Rows},
		{"Accepted", s.Stats.Accepted},
		{"Skipped (short)", s.Stats.SkippedShort},
		{"Unknown sample", s.Stats.DefaultedSample},
	}
}
