package polling

import (
	"pollcli/pkg/contracts/domain"
)

// Dataset is an ordered, read-only collection of poll records in file order,
// earliest first. Build one with Load, Parse or NewDataset; a dataset is never
// modified afterwards, so re-reading a file means building a new one.
type Dataset struct {
	source  string
	records []domain.PollRecord
	stats   IngestStats
}

// IngestStats counts what happened to the data rows of the source file.
type IngestStats struct {
	// Rows is the number of data rows read after the header.
	Rows int `json:"rows"`
	// Accepted rows became records.
	Accepted int `json:"accepted"`
	// SkippedShort rows had fewer than the required number of fields.
	SkippedShort int `json:"skipped_short"`
	// DefaultedSample rows were kept with the unknown sample pair.
	DefaultedSample int `json:"defaulted_sample"`
}

// Columns is a per-field view of a dataset. Every slice has Len() elements
// and index i of each slice belongs to the same record.
type Columns struct {
	Month      []string
	Date       []int
	SampleSize []int
	SampleType []domain.SampleType
	CandidateA []float64
	CandidateB []float64
}

// NewDataset builds a dataset from records already in memory. The slice is copied.
func NewDataset(records []domain.PollRecord) *Dataset {
	cp := make([]domain.PollRecord, len(records))
	copy(cp, records)
	return &Dataset{
		records: cp,
		stats: IngestStats{
			Rows:     len(cp),
			Accepted: len(cp),
		},
	}
}

// Source returns the path the dataset was loaded from, if any.
func (d *Dataset) Source() string {
	return d.source
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// IsEmpty reports whether the dataset has no records.
func (d *Dataset) IsEmpty() bool {
	return len(d.records) == 0
}

// At returns the record at index i.
func (d *Dataset) At(i int) domain.PollRecord {
	return d.records[i]
}

// Records returns a copy of all records in file order.
func (d *Dataset) Records() []domain.PollRecord {
	cp := make([]domain.PollRecord, len(d.records))
	copy(cp, d.records)
	return cp
}

// Stats returns the ingestion counters.
func (d *Dataset) Stats() IngestStats {
	return d.stats
}

// Columns splits the records into one slice per field.
func (d *Dataset) Columns() Columns {
	n := len(d.records)
	cols := Columns{
		Month:      make([]string, n),
		Date:       make([]int, n),
		SampleSize: make([]int, n),
		SampleType: make([]domain.SampleType, n),
		CandidateA: make([]float64, n),
		CandidateB: make([]float64, n),
	}
	for i, r := range d.records {
		cols.Month[i] = r.Month
		cols.Date[i] = r.Date
		cols.SampleSize[i] = r.SampleSize
		cols.SampleType[i] = r.SampleType
		cols.CandidateA[i] = r.CandidateA
		cols.CandidateB[i] = r.CandidateB
	}
	return cols
}

// filter returns the records matching keep, in order.
func (d *Dataset) filter(keep func(domain.PollRecord) bool) []domain.PollRecord {
	var out []domain.PollRecord
	for _, r := range d.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
