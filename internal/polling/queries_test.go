package polling

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pollcli/pkg/contracts/domain"
)

var testNames = domain.CandidateNames{A: "Harris", B: "Trump"}

// fakeRecords generates n plausible poll records from a fixed seed.
func fakeRecords(seed uint64, n int) []domain.PollRecord {
	f := gofakeit.New(seed)
	types := []string{"LV", "RV", "A"}

	records := make([]domain.PollRecord, n)
	for i := range records {
		records[i] = domain.PollRecord{
			Month:      f.MonthString(),
			Date:       f.IntRange(1, 28),
			SampleSize: f.IntRange(400, 3000),
			SampleType: domain.SampleType(f.RandomString(types)),
			CandidateA: f.Float64Range(40, 55),
			CandidateB: f.Float64Range(40, 55),
		}
	}
	return records
}

func record(sampleType domain.SampleType, a, b float64) domain.PollRecord {
	return domain.PollRecord{
		Month:      "September",
		Date:       15,
		SampleSize: 1000,
		SampleType: sampleType,
		CandidateA: a,
		CandidateB: b,
	}
}

func loadFixture(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Load(context.Background(), fixturePath, quietLogger())
	require.NoError(t, err)
	return ds
}

func TestHighestAverage(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.PollRecord
		want    Winner
		label   string
		text    string
	}{
		{
			name: "first candidate leads",
			records: []domain.PollRecord{
				record(domain.SampleTypeLikelyVoter, 57.0, 40.0),
				record(domain.SampleTypeRegisteredVoter, 57.1, 41.0),
				record(domain.SampleTypeAdults, 57.0, 39.0),
			},
			want:  WinnerCandidateA,
			label: "Harris",
			text:  "Harris 57.0%",
		},
		{
			name: "second candidate leads",
			records: []domain.PollRecord{
				record(domain.SampleTypeLikelyVoter, 44.0, 48.5),
				record(domain.SampleTypeLikelyVoter, 45.0, 47.5),
			},
			want:  WinnerCandidateB,
			label: "Trump",
			text:  "Trump 48.0%",
		},
		{
			name: "equal means",
			records: []domain.PollRecord{
				record(domain.SampleTypeLikelyVoter, 47.0, 46.0),
				record(domain.SampleTypeLikelyVoter, 46.0, 47.0),
			},
			want:  WinnerTie,
			label: TieLabel,
			text:  "Tie 46.5%",
		},
		{
			name:    "single record",
			records: []domain.PollRecord{record(domain.SampleTypeUnknown, 50.04, 50.0)},
			want:    WinnerCandidateA,
			label:   "Harris",
			text:    "Harris 50.0%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leader, ok := NewDataset(tt.records).HighestAverage(testNames)

			require.True(t, ok)
			assert.Equal(t, tt.want, leader.Winner)
			assert.Equal(t, tt.label, leader.Label)
			assert.Equal(t, tt.text, leader.String())
		})
	}
}

func TestHighestAverage_Empty(t *testing.T) {
	leader, ok := NewDataset(nil).HighestAverage(testNames)

	assert.False(t, ok)
	assert.Equal(t, Leader{}, leader)
}

func TestHighestAverage_Fixture(t *testing.T) {
	// Hand-built fixture; the published poll data set is not bundled, so its 57.0% leader is covered by TestHighestAverage.
	leader, ok := loadFixture(t).HighestAverage(testNames)

	require.True(t, ok)
	assert.Equal(t, "Harris 49.9%", leader.String())
}

func TestHighestAverage_UsesConfiguredNames(t *testing.T) {
	ds := NewDataset([]domain.PollRecord{record(domain.SampleTypeLikelyVoter, 40, 52)})

	leader, ok := ds.HighestAverage(domain.CandidateNames{A: "Smith", B: "Jones"})

	require.True(t, ok)
	assert.Equal(t, "Jones 52.0%", leader.String())
}

func TestLikelyVoterAverage(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.PollRecord
		want    domain.CandidatePair
	}{
		{
			name: "only LV records count",
			records: []domain.PollRecord{
				record(domain.SampleTypeLikelyVoter, 50, 44),
				record(domain.SampleTypeRegisteredVoter, 10, 10),
				record(domain.SampleTypeLikelyVoter, 48, 46),
				record(domain.SampleTypeAdults, 90, 90),
			},
			want: domain.CandidatePair{A: 49, B: 45},
		},
		{
			name: "match is exact",
			records: []domain.PollRecord{
				record("lv", 10, 10),
				record(" LV", 10, 10),
				record(domain.SampleTypeUnknown, 10, 10),
				record(domain.SampleTypeLikelyVoter, 51, 43),
			},
			want: domain.CandidatePair{A: 51, B: 43},
		},
		{
			name: "no LV records",
			records: []domain.PollRecord{
				record(domain.SampleTypeRegisteredVoter, 50, 44),
			},
			want: domain.CandidatePair{},
		},
		{
			name: "empty dataset",
			want: domain.CandidatePair{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDataset(tt.records).LikelyVoterAverage()
			assert.InDelta(t, tt.want.A, got.A, 1e-9)
			assert.InDelta(t, tt.want.B, got.B, 1e-9)
		})
	}
}

func TestLikelyVoterAverage_Fixture(t *testing.T) {
	lv := loadFixture(t).LikelyVoterAverage()

	assert.Equal(t, "49.34%", fmt.Sprintf("%.2f%%", lv.A))
	assert.Equal(t, "46.04%", fmt.Sprintf("%.2f%%", lv.B))
}

func TestHistoryChange_Fixture(t *testing.T) {
	change := loadFixture(t).HistoryChange()

	assert.Equal(t, "+1.53%", fmt.Sprintf("%+.2f%%", change.A))
	assert.Equal(t, "+2.07%", fmt.Sprintf("%+.2f%%", change.B))
}

func TestHistoryChange_Threshold(t *testing.T) {
	records := fakeRecords(42, MinHistoryRecords)

	below := NewDataset(records[:MinHistoryRecords-1]).HistoryChange()
	assert.True(t, below.IsZero(), "59 records must not produce a change")

	got := NewDataset(records).HistoryChange()

	var earlyA, earlyB, lateA, lateB float64
	for _, r := range records[:HistoryWindow] {
		earlyA += r.CandidateA
		earlyB += r.CandidateB
	}
	for _, r := range records[HistoryWindow:] {
		lateA += r.CandidateA
		lateB += r.CandidateB
	}
	assert.InDelta(t, (lateA-earlyA)/HistoryWindow, got.A, 1e-9)
	assert.InDelta(t, (lateB-earlyB)/HistoryWindow, got.B, 1e-9)
}

func TestHistoryChange_Windows(t *testing.T) {
	var records []domain.PollRecord
	for i := 0; i < HistoryWindow; i++ {
		records = append(records, record(domain.SampleTypeLikelyVoter, 40, 50))
	}
	// the middle is outside both windows
	for i := 0; i < 15; i++ {
		records = append(records, record(domain.SampleTypeLikelyVoter, 99, 1))
	}
	for i := 0; i < HistoryWindow; i++ {
		records = append(records, record(domain.SampleTypeLikelyVoter, 45, 48))
	}

	got := NewDataset(records).HistoryChange()

	assert.InDelta(t, 5.0, got.A, 1e-9)
	assert.InDelta(t, -2.0, got.B, 1e-9)
	assert.Equal(t, "-2.00%", fmt.Sprintf("%+.2f%%", got.B))
}

func TestHistoryChange_FlatSeries(t *testing.T) {
	var records []domain.PollRecord
	for i := 0; i < 75; i++ {
		records = append(records, record(domain.SampleTypeLikelyVoter, 48.5, 46.5))
	}

	got := NewDataset(records).HistoryChange()

	assert.True(t, got.IsZero())
	assert.Equal(t, "+0.00%", fmt.Sprintf("%+.2f%%", got.A))
}

func TestQueries_DoNotModifyDataset(t *testing.T) {
	ds := NewDataset(fakeRecords(7, 80))
	before := ds.Records()

	ds.HighestAverage(testNames)
	ds.LikelyVoterAverage()
	ds.HistoryChange()
	ds.Columns()

	assert.Equal(t, before, ds.Records())
}

func TestAverage_IgnoresSampleSize(t *testing.T) {
	small := record(domain.SampleTypeLikelyVoter, 60, 40)
	small.SampleSize = 100
	large := record(domain.SampleTypeLikelyVoter, 40, 60)
	large.SampleSize = 10000

	avg, ok := NewDataset([]domain.PollRecord{small, large}).Average()

	require.True(t, ok)
	assert.Equal(t, domain.CandidatePair{A: 50, B: 50}, avg)
}
