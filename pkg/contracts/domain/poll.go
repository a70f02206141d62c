package domain

import (
	"strconv"
	"strings"
)

// SampleType is the respondent category code carried by a poll's sample descriptor
// (e.g. "LV" for likely voters, "RV" for registered voters).
type SampleType string

const (
	SampleTypeLikelyVoter     SampleType = "LV"
	SampleTypeRegisteredVoter SampleType = "RV"
	SampleTypeAdults          SampleType = "A"
	// SampleTypeUnknown is stored when the sample descriptor cannot be split
	// into a size and a code.
	SampleTypeUnknown SampleType = "UNK"
)

// UnknownSampleSize pairs with SampleTypeUnknown.
const UnknownSampleSize = 0

// PollRecord represents one polling event read from a poll data file.
//
// SampleSize and SampleType always travel together: both come from the same
// descriptor ("1000 LV") or both hold the unknown sentinel (0, "UNK").
//
// Usage:
//
//	rec := PollRecord{
//	    Month:      "September",
//	    Date:       15,
//	    SampleSize: 1000,
//	    SampleType: SampleTypeLikelyVoter,
//	    CandidateA: 49.5,
//	    CandidateB: 46.0,
//	}
type PollRecord struct {
	// Month is a free-form label, usually the month name.
	Month string `json:"month" csv:"month"`

	// Date is the day of month.
	Date int `json:"date" csv:"date"`

	// SampleSize is the number of respondents.
	SampleSize int `json:"sample_size" csv:"sample"`

	// SampleType is the respondent category.
	SampleType SampleType `json:"sample_type" csv:"sample_type"`

	// CandidateA and CandidateB are the results of the two tracked candidates.
	CandidateA float64 `json:"candidate_a" csv:"candidate_a_result"`
	CandidateB float64 `json:"candidate_b" csv:"candidate_b_result"`
}

// IsLikelyVoter reports whether the record belongs to the likely voter subgroup.
// The match is exact; "lv" or "LV " do not qualify.
func (r PollRecord) IsLikelyVoter() bool {
	return r.SampleType == SampleTypeLikelyVoter
}

// ParseSampleDescriptor splits a composite "<size> <code>" field.
// Anything that is not exactly two whitespace-separated tokens with an
// integer size yields the unknown pair and ok == false.
func ParseSampleDescriptor(s string) (size int, sampleType SampleType, ok bool) {
	tokens := strings.Fields(s)
	if len(tokens) != 2 {
		return UnknownSampleSize, SampleTypeUnknown, false
	}

	n, err := strconv.Atoi(tokens[0])
	if err != nil {
		return UnknownSampleSize, SampleTypeUnknown, false
	}

	return n, SampleType(tokens[1]), true
}

// CandidatePair holds one value per tracked candidate, in file column order.
type CandidatePair struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// IsZero reports whether both values are zero, the defined "no data" result
// of the subgroup and trend queries.
func (p CandidatePair) IsZero() bool {
	return p.A == 0 && p.B == 0
}

// CandidateNames holds the display names of the two tracked candidates.
type CandidateNames struct {
	A string `json:"a" yaml:"a" validate:"required"`
	B string `json:"b" yaml:"b" validate:"required"`
}
