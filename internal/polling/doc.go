// Package polling loads poll data files and answers the summary queries the
// poll report is built from.
//
// # Input Format
//
// A comma-separated file with one header line (ignored) followed by rows of
// at least five fields:
//
//	month,date,sample,Harris result,Trump result
//	September,15,1000 LV,49.5,46.0
//
// The sample field is a descriptor made of a respondent count and a category
// code. Rows with fewer than five fields are skipped. A descriptor that does
// not split into "<int> <code>" is stored as (0, "UNK"). A date or result that
// is not a number aborts the load with a PARSING error and no dataset.
//
// # Queries
//
//	ds, err := polling.Load(ctx, "polling_data.csv")
//	leader, ok := ds.HighestAverage(names)  // ok == false on an empty dataset
//	lv := ds.LikelyVoterAverage()           // (0, 0) without "LV" records
//	change := ds.HistoryChange()            // (0, 0) below 60 records
//
// All means are unweighted: every poll counts once regardless of sample size.
package polling
