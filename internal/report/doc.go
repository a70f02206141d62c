// Package report turns a poll dataset into a Summary and renders it.
//
// A Summary holds the three figures of a poll report: the candidate with the
// highest mean result, the likely voter averages and the history change
// between the earliest and latest windows. It can be written as the plain
// text report:
//
//	Highest Polling Candidate: Harris 49.9%
//	Likely Voter Polling Average:
//	  Harris: 49.34%
//	  Trump: 46.04%
//	Polling History Change:
//	  Harris: +1.53%
//	  Trump: +2.07%
//
// or exported as an XLSX workbook or a CSV file with one row per figure.
//
// Results are stored either as percentages (0-100) or as fractions (0-1);
// a Scale converts them for display.
package report
