// Package shared holds helpers used across the poll report packages that do
// not belong to any single domain package.
//
// # Test Utilities
//
// The testutil subpackage provides a buffered slog handler so tests can
// assert on structured log output:
//
//	logger, handler := testutil.NewTestLogger(t)
//	ds, err := polling.Parse(ctx, r, polling.WithLogger(logger))
//	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Dataset loaded")
package shared
