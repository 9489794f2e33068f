// Package seed orchestrates game log ingestion into the configured store.
package seed

import "fmt"

// SeedResult tracks counts and errors from a seeding operation.
type SeedResult struct {
	TeamsResolved   int
	GameLogsFetched int
	GameLogsWritten int
	Errors          []string
}

// Add merges another SeedResult into this one.
func (r *SeedResult) Add(other SeedResult) {
	r.TeamsResolved += other.TeamsResolved
	r.GameLogsFetched += other.GameLogsFetched
	r.GameLogsWritten += other.GameLogsWritten
	r.Errors = append(r.Errors, other.Errors...)
}

// AddError records an error message.
func (r *SeedResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *SeedResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the seed operation.
func (r *SeedResult) Summary() string {
	return fmt.Sprintf(
		"teams=%d fetched=%d written=%d skipped=%d errors=%d",
		r.TeamsResolved, r.GameLogsFetched, r.GameLogsWritten,
		r.GameLogsFetched-r.GameLogsWritten, len(r.Errors),
	)
}
