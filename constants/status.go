package constants

// RunStatus is the canonical status for rows in extraction_runs.
type RunStatus string

// Stable values (store these exact strings in the database).
const (
	RunStatusRunning RunStatus = "RUNNING" // in progress
	RunStatusOK      RunStatus = "OK"      // completed, no soft errors
	RunStatusPartial RunStatus = "PARTIAL" // completed with soft errors or partial summaries
	RunStatusFailed  RunStatus = "FAILED"  // terminal failure (text source unavailable)
)
