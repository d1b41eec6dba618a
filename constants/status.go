package constants

// JobStatus is the canonical status for parse jobs.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued    JobStatus = "QUEUED"     // queued for processing
	JobStatusRunning   JobStatus = "RUNNING"    // in progress
	JobStatusExtractOK JobStatus = "EXTRACT_OK" // stage 1 completed (tokens extracted)
	JobStatusParseOK   JobStatus = "PARSE_OK"   // stage 2 completed (records parsed)
	JobStatusFailed    JobStatus = "FAILED"     // terminal failure
)
