package outcome

import "errors"

// Sentinel error kinds for ledger ingestion. Callers match with
// errors.Is; every wrapped error names the offending record.
var (
	ErrMalformedOutcome  = errors.New("malformed outcome")
	ErrConflictingRecord = errors.New("conflicting outcome records")
	ErrMissingMirror     = errors.New("missing mirrored outcome")
)
