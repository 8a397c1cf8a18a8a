package workout

import (
	"fmt"
	"strings"
)

// NoCandidatesError means retrieval or the filter stages left nothing to
// choose from, even after the media requirement was relaxed.
type NoCandidatesError struct {
	Query string
	Stage string
}

func (e *NoCandidatesError) Error() string {
	if e == nil {
		return ""
	}
	if strings.TrimSpace(e.Stage) == "" {
		return fmt.Sprintf("no exercises found for %q", e.Query)
	}
	return fmt.Sprintf("no exercises found for %q (emptied by %s)", e.Query, e.Stage)
}

// OracleError wraps a selection oracle failure. It is never retried or
// masked by a fallback.
type OracleError struct {
	Err error
}

func (e *OracleError) Error() string {
	if e == nil || e.Err == nil {
		return "selection oracle failed"
	}
	return "selection oracle failed: " + e.Err.Error()
}

func (e *OracleError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RetrievalError wraps a failure of the vector search collaborator.
type RetrievalError struct {
	Query string
	Err   error
}

func (e *RetrievalError) Error() string {
	if e == nil || e.Err == nil {
		return "exercise retrieval failed"
	}
	return fmt.Sprintf("exercise retrieval failed for %q: %v", e.Query, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PartialSelectionWarning is attached to a result that came back short.
// It is not returned as an error.
type PartialSelectionWarning struct {
	Requested int `json:"requested"`
	Delivered int `json:"delivered"`
}

func (w PartialSelectionWarning) String() string {
	return fmt.Sprintf("delivered %d of %d requested exercises", w.Delivered, w.Requested)
}
