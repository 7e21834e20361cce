package odoo

import (
	"context"
	"errors"
	"log"

	"github.com/kolo/xmlrpc"
)

// CallResult is the outcome of a record-returning remote call. It keeps
// "no matching records" and "the call failed" apart; the historical
// behavior of collapsing both into an empty list is available through
// Records for callers that depend on it.
type CallResult struct {
	records []map[string]any
	err     error
}

// Ok wraps a successful record set. An empty set is still Ok.
func Ok(records []map[string]any) CallResult {
	return CallResult{records: records}
}

// Failed wraps a remote failure.
func Failed(err error) CallResult {
	return CallResult{err: err}
}

// Records returns the record set, or nil when the set is empty or the call
// failed. This is the legacy collapsing view: callers using it cannot tell
// the two cases apart.
func (r CallResult) Records() []map[string]any {
	if r.err != nil || len(r.records) == 0 {
		return nil
	}
	return r.records
}

// Empty reports whether the call succeeded but matched nothing.
func (r CallResult) Empty() bool {
	return r.err == nil && len(r.records) == 0
}

// Failed reports whether the underlying call errored.
func (r CallResult) Failed() bool {
	return r.err != nil
}

// Err returns the failure cause, or nil.
func (r CallResult) Err() error {
	return r.err
}

// First returns the first record and true, or nil and false when there is
// none (empty or failed).
func (r CallResult) First() (map[string]any, bool) {
	recs := r.Records()
	if len(recs) == 0 {
		return nil, false
	}
	return recs[0], true
}

// Call runs a record-returning execute_kw and folds the outcome into a
// CallResult. Failures are logged here and never propagate as errors; this
// is the single choke point for lookup-style remote calls.
func Call(ctx context.Context, exec Executor, model, method string, args []any, opts *CallOptions) CallResult {
	raw, err := exec.ExecuteKw(ctx, model, method, args, opts)
	if err != nil {
		log.Printf("[Error] Odoo call failed for %s.%s: %v", model, method, err)
		return Failed(err)
	}
	return Ok(RecordList(raw))
}

// RecordList normalizes a decoded execute_kw result into a list of record
// maps. Non-list results (booleans, ids) yield nil.
func RecordList(raw any) []map[string]any {
	switch v := raw.(type) {
	case []map[string]any:
		return v
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if rec, ok := item.(map[string]any); ok {
				out = append(out, rec)
			}
		}
		return out
	default:
		return nil
	}
}

// IsFault reports whether err originated as a server-side XML-RPC fault,
// as opposed to a transport failure.
func IsFault(err error) bool {
	_, ok := faultOf(err)
	return ok
}

// FaultString returns the server's fault text, or the plain error message
// for non-fault errors.
func FaultString(err error) string {
	if fault, ok := faultOf(err); ok {
		return fault.String
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

func faultOf(err error) (xmlrpc.FaultError, bool) {
	var fault xmlrpc.FaultError
	if errors.As(err, &fault) {
		return fault, true
	}
	var fp *xmlrpc.FaultError
	if errors.As(err, &fp) && fp != nil {
		return *fp, true
	}
	return xmlrpc.FaultError{}, false
}
