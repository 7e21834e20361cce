package core_test

import (
	"context"
	"fmt"

	"odoo-agent/internal/odoo"
)

// recordedCall is one ExecuteKw invocation seen by the fake.
type recordedCall struct {
	Model  string
	Method string
	Args   []any
	Opts   *odoo.CallOptions
}

// fakeExec scripts remote behavior per "model.method" key and records
// every call in order.
type fakeExec struct {
	handlers map[string]func(args []any, opts *odoo.CallOptions) (any, error)
	calls    []recordedCall
}

func newFakeExec() *fakeExec {
	return &fakeExec{handlers: make(map[string]func(args []any, opts *odoo.CallOptions) (any, error))}
}

func (f *fakeExec) on(model, method string, handler func(args []any, opts *odoo.CallOptions) (any, error)) {
	f.handlers[model+"."+method] = handler
}

// onRecords scripts a fixed search_read/read style record response.
func (f *fakeExec) onRecords(model, method string, records []map[string]any) {
	f.on(model, method, func([]any, *odoo.CallOptions) (any, error) {
		out := make([]any, len(records))
		for i, rec := range records {
			out[i] = rec
		}
		return out, nil
	})
}

// onCreate scripts a create call returning the given id.
func (f *fakeExec) onCreate(model string, id int64) {
	f.on(model, "create", func([]any, *odoo.CallOptions) (any, error) {
		return id, nil
	})
}

func (f *fakeExec) ExecuteKw(_ context.Context, model, method string, args []any, opts *odoo.CallOptions) (any, error) {
	f.calls = append(f.calls, recordedCall{Model: model, Method: method, Args: args, Opts: opts})
	if handler, ok := f.handlers[model+"."+method]; ok {
		return handler(args, opts)
	}
	return nil, fmt.Errorf("unscripted call %s.%s", model, method)
}

// callKeys returns "model.method" for every recorded call, in order.
func (f *fakeExec) callKeys() []string {
	keys := make([]string, len(f.calls))
	for i, c := range f.calls {
		keys[i] = c.Model + "." + c.Method
	}
	return keys
}
