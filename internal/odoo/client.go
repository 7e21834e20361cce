package odoo

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/kolo/xmlrpc"
)

// Executor is the narrow surface services use to reach Odoo. Client is the
// production implementation; tests substitute fakes.
type Executor interface {
	ExecuteKw(ctx context.Context, model, method string, args []any, opts *CallOptions) (any, error)
}

// CallOptions are the named options of an execute_kw call. The zero value
// sends no keyword arguments at all.
type CallOptions struct {
	Fields  []string       // field selection for read/search_read
	Limit   int            // max records; 0 means no limit keyword
	Offset  int            // pagination offset
	Context map[string]any // Odoo call context, e.g. {"lang": "en_US"}
}

func (o *CallOptions) kwargs() map[string]any {
	if o == nil {
		return nil
	}
	kw := make(map[string]any)
	if len(o.Fields) > 0 {
		kw["fields"] = o.Fields
	}
	if o.Limit > 0 {
		kw["limit"] = o.Limit
	}
	if o.Offset > 0 {
		kw["offset"] = o.Offset
	}
	if len(o.Context) > 0 {
		kw["context"] = o.Context
	}
	if len(kw) == 0 {
		return nil
	}
	return kw
}

// Client is an Odoo XML-RPC client. It authenticates against the
// /xmlrpc/2/common endpoint and issues execute_kw calls against
// /xmlrpc/2/object. The uid is set once by Authenticate and read-only
// afterwards.
type Client struct {
	URL       string
	Database  string
	Username  string
	Password  string
	Uid       int64
	commonURL string
	objectURL string
	transport http.RoundTripper
}

// NewClient creates a new Odoo client for the given server URL and
// credentials. The URL is the server base, without the /xmlrpc suffix.
func NewClient(url, db, username, password string) *Client {
	return &Client{
		URL:       url,
		Database:  db,
		Username:  username,
		Password:  password,
		commonURL: fmt.Sprintf("%s/xmlrpc/2/common", url),
		objectURL: fmt.Sprintf("%s/xmlrpc/2/object", url),
		transport: newTransport(),
	}
}

// Authenticate resolves the numeric user id for the configured credentials.
func (c *Client) Authenticate(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	rpc, err := xmlrpc.NewClient(c.commonURL, c.transport)
	if err != nil {
		return 0, fmt.Errorf("failed to create XML-RPC client: %w", err)
	}
	defer rpc.Close()

	args := []any{c.Database, c.Username, c.Password, map[string]any{}}
	var uid int64
	if err := rpc.Call("authenticate", args, &uid); err != nil {
		return 0, fmt.Errorf("authentication failed: %w", err)
	}
	if uid == 0 {
		return 0, fmt.Errorf("authentication rejected for user %s on database %s", c.Username, c.Database)
	}

	c.Uid = uid
	return uid, nil
}

// ExecuteKw invokes execute_kw on the object endpoint: a method on a named
// model with positional args and the options rendered as keyword arguments.
// The raw decoded result is returned as-is; callers know the shape the
// method produces (record list, id, boolean, ...).
func (c *Client) ExecuteKw(ctx context.Context, model, method string, args []any, opts *CallOptions) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rpc, err := xmlrpc.NewClient(c.objectURL, c.transport)
	if err != nil {
		return nil, fmt.Errorf("failed to create XML-RPC client: %w", err)
	}
	defer rpc.Close()

	callArgs := []any{c.Database, c.Uid, c.Password, model, method, args}
	if kw := opts.kwargs(); kw != nil {
		callArgs = append(callArgs, kw)
	}

	var result any
	if err := rpc.Call("execute_kw", callArgs, &result); err != nil {
		return nil, fmt.Errorf("%s.%s: %w", model, method, err)
	}
	return result, nil
}

// newTransport returns the HTTP transport shared by all remote calls: a
// fixed connection-level timeout, uniform across every step. There is no
// per-step deadline or retry beyond this.
func newTransport() http.RoundTripper {
	return &http.Transport{
		DialContext:           (&net.Dialer{Timeout: 30 * time.Second}).DialContext,
		ResponseHeaderTimeout: 30 * time.Second,
	}
}
