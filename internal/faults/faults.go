package faults

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// Kind classifies a failure into the closed taxonomy shared by the discovery
// and streaming halves. Downstream consumers see this vocabulary regardless
// of where the failure originated.
type Kind string

const (
	// KindUnknownServer indicates a server id that is not present in the
	// registry. No network call is attempted for such ids.
	KindUnknownServer Kind = "unknown_server"

	// KindConnectionFailed indicates a network-level failure reaching the
	// server (refused, DNS, reset).
	KindConnectionFailed Kind = "connection_failed"

	// KindTimeout indicates an exceeded time budget, either per call or the
	// overall discovery deadline.
	KindTimeout Kind = "timeout"

	// KindMalformedResponse indicates a response that failed shape or
	// protocol validation.
	KindMalformedResponse Kind = "malformed_response"

	// KindWorkflowFault indicates any other downstream workflow failure.
	KindWorkflowFault Kind = "workflow_fault"
)

// Record is the normalized representation of a failure. The original cause
// is preserved for logs and never swallowed.
type Record struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (r *Record) Error() string {
	return fmt.Sprintf("%s: %s", r.Kind, r.Message)
}

// Unwrap returns the underlying cause for use with errors.Is and errors.As.
func (r *Record) Unwrap() error {
	return r.Cause
}

// New creates a Record with an explicit kind.
func New(kind Kind, format string, args ...interface{}) *Record {
	return &Record{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Translate maps a heterogeneous failure cause into a Record. The mapping is
// closed: anything not recognized as a connection, timeout, or shape failure
// is a workflow fault. Translating a Record returns it unchanged so the
// mapping is idempotent across layer boundaries.
func Translate(err error) *Record {
	if err == nil {
		return nil
	}

	var rec *Record
	if errors.As(err, &rec) {
		return rec
	}

	rec = &Record{Message: err.Error(), Cause: err}
	rec.Kind = classify(err)
	return rec
}

func classify(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.Is(err, os.ErrDeadlineExceeded) {
		return KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// url.Error wraps the transport-level cause; classify that instead.
		return classify(urlErr.Err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindConnectionFailed
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EHOSTUNREACH) {
		return KindConnectionFailed
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindConnectionFailed
	}

	// A response that cannot be decoded is a protocol violation, not a
	// transport failure.
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return KindMalformedResponse
	}

	// mcp-go surfaces transport handshake failures as wrapped fmt errors;
	// recognize the common dial failure text so a refused connection does
	// not get reported as a generic workflow fault.
	msg := err.Error()
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") {
		return KindConnectionFailed
	}

	return KindWorkflowFault
}
