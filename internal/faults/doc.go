// Package faults defines the closed error taxonomy shared by tool discovery
// and workflow streaming.
//
// Both halves of the system recover failures at their own boundary and
// normalize them through Translate, so callers branch on a small set of
// kinds (unknown server, connection failed, timeout, malformed response,
// workflow fault) instead of inspecting transport-specific error types.
package faults
