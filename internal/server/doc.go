// Package server exposes the HTTP API: health and tool-discovery reports,
// and the streaming chat endpoint.
//
// GET /api/health answers quickly without touching the fleet. GET
// /api/tools runs a full discovery fan-out and reports every configured
// server with its reachability and catalog; mixed reachability is a normal
// 200 response. POST /api/chat bridges a workflow invocation into
// Server-Sent Events, one JSON envelope per event, terminated by exactly
// one completion or error envelope.
package server
