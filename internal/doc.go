// Package internal documents the topic directory server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, problem responses, and routing
// - domain/topics: the immutable topic directory and its lookup service
// - auth, secrets: API key handling and the secret store reader
// - config, metrics, telemetry: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
