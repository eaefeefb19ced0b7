// Package core provides the foundational domain types and contracts used by
// Roundtable. It defines the core abstractions for:
//
//   - Roles (the closed set of orchestration participants)
//   - Messages (immutable request/response records in an append-only log)
//   - State (the mutable aggregate threaded through a run)
//   - Responders (pluggable content producers bound to roles)
//   - Pluggable stores for transcripts, artifacts and memory recall
//
// The package intentionally keeps implementation concerns (routing, the
// orchestration loop, concrete responders) out of scope, exposing small
// interfaces to enable custom backends and extensions.
package core
