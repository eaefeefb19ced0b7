// Package engine implements the Roundtable orchestration loop. The Engine
// dispatches turns among a fixed set of role-based responders, accumulates a
// shared message history, and decides when to stop.
//
// Each orchestration cycle consists of a coordinator turn (which plans the
// cycle via the router and issues requests) followed by the selected worker's
// turn. The termination policy is evaluated once per full cycle, after the
// worker has responded, never mid-turn. The loop is strictly single-threaded
// and turn-based: exactly one role is active per cycle and state is handed to
// responders serially.
package engine
