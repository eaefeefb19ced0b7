// Package model defines the normalized contract between responders and LLM
// providers. A Model consumes a Request (instructions plus a role-tagged
// message history) and emits Response chunks over a channel, so streaming and
// non-streaming providers share the same surface. Provider adapters live in
// the subpackages model/openai and model/anthropic; MockModel serves tests
// and offline examples.
package model
