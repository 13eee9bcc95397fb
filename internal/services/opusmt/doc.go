// Package opusmt drives an external opus-mt helper process for text
// translation.
//
// The helper exposes two operations: a cheap model availability check (used
// by the fallback chain to decide which stage applies) and a stdin-to-stdout
// translate call per text fragment.
package opusmt
