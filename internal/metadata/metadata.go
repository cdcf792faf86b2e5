// Package metadata carries the ambient, per-invocation header bag from the
// transport layer to capability handlers. A value for a given key may be
// absent, a single string, or multiple strings for repeated headers.
package metadata

import (
	"context"
	"net/http"
	"strings"
)

// Metadata maps a lowercased header name to its values. The zero value is
// usable and behaves as an empty bag. Lifetime is one invocation; it is
// never persisted.
type Metadata map[string][]string

// contextKey is unexported so that only this package can stash Metadata in
// a context.
type contextKey struct{}

// FromHTTPHeader snapshots an incoming request's headers into a Metadata
// bag. Keys are lowercased so lookups are case-insensitive.
func FromHTTPHeader(h http.Header) Metadata {
	md := make(Metadata, len(h))
	for name, values := range h {
		md[strings.ToLower(name)] = append([]string(nil), values...)
	}
	return md
}

// Set replaces the values for a key.
func (md Metadata) Set(name string, values ...string) {
	md[strings.ToLower(name)] = values
}

// Get returns all values for a key, or nil when absent.
func (md Metadata) Get(name string) []string {
	return md[strings.ToLower(name)]
}

// First returns the first value for a key for callers that want scalar
// semantics. The second return is false when the key is absent or has no
// values.
func (md Metadata) First(name string) (string, bool) {
	values := md[strings.ToLower(name)]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// NewContext returns a context carrying md.
func NewContext(ctx context.Context, md Metadata) context.Context {
	return context.WithValue(ctx, contextKey{}, md)
}

// FromContext returns the Metadata carried by ctx, or an empty bag when the
// transport attached none (e.g. stdio).
func FromContext(ctx context.Context) Metadata {
	if md, ok := ctx.Value(contextKey{}).(Metadata); ok {
		return md
	}
	return Metadata{}
}
