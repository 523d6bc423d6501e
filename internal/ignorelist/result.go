// Package ignorelist builds the list of license plates that recognition should
// not log. Plates are gathered from a local JSON file, a built-in remote source
// and administrator-configured remote sources, then sanitized and deduplicated.
//
// Building the list never fails: a source that cannot be read contributes no
// plates and reports why through its SourceResult.
package ignorelist

// Options is the slice of configuration the pipeline consumes. It is read once
// by the caller and passed in; the pipeline keeps no state between calls.
type Options struct {
	// Enabled switches the local file and the configured remote sources. The
	// built-in default source is gated by Offline only.
	Enabled bool
	// LocalFile is the path of a JSON array of plates. Empty means no local source.
	LocalFile string
	// RemoteSources are queried after the default source, in this order.
	RemoteSources []string
	// Offline suppresses every remote request, the default source included.
	Offline bool
}

// SourceKind tells where a SourceResult came from.
type SourceKind string

const (
	KindLocal   SourceKind = "local"
	KindDefault SourceKind = "default"
	KindRemote  SourceKind = "remote"
)

// Status is the outcome of loading one source.
type Status string

const (
	// StatusLoaded means the source was read and parsed; Entries may still be empty.
	StatusLoaded Status = "loaded"
	// StatusDisabled means the source was not consulted by configuration.
	StatusDisabled Status = "disabled"
	// StatusMissing means the configured local file does not exist.
	StatusMissing Status = "missing"
	// StatusFailed means the local file exists but could not be read.
	StatusFailed Status = "failed"
	// StatusInvalidURL means the remote source is not a well-formed http(s) URL.
	StatusInvalidURL Status = "invalid_url"
	// StatusFetchFailed covers timeouts, connection errors and non-2xx replies.
	StatusFetchFailed Status = "fetch_failed"
	// StatusMalformed means the payload was not a JSON array of strings.
	StatusMalformed Status = "malformed"
)

// SourceResult is what one source contributed.
type SourceResult struct {
	Kind    SourceKind
	Source  string
	Status  Status
	Entries []string
	Err     error
}

// OK reports whether the source was read successfully.
func (r SourceResult) OK() bool {
	return r.Status == StatusLoaded
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Entries is the final ignore list: uppercase, shorter than MaxEntryLength,
	// unique, in order of first appearance.
	Entries []string
	// Sources holds the local source first, then remote sources in query order.
	Sources []SourceResult
	// RawCount is the number of entries merged before sanitizing.
	RawCount int
}

// Summary counts sources by status.
func (r Result) Summary() map[Status]int {
	counts := make(map[Status]int, len(r.Sources))
	for _, src := range r.Sources {
		counts[src.Status]++
	}
	return counts
}
