package ignorelist

import (
	"context"
	"strings"
	"unicode/utf8"
)

// MaxEntryLength is the exclusive upper bound on plate length, in characters.
const MaxEntryLength = 25

// Fetch builds the ignore list: local file, then the default source, then the
// configured sources, merged, sanitized and deduplicated.
func (f *Fetcher) Fetch(ctx context.Context, opts Options) Result {
	sources := make([]SourceResult, 0, len(opts.RemoteSources)+2)
	sources = append(sources, LoadLocal(opts, f.notifier()))
	sources = append(sources, f.FetchRemote(ctx, opts)...)

	raw := Merge(sources...)
	return Result{
		Entries:  Deduplicate(Sanitize(raw)),
		Sources:  sources,
		RawCount: len(raw),
	}
}

// Merge concatenates the entries of results in argument order.
func Merge(results ...SourceResult) []string {
	total := 0
	for _, r := range results {
		total += len(r.Entries)
	}

	out := make([]string, 0, total)
	for _, r := range results {
		out = append(out, r.Entries...)
	}
	return out
}

// Sanitize drops entries of MaxEntryLength characters or more and uppercases
// the rest, keeping their order.
func Sanitize(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if utf8.RuneCountInString(entry) >= MaxEntryLength {
			continue
		}
		out = append(out, strings.ToUpper(entry))
	}
	return out
}

// Deduplicate keeps the first occurrence of every entry.
func Deduplicate(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if _, exists := seen[entry]; exists {
			continue
		}
		seen[entry] = struct{}{}
		out = append(out, entry)
	}
	return out
}
