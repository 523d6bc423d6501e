package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const listFileMode os.FileMode = 0o644

// Writer hands a finished ignore list to whatever consumes it.
type Writer interface {
	Write(ctx context.Context, entries []string) error
}

// JSONWriter prints the list as an indented JSON array.
type JSONWriter struct {
	W io.Writer
}

func (w JSONWriter) Write(_ context.Context, entries []string) error {
	if entries == nil {
		entries = []string{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ignore list: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.W.Write(data); err != nil {
		return fmt.Errorf("write ignore list: %w", err)
	}
	return nil
}

// FileWriter replaces the file at Path with the JSON list. The content is
// written to a sibling temp file first so readers never see a partial list.
type FileWriter struct {
	Path string
}

func (w FileWriter) Write(ctx context.Context, entries []string) error {
	dir := filepath.Dir(w.Path)
	tmp, err := os.CreateTemp(dir, ".ignore-list-*.json")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	// Recognizers often run as another user; CreateTemp starts at 0600.
	if err := tmp.Chmod(listFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := (JSONWriter{W: tmp}).Write(ctx, entries); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, w.Path); err != nil {
		return fmt.Errorf("replace %s: %w", w.Path, err)
	}
	return nil
}
