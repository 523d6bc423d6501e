package ignorelist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
)

// Notifier receives operator-facing warnings. *log.Logger satisfies it.
type Notifier interface {
	Warn(msg interface{}, keyvals ...interface{})
}

const missingLocalFileMessage = "The local ignore list file does not exist. The local ignore list is effectively disabled."

// LoadLocal reads the local ignore list named by opts.LocalFile. A missing file
// is announced through notifier; an unreadable or malformed file is announced
// too and contributes nothing. Neither case is fatal.
func LoadLocal(opts Options, notifier Notifier) SourceResult {
	result := SourceResult{Kind: KindLocal, Source: opts.LocalFile, Status: StatusDisabled}
	if !opts.Enabled || opts.LocalFile == "" {
		return result
	}
	if notifier == nil {
		notifier = log.Default()
	}

	data, err := os.ReadFile(opts.LocalFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			notifier.Warn(missingLocalFileMessage, "path", opts.LocalFile)
			result.Status = StatusMissing
			result.Err = err
			return result
		}
		notifier.Warn("The local ignore list file could not be read. The local ignore list is effectively disabled.",
			"path", opts.LocalFile, "error", err)
		result.Status = StatusFailed
		result.Err = fmt.Errorf("read local ignore list: %w", err)
		return result
	}

	entries, err := parseList(data)
	if err != nil {
		notifier.Warn("The local ignore list file is not a valid list of plates. The local ignore list is effectively disabled.",
			"path", opts.LocalFile, "error", err)
		result.Status = StatusMalformed
		result.Err = err
		return result
	}

	result.Status = StatusLoaded
	result.Entries = entries
	return result
}
