package ignorelist

import (
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadLocal(t *testing.T) {
	valid := writeLocalList(t, `["abc123", "ABC123", "toolongplatevalue1234567"]`)
	malformed := writeLocalList(t, `["abc123", 42]`)
	notJSON := writeLocalList(t, `abc123`)
	missing := filepath.Join(t.TempDir(), "absent.json")

	tests := []struct {
		name       string
		opts       Options
		wantStatus Status
		wantList   []string
		wantWarns  int
	}{
		{"disabled ignores path", Options{Enabled: false, LocalFile: missing}, StatusDisabled, nil, 0},
		{"enabled without path", Options{Enabled: true}, StatusDisabled, nil, 0},
		{"missing file warns", Options{Enabled: true, LocalFile: missing}, StatusMissing, nil, 1},
		{"valid file", Options{Enabled: true, LocalFile: valid}, StatusLoaded, []string{"abc123", "ABC123", "toolongplatevalue1234567"}, 0},
		{"non-string element", Options{Enabled: true, LocalFile: malformed}, StatusMalformed, nil, 1},
		{"not json", Options{Enabled: true, LocalFile: notJSON}, StatusMalformed, nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &recordingNotifier{}
			got := LoadLocal(tt.opts, notifier)

			if got.Kind != KindLocal {
				t.Errorf("kind = %s, want %s", got.Kind, KindLocal)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", got.Status, tt.wantStatus)
			}
			if !reflect.DeepEqual(got.Entries, tt.wantList) {
				t.Errorf("entries = %v, want %v", got.Entries, tt.wantList)
			}
			if n := notifier.count(); n != tt.wantWarns {
				t.Errorf("warnings = %d, want %d", n, tt.wantWarns)
			}
		})
	}
}

func TestLoadLocalMissingMessage(t *testing.T) {
	notifier := &recordingNotifier{}
	got := LoadLocal(Options{Enabled: true, LocalFile: filepath.Join(t.TempDir(), "nope.json")}, notifier)

	if !errors.Is(got.Err, fs.ErrNotExist) {
		t.Fatalf("error = %v, want fs.ErrNotExist", got.Err)
	}
	if len(notifier.messages) != 1 || notifier.messages[0] != missingLocalFileMessage {
		t.Fatalf("messages = %v, want the missing file warning", notifier.messages)
	}
}

func TestLoadLocalDirectoryIsFailure(t *testing.T) {
	notifier := &recordingNotifier{}
	got := LoadLocal(Options{Enabled: true, LocalFile: t.TempDir()}, notifier)

	if got.Status != StatusFailed {
		t.Fatalf("status = %s, want %s", got.Status, StatusFailed)
	}
	if notifier.count() != 1 {
		t.Fatalf("warnings = %d, want 1", notifier.count())
	}
}
