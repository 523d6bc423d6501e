package ignorelist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotAList marks a payload that is not a JSON array of strings.
var ErrNotAList = errors.New("ignore list payload is not a JSON array of strings")

// parseList decodes a JSON array of strings. Anything else, including null and
// arrays holding non-string values, is rejected as a whole.
func parseList(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotAList
	}

	var entries []string
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAList, err)
	}
	return entries, nil
}
