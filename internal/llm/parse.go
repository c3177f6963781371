package llm

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNoJSONArray  = errors.New("no JSON array in model output")
	ErrNoJSONObject = errors.New("no JSON object in model output")
)

// DecodeArray decodes the text between the first '[' and the last ']' of raw,
// ignoring any prose the model wrapped around it.
func DecodeArray(raw string, target any) error {
	fragment, ok := enclosed(raw, '[', ']')
	if !ok {
		return ErrNoJSONArray
	}
	if err := json.Unmarshal([]byte(fragment), target); err != nil {
		return errors.Wrap(err, "decode JSON array")
	}
	return nil
}

// DecodeObject decodes raw as JSON, falling back to the text between the
// first '{' and the last '}'.
func DecodeObject(raw string, target any) error {
	trimmed := strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(trimmed), target); err == nil {
		return nil
	}

	fragment, ok := enclosed(trimmed, '{', '}')
	if !ok {
		return ErrNoJSONObject
	}
	if err := json.Unmarshal([]byte(fragment), target); err != nil {
		return errors.Wrap(err, "decode JSON object")
	}
	return nil
}

func enclosed(raw string, open byte, close byte) (string, bool) {
	start := strings.IndexByte(raw, open)
	end := strings.LastIndexByte(raw, close)
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}
