package models

import (
	"encoding/json"
	"strings"
)

// Scalar decodes upstream fields whose JSON type is not stable: the backends
// emit ids and raw readings as strings, numbers, booleans or null depending
// on the record. The value is kept in its string form; comparisons in the
// resolution flow are string comparisons.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*s = ""
		return nil
	}
	if trimmed[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = Scalar(v)
		return nil
	}
	if trimmed == "true" || trimmed == "false" {
		*s = Scalar(trimmed)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = Scalar(n.String())
	return nil
}

func (s Scalar) String() string { return string(s) }

// Bool applies the upstream truthiness convention: empty, "false" and "0"
// are false, anything else is true.
func (s Scalar) Bool() bool {
	switch strings.TrimSpace(string(s)) {
	case "", "false", "0":
		return false
	}
	return true
}

func splitSlash(v string) []string {
	parts := strings.Split(v, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
