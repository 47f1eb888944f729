package gamepad

import (
	"fmt"
	"strings"
)

// Enum tables are indexed by value. Index 0 is left empty: the zero value of
// every enum reads and writes as "none".
const noneName = "none"

func enumName(names []string, v int) string {
	if v == 0 {
		return noneName
	}
	if v < 0 || v >= len(names) || names[v] == "" {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return names[v]
}

func marshalEnum(kind string, names []string, v int) ([]byte, error) {
	if v == 0 {
		return []byte(noneName), nil
	}
	if v < 0 || v >= len(names) || names[v] == "" {
		return nil, fmt.Errorf("invalid %s %d", kind, v)
	}
	return []byte(names[v]), nil
}

func unmarshalEnum(kind string, names []string, text []byte, dst *int) error {
	want := strings.ToLower(strings.TrimSpace(string(text)))
	want = strings.ReplaceAll(want, "-", "_")
	if want == "" || want == noneName {
		*dst = 0
		return nil
	}
	for v, name := range names {
		if name != "" && name == want {
			*dst = v
			return nil
		}
	}
	return fmt.Errorf("unknown %s %q", kind, string(text))
}
