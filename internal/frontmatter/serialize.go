package frontmatter

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// SerializeTOML serializes a frontmatter map into TOML bytes (without delimiters).
//
// Determinism: the encoder emits keys in sorted order, so identical maps
// always serialize to identical bytes.
// Newlines: the returned bytes use the newline style provided by Style (defaults to \n).
//
// If fields is empty, SerializeTOML returns an empty slice.
func SerializeTOML(fields map[string]any, style Style) ([]byte, error) {
	if len(fields) == 0 {
		return []byte{}, nil
	}

	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(fields); err != nil {
		return nil, err
	}

	out := buf.Bytes()
	if nl != "\n" {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte(nl))
	}
	return out, nil
}
