package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Style captures formatting details needed for stable rewriting.
//
// It intentionally focuses on newline/trailing newline shape and does not
// attempt to preserve original TOML formatting.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

var (
	// ErrMissingOpeningDelimiter indicates the first line of the document is
	// not exactly the frontmatter delimiter.
	ErrMissingOpeningDelimiter = errors.New("first line is not the frontmatter delimiter")

	// ErrMissingClosingDelimiter indicates the document started with a
	// frontmatter delimiter but did not contain a closing delimiter.
	ErrMissingClosingDelimiter = errors.New("frontmatter start delimiter found but closing delimiter is missing")
)

// Split separates the frontmatter block from the Markdown body.
//
// The first line must equal delimiter exactly (a trailing \r is tolerated).
// The next line equal to delimiter closes the block. The returned frontmatter
// excludes both delimiter lines; body is everything after the closing line.
func Split(content []byte, delimiter string) (frontmatter []byte, body []byte, style Style, err error) {
	style = detectStyle(content)

	first, rest, _ := cutLine(content)
	if string(first) != delimiter {
		return nil, nil, style, ErrMissingOpeningDelimiter
	}

	frontmatterStart := len(content) - len(rest)
	pos := frontmatterStart
	for pos < len(content) {
		line, next, _ := cutLine(content[pos:])
		if string(line) == delimiter {
			bodyStart := len(content) - len(next)
			return content[frontmatterStart:pos], content[bodyStart:], style, nil
		}
		pos = len(content) - len(next)
	}

	return nil, nil, style, ErrMissingClosingDelimiter
}

// Join reassembles a document from raw frontmatter and body using delimiter
// lines and the newline style captured in Style. When Style has a trailing
// newline, a body missing one gets it.
func Join(frontmatter []byte, body []byte, delimiter string, style Style) []byte {
	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}

	out := make([]byte, 0, 2*(len(delimiter)+len(nl))+len(frontmatter)+len(body))
	out = append(out, delimiter...)
	out = append(out, nl...)
	out = append(out, frontmatter...)
	if len(frontmatter) > 0 && !bytes.HasSuffix(frontmatter, []byte("\n")) {
		out = append(out, nl...)
	}
	out = append(out, delimiter...)
	out = append(out, nl...)
	out = append(out, body...)
	if style.HasTrailingNewline && !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, nl...)
	}
	return out
}

// ParseTOML parses raw TOML frontmatter (without delimiters) into a map.
//
// TOML dates and date-times are returned as time.Time; local (zone-less)
// values carry a fixed zone named "date-local", "datetime-local" or
// "time-local".
func ParseTOML(frontmatter []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return fields, nil
	}

	if _, err := toml.Decode(string(frontmatter), &fields); err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("line %d: %s", perr.Position.Line, perr.Message)
		}
		return nil, err
	}
	return fields, nil
}

// cutLine returns the first line of b without its line terminator, the bytes
// after the terminator, and whether a terminator was found.
func cutLine(b []byte) (line, rest []byte, found bool) {
	idx := bytes.IndexByte(b, '\n')
	if idx < 0 {
		return bytes.TrimSuffix(b, []byte("\r")), nil, false
	}
	return bytes.TrimSuffix(b[:idx], []byte("\r")), b[idx+1:], true
}

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			newline = "\n"
			break
		}
	}

	hasTrailingNewline := len(content) > 0 && (content[len(content)-1] == '\n')

	return Style{
		Newline:            newline,
		HasTrailingNewline: hasTrailingNewline,
	}
}
