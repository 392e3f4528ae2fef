package templates

import (
	"strings"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// Template is a page skeleton with named placeholders.
//
// A placeholder is the delimiter followed by an identifier (@@article) or a
// braced identifier (@@{article}). A doubled delimiter is a literal delimiter.
// Substitution is a single pass: inserted values are never scanned again, so
// content may contain the delimiter freely.
type Template struct {
	name         string
	delim        string
	segments     []segment
	placeholders []string
}

type segment struct {
	literal     string
	placeholder string // empty for literal segments
}

// New parses text. A delimiter that starts neither a placeholder nor an
// escape is an error.
func New(name, text, delimiter string) (*Template, error) {
	if delimiter == "" {
		return nil, ferrors.TemplateSubstitutionError("placeholder delimiter must not be empty").
			WithContext("template", name).
			Build()
	}

	t := &Template{name: name, delim: delimiter}
	seen := map[string]bool{}
	var lit strings.Builder
	rest := text

	for {
		idx := strings.Index(rest, delimiter)
		if idx < 0 {
			lit.WriteString(rest)
			break
		}
		lit.WriteString(rest[:idx])
		rest = rest[idx+len(delimiter):]

		if strings.HasPrefix(rest, delimiter) {
			lit.WriteString(delimiter)
			rest = rest[len(delimiter):]
			continue
		}

		ident, consumed := scanPlaceholder(rest)
		if ident == "" {
			return nil, ferrors.TemplateSubstitutionError("invalid placeholder").
				WithContext("template", name).
				WithContext("offset", len(text)-len(rest)-len(delimiter)).
				Build()
		}
		rest = rest[consumed:]

		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{literal: lit.String()})
			lit.Reset()
		}
		t.segments = append(t.segments, segment{placeholder: ident})
		if !seen[ident] {
			seen[ident] = true
			t.placeholders = append(t.placeholders, ident)
		}
	}

	if lit.Len() > 0 {
		t.segments = append(t.segments, segment{literal: lit.String()})
	}
	return t, nil
}

// Name returns the template name used in errors.
func (t *Template) Name() string { return t.name }

// Placeholders lists placeholder names in order of first appearance.
func (t *Template) Placeholders() []string {
	out := make([]string, len(t.placeholders))
	copy(out, t.placeholders)
	return out
}

// Substitute fills every placeholder from values. A placeholder without a
// value fails the whole substitution; extra values are ignored.
func (t *Template) Substitute(values map[string]string) (string, error) {
	var b strings.Builder
	for _, seg := range t.segments {
		if seg.placeholder == "" {
			b.WriteString(seg.literal)
			continue
		}
		v, ok := values[seg.placeholder]
		if !ok {
			return "", ferrors.TemplateSubstitutionError("no value for placeholder").
				WithContext("template", t.name).
				WithContext("placeholder", seg.placeholder).
				Build()
		}
		b.WriteString(v)
	}
	return b.String(), nil
}

// Escape doubles every delimiter in s so it survives New as literal text.
func Escape(s, delimiter string) string {
	return strings.ReplaceAll(s, delimiter, delimiter+delimiter)
}

// scanPlaceholder reads an identifier or {identifier} at the start of s.
func scanPlaceholder(s string) (ident string, consumed int) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return "", 0
		}
		id := s[1:end]
		if identLen(id) != len(id) || id == "" {
			return "", 0
		}
		return id, end + 1
	}
	n := identLen(s)
	return s[:n], n
}

func identLen(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case c >= '0' && c <= '9' && i > 0:
		default:
			return i
		}
	}
	return len(s)
}
