// Package highlight turns source code into inline-styled HTML.
//
// A Registry hands out a LanguageHighlighter for an explicit language tag or,
// for untagged code, guesses one from the content. Asking for a tag that no
// highlighter is registered under is an error; guessing never fails.
package highlight

import "io"

// LanguageHighlighter renders code of one language as an HTML fragment.
type LanguageHighlighter interface {
	// Name is the canonical language name, e.g. "Python".
	Name() string
	Highlight(w io.Writer, code string) error
}

// Registry resolves highlighters.
type Registry interface {
	// Lookup returns the highlighter registered for tag. Unknown tags yield
	// an unknown_language classified error.
	Lookup(tag string) (LanguageHighlighter, error)
	// Guess picks a highlighter from code content, falling back to plain text.
	Guess(code string) LanguageHighlighter
}
