package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

func newRegistry(t *testing.T) *Chroma {
	t.Helper()
	reg, err := NewChroma("default")
	require.NoError(t, err)
	return reg
}

func TestNewChroma_UnknownStyle(t *testing.T) {
	_, err := NewChroma("no-such-style")
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestNewChroma_StyleNamesIncludeDefault(t *testing.T) {
	require.Contains(t, StyleNames(), "default")
	require.Contains(t, StyleNames(), "monokai")
}

func TestLookup_KnownLanguage(t *testing.T) {
	reg := newRegistry(t)

	h, err := reg.Lookup("python")
	require.NoError(t, err)
	require.Equal(t, "Python", h.Name())

	var b strings.Builder
	require.NoError(t, h.Highlight(&b, "def f():\n    return 1\n"))
	out := b.String()
	require.Contains(t, out, ">def</span>")
	require.Contains(t, out, "style=\"")
	require.NotContains(t, out, "class=\"", "inline styles only")
}

func TestLookup_UnknownLanguage(t *testing.T) {
	reg := newRegistry(t)

	_, err := reg.Lookup("klingon")
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryUnknownLanguage))
	classified, _ := ferrors.AsClassified(err)
	lang, _ := classified.Context().GetString("language")
	require.Equal(t, "klingon", lang)
}

func TestGuess_NeverFails(t *testing.T) {
	reg := newRegistry(t)

	h := reg.Guess("#!/bin/bash\necho hello\n")
	require.NotNil(t, h)
	require.Equal(t, "Bash", h.Name())

	plain := reg.Guess("just some words")
	require.NotNil(t, plain)

	var b strings.Builder
	require.NoError(t, plain.Highlight(&b, "just some <words>"))
	require.Contains(t, b.String(), "&lt;words&gt;")
}
