// Package templates turns rendered Markdown fragments into complete HTML
// pages.
//
// Pages are built from two skeletons, Home and Post, whose fixed parts come
// from the site configuration. Skeletons carry named placeholders that are
// filled by a strict single-pass substitution: a missing value is an error,
// never an empty string.
package templates
