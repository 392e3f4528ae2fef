package build

import "errors"

// Sentinel errors wrapped as the cause of classified build failures.
var (
	ErrOutputOverlapsSource = errors.New("blogbuilder: output directory overlaps source")
	ErrBrokenLinks          = errors.New("blogbuilder: broken links")
)
