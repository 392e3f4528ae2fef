package templates

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// WritePage writes page under siteDir and returns the full path.
//
// The page path must stay inside siteDir. Existing files are never
// overwritten, so two posts mapping to the same output name (or a post
// named index.md) fail the build instead of silently replacing each other.
func WritePage(siteDir string, page Page) (string, error) {
	if siteDir == "" {
		return "", ferrors.InternalError("output directory is required").Build()
	}
	if page.Path == "" {
		return "", ferrors.InternalError("page path is required").Build()
	}

	cleanRel := filepath.Clean(page.Path)
	if filepath.IsAbs(cleanRel) || strings.HasPrefix(cleanRel, "..") {
		return "", ferrors.FileSystemError("page path must be relative to the output directory").
			WithContext("path", page.Path).
			Build()
	}

	fullPath := filepath.Join(siteDir, cleanRel)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "create output directory").
			WithContext("path", filepath.Dir(fullPath)).
			Fatal().
			Build()
	}

	// #nosec G302,G304 -- fullPath stays under siteDir; pages are world-readable web content.
	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", ferrors.FileSystemError("output file already exists").
				WithContext("path", fullPath).
				Build()
		}
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "open output file").
			WithContext("path", fullPath).
			Fatal().
			Build()
	}

	if _, err := file.Write(page.Content); err != nil {
		_ = file.Close()
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "write output file").
			WithContext("path", fullPath).
			Fatal().
			Build()
	}
	if err := file.Close(); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "close output file").
			WithContext("path", fullPath).
			Fatal().
			Build()
	}
	return fullPath, nil
}
