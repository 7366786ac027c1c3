// Package assets handles asset reference normalization, collection and
// loading for the export pipeline.
package assets

import (
	"path"
	"strings"
)

// legacyFolderAliases maps folder names from older project layouts to their
// current spelling. Applied to the leading segment only.
var legacyFolderAliases = map[string]string{
	"img":    "images",
	"imgs":   "images",
	"media":  "assets",
	"upload": "assets",
}

// NormalizePath canonicalizes an asset reference string so that two
// references to the same file compare equal. Backslashes become forward
// slashes, repeated slashes collapse, a single leading and trailing slash are
// stripped, and legacy folder aliases are rewritten. Pure and total: empty
// in, empty out.
func NormalizePath(value string) string {
	if value == "" {
		return ""
	}
	s := strings.ReplaceAll(value, "\\", "/")
	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", "/")
	}
	s = strings.TrimPrefix(s, "/")
	s = strings.TrimSuffix(s, "/")
	if s == "" {
		return ""
	}
	if idx := strings.Index(s, "/"); idx > 0 {
		if alias, ok := legacyFolderAliases[s[:idx]]; ok {
			s = alias + s[idx:]
		}
	}
	return s
}

// StripQueryAndHash removes a query string and/or fragment from a reference.
// Call sites that compare against filesystem paths need this; URL-preserving
// sites do not.
func StripQueryAndHash(value string) string {
	if idx := strings.IndexAny(value, "?#"); idx >= 0 {
		return value[:idx]
	}
	return value
}

// IsRemoteURL reports whether a reference points outside the project
// (absolute http/https URL). Remote references are never bundled.
func IsRemoteURL(value string) bool {
	return strings.HasPrefix(value, "http")
}

// ExportRelativePath derives the flat export-relative destination for a
// source path. Precedence: strip a "projects/<slug>/assets/" prefix, else
// take everything after the last "assets/" segment, else the basename, else
// the fallback label "asset". Every source gets a destination; this never
// fails.
func ExportRelativePath(sourcePath, slug string) string {
	normalized := NormalizePath(StripQueryAndHash(sourcePath))
	if normalized == "" {
		return "asset"
	}

	if slug != "" {
		prefix := "projects/" + slug + "/assets/"
		if rest := strings.TrimPrefix(normalized, prefix); rest != normalized && rest != "" {
			return rest
		}
	}

	// Segment-anchored: "my-assets/" must not count as an "assets/" folder.
	for idx := strings.LastIndex(normalized, "assets/"); idx >= 0; idx = strings.LastIndex(normalized[:idx], "assets/") {
		if idx > 0 && normalized[idx-1] != '/' {
			continue
		}
		if rest := normalized[idx+len("assets/"):]; rest != "" {
			return rest
		}
		break
	}

	if base := path.Base(normalized); base != "" && base != "." && base != "/" {
		return base
	}
	return "asset"
}
