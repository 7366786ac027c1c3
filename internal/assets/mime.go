package assets

import (
	"path"
	"strings"
)

// mimeByExtension is the extension→MIME lookup used for manifest entries and
// resize eligibility. Unknown extensions fall back to octet-stream.
var mimeByExtension = map[string]string{
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".png":   "image/png",
	".gif":   "image/gif",
	".webp":  "image/webp",
	".avif":  "image/avif",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".mp3":   "audio/mpeg",
	".ogg":   "audio/ogg",
	".wav":   "audio/wav",
	".mp4":   "video/mp4",
	".webm":  "video/webm",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".css":   "text/css",
	".js":    "text/javascript",
	".json":  "application/json",
	".html":  "text/html",
	".txt":   "text/plain",
}

// MimeType returns the MIME type for a path based on its extension.
func MimeType(p string) string {
	ext := strings.ToLower(path.Ext(StripQueryAndHash(p)))
	if mime, ok := mimeByExtension[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

// responsiveImageMimes is the whitelist of MIME types eligible for
// responsive resizing. Animated formats stay untouched: resizing a GIF or
// WebP frame-by-frame is not worth the bytes it saves.
var responsiveImageMimes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// IsResponsiveImageMime reports whether a MIME type is eligible for
// responsive variant generation.
func IsResponsiveImageMime(mime string) bool {
	return responsiveImageMimes[mime]
}
