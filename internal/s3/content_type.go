package s3

import (
	"path"
	"strings"
)

// DefaultContentType is sent for uploads whose content type is neither set by
// the caller nor guessable from the key extension.
const DefaultContentType = "binary/octet-stream"

var contentTypes = map[string]string{
	"bmp":  "image/bmp",
	"css":  "text/css",
	"gif":  "image/gif",
	"html": "text/html",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"json": "application/json",
	"mp3":  "audio/mpeg",
	"pdf":  "application/pdf",
	"png":  "image/png",
	"rtf":  "text/rtf",
	"tiff": "image/tiff",
	"txt":  "text/plain",
	"xml":  "application/xml",
	"zip":  "application/zip",
}

// GuessContentType makes an educated guess at the Content-Type for key based
// on its extension, falling back to DefaultContentType.
func GuessContentType(key string) string {
	ext := strings.TrimPrefix(path.Ext(key), ".")
	if ct, ok := contentTypes[strings.ToLower(ext)]; ok {
		return ct
	}
	return DefaultContentType
}
