package s3

import (
	"path"
	"strings"
)

// Delimiter is the conventional key separator. Keys ending in it denote a
// "directory", which is a naming convention only; the store has no real
// hierarchy.
const Delimiter = "/"

// CleanKey normalizes an object key for use in a request path: leading
// slashes are trimmed and redundant path elements are collapsed. A trailing
// delimiter is preserved since it is significant for directory-style keys.
func CleanKey(key string) string {
	trailing := strings.HasSuffix(key, Delimiter) && key != Delimiter
	key = strings.TrimLeft(key, Delimiter)
	if key == "" {
		return ""
	}
	key = path.Clean(key)
	if key == "." {
		return ""
	}
	if trailing {
		key += Delimiter
	}
	return key
}

// IsDirKey reports whether key names a directory-style grouping.
func IsDirKey(key string) bool {
	return strings.HasSuffix(key, Delimiter)
}

// JoinKey joins a configured prefix and a relative key, keeping a trailing
// delimiter on the result when the relative part carries one.
func JoinKey(prefix, key string) string {
	key = CleanKey(key)
	prefix = strings.Trim(prefix, Delimiter)
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	if IsDirKey(key) {
		return path.Join(prefix, key) + Delimiter
	}
	return path.Join(prefix, key)
}
