package config

import (
	"os"
	"strings"
)

const fallbackFileName = "_bad_file_name_"

// CleanFileName drops characters which cannot be used in a file name on
// this platform. Leading dots are dropped too, so scoped stylesheets never
// end up hidden.
func CleanFileName(in string) string {
	bad := badFileNameChars + string(os.PathSeparator) + string(os.PathListSeparator)
	var sb strings.Builder
	for _, r := range in {
		if r == 0 || strings.ContainsRune(bad, r) {
			continue
		}
		sb.WriteRune(r)
	}
	if out := strings.TrimLeft(sb.String(), "."); len(out) > 0 {
		return out
	}
	return fallbackFileName
}
