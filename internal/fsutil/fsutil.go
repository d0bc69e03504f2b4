// Package fsutil provides file system utility functions.
package fsutil

import "os"

// FirstExisting returns the first of the given paths that exists and is a
// regular file. It is used to probe the conventional config-file locations.
func FirstExisting(paths ...string) (string, bool) {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}
