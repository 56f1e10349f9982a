//go:build !windows

package catalog

// IsHidden checks if a file is hidden on this platform (Unix-like)
func IsHidden(_ string, name string) bool {
	return len(name) > 0 && name[0] == '.'
}
