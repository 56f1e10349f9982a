//go:build windows

package catalog

import "syscall"

const fileAttributeHidden = 0x02

// IsHidden checks the hidden attribute on Windows, falling back to the dot
// prefix rule when attributes cannot be read.
func IsHidden(fullPath string, name string) bool {
	target := fullPath
	if target == "" {
		target = name
	}
	dotted := len(name) > 0 && name[0] == '.'
	if target == "" {
		return dotted
	}

	ptr, err := syscall.UTF16PtrFromString(target)
	if err != nil {
		return dotted
	}
	attrs, err := syscall.GetFileAttributes(ptr)
	if err != nil {
		return dotted
	}
	return attrs&fileAttributeHidden != 0
}
