package catalog

import (
	"os"
	"time"
)

// Entry represents a single file or folder inside the catalog root.
type Entry struct {
	Name      string
	ID        string // slash-separated path relative to the root, "." for the root
	FullPath  string
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.FullPath, e.Name)
}
