package history

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// labelFolderLimit caps how many folder names a label lists.
const labelFolderLimit = 3

// Resolver reports, for each identifier, whether it still names a live resource.
type Resolver interface {
	Resolve(ids []string) []bool
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ids []string) []bool

// Resolve calls f(ids).
func (f ResolverFunc) Resolve(ids []string) []bool {
	return f(ids)
}

// Record is a snapshot of a panel's folder selection and search state.
// The zero Record selects nothing and is never valid.
type Record struct {
	folders []string
	text    string
	scope   Scope
}

// NewRecord builds a record. The folder slice is copied.
func NewRecord(folders []string, text string, scope Scope) Record {
	return Record{
		folders: slices.Clone(folders),
		text:    text,
		scope:   scope,
	}
}

// Folders returns a copy of the selected folder identifiers.
func (r Record) Folders() []string {
	return slices.Clone(r.folders)
}

// SearchText returns the recorded search text, empty when none.
func (r Record) SearchText() string {
	return r.text
}

// Scope returns the recorded search scope.
func (r Record) Scope() Scope {
	return r.scope
}

// HasFolders reports whether the record selects at least one folder.
func (r Record) HasFolders() bool {
	return len(r.folders) > 0
}

// SameFolders reports whether the record selects exactly ids, in order.
func (r Record) SameFolders(ids []string) bool {
	return slices.Equal(r.folders, ids)
}

// WithScope returns a copy of r using scope.
func (r Record) WithScope(scope Scope) Record {
	return NewRecord(r.folders, r.text, scope)
}

// Equal compares records by content.
func (r Record) Equal(other Record) bool {
	return r.text == other.text && r.scope == other.scope && slices.Equal(r.folders, other.folders)
}

// Valid reports whether the record selects folders that all still resolve.
func (r Record) Valid(resolver Resolver) bool {
	if len(r.folders) == 0 {
		return false
	}
	if resolver == nil {
		return true
	}
	found := resolver.Resolve(r.folders)
	if len(found) != len(r.folders) {
		return false
	}
	for _, ok := range found {
		if !ok {
			return false
		}
	}
	return true
}

// Label renders the record for history menus. nameOf maps a folder identifier
// to its display name; nil uses the last path element.
func (r Record) Label(nameOf func(id string) string) string {
	if r.text == "" {
		return r.folderLabel(nameOf)
	}

	label := fmt.Sprintf("\"%s\" [%s]", r.text, r.scope)
	if r.scope == SubFolders {
		label = r.folderLabel(nameOf) + " : " + label
	}
	return label
}

func (r Record) folderLabel(nameOf func(id string) string) string {
	if nameOf == nil {
		nameOf = path.Base
	}

	n := min(len(r.folders), labelFolderLimit)
	names := make([]string, 0, n)
	for _, id := range r.folders[:n] {
		names = append(names, nameOf(id))
	}

	label := strings.Join(names, ",")
	if len(r.folders) > labelFolderLimit {
		label += "+"
	}
	return label
}

func (r Record) String() string {
	return fmt.Sprintf("Record{folders=%v text=%q scope=%s}", r.folders, r.text, r.scope)
}
