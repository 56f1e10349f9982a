package history

import "fmt"

// Scope describes where a search text applies.
type Scope int

const (
	NotSearching Scope = iota
	AllAssets
	InAssetsOnly
	InPackagesOnly
	SubFolders
)

var scopeNames = [...]string{
	NotSearching:   "NotSearching",
	AllAssets:      "AllAssets",
	InAssetsOnly:   "InAssetsOnly",
	InPackagesOnly: "InPackagesOnly",
	SubFolders:     "SubFolders",
}

func (s Scope) String() string {
	if s < 0 || int(s) >= len(scopeNames) {
		return fmt.Sprintf("Scope(%d)", int(s))
	}
	return scopeNames[s]
}

// Searching reports whether the scope denotes an active search.
func (s Scope) Searching() bool {
	return s > NotSearching && int(s) < len(scopeNames)
}

// Next cycles through the searching scopes. NotSearching advances to AllAssets.
func (s Scope) Next() Scope {
	if !s.Searching() || s == SubFolders {
		return AllAssets
	}
	return s + 1
}

// ParseScope returns the scope with the given name.
func ParseScope(name string) (Scope, error) {
	for i, n := range scopeNames {
		if n == name {
			return Scope(i), nil
		}
	}
	return NotSearching, fmt.Errorf("unknown search scope %q", name)
}
