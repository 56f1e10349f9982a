package catalog

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var errSearchLimit = errors.New("search result limit reached")

// SearchRequest describes a name search below one or more folders.
type SearchRequest struct {
	Query   string
	Roots   []string // folder identifiers to walk
	Exclude []string // folder identifiers skipped with everything below them
}

// SearchResult holds the matches of a search.
type SearchResult struct {
	Entries   []Entry
	Truncated bool
}

// Search walks the requested roots and returns entries whose name contains the
// query, ignoring case. Results are ordered by identifier.
func (c *Catalog) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	var result SearchResult

	folder := cases.Fold()
	needle := folder.String(norm.NFC.String(strings.TrimSpace(req.Query)))
	if needle == "" {
		return result, nil
	}

	excluded := make(map[string]struct{}, len(req.Exclude))
	for _, id := range req.Exclude {
		if cleaned, err := CleanID(id); err == nil {
			excluded[cleaned] = struct{}{}
		}
	}

	seen := make(map[string]struct{})
	for _, root := range dedupeRoots(req.Roots) {
		rootPath, err := c.Path(root)
		if err != nil {
			return result, err
		}
		if _, skip := excluded[root]; skip {
			continue
		}

		walkErr := filepath.WalkDir(rootPath, func(p string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				if p == rootPath && !errors.Is(err, fs.ErrNotExist) {
					return err
				}
				return nil
			}
			if p == rootPath {
				return nil
			}

			id, err := c.IDFor(p)
			if err != nil {
				return nil
			}
			name := d.Name()
			if d.IsDir() {
				if _, skip := excluded[id]; skip {
					return filepath.SkipDir
				}
				if !c.showHidden && IsHidden(p, name) {
					return filepath.SkipDir
				}
			} else if !c.showHidden && IsHidden(p, name) {
				return nil
			}

			normalized := norm.NFC.String(name)
			if !strings.Contains(folder.String(normalized), needle) {
				return nil
			}
			if _, dup := seen[id]; dup {
				return nil
			}
			seen[id] = struct{}{}

			entry := Entry{Name: normalized, ID: id, FullPath: p, IsDir: d.IsDir()}
			if info, err := d.Info(); err == nil {
				entry.Size = info.Size()
				entry.Modified = info.ModTime()
				entry.Mode = info.Mode()
				entry.IsSymlink = info.Mode()&os.ModeSymlink != 0
			}
			if len(result.Entries) >= c.maxResults {
				result.Truncated = true
				return errSearchLimit
			}
			result.Entries = append(result.Entries, entry)
			return nil
		})
		if errors.Is(walkErr, errSearchLimit) {
			break
		}
		if walkErr != nil {
			return result, walkErr
		}
	}

	sort.Slice(result.Entries, func(i, j int) bool {
		return result.Entries[i].ID < result.Entries[j].ID
	})
	return result, nil
}

// dedupeRoots drops roots nested inside other roots.
func dedupeRoots(roots []string) []string {
	cleaned := make([]string, 0, len(roots))
	for _, r := range roots {
		if id, err := CleanID(r); err == nil {
			cleaned = append(cleaned, id)
		}
	}
	sort.Strings(cleaned)

	out := cleaned[:0]
	for _, id := range cleaned {
		nested := false
		for _, kept := range out {
			if Within(id, kept) {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, id)
		}
	}
	return out
}
