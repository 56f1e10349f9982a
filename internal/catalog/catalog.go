package catalog

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// RootID identifies the catalog root folder.
const RootID = "."

var (
	// ErrOutsideRoot is returned for identifiers that escape the root.
	ErrOutsideRoot = errors.New("path is outside the project root")
	// ErrNotDirectory is returned when a folder was expected.
	ErrNotDirectory = errors.New("not a directory")
)

// Catalog resolves folder identifiers against a project root on disk.
type Catalog struct {
	root        string
	packagesID  string
	showHidden  bool
	maxResults  int
	rootDisplay string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithPackagesDir names the folder (relative to the root) that holds packages.
func WithPackagesDir(dir string) Option {
	return func(c *Catalog) {
		if id, err := CleanID(filepath.ToSlash(dir)); err == nil && id != RootID {
			c.packagesID = id
		}
	}
}

// WithHidden makes listings and searches include hidden entries.
func WithHidden(show bool) Option {
	return func(c *Catalog) {
		c.showHidden = show
	}
}

// WithMaxResults caps the number of entries Search returns.
func WithMaxResults(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// New opens a catalog rooted at root, which must be an existing directory.
func New(root string, opts ...Option) (*Catalog, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot open project root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s: %w", abs, ErrNotDirectory)
	}

	c := &Catalog{
		root:        abs,
		packagesID:  "packages",
		maxResults:  500,
		rootDisplay: norm.NFC.String(filepath.Base(abs)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Root returns the absolute root path.
func (c *Catalog) Root() string {
	return c.root
}

// PackagesID returns the identifier of the packages folder.
func (c *Catalog) PackagesID() string {
	return c.packagesID
}

// ShowHidden reports whether hidden entries are listed.
func (c *Catalog) ShowHidden() bool {
	return c.showHidden
}

// SetShowHidden changes whether hidden entries are listed.
func (c *Catalog) SetShowHidden(show bool) {
	c.showHidden = show
}

// CleanID normalises an identifier and rejects ones escaping the root.
func CleanID(id string) (string, error) {
	if id == "" {
		return RootID, nil
	}
	if strings.HasPrefix(id, "/") || filepath.IsAbs(id) {
		return "", fmt.Errorf("%s: %w", id, ErrOutsideRoot)
	}
	cleaned := path.Clean(id)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%s: %w", id, ErrOutsideRoot)
	}
	return cleaned, nil
}

// Path maps an identifier to its absolute path.
func (c *Catalog) Path(id string) (string, error) {
	cleaned, err := CleanID(id)
	if err != nil {
		return "", err
	}
	if cleaned == RootID {
		return c.root, nil
	}
	return filepath.Join(c.root, filepath.FromSlash(cleaned)), nil
}

// IDFor maps an absolute or root-relative path to its identifier.
func (c *Catalog) IDFor(p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.root, p)
	}
	rel, err := filepath.Rel(c.root, p)
	if err != nil {
		return "", fmt.Errorf("%s: %w", p, ErrOutsideRoot)
	}
	return CleanID(filepath.ToSlash(rel))
}

// Parent returns the identifier of the folder containing id. The root is its
// own parent.
func Parent(id string) string {
	if id == RootID || id == "" {
		return RootID
	}
	return path.Dir(id)
}

// Join builds a child identifier.
func Join(parent, name string) string {
	if parent == RootID || parent == "" {
		return name
	}
	return parent + "/" + name
}

// Within reports whether id equals ancestor or lies below it.
func Within(id, ancestor string) bool {
	if ancestor == RootID {
		return true
	}
	return id == ancestor || strings.HasPrefix(id, ancestor+"/")
}

// DisplayName returns a short human name for a folder identifier.
func (c *Catalog) DisplayName(id string) string {
	if id == RootID || id == "" {
		return c.rootDisplay
	}
	return norm.NFC.String(path.Base(id))
}

// IsFolder reports whether id names an existing directory inside the root.
func (c *Catalog) IsFolder(id string) bool {
	p, err := c.Path(id)
	if err != nil {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// Resolve reports for each identifier whether it still names a folder.
func (c *Catalog) Resolve(ids []string) []bool {
	out := make([]bool, len(ids))
	for i, id := range ids {
		out[i] = c.IsFolder(id)
	}
	return out
}

// ReadDir lists the folder id, folders first, then by name.
func (c *Catalog) ReadDir(id string) ([]Entry, error) {
	dirPath, err := c.Path(id)
	if err != nil {
		return nil, err
	}
	parentID, _ := CleanID(id)

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dirPath, err)
	}

	visible := make([]Entry, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}

		rawName := e.Name()
		fullPath := filepath.Join(dirPath, rawName)
		if !c.showHidden && IsHidden(fullPath, rawName) {
			continue
		}

		isDir := e.IsDir()
		isSymlink := info.Mode()&os.ModeSymlink != 0
		if isSymlink {
			if target, err := os.Stat(fullPath); err == nil {
				isDir = target.IsDir()
			}
		}

		visible = append(visible, Entry{
			Name:      norm.NFC.String(rawName),
			ID:        Join(parentID, rawName),
			FullPath:  fullPath,
			IsDir:     isDir,
			IsSymlink: isSymlink,
			Size:      info.Size(),
			Modified:  info.ModTime(),
			Mode:      info.Mode(),
		})
	}

	sortEntries(visible)
	return visible, nil
}

// Folders lists only the subfolders of id.
func (c *Catalog) Folders(id string) ([]Entry, error) {
	entries, err := c.ReadDir(id)
	if err != nil {
		return nil, err
	}
	folders := entries[:0]
	for _, e := range entries {
		if e.IsDir {
			folders = append(folders, e)
		}
	}
	return folders, nil
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
}
