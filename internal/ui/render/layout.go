package render

import (
	"strconv"

	"github.com/kk-code-lab/rhist/internal/panel"
	statepkg "github.com/kk-code-lab/rhist/internal/state"
	"github.com/kk-code-lab/rhist/internal/textutil"
	"github.com/kk-code-lab/rhist/internal/tracker"
)

const (
	headerRow       = 0
	searchRow       = 1
	bodyStartRow    = 2
	footerRows      = 1
	minTreeWidth    = 18
	maxTreeWidth    = 48
	treeWidthRatio  = 0.35
	separatorWidth  = 1
	buttonWidth     = 3
	popupMinWidth   = 24
	popupMaxWidth   = 60
	popupMaxEntries = 20
)

// Rect is a screen rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r has no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Layout records where the last frame drew each clickable element.
type Layout struct {
	Width  int
	Height int

	Tabs       []Rect
	UndoButton Rect
	RedoButton Rect
	Search     Rect

	Tree        Rect
	TreeOffset  int
	Assets      Rect
	AssetOffset int

	Popup       Rect
	PopupOffset int
	PopupKind   tracker.MenuKind
}

// TabAt returns the panel index of the tab under (x, y).
func (l Layout) TabAt(x, y int) (int, bool) {
	for i, rect := range l.Tabs {
		if rect.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

// TreeRowAt returns the tree row index under (x, y).
func (l Layout) TreeRowAt(x, y int) (int, bool) {
	if !l.Tree.Contains(x, y) {
		return -1, false
	}
	return l.TreeOffset + y - l.Tree.Y, true
}

// AssetAt returns the asset index under (x, y).
func (l Layout) AssetAt(x, y int) (int, bool) {
	if !l.Assets.Contains(x, y) {
		return -1, false
	}
	return l.AssetOffset + y - l.Assets.Y, true
}

// PopupEntryAt returns the menu entry index under (x, y). The popup border is
// not part of any entry.
func (l Layout) PopupEntryAt(x, y int) (int, bool) {
	if l.Popup.Empty() || !l.Popup.Contains(x, y) {
		return -1, false
	}
	row := y - l.Popup.Y - 1
	if row < 0 || row >= l.Popup.H-2 {
		return -1, false
	}
	return l.PopupOffset + row, true
}

func (r *Renderer) computeLayout(w, h int, state *statepkg.AppState) Layout {
	l := Layout{Width: w, Height: h}
	if w <= 0 || h <= 0 || state == nil {
		return l
	}

	// Toolbar buttons sit at the right end of the header: " < " " > ".
	if w >= buttonWidth*2 {
		l.RedoButton = Rect{X: w - buttonWidth, Y: headerRow, W: buttonWidth, H: 1}
		l.UndoButton = Rect{X: w - buttonWidth*2, Y: headerRow, W: buttonWidth, H: 1}
	}

	tabLimit := l.UndoButton.X
	if l.UndoButton.Empty() {
		tabLimit = w
	}
	x := textutil.Width(appTitle) + 1
	for i, p := range state.Panels {
		width := textutil.Width(tabLabel(i, p))
		if x+width > tabLimit {
			width = max(0, tabLimit-x)
		}
		l.Tabs = append(l.Tabs, Rect{X: x, Y: headerRow, W: width, H: 1})
		x += width
	}

	if h > searchRow {
		l.Search = Rect{X: 0, Y: searchRow, W: w, H: 1}
	}

	bodyHeight := h - bodyStartRow - footerRows
	if bodyHeight <= 0 {
		return l
	}

	p := state.ActivePanel()
	if p == nil {
		return l
	}

	if p.ViewMode() == tracker.OneColumn {
		l.Tree = Rect{X: 0, Y: bodyStartRow, W: w, H: bodyHeight}
	} else {
		treeWidth := treeWidthFor(w)
		l.Tree = Rect{X: 0, Y: bodyStartRow, W: treeWidth, H: bodyHeight}
		assetX := treeWidth + separatorWidth
		if assetX < w {
			l.Assets = Rect{X: assetX, Y: bodyStartRow, W: w - assetX, H: bodyHeight}
		}
	}
	l.TreeOffset = scrollOffset(p.TreeCursor(), len(p.Rows()), l.Tree.H)
	l.AssetOffset = scrollOffset(p.AssetCursor(), len(p.Assets()), l.Assets.H)

	if state.Menu.Open {
		l.Popup, l.PopupOffset = popupRect(state.Menu, l, w, h)
		l.PopupKind = state.Menu.Kind
	}
	return l
}

func treeWidthFor(w int) int {
	width := int(float64(w)*treeWidthRatio + 0.5)
	width = max(minTreeWidth, min(width, maxTreeWidth))
	if width >= w {
		return max(0, w-separatorWidth)
	}
	return width
}

// scrollOffset keeps cursor visible in a window of height rows.
func scrollOffset(cursor, total, height int) int {
	if height <= 0 || total <= height || cursor < height {
		return 0
	}
	offset := cursor - height + 1
	return min(offset, total-height)
}

// popupRect places the history menu below the button it belongs to, right
// aligned with the toolbar and clipped to the screen.
func popupRect(menu statepkg.HistoryMenu, l Layout, w, h int) (Rect, int) {
	width := popupMinWidth
	for _, e := range menu.Entries {
		width = max(width, textutil.Width(e.Label)+4)
	}
	width = min(width, popupMaxWidth, w)

	visible := min(len(menu.Entries), popupMaxEntries, max(0, h-bodyStartRow-footerRows-2))
	height := visible + 2

	anchor := l.RedoButton
	if menu.Kind == tracker.UndoMenu {
		anchor = l.UndoButton
	}
	x := anchor.X + anchor.W - width
	if x < 0 {
		x = 0
	}
	y := headerRow + 1
	if y+height > h {
		height = max(0, h-y)
		visible = max(0, height-2)
	}
	return Rect{X: x, Y: y, W: width, H: height}, scrollOffset(menu.Index, len(menu.Entries), visible)
}

const appTitle = "rhist"

func tabLabel(i int, p *panel.Panel) string {
	return " " + strconv.Itoa(i+1) + ":" + textutil.Truncate(textutil.Sanitize(p.Title()), 16) + " "
}
