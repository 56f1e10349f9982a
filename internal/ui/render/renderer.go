package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rhist/internal/catalog"
	"github.com/kk-code-lab/rhist/internal/panel"
	statepkg "github.com/kk-code-lab/rhist/internal/state"
	"github.com/kk-code-lab/rhist/internal/textutil"
	"github.com/kk-code-lab/rhist/internal/tracker"
)

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes

	layoutMu   sync.Mutex
	lastLayout Layout
	hasLayout  bool
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// LastLayout returns the hit regions of the last rendered frame.
func (r *Renderer) LastLayout() (Layout, bool) {
	r.layoutMu.Lock()
	defer r.layoutMu.Unlock()
	return r.lastLayout, r.hasLayout
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	layout := r.computeLayout(w, h, state)

	if state != nil && state.HelpVisible {
		r.drawHelpOverlay(state, w, h)
		r.storeLayout(Layout{Width: w, Height: h})
		r.screen.Show()
		return
	}

	r.drawHeader(state, layout)
	if p := state.ActivePanel(); p != nil {
		r.drawSearchBar(state, p, layout)
		r.drawTree(state, p, layout)
		if !layout.Assets.Empty() {
			sepStyle := tcell.StyleDefault.Foreground(r.theme.HiddenFg)
			for y := layout.Tree.Y; y < layout.Tree.Y+layout.Tree.H; y++ {
				r.screen.SetContent(layout.Tree.X+layout.Tree.W, y, '│', nil, sepStyle)
			}
			r.drawAssets(state, p, layout)
		}
	}
	r.drawFooter(state, w, h)
	if state != nil && state.Menu.Open {
		r.drawPopup(state.Menu, layout)
	}

	r.storeLayout(layout)
	r.screen.Show()
}

func (r *Renderer) storeLayout(l Layout) {
	r.layoutMu.Lock()
	r.lastLayout = l
	r.hasLayout = true
	r.layoutMu.Unlock()
}

// drawHeader renders the title, one tab per panel and the undo/redo buttons.
func (r *Renderer) drawHeader(state *statepkg.AppState, l Layout) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	r.fill(0, l.Width, headerRow, headerStyle)
	r.drawTextLine(0, headerRow, l.Width, appTitle, headerStyle.Bold(true))

	if state == nil {
		return
	}
	for i, rect := range l.Tabs {
		if rect.Empty() || i >= len(state.Panels) {
			continue
		}
		style := headerStyle
		if i == state.Active {
			style = tcell.StyleDefault.Background(r.theme.TabActiveBg).Foreground(r.theme.TabActiveFg).Bold(true)
		}
		r.drawTextLine(rect.X, rect.Y, rect.W, tabLabel(i, state.Panels[i]), style)
	}

	r.drawButton(l.UndoButton, '<', state.Buttons.Undo, state.Menu.Open && state.Menu.Kind == tracker.UndoMenu)
	r.drawButton(l.RedoButton, '>', state.Buttons.Redo, state.Menu.Open && state.Menu.Kind == tracker.RedoMenu)
}

func (r *Renderer) drawButton(rect Rect, glyph rune, enabled, pressed bool) {
	if rect.Empty() {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.ButtonDisabledFg)
	if enabled {
		style = style.Foreground(r.theme.ButtonFg).Bold(true)
	}
	if pressed {
		style = tcell.StyleDefault.Background(r.theme.TabActiveBg).Foreground(r.theme.TabActiveFg)
	}
	r.fill(rect.X, rect.X+rect.W, rect.Y, style)
	r.screen.SetContent(rect.X+rect.W/2, rect.Y, glyph, nil, style)
}

// drawSearchBar renders the search field and, while searching, its scope.
func (r *Renderer) drawSearchBar(state *statepkg.AppState, p *panel.Panel, l Layout) {
	if l.Search.Empty() {
		return
	}
	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	r.fill(0, l.Width, l.Search.Y, base)

	x := r.drawTextLine(0, l.Search.Y, l.Width, "/ ", base.Foreground(r.theme.HiddenFg))
	text := textutil.Sanitize(p.SearchText())
	scope := p.SearchScope()

	scopeText := ""
	if scope.Searching() {
		scopeText = fmt.Sprintf(" [%s]", scope)
	}
	available := l.Width - x - textutil.Width(scopeText) - 1

	if text == "" && state.Focus != statepkg.FocusSearch {
		r.drawTextLine(x, l.Search.Y, available, "type to search", base.Foreground(r.theme.HiddenFg).Italic(true))
	} else {
		x = r.drawTextLine(x, l.Search.Y, available, textutil.TruncateLeft(text, available), base.Bold(true))
		if state.Focus == statepkg.FocusSearch && x < l.Width {
			r.screen.SetContent(x, l.Search.Y, '▏', nil, base)
		}
	}

	if scopeText != "" {
		sx := l.Width - textutil.Width(scopeText)
		if sx > 0 {
			r.drawTextLine(sx, l.Search.Y, l.Width-sx, scopeText, base.Foreground(r.theme.ScopeFg))
		}
	}
}

// drawTree renders the folder tree with selected folders highlighted.
func (r *Renderer) drawTree(state *statepkg.AppState, p *panel.Panel, l Layout) {
	rect := l.Tree
	if rect.Empty() {
		return
	}
	rows := p.Rows()
	cursor := p.TreeCursor()
	focused := state.Focus == statepkg.FocusTree

	for line := 0; line < rect.H; line++ {
		idx := l.TreeOffset + line
		y := rect.Y + line
		base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.DirectoryFg)
		if idx >= len(rows) {
			r.fill(rect.X, rect.X+rect.W, y, base)
			continue
		}
		row := rows[idx]

		style := base
		if p.IsSelected(row.ID) {
			style = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		}
		if idx == cursor {
			if focused {
				style = tcell.StyleDefault.Background(r.theme.CursorBg).Foreground(r.theme.CursorFg)
			} else {
				style = style.Underline(true)
			}
		}
		r.fill(rect.X, rect.X+rect.W, y, style)

		glyph := "▸ "
		if row.Expanded {
			glyph = "▾ "
		}
		label := strings.Repeat("  ", row.Depth) + glyph + textutil.Sanitize(row.Name)
		r.drawTextLine(rect.X, y, rect.W, textutil.Truncate(label, rect.W), style)
	}
}

// drawAssets renders the contents of the selected folders or the search
// results.
func (r *Renderer) drawAssets(state *statepkg.AppState, p *panel.Panel, l Layout) {
	rect := l.Assets
	assets := p.Assets()
	searching := p.SearchText() != "" && p.SearchScope().Searching()
	focused := state.Focus == statepkg.FocusAssets
	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.FileFg)

	if len(assets) == 0 {
		r.fillRect(rect, base)
		msg := "(empty)"
		if searching {
			msg = "no matches"
		}
		r.drawTextLine(rect.X+1, rect.Y, rect.W-1, msg, base.Foreground(r.theme.HiddenFg).Italic(true))
		return
	}

	for line := 0; line < rect.H; line++ {
		idx := l.AssetOffset + line
		y := rect.Y + line
		if idx >= len(assets) {
			r.fill(rect.X, rect.X+rect.W, y, base)
			continue
		}
		entry := assets[idx]

		style := r.entryStyle(entry)
		if idx == p.AssetCursor() && focused {
			style = tcell.StyleDefault.Background(r.theme.CursorBg).Foreground(r.theme.CursorFg)
		}
		r.fill(rect.X, rect.X+rect.W, y, style)

		name := entry.Name
		if searching {
			name = entry.ID
		}
		name = textutil.Sanitize(name)
		if entry.IsDir {
			name += "/"
		}

		sizeText := ""
		if !entry.IsDir {
			sizeText = formatSize(entry.Size)
		}
		nameWidth := rect.W - 1
		if sizeText != "" {
			nameWidth -= textutil.Width(sizeText) + 1
		}
		r.drawTextLine(rect.X+1, y, nameWidth, textutil.Truncate(name, nameWidth), style)
		if sizeText != "" && nameWidth > 0 {
			sx := rect.X + rect.W - textutil.Width(sizeText)
			r.drawTextLine(sx, y, rect.W, sizeText, style)
		}
	}
}

func (r *Renderer) entryStyle(entry catalog.Entry) tcell.Style {
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.FileFg)
	switch {
	case entry.IsHidden():
		style = style.Foreground(r.theme.HiddenFg)
	case entry.IsSymlink:
		style = style.Foreground(r.theme.SymlinkFg)
	case entry.IsDir:
		style = style.Foreground(r.theme.DirectoryFg)
	}
	return style
}

// drawFooter renders the error, status message or contextual help on the last
// row.
func (r *Renderer) drawFooter(state *statepkg.AppState, w, h int) {
	if h <= 0 {
		return
	}
	y := h - 1
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	r.fill(0, w, y, style)

	var text string
	switch {
	case state == nil:
	case state.LastError != nil:
		text = " error: " + state.LastError.Error()
		style = style.Foreground(r.theme.ErrorFg)
	case state.Status != "":
		text = " " + state.Status
	default:
		text = buildFooterHelpText(state)
		if p := state.ActivePanel(); p != nil && p.Truncated() {
			text = fmt.Sprintf(" %d+ results |%s", len(p.Assets()), text)
		}
	}
	text = textutil.Truncate(textutil.Sanitize(text), w)
	r.drawTextLine(0, y, w, text, style)
}

// drawPopup renders the history menu with a border. Separator entries are
// drawn as a horizontal rule.
func (r *Renderer) drawPopup(menu statepkg.HistoryMenu, l Layout) {
	rect := l.Popup
	if rect.W < 4 || rect.H < 2 {
		return
	}
	base := tcell.StyleDefault.Background(r.theme.PopupBg).Foreground(r.theme.PopupFg)
	r.fillRect(rect, base)

	right := rect.X + rect.W - 1
	bottom := rect.Y + rect.H - 1
	for x := rect.X + 1; x < right; x++ {
		r.screen.SetContent(x, rect.Y, '─', nil, base)
		r.screen.SetContent(x, bottom, '─', nil, base)
	}
	for y := rect.Y + 1; y < bottom; y++ {
		r.screen.SetContent(rect.X, y, '│', nil, base)
		r.screen.SetContent(right, y, '│', nil, base)
	}
	r.screen.SetContent(rect.X, rect.Y, '┌', nil, base)
	r.screen.SetContent(right, rect.Y, '┐', nil, base)
	r.screen.SetContent(rect.X, bottom, '└', nil, base)
	r.screen.SetContent(right, bottom, '┘', nil, base)

	title := " Undo "
	if menu.Kind == tracker.RedoMenu {
		title = " Redo "
	}
	r.drawTextLine(rect.X+2, rect.Y, rect.W-4, title, base.Bold(true))

	inner := rect.W - 2
	for line := 0; line < rect.H-2; line++ {
		idx := l.PopupOffset + line
		if idx >= len(menu.Entries) {
			break
		}
		y := rect.Y + 1 + line
		entry := menu.Entries[idx]
		if !entry.Selectable() {
			r.screen.SetContent(rect.X, y, '├', nil, base)
			r.screen.SetContent(right, y, '┤', nil, base)
			for x := rect.X + 1; x < right; x++ {
				r.screen.SetContent(x, y, '─', nil, base)
			}
			continue
		}
		style := base
		if idx == menu.Index {
			style = tcell.StyleDefault.Background(r.theme.PopupActiveBg).Foreground(r.theme.PopupActiveFg)
		}
		r.fill(rect.X+1, right, y, style)
		label := textutil.Truncate(textutil.Sanitize(entry.Label), inner-2)
		r.drawTextLine(rect.X+2, y, inner-2, label, style)
	}
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%dB", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	value := float64(size) / float64(div)
	suffix := "KMGTPE"[exp : exp+1]
	if value >= 10 {
		return fmt.Sprintf("%.0f%s", value, suffix)
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0") + suffix
}
