package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rhist/internal/state"
	"github.com/kk-code-lab/rhist/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	hiddenDesc := "Show hidden files"
	if state != nil && state.ShowHidden {
		hiddenDesc = "Hide hidden files"
	}

	sections := []helpOverlaySection{
		{
			title: "Folders",
			entries: []helpOverlayEntry{
				{keys: "↑/↓", desc: "Move in tree or asset list"},
				{keys: "→ / ←", desc: "Expand / collapse folder"},
				{keys: "↵", desc: "Select folder (tree) or open folder (assets)"},
				{keys: "space", desc: "Add or remove folder from selection"},
				{keys: "Tab", desc: "Switch between tree and assets"},
			},
		},
		{
			title: "Search",
			entries: []helpOverlayEntry{
				{keys: "/", desc: "Focus search field"},
				{keys: "Tab", desc: "Cycle scope: All, Assets, Packages, Folder"},
				{keys: "Esc", desc: "Clear search"},
			},
		},
		{
			title: "History",
			entries: []helpOverlayEntry{
				{keys: "[ / ]", desc: "Undo / redo selection and search"},
				{keys: "Alt+← / Alt+→", desc: "Undo / redo from any field"},
				{keys: "{ / }", desc: "Open undo / redo list"},
				{keys: "click < >", desc: "Undo / redo"},
				{keys: "right-click", desc: "Open history list"},
			},
		},
		{
			title: "Panels",
			entries: []helpOverlayEntry{
				{keys: "t / w", desc: "New / close panel"},
				{keys: "Ctrl+→/←", desc: "Next / previous panel"},
				{keys: "1-9", desc: "Jump to panel"},
				{keys: "v", desc: "Toggle one or two columns"},
				{keys: ".", desc: hiddenDesc},
				{keys: "r", desc: "Refresh"},
			},
		},
		{
			title: "Files",
			entries: []helpOverlayEntry{
				{keys: "y", desc: "Copy path of highlighted asset"},
				{keys: "e", desc: "Edit highlighted file"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q", desc: "Quit"},
				{keys: "x", desc: "Quit and cd to selected folder"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	return fmt.Sprintf("  %-14s %s", entry.keys, entry.desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	r.fillRect(Rect{W: w, H: h}, baseStyle)

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)
	r.fill(0, w, 0, headerStyle)
	titleStart := 0
	if titleWidth := textutil.Width(title); w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	for _, line := range buildHelpOverlayLines(state) {
		if row >= h-1 {
			break
		}
		text := textutil.Truncate(strings.TrimRight(line, " "), w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 1 {
		r.fill(0, w, h-1, headerStyle)
		r.drawTextLine(0, h-1, w, textutil.Truncate("? toggle · Esc/q close", w), headerStyle)
	}
}
