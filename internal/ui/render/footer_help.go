package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/rhist/internal/state"
	"github.com/kk-code-lab/rhist/internal/tracker"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	segments := contextualHelpSegments(state)
	segments = append(segments, persistentHelpSegments(state)...)

	return segments
}

func contextualHelpSegments(state *statepkg.AppState) []string {
	switch {
	case state.Menu.Open:
		return []string{
			"↑↓: choose",
			"↵: jump",
			"Esc: close",
		}
	case state.Focus == statepkg.FocusSearch:
		return []string{
			"type: search",
			"Tab: scope",
			"↵: results",
			"Esc: clear",
		}
	case state.Focus == statepkg.FocusAssets:
		segments := []string{
			"↑/↓: move",
			"↵: open folder",
		}
		if state.ClipboardAvailable {
			segments = append(segments, "y: yank")
		}
		if state.EditorAvailable {
			segments = append(segments, "e: edit")
		}
		return append(segments, "Tab: tree", "/: search")
	default:
		return []string{
			"↑/↓: move",
			"→/←: expand",
			"↵: select",
			"space: add",
			"Tab: assets",
			"/: search",
		}
	}
}

func persistentHelpSegments(state *statepkg.AppState) []string {
	if state == nil || state.Menu.Open || state.Focus == statepkg.FocusSearch {
		return nil
	}

	segments := []string{}
	if p := state.ActivePanel(); p != nil && p.ViewMode() == tracker.OneColumn {
		segments = append(segments, "v: two columns")
	} else {
		segments = append(segments, "[/]: undo/redo", "{/}: history")
	}

	hiddenStatus := "show"
	if state.ShowHidden {
		hiddenStatus = "hide"
	}
	segments = append(segments, fmt.Sprintf(".: %s hidden", hiddenStatus), "?: help")
	return segments
}
