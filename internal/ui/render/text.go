package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actualWidth := runewidth.RuneWidth(ru)
			if actualWidth < 0 {
				actualWidth = 0
			}
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actualWidth + 1
			r.runeWidthCacheMu.Unlock()
			return actualWidth
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}

	width := runewidth.RuneWidth(ru)
	if width < 0 {
		width = 0
	}
	r.runeWidthWide.Store(ru, width)
	return width
}

// drawTextLine draws text from startX, clipped to maxWidth columns, and returns
// the column after the last drawn cell. Zero-width runes are attached to the
// preceding cell.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		mainc := runes[i]
		w := r.cachedRuneWidth(mainc)
		if x-startX+w > maxWidth {
			break
		}
		i++

		var combc []rune
		for i < len(runes) && r.cachedRuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}

// fill paints cells [startX, endX) of row y with spaces.
func (r *Renderer) fill(startX, endX, y int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// fillRect paints a rectangle with spaces.
func (r *Renderer) fillRect(rect Rect, style tcell.Style) {
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		r.fill(rect.X, rect.X+rect.W, y, style)
	}
}
