package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background       tcell.Color
	Foreground       tcell.Color
	HeaderBg         tcell.Color
	HeaderFg         tcell.Color
	TabActiveBg      tcell.Color
	TabActiveFg      tcell.Color
	ButtonFg         tcell.Color
	ButtonDisabledFg tcell.Color
	SelectionBg      tcell.Color
	SelectionFg      tcell.Color
	CursorBg         tcell.Color
	CursorFg         tcell.Color
	DirectoryFg      tcell.Color
	SymlinkFg        tcell.Color
	FileFg           tcell.Color
	HiddenFg         tcell.Color
	ScopeFg          tcell.Color
	FooterBg         tcell.Color
	FooterFg         tcell.Color
	ErrorFg          tcell.Color
	PopupBg          tcell.Color
	PopupFg          tcell.Color
	PopupActiveBg    tcell.Color
	PopupActiveFg    tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:       tcell.ColorDefault,
		Foreground:       tcell.ColorDefault,
		HeaderBg:         tcell.Color236,
		HeaderFg:         tcell.Color252,
		TabActiveBg:      tcell.Color33,
		TabActiveFg:      tcell.ColorWhite,
		ButtonFg:         tcell.ColorWhite,
		ButtonDisabledFg: tcell.Color242,
		SelectionBg:      tcell.Color24,
		SelectionFg:      tcell.ColorWhite,
		CursorBg:         tcell.Color33,
		CursorFg:         tcell.ColorWhite,
		DirectoryFg:      tcell.Color33,
		SymlinkFg:        tcell.Color51,
		FileFg:           tcell.ColorDefault,
		HiddenFg:         tcell.ColorLightSlateGray,
		ScopeFg:          tcell.Color214,
		FooterBg:         tcell.ColorDefault,
		FooterFg:         tcell.ColorDefault,
		ErrorFg:          tcell.ColorRed,
		PopupBg:          tcell.Color235,
		PopupFg:          tcell.Color252,
		PopupActiveBg:    tcell.Color33,
		PopupActiveFg:    tcell.ColorWhite,
	}
}
