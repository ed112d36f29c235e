package wristmenu

import (
	"image/color"
)

// Kind selects how a menu is drawn.
type Kind uint8

const (
	// KindTextList draws the options as lines of text with the last option (exit) in the bottom right corner.
	KindTextList Kind = iota
	// KindIconCarousel draws the options as a horizontally sliding strip of icons.
	KindIconCarousel
)

func (k Kind) String() string {
	switch k {
	case KindTextList:
		return "text"
	case KindIconCarousel:
		return "icon"
	default:
		return "INVALID"
	}
}

type SensorStatus uint8

const (
	// SensorStatusUnavailable indicates that the sensor is never available (not implemented in hardware).
	SensorStatusUnavailable SensorStatus = iota
	// SensorStatusAvailable indicates that the returned value(s) is/are accurate.
	SensorStatusAvailable
	// SensorStatusBusy indicates that the sensor is temporarily unavailable e.g. due to bus contention.
	SensorStatusBusy
)

type MenuButton uint8

const (
	MenuButtonNone MenuButton = iota
	MenuButtonSelect
	MenuButtonUp
	MenuButtonDown
)

func (b MenuButton) String() string {
	switch b {
	case MenuButtonNone:
		return "none"
	case MenuButtonSelect:
		return "select"
	case MenuButtonUp:
		return "up"
	case MenuButtonDown:
		return "down"
	default:
		return "INVALID"
	}
}

// Meta is the paginator's cursor position in the band of page controls drawn above a list.
type Meta uint8

const (
	MetaNone Meta = iota
	MetaNextPage
	MetaPrevPage
	MetaExitPage
)

func (m Meta) String() string {
	switch m {
	case MetaNone:
		return "none"
	case MetaNextPage:
		return "next"
	case MetaPrevPage:
		return "prev"
	case MetaExitPage:
		return "exit"
	default:
		return "INVALID"
	}
}

// statusState indicates what mode the watch screen is in.
type statusState uint8

const (
	statusStateBoot statusState = iota
	statusStateIdle
	statusStateMenu
	statusStateList
	statusStateBlank
)

func (s statusState) String() string {
	switch s {
	case statusStateBoot:
		return "boot"
	case statusStateIdle:
		return "idle"
	case statusStateMenu:
		return "menu"
	case statusStateList:
		return "list"
	case statusStateBlank:
		return "blank"
	default:
		return "INVALID"
	}
}

// Black and White are the two colours of the panel. Anything that is not Black is lit.
var (
	Black = color.RGBA{A: 0xFF}
	White = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)
