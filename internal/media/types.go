package media

type Type string

const (
	// TypeIcon is a menu option icon.
	TypeIcon Type = "icon"
	// TypeBar is the bracket drawn above and below the selected icon.
	TypeBar Type = "bar"
)

func (t Type) Size() (w int16, h int16) {
	switch t {
	case TypeIcon:
		return 32, 32
	case TypeBar:
		return 40, 8
	default:
		return 0, 0
	}
}
