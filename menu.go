package wristmenu

import (
	"errors"
	"image"
	"strconv"

	"github.com/ajanata/wristmenu/internal/animation/slide"
)

const (
	// MaxNameLength is the longest menu or option name that is kept. Longer names are truncated.
	MaxNameLength = 19

	// LinkExit marks an option that leaves its menu for the menu it was entered from.
	LinkExit = -99
	// LinkNone is the link of an option that invokes an action instead.
	LinkNone = -1
)

var (
	ErrOutOfRange    = errors.New("index out of range")
	ErrNoOptions     = errors.New("menu has no options")
	ErrMissingExit   = errors.New("last option must be an exit option")
	ErrExitNotLast   = errors.New("exit option must be the last option")
	ErrUndefinedMenu = errors.New("menu is not defined")
	ErrNoTarget      = errors.New("option has neither an action nor a link")
	ErrBadHighlight  = errors.New("highlight outside of name")
)

// DefinitionError describes a problem with a menu or option definition. Option is -1 when the problem is with the
// menu as a whole.
type DefinitionError struct {
	Menu   int
	Option int
	Err    error
}

func (e *DefinitionError) Error() string {
	s := "menu " + strconv.Itoa(e.Menu)
	if e.Option >= 0 {
		s += " option " + strconv.Itoa(e.Option)
	}
	return s + ": " + e.Err.Error()
}

func (e *DefinitionError) Unwrap() error { return e.Err }

// Highlight is a run of characters of an option name that is drawn inverted.
type Highlight struct {
	Start  int
	Length int
}

// Option is one selectable entry of a menu. If Action is set, selecting the option invokes it; otherwise selecting
// it follows Link.
type Option struct {
	Name      string
	Icon      image.Image
	Action    func()
	Link      int
	Highlight Highlight
}

func ActionOption(name string, icon image.Image, action func()) Option {
	return Option{Name: name, Icon: icon, Action: action, Link: LinkNone}
}

func SubmenuOption(name string, icon image.Image, menu int) Option {
	return Option{Name: name, Icon: icon, Link: menu}
}

func ExitOption(name string, icon image.Image) Option {
	return Option{Name: name, Icon: icon, Link: LinkExit}
}

// Highlighted returns a copy of o with length characters starting at start drawn inverted.
func (o Option) Highlighted(start, length int) Option {
	o.Highlight = Highlight{Start: start, Length: length}
	return o
}

// IsExit reports whether selecting the option leaves the menu.
func (o *Option) IsExit() bool {
	return o.Action == nil && o.Link == LinkExit
}

// Menu is one screen of options.
type Menu struct {
	Name string
	Kind Kind

	// OnDown and OnUp, when set, replace the default handling of the down and up buttons for this menu.
	OnDown func()
	OnUp   func()
	// OnRender is invoked after the menu has been drawn.
	OnRender func(Drawer)

	options  []*Option
	selected int
	prev     int
	carousel slide.Slide
}

// Len is the number of option slots, set or not.
func (m *Menu) Len() int { return len(m.options) }

// Option returns the option in slot i, or nil if the slot is unset.
func (m *Menu) Option(i int) *Option { return m.options[i] }

func (m *Menu) Selected() int { return m.selected }

// SelectedOption is the option under the cursor.
func (m *Menu) SelectedOption() *Option { return m.options[m.selected] }

// Prev is the menu this menu was most recently entered from.
func (m *Menu) Prev() int { return m.prev }

// CarouselX is the current icon strip offset relative to the centre of the display.
func (m *Menu) CarouselX() int16 { return m.carousel.X }

func (m *Menu) reset() {
	m.selected = 0
	m.carousel.Reset()
}

type MenuOption func(*Menu)

func WithDownFunc(f func()) MenuOption {
	return func(m *Menu) { m.OnDown = f }
}

func WithUpFunc(f func()) MenuOption {
	return func(m *Menu) { m.OnUp = f }
}

func WithRenderFunc(f func(Drawer)) MenuOption {
	return func(m *Menu) { m.OnRender = f }
}

// Definition is the fixed-size table of menus, indexed by small integers.
type Definition struct {
	menus []*Menu
}

// NewDefinition allocates room for count menus.
func NewDefinition(count int) *Definition {
	return &Definition{menus: make([]*Menu, count)}
}

// Len is the number of menu slots.
func (d *Definition) Len() int { return len(d.menus) }

// Menu returns the menu at index, or nil if the slot has not been defined.
func (d *Definition) Menu(index int) *Menu {
	if index < 0 || index >= len(d.menus) {
		return nil
	}
	return d.menus[index]
}

// DefineMenu defines the menu at index with optionCount empty option slots. Defining a slot again overwrites every
// field of the existing menu in place, so pointers to it stay valid.
func (d *Definition) DefineMenu(index, optionCount int, name string, kind Kind, opts ...MenuOption) (*Menu, error) {
	if index < 0 || index >= len(d.menus) {
		return nil, &DefinitionError{Menu: index, Option: -1, Err: ErrOutOfRange}
	}
	if optionCount <= 0 {
		return nil, &DefinitionError{Menu: index, Option: -1, Err: ErrNoOptions}
	}

	m := d.menus[index]
	if m == nil {
		m = &Menu{}
		d.menus[index] = m
	}
	*m = Menu{
		Name:    truncate(name),
		Kind:    kind,
		options: make([]*Option, optionCount),
	}
	for _, o := range opts {
		o(m)
	}
	return m, nil
}

// DefineOption sets the option in slot of the menu at index. Defining a slot again overwrites the existing option in
// place.
func (d *Definition) DefineOption(index, slot int, o Option) error {
	m := d.Menu(index)
	if m == nil {
		return &DefinitionError{Menu: index, Option: slot, Err: ErrUndefinedMenu}
	}
	if slot < 0 || slot >= len(m.options) {
		return &DefinitionError{Menu: index, Option: slot, Err: ErrOutOfRange}
	}

	o.Name = truncate(o.Name)
	if o.Action == nil {
		switch {
		case o.Link == LinkExit:
			if slot != len(m.options)-1 {
				return &DefinitionError{Menu: index, Option: slot, Err: ErrExitNotLast}
			}
		case o.Link < 0:
			return &DefinitionError{Menu: index, Option: slot, Err: ErrNoTarget}
		case o.Link >= len(d.menus):
			return &DefinitionError{Menu: index, Option: slot, Err: ErrOutOfRange}
		}
	}
	if !validHighlight(o.Name, o.Highlight) {
		return &DefinitionError{Menu: index, Option: slot, Err: ErrBadHighlight}
	}

	if existing := m.options[slot]; existing != nil {
		*existing = o
	} else {
		m.options[slot] = &o
	}
	return nil
}

// SetHighlight changes which characters of an already defined option are drawn inverted. A zero length removes the
// highlight. Unset slots are ignored.
func (d *Definition) SetHighlight(index, slot, start, length int) error {
	m := d.Menu(index)
	if m == nil {
		return &DefinitionError{Menu: index, Option: slot, Err: ErrUndefinedMenu}
	}
	if slot < 0 || slot >= len(m.options) {
		return &DefinitionError{Menu: index, Option: slot, Err: ErrOutOfRange}
	}
	o := m.options[slot]
	if o == nil {
		return nil
	}
	h := Highlight{Start: start, Length: length}
	if !validHighlight(o.Name, h) {
		return &DefinitionError{Menu: index, Option: slot, Err: ErrBadHighlight}
	}
	o.Highlight = h
	return nil
}

// Validate checks that every defined menu can be navigated: it has an exit option in its last slot and every
// submenu link leads to a defined menu. Menu 0 must be defined; it is the root.
func (d *Definition) Validate() error {
	if len(d.menus) == 0 || d.menus[0] == nil {
		return &DefinitionError{Menu: 0, Option: -1, Err: ErrUndefinedMenu}
	}
	for i, m := range d.menus {
		if m == nil {
			continue
		}
		last := m.options[len(m.options)-1]
		if last == nil || !last.IsExit() {
			return &DefinitionError{Menu: i, Option: len(m.options) - 1, Err: ErrMissingExit}
		}
		for j, o := range m.options {
			if o == nil || o.Action != nil || o.Link == LinkExit {
				continue
			}
			if d.Menu(o.Link) == nil {
				return &DefinitionError{Menu: i, Option: j, Err: ErrUndefinedMenu}
			}
		}
	}
	return nil
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > MaxNameLength {
		return string(r[:MaxNameLength])
	}
	return s
}

func validHighlight(name string, h Highlight) bool {
	if h.Length == 0 {
		return true
	}
	return h.Start >= 0 && h.Length > 0 && h.Start+h.Length <= len([]rune(name))
}
