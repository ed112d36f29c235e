package wristmenu

// BackMode selects how an exit option finds the menu to return to.
type BackMode uint8

const (
	// BackLink returns to the menu the current menu was most recently entered from. Each menu remembers only one
	// parent: a menu reachable from two parents forgets the first once it is entered from the second.
	BackLink BackMode = iota
	// BackStack keeps the full path from the root and returns along it.
	BackStack
)

// Navigator is the selection state machine over a Definition. Menu 0 is the root and is active initially.
type Navigator struct {
	def     *Definition
	active  int
	mode    BackMode
	history []int
	log     Logger
}

type NavigatorOption func(*Navigator)

// WithBackStack makes exit options return along the full path of entered menus instead of the single back-link.
func WithBackStack() NavigatorOption {
	return func(n *Navigator) { n.mode = BackStack }
}

func WithLogger(l Logger) NavigatorOption {
	return func(n *Navigator) { n.log = l }
}

// NewNavigator validates def and returns a navigator positioned on the root menu.
func NewNavigator(def *Definition, opts ...NavigatorOption) (*Navigator, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	n := &Navigator{
		def: def,
		log: nopLogger{},
	}
	for _, o := range opts {
		o(n)
	}
	return n, nil
}

// Active is the index of the active menu.
func (n *Navigator) Active() int { return n.active }

// Menu is the active menu.
func (n *Navigator) Menu() *Menu { return n.def.menus[n.active] }

func (n *Navigator) Definition() *Definition { return n.def }

// MoveDown selects the next set option of the active menu, wrapping from the last slot to the first.
func (n *Navigator) MoveDown() {
	n.move(1)
}

// MoveUp selects the previous set option of the active menu, wrapping from the first slot to the last.
func (n *Navigator) MoveUp() {
	n.move(-1)
}

func (n *Navigator) move(dir int) {
	m := n.Menu()
	count := len(m.options)
	sel := m.selected
	// one lap at most; Validate guarantees a set slot, but menus may be redefined afterwards
	for i := 0; i < count; i++ {
		sel = (sel + dir + count) % count
		if m.options[sel] != nil {
			m.selected = sel
			return
		}
	}
	n.log.Infof("menu %d has no options to select", n.active)
}

// OverrideDown invokes the active menu's OnDown hook, if it has one, and reports whether it did. The caller should
// fall back to MoveDown when it did not.
func (n *Navigator) OverrideDown() bool {
	if f := n.Menu().OnDown; f != nil {
		f()
		return true
	}
	return false
}

// OverrideUp invokes the active menu's OnUp hook, if it has one, and reports whether it did. The caller should fall
// back to MoveUp when it did not.
func (n *Navigator) OverrideUp() bool {
	if f := n.Menu().OnUp; f != nil {
		f()
		return true
	}
	return false
}

// Select activates the selected option of the active menu. An action is invoked synchronously. An exit option resets
// the active menu and returns to the menu it was entered from. A submenu link activates the linked menu, which keeps
// its previous selection. Select always returns true.
func (n *Navigator) Select() bool {
	m := n.Menu()
	o := m.SelectedOption()
	if o == nil {
		// only reachable via SetSelected on an unset slot
		return true
	}

	if o.Action != nil {
		n.log.Debugf("menu %d: action %q", n.active, o.Name)
		o.Action()
		return true
	}

	if o.Link == LinkExit {
		m.reset()
		from := n.active
		n.active = n.back()
		n.log.Debugf("menu %d: exit to %d", from, n.active)
		return true
	}

	target := n.def.menus[o.Link]
	target.prev = n.active
	if n.mode == BackStack {
		n.history = append(n.history, n.active)
	}
	n.log.Debugf("menu %d: enter %d", n.active, o.Link)
	n.active = o.Link
	return true
}

func (n *Navigator) back() int {
	if n.mode == BackStack {
		if len(n.history) == 0 {
			return n.active
		}
		p := n.history[len(n.history)-1]
		n.history = n.history[:len(n.history)-1]
		return p
	}
	return n.Menu().prev
}

// ResetAll returns every menu to its first option with its carousel centred, and makes the root menu active.
func (n *Navigator) ResetAll() {
	for _, m := range n.def.menus {
		if m != nil {
			m.reset()
		}
	}
	n.active = 0
	n.history = n.history[:0]
}

// SetSelected moves the cursor of a menu straight to option without skipping unset slots. Choosing a set slot is the
// caller's responsibility.
func (n *Navigator) SetSelected(menu, option int) {
	n.def.menus[menu].selected = option
}

// SetDownFunc sets the OnDown hook of the active menu.
func (n *Navigator) SetDownFunc(f func()) { n.Menu().OnDown = f }

// SetUpFunc sets the OnUp hook of the active menu.
func (n *Navigator) SetUpFunc(f func()) { n.Menu().OnUp = f }

// SetRenderFunc sets the OnRender hook of the active menu.
func (n *Navigator) SetRenderFunc(f func(Drawer)) { n.Menu().OnRender = f }

// AtRoot reports whether the root menu is active.
func (n *Navigator) AtRoot() bool { return n.active == 0 }
