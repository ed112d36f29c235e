// Package config loads the simulator's settings and menu tree from TOML.
package config

import (
	_ "embed"
	"errors"
	"image"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ajanata/wristmenu"
	"github.com/ajanata/wristmenu/internal/media"
)

//go:embed default.toml
var defaultConfig string

type Config struct {
	Framerate uint    `toml:"framerate"`
	Display   Display `toml:"display"`
	Layout    Layout  `toml:"layout"`
	// MenuTimeout and BlankTimeout are duration strings, e.g. "10s". A zero BlankTimeout never blanks.
	MenuTimeout  time.Duration `toml:"menu_timeout"`
	BlankTimeout time.Duration `toml:"blank_timeout"`
	// BackStack returns from submenus along the full path instead of the single back-link.
	BackStack bool   `toml:"back_stack"`
	Inverted  bool   `toml:"inverted"`
	Menus     []Menu `toml:"menu"`
}

type Display struct {
	Width  int16 `toml:"width"`
	Height int16 `toml:"height"`
}

type Layout struct {
	Top         int16 `toml:"top"`
	IconSpacing int16 `toml:"icon_spacing"`
	IconSize    int16 `toml:"icon_size"`
	IconY       int16 `toml:"icon_y"`
	BarTopY     int16 `toml:"bar_top_y"`
	BarBottomY  int16 `toml:"bar_bottom_y"`
	PageBandGap int16 `toml:"page_band_gap"`
}

// Menu is one menu of the tree. The first menu is the root.
type Menu struct {
	Name    string   `toml:"name"`
	Kind    string   `toml:"kind"`
	Options []Option `toml:"option"`
}

// Option is one option of a menu. Exactly one of Action, Submenu and Exit must be set. An option with no name leaves
// its slot unset.
type Option struct {
	Name string `toml:"name"`
	// Icon names an embedded icon; empty uses the default icon.
	Icon string `toml:"icon"`
	// Action names a function supplied to Build.
	Action string `toml:"action"`
	// Submenu is the name of the menu this option opens.
	Submenu   string `toml:"submenu"`
	Exit      bool   `toml:"exit"`
	Highlight [2]int `toml:"highlight"`
}

// Default is the built-in configuration.
func Default() (*Config, error) {
	return Parse(defaultConfig)
}

// Load reads the configuration at path. An empty path loads the built-in configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(b))
}

// Parse decodes a configuration document. Settings the document leaves out keep their defaults; keys it does not know
// are an error.
func Parse(doc string) (*Config, error) {
	c := &Config{
		Framerate:    30,
		Display:      Display{Width: 128, Height: 64},
		MenuTimeout:  10 * time.Second,
		BlankTimeout: 30 * time.Second,
	}
	l := wristmenu.DefaultLayout()
	c.Layout = Layout{
		Top:         l.Top,
		IconSpacing: l.IconSpacing,
		IconSize:    l.IconSize,
		IconY:       l.IconY,
		BarTopY:     l.BarTopY,
		BarBottomY:  l.BarBottomY,
		PageBandGap: l.PageBandGap,
	}

	md, err := toml.Decode(doc, c)
	if err != nil {
		return nil, err
	}
	if un := md.Undecoded(); len(un) > 0 {
		keys := make([]string, len(un))
		for i, k := range un {
			keys[i] = k.String()
		}
		return nil, errors.New("unknown keys: " + strings.Join(keys, ", "))
	}
	if c.Framerate == 0 {
		return nil, errors.New("framerate must be at least 1")
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return nil, errors.New("invalid display size")
	}
	if len(c.Menus) == 0 {
		return nil, errors.New("no menus")
	}
	return c, nil
}

// WristLayout converts the layout for the renderer.
func (c *Config) WristLayout() wristmenu.Layout {
	return wristmenu.Layout{
		Top:         c.Layout.Top,
		IconSpacing: c.Layout.IconSpacing,
		IconSize:    c.Layout.IconSize,
		IconY:       c.Layout.IconY,
		BarTopY:     c.Layout.BarTopY,
		BarBottomY:  c.Layout.BarBottomY,
		PageBandGap: c.Layout.PageBandGap,
	}
}

// WatchOptions are the watch settings of c.
func (c *Config) WatchOptions() []wristmenu.WatchOption {
	opts := []wristmenu.WatchOption{
		wristmenu.WithLayout(c.WristLayout()),
		wristmenu.WithTimeouts(c.MenuTimeout, c.BlankTimeout),
	}
	if c.BackStack {
		opts = append(opts, wristmenu.WithNavigatorOptions(wristmenu.WithBackStack()))
	}
	return opts
}

func kind(s string) (wristmenu.Kind, bool) {
	switch s {
	case "", "text":
		return wristmenu.KindTextList, true
	case "icon":
		return wristmenu.KindIconCarousel, true
	default:
		return 0, false
	}
}

// Build defines the menu tree. Option actions are looked up by name in actions.
func (c *Config) Build(actions map[string]func()) (*wristmenu.Definition, error) {
	index := make(map[string]int, len(c.Menus))
	for i, m := range c.Menus {
		if _, ok := index[m.Name]; ok {
			return nil, errors.New("duplicate menu name " + strconv.Quote(m.Name))
		}
		index[m.Name] = i
	}

	def := wristmenu.NewDefinition(len(c.Menus))
	for i, m := range c.Menus {
		k, ok := kind(m.Kind)
		if !ok {
			return nil, errors.New("menu " + strconv.Quote(m.Name) + ": unknown kind " + strconv.Quote(m.Kind))
		}
		if _, err := def.DefineMenu(i, len(m.Options), m.Name, k); err != nil {
			return nil, err
		}
		for slot, o := range m.Options {
			if o.Name == "" {
				continue
			}
			opt, err := o.build(index, actions)
			if err != nil {
				return nil, errors.New("menu " + strconv.Quote(m.Name) + " option " + strconv.Quote(o.Name) + ": " + err.Error())
			}
			if err := def.DefineOption(i, slot, opt); err != nil {
				return nil, err
			}
		}
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

func (o Option) build(index map[string]int, actions map[string]func()) (wristmenu.Option, error) {
	var opt wristmenu.Option

	targets := 0
	for _, set := range []bool{o.Action != "", o.Submenu != "", o.Exit} {
		if set {
			targets++
		}
	}
	if targets != 1 {
		return opt, errors.New("exactly one of action, submenu and exit must be set")
	}

	var icon image.Image
	if o.Icon != "" {
		if !slices.Contains(media.Names(media.TypeIcon), o.Icon) {
			return opt, errors.New("unknown icon " + strconv.Quote(o.Icon) + ", have " +
				strings.Join(media.Names(media.TypeIcon), ", "))
		}
		img, err := media.LoadImage(media.TypeIcon, o.Icon)
		if err != nil {
			return opt, errors.New("icon " + strconv.Quote(o.Icon) + ": " + err.Error())
		}
		icon = img
	}

	switch {
	case o.Exit:
		opt = wristmenu.ExitOption(o.Name, icon)
	case o.Submenu != "":
		target, ok := index[o.Submenu]
		if !ok {
			return opt, errors.New("no menu named " + strconv.Quote(o.Submenu))
		}
		opt = wristmenu.SubmenuOption(o.Name, icon, target)
	default:
		fn, ok := actions[o.Action]
		if !ok {
			return opt, errors.New("unknown action " + strconv.Quote(o.Action))
		}
		opt = wristmenu.ActionOption(o.Name, icon, fn)
	}
	return opt.Highlighted(o.Highlight[0], o.Highlight[1]), nil
}
