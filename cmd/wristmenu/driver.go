//go:build tinygo

package main

import (
	"image"
	"machine"
	"strconv"
	"time"

	"github.com/ajanata/textbuf"
	"tinygo.org/x/drivers/apds9960"

	"github.com/ajanata/wristmenu"
	"github.com/ajanata/wristmenu/internal/media"
)

const (
	repeatDelay    = 500 * time.Millisecond
	repeatInterval = 150 * time.Millisecond
)

// driver reads three active-low buttons and an APDS9960 proximity sensor on I2C0.
type driver struct {
	up, down, sel machine.Pin
	prox          apds9960.Device
	hasProx       bool

	held      wristmenu.MenuButton
	heldSince time.Time
	repeated  time.Time
	booted    time.Time
}

func (d *driver) EarlyInit() error {
	for _, p := range []machine.Pin{d.up, d.down, d.sel} {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}

	d.prox = apds9960.New(machine.I2C0)
	d.prox.Configure(apds9960.Configuration{})
	d.hasProx = d.prox.Connected()
	if d.hasProx {
		d.prox.EnableProximity()
	}
	d.booted = time.Now()
	return nil
}

func (d *driver) LateInit(buf *textbuf.Buffer) {
	if d.hasProx {
		_ = buf.Println("Proximity wake on")
	} else {
		_ = buf.Println("No proximity sensor")
	}
}

func (d *driver) current() wristmenu.MenuButton {
	// select wins over up and down
	switch {
	case !d.sel.Get():
		return wristmenu.MenuButtonSelect
	case !d.up.Get():
		return wristmenu.MenuButtonUp
	case !d.down.Get():
		return wristmenu.MenuButtonDown
	default:
		return wristmenu.MenuButtonNone
	}
}

// PressedButton reports a button once when it goes down, then repeatedly while up or down is held.
func (d *driver) PressedButton() wristmenu.MenuButton {
	b := d.current()
	now := time.Now()
	if b != d.held {
		d.held = b
		d.heldSince = now
		d.repeated = now
		return b
	}
	if b == wristmenu.MenuButtonUp || b == wristmenu.MenuButtonDown {
		if now.Sub(d.heldSince) >= repeatDelay && now.Sub(d.repeated) >= repeatInterval {
			d.repeated = now
			return b
		}
	}
	return wristmenu.MenuButtonNone
}

func (d *driver) Proximity() (uint8, wristmenu.SensorStatus) {
	if !d.hasProx {
		return 0, wristmenu.SensorStatusUnavailable
	}
	p := d.prox.ReadProximity()
	if p < 0 {
		return 0, wristmenu.SensorStatusBusy
	}
	if p > 255 {
		p = 255
	}
	return uint8(p), wristmenu.SensorStatusAvailable
}

func (d *driver) Menus(w *wristmenu.Watch) (*wristmenu.Definition, error) {
	def := wristmenu.NewDefinition(3)
	icon := func(name string) image.Image { return media.MustLoadImage(media.TypeIcon, name) }

	if _, err := def.DefineMenu(0, 4, "Main", wristmenu.KindIconCarousel); err != nil {
		return nil, err
	}
	for slot, o := range []wristmenu.Option{
		wristmenu.ActionOption("Uptime", icon("clock"), func() {
			w.ShowList([]string{"Up " + time.Since(d.booted).Round(time.Second).String()}, nil)
		}),
		wristmenu.SubmenuOption("Alarms", icon("alarm"), 1),
		wristmenu.SubmenuOption("Settings", icon("settings"), 2),
		wristmenu.ExitOption("Exit", icon("exit")),
	} {
		if err := def.DefineOption(0, slot, o); err != nil {
			return nil, err
		}
	}

	if _, err := def.DefineMenu(1, 4, "Alarms", wristmenu.KindTextList); err != nil {
		return nil, err
	}
	for slot, t := range []string{"07:30", "12:00"} {
		name := "Alarm " + t
		err := def.DefineOption(1, slot, wristmenu.ActionOption(name, nil, func() {
			w.ShowList([]string{"Alarm " + strconv.Itoa(slot+1), t}, nil)
		}).Highlighted(6, 2))
		if err != nil {
			return nil, err
		}
	}
	if err := def.DefineOption(1, 3, wristmenu.ExitOption("Back", nil)); err != nil {
		return nil, err
	}

	if _, err := def.DefineMenu(2, 3, "Settings", wristmenu.KindTextList); err != nil {
		return nil, err
	}
	if err := def.DefineOption(2, 0, wristmenu.ActionOption("Invert", nil, func() { w.SetInverted(!w.Inverted()) })); err != nil {
		return nil, err
	}
	if err := def.DefineOption(2, 1, wristmenu.ActionOption("Sleep", nil, w.Blank)); err != nil {
		return nil, err
	}
	return def, def.DefineOption(2, 2, wristmenu.ExitOption("Back", nil))
}
