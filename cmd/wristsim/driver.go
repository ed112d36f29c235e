package main

import (
	"io"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/ajanata/textbuf"

	"github.com/ajanata/wristmenu"
	"github.com/ajanata/wristmenu/internal/config"
)

type event uint8

const (
	eventNone event = iota
	eventUp
	eventDown
	eventSelect
	eventWave
	eventQuit
)

// decodeKeys maps terminal input to events. Unknown keys are dropped.
func decodeKeys(b []byte) []event {
	var events []event
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case 'w', 'k':
			events = append(events, eventUp)
		case 's', 'j':
			events = append(events, eventDown)
		case '\r', '\n', ' ':
			events = append(events, eventSelect)
		case 'p':
			events = append(events, eventWave)
		case 'q', 3:
			events = append(events, eventQuit)
		case 0x1b:
			// arrow keys are ESC [ A and ESC [ B
			if i+2 < len(b) && b[i+1] == '[' {
				switch b[i+2] {
				case 'A':
					events = append(events, eventUp)
				case 'B':
					events = append(events, eventDown)
				}
				i += 2
			}
		}
	}
	return events
}

// simDriver feeds keyboard events to the watch. A wave reads as a near proximity sample for one frame.
type simDriver struct {
	cfg     *config.Config
	buttons chan wristmenu.MenuButton
	wave    atomic.Bool
	started time.Time
}

func newSimDriver(cfg *config.Config) *simDriver {
	return &simDriver{
		cfg:     cfg,
		buttons: make(chan wristmenu.MenuButton, 16),
		started: time.Now(),
	}
}

// send queues an event. Button presses beyond the queue's capacity are dropped.
func (d *simDriver) send(e event) {
	var b wristmenu.MenuButton
	switch e {
	case eventUp:
		b = wristmenu.MenuButtonUp
	case eventDown:
		b = wristmenu.MenuButtonDown
	case eventSelect:
		b = wristmenu.MenuButtonSelect
	case eventWave:
		d.wave.Store(true)
		return
	default:
		return
	}
	select {
	case d.buttons <- b:
	default:
	}
}

// readKeys sends keyboard events until quit is pressed or r fails, then closes done.
func (d *simDriver) readKeys(r io.Reader, done chan<- struct{}) {
	defer close(done)
	buf := make([]byte, 32)
	for {
		n, err := r.Read(buf)
		for _, e := range decodeKeys(buf[:n]) {
			if e == eventQuit {
				return
			}
			d.send(e)
		}
		if err != nil {
			return
		}
	}
}

func (d *simDriver) EarlyInit() error { return nil }

func (d *simDriver) LateInit(buf *textbuf.Buffer) {
	_ = buf.Println(runtime.GOOS + "/" + runtime.GOARCH + " simulator")
}

func (d *simDriver) PressedButton() wristmenu.MenuButton {
	select {
	case b := <-d.buttons:
		return b
	default:
		return wristmenu.MenuButtonNone
	}
}

func (d *simDriver) Proximity() (uint8, wristmenu.SensorStatus) {
	if d.wave.Swap(false) {
		return 255, wristmenu.SensorStatusAvailable
	}
	return 0, wristmenu.SensorStatusAvailable
}

func (d *simDriver) Menus(w *wristmenu.Watch) (*wristmenu.Definition, error) {
	return d.cfg.Build(map[string]func(){
		"noop":   func() {},
		"invert": func() { w.SetInverted(!w.Inverted()) },
		"blank":  w.Blank,
		"time": func() {
			w.ShowList([]string{time.Now().Format("15:04:05"), time.Now().Format("Mon 2 Jan 2006")}, nil)
		},
		"info": func() {
			w.ShowList([]string{
				"wristsim",
				runtime.Version(),
				runtime.GOOS + "/" + runtime.GOARCH,
				"up " + time.Since(d.started).Round(time.Second).String(),
				strconv.FormatUint(uint64(d.cfg.Framerate), 10) + " fps",
			}, nil)
		},
	})
}
