package wristmenu

import (
	"errors"
	"runtime"
	"strconv"
	"time"

	"github.com/ajanata/textbuf"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"github.com/ajanata/wristmenu/internal/display"
)

const (
	defaultMenuTimeout  = 10 * time.Second
	defaultBlankTimeout = 30 * time.Second
	// defaultWakeProximity is the proximity reading at which a blanked display wakes up.
	defaultWakeProximity = 200
	defaultItemsPerPage  = 4
)

type Watch struct {
	framerate uint
	frameTime time.Duration
	display   drivers.Displayer
	status    Blinker
	driver    Driver
	log       Logger

	text     *textbuf.Buffer // boot log and idle status
	canvas   *display.Canvas
	font     tinyfont.Fonter
	layout   Layout
	chrome   *Chrome
	navOpts  []NavigatorOption
	nav      *Navigator
	renderer *Renderer

	state       statusState
	stateChange time.Time
	menuTimeout time.Duration
	blankAfter  time.Duration
	wakeProx    uint8
	dirty       bool
	animating   bool

	pager     *Paginator
	listItems []string
	listSel   int
	listPage  int
	listPick  func(int)

	init  bool
	start time.Time
	now   func() time.Time

	tick      uint32
	lastSec   time.Time
	lastTicks uint32
	lastFPS   uint32

	// storing this once could be inaccurate on OS-based implementations, but you also don't really care in that case
	totalRAM string
}

type Driver interface {
	// EarlyInit initializes secondary devices after the display has been initialized for boot messages. Hardware
	// drivers shall configure any buses (I2C, etc.) that are required to communicate with these devices at this point.
	EarlyInit() error

	// LateInit performs any late initialization (e.g. setting the clock). The failure of anything in LateInit should
	// not cause the failure of the entire process. Boot messages may be freely logged.
	LateInit(buffer *textbuf.Buffer)

	// PressedButton returns the currently-pressed menu button. The implementation is responsible for prioritizing
	// multiple buttons being pressed at the same time however it sees fit, as well as handling debouncing (if needed)
	// and button repeating. Basically, this should only return a value when that value should be acted upon.
	//
	// This function should expect to be called at the main loop framerate.
	PressedButton() MenuButton

	// Menus defines the menu tree. It is called once, during Init. Actions may hold on to w to drive the watch, e.g.
	// to show a list or blank the display.
	Menus(w *Watch) (*Definition, error)

	// Proximity is a normalized closeness of something in front of the display, used to wake it when blank.
	// The second return value indicates the status of the sensor: does not exist, valid data, or busy.
	Proximity() (uint8, SensorStatus)
}

type Blinker interface {
	Low()
	High()
}

// WatchOption configures a Watch in New.
type WatchOption func(*Watch)

// WithFont sets the font of menu text.
func WithFont(f tinyfont.Fonter) WatchOption {
	return func(w *Watch) { w.font = f }
}

func WithLayout(l Layout) WatchOption {
	return func(w *Watch) { w.layout = l }
}

// WithChrome replaces the embedded icon menu artwork.
func WithChrome(c Chrome) WatchOption {
	return func(w *Watch) { w.chrome = &c }
}

// WithTimeouts sets how long the menu stays up without input, and how long the idle screen stays up before the
// display is blanked. Zero disables blanking.
func WithTimeouts(menu, blank time.Duration) WatchOption {
	return func(w *Watch) {
		w.menuTimeout = menu
		w.blankAfter = blank
	}
}

// WithNavigatorOptions passes options on to the navigator created during Init.
func WithNavigatorOptions(opts ...NavigatorOption) WatchOption {
	return func(w *Watch) { w.navOpts = append(w.navOpts, opts...) }
}

func WithLog(l Logger) WatchOption {
	return func(w *Watch) { w.log = l }
}

func New(framerate uint, disp drivers.Displayer, status Blinker, driver Driver, opts ...WatchOption) (*Watch, error) {
	if framerate == 0 {
		return nil, errors.New("must run at least one frame per second")
	}
	if disp == nil {
		return nil, errors.New("must provide display")
	}
	if driver == nil {
		return nil, errors.New("must provide driver")
	}

	w := &Watch{
		framerate:   framerate,
		frameTime:   time.Second / time.Duration(framerate),
		display:     disp,
		status:      status,
		driver:      driver,
		log:         stderrLogger{},
		layout:      DefaultLayout(),
		menuTimeout: defaultMenuTimeout,
		blankAfter:  defaultBlankTimeout,
		wakeProx:    defaultWakeProximity,
		pager:       NewPaginator(defaultItemsPerPage),
		now:         time.Now,
	}
	for _, o := range opts {
		o(w)
	}
	w.start = w.now()
	w.canvas = display.New(disp, w.font)
	return w, nil
}

func (w *Watch) Init() error {
	if w.init {
		return errors.New("already initialized")
	}
	w.log.Info("starting init")
	w.blink()

	var err error
	w.text, err = textbuf.New(w.display, textbuf.FontSize6x8)
	if err != nil {
		return errors.New("init text: " + err.Error())
	}

	tw, th := w.text.Size()
	if tw < 15 || th < 4 {
		return errors.New("unusably small display")
	}

	err = w.text.SetLineInverse(0, "WRISTMENU BOOTING")
	if err != nil {
		return errors.New("boot msg: " + err.Error())
	}
	// we already validated it has at least 4 lines
	_ = w.text.SetY(1)
	// we already know it was possible to print text so don't bother checking every time
	_ = w.text.Print("Initialize devices")
	_ = w.text.Display()

	err = w.driver.EarlyInit()
	if err != nil {
		_ = w.text.PrintlnInverse(err.Error())
		_ = w.text.Display()
		return errors.New("early init: " + err.Error())
	}
	_ = w.text.Println(".")
	_ = w.text.Display()

	mem := runtime.MemStats{}
	runtime.ReadMemStats(&mem)
	w.totalRAM = strconv.Itoa(int(mem.HeapSys / 1024))
	_ = w.text.Println(w.totalRAM + "k RAM, " + strconv.Itoa(int(mem.HeapIdle/1024)) + "k free")

	def, err := w.driver.Menus(w)
	if err != nil {
		_ = w.text.PrintlnInverse(err.Error())
		_ = w.text.Display()
		return errors.New("menus: " + err.Error())
	}
	w.nav, err = NewNavigator(def, append([]NavigatorOption{WithLogger(w.log)}, w.navOpts...)...)
	if err != nil {
		_ = w.text.PrintlnInverse(err.Error())
		_ = w.text.Display()
		return errors.New("menus: " + err.Error())
	}
	chrome := w.chrome
	if chrome == nil {
		c := DefaultChrome()
		chrome = &c
	}
	w.renderer = NewRenderer(w.nav, w.canvas, w.layout, *chrome)
	_ = w.text.Println(strconv.Itoa(def.Len()) + " menus")

	w.driver.LateInit(w.text)

	_ = w.text.Println("Booted in " + w.now().Sub(w.start).Round(100*time.Millisecond).String())
	_ = w.text.Println("Wristmenu online.")
	_ = w.text.Display()

	w.stateChange = w.now()

	w.blink()
	w.init = true
	w.log.Info("init complete in " + w.now().Sub(w.start).Round(100*time.Millisecond).String())
	return nil
}

// Run does not return. It attempts to run the main loop at the framerate specified in New.
func (w *Watch) Run() {
	for range time.Tick(w.frameTime) {
		err := w.RunTick()
		if err != nil {
			w.panic(err)
		}
	}
}

// RunTick runs a single iteration of the main loop.
func (w *Watch) RunTick() error {
	if !w.init {
		return errors.New("not initialized")
	}

	w.statusOff()
	w.tick++

	redraw := false
	if w.now().Sub(w.lastSec) >= time.Second {
		w.lastFPS = w.tick - w.lastTicks
		w.lastSec = w.now()
		w.lastTicks = w.tick
		redraw = true
	}

	d, st := w.driver.Proximity()
	near := st == SensorStatusAvailable && d >= w.wakeProx

	w.updateStatus(redraw, near)

	var err error
	switch w.state {
	case statusStateMenu:
		if w.dirty || w.animating {
			w.animating = w.renderer.Render()
			w.dirty = false
			err = w.canvas.Display()
		}
	case statusStateList:
		if w.dirty {
			w.renderer.RenderList(w.pager, w.listItems, w.listSel)
			w.dirty = false
			err = w.canvas.Display()
		}
	case statusStateBoot, statusStateIdle:
		err = w.text.Display()
	}
	if err != nil {
		return errors.New("display: " + err.Error())
	}

	w.statusOn()
	return nil
}

func (w *Watch) drawIdleStatus() {
	mem := runtime.MemStats{}
	runtime.ReadMemStats(&mem)
	_ = w.text.SetLine(0, w.now().Format("15:04")+" "+strconv.Itoa(int(w.lastFPS))+"Hz "+
		strconv.Itoa(int(mem.HeapIdle/1024))+"k/"+w.totalRAM+"k")
	_ = w.text.SetLine(1, "SELECT for menu")
	_ = w.text.SetY(2)
}

func (w *Watch) timedOut(d time.Duration) bool {
	return d > 0 && w.now().After(w.stateChange.Add(d))
}

func (w *Watch) updateStatus(redraw, near bool) {
	switch w.state {
	case statusStateBoot:
		// any button press clears the boot log
		if w.timedOut(w.menuTimeout) || w.driver.PressedButton() != MenuButtonNone {
			w.changeStatusState(statusStateIdle)
		}
	case statusStateIdle:
		if w.driver.PressedButton() == MenuButtonSelect {
			w.changeStatusState(statusStateMenu)
			break
		}
		if w.timedOut(w.blankAfter) {
			w.changeStatusState(statusStateBlank)
			break
		}
		if redraw {
			w.drawIdleStatus()
		}
	case statusStateMenu:
		if w.timedOut(w.menuTimeout) {
			w.changeStatusState(statusStateIdle)
			break
		}
		w.handleMenuButton(w.driver.PressedButton())
	case statusStateList:
		if w.timedOut(w.menuTimeout) {
			w.changeStatusState(statusStateIdle)
			break
		}
		w.handleListButton(w.driver.PressedButton())
	case statusStateBlank:
		if w.driver.PressedButton() != MenuButtonNone || near {
			w.log.Debug("wake")
			w.nav.ResetAll()
			w.changeStatusState(statusStateIdle)
		}
	}
}

func (w *Watch) handleMenuButton(b MenuButton) {
	if b == MenuButtonNone {
		return
	}
	w.stateChange = w.now()
	w.dirty = true
	switch b {
	case MenuButtonUp:
		if !w.nav.OverrideUp() {
			w.nav.MoveUp()
		}
	case MenuButtonDown:
		if !w.nav.OverrideDown() {
			w.nav.MoveDown()
		}
	case MenuButtonSelect:
		if o := w.nav.Menu().SelectedOption(); w.nav.AtRoot() && o != nil && o.IsExit() {
			// leaving the root menu leaves the menu altogether
			w.nav.Menu().reset()
			w.changeStatusState(statusStateIdle)
			return
		}
		w.nav.Select()
	}
}

func (w *Watch) handleListButton(b MenuButton) {
	if b == MenuButtonNone {
		return
	}
	w.stateChange = w.now()
	w.dirty = true
	switch b {
	case MenuButtonUp:
		w.pager.HandleUp(&w.listSel)
	case MenuButtonDown:
		w.pager.HandleDown(&w.listSel)
	case MenuButtonSelect:
		if w.pager.Meta() == MetaNone {
			if w.listPick != nil && w.pager.ItemsOnPage() > 0 {
				w.listPick(w.listPage*w.pager.ItemsPerPage() + w.listSel)
			}
			return
		}
		page := w.listPage
		if w.pager.HandleSelect(&w.listPage) == MetaExitPage {
			w.log.Debug("list exit")
			w.changeStatusState(statusStateMenu)
			return
		}
		if page != w.listPage {
			w.listSel = 0
		}
	}
}

func (w *Watch) changeStatusState(state statusState) {
	w.log.Debugf("status %s -> %s", w.state, state)
	switch state {
	case statusStateIdle:
		w.canvas.FillRect(0, 0, w.canvas.DisplayWidth(), w.canvas.DisplayHeight(), Black)
		w.text.Clear()
		w.drawIdleStatus()
	case statusStateBlank:
		// clear text buffer
		w.text.Clear()
		// but make sure we clear the *entire* screen, including pixels outside the coverage of the text buffer
		w.canvas.FillRect(0, 0, w.canvas.DisplayWidth(), w.canvas.DisplayHeight(), Black)
		// since it won't be drawn in the main loop
		_ = w.canvas.Display()
	case statusStateMenu, statusStateList:
		w.dirty = true
	}
	w.state = state
	w.stateChange = w.now()
}

// ShowList leaves the menu for a paginated list of items. onPick, if not nil, is called with the index of an item when
// it is selected. Exiting the list returns to the menu.
func (w *Watch) ShowList(items []string, onPick func(int)) {
	w.listItems = items
	w.listPick = onPick
	w.listSel = 0
	w.listPage = 0
	w.pager.Begin(len(items))
	w.changeStatusState(statusStateList)
}

// Blank turns the display off until a button is pressed or the proximity sensor is triggered.
func (w *Watch) Blank() {
	w.changeStatusState(statusStateBlank)
}

// SetInverted switches the polarity of everything drawn on the menu.
func (w *Watch) SetInverted(inverted bool) {
	w.renderer.SetInverted(inverted)
	w.dirty = true
}

func (w *Watch) Inverted() bool { return w.renderer.Inverted() }

func (w *Watch) Navigator() *Navigator { return w.nav }

func (w *Watch) Renderer() *Renderer { return w.renderer }

// unfortunately you can't recover runtime panics in tinygo, so this is just going to be used for things we detect
// that are fatal
func (w *Watch) panic(v any) {
	println(v)
	for {
		println(v)
		w.blink()
	}
}

func (w *Watch) blink() {
	if w.status == nil {
		return
	}
	w.statusOn()
	time.Sleep(100 * time.Millisecond)
	w.statusOff()
	time.Sleep(100 * time.Millisecond)
}

func (w *Watch) statusOn() {
	if w.status != nil {
		w.status.High()
	}
}

func (w *Watch) statusOff() {
	if w.status != nil {
		w.status.Low()
	}
}
