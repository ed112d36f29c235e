package main

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ajanata/wristmenu"
	"github.com/ajanata/wristmenu/internal/config"
	"github.com/ajanata/wristmenu/internal/framebuffer"
)

var (
	configPath string
	logPath    string
	script     string
)

var rootCmd = &cobra.Command{
	Use:   "wristsim",
	Short: "Run the wrist menu in a terminal",
	Long: `wristsim draws the 1-bit display in the terminal and maps keys to the watch buttons:

  w, k, up arrow      up
  s, j, down arrow    down
  enter, space        select
  p                   wave at the proximity sensor
  q, ctrl+c           quit

The menu tree comes from a TOML file (--config) or the built-in one.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		log := newFileLogger(logPath)
		defer log.Close()

		if cmd.Flags().Changed("keys") {
			return runScript(cfg, log, script, cmd.OutOrStdout())
		}
		return runInteractive(cfg, log, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "menu configuration file (default built-in)")
	rootCmd.Flags().StringVar(&logPath, "log", "wristsim.log", "log file, rotated when it grows")
	rootCmd.Flags().StringVar(&script, "keys", "", "press these keys one per frame, print the final frame and exit")
}

// newWatch builds and initializes a watch on fb.
func newWatch(cfg *config.Config, log wristmenu.Logger, fb *framebuffer.Buffer, d *simDriver) (*wristmenu.Watch, error) {
	opts := append(cfg.WatchOptions(), wristmenu.WithLog(log))
	w, err := wristmenu.New(cfg.Framerate, fb, nil, d, opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Init(); err != nil {
		return nil, err
	}
	if cfg.Inverted {
		w.SetInverted(true)
	}
	return w, nil
}

func runScript(cfg *config.Config, log wristmenu.Logger, keys string, out io.Writer) error {
	fb := framebuffer.New(cfg.Display.Width, cfg.Display.Height)
	d := newSimDriver(cfg)
	w, err := newWatch(cfg, log, fb, d)
	if err != nil {
		return err
	}

	for _, e := range decodeKeys([]byte(keys)) {
		if e == eventQuit {
			break
		}
		d.send(e)
		if err := w.RunTick(); err != nil {
			return err
		}
	}
	// let animations settle
	for i := uint(0); i < cfg.Framerate; i++ {
		if err := w.RunTick(); err != nil {
			return err
		}
	}
	_, err = io.WriteString(out, fb.String())
	return err
}

func runInteractive(cfg *config.Config, log wristmenu.Logger, out io.Writer) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdin is not a terminal; use --keys to script a run")
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, old)

	fb := framebuffer.New(cfg.Display.Width, cfg.Display.Height)
	_, _ = io.WriteString(out, "\x1b[2J\x1b[?25l")
	defer io.WriteString(out, "\x1b[?25h\r\n")
	fb.OnDisplay = func(b *framebuffer.Buffer) error {
		_, err := io.WriteString(out, "\x1b[H"+strings.ReplaceAll(b.String(), "\n", "\r\n"))
		return err
	}

	d := newSimDriver(cfg)
	w, err := newWatch(cfg, log, fb, d)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	go d.readKeys(os.Stdin, done)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Framerate))
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return nil
		case <-ticker.C:
			if err := w.RunTick(); err != nil {
				return err
			}
		}
	}
}
