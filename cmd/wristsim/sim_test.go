package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajanata/wristmenu"
	"github.com/ajanata/wristmenu/internal/config"
)

func TestDecodeKeys(t *testing.T) {
	assert.Equal(t,
		[]event{eventUp, eventDown, eventUp, eventDown, eventDown, eventSelect, eventSelect, eventWave, eventQuit},
		decodeKeys([]byte("wsk\x1b[Bj\r pxq")),
	)
	assert.Equal(t, []event{eventQuit}, decodeKeys([]byte{3}))
	assert.Empty(t, decodeKeys([]byte("\x1b[C")))
	assert.Empty(t, decodeKeys([]byte("\x1b")))
}

func TestSimDriver(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	d := newSimDriver(cfg)

	assert.Equal(t, wristmenu.MenuButtonNone, d.PressedButton())
	d.send(eventDown)
	d.send(eventSelect)
	assert.Equal(t, wristmenu.MenuButtonDown, d.PressedButton())
	assert.Equal(t, wristmenu.MenuButtonSelect, d.PressedButton())

	d.send(eventWave)
	p, st := d.Proximity()
	assert.Equal(t, uint8(255), p)
	assert.Equal(t, wristmenu.SensorStatusAvailable, st)
	p, _ = d.Proximity()
	assert.Equal(t, uint8(0), p)
}

func TestReadKeys(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	d := newSimDriver(cfg)
	done := make(chan struct{})

	d.readKeys(strings.NewReader("s\rqw"), done)
	_, open := <-done
	assert.False(t, open)
	assert.Equal(t, wristmenu.MenuButtonDown, d.PressedButton())
	assert.Equal(t, wristmenu.MenuButtonSelect, d.PressedButton())
	// nothing after quit
	assert.Equal(t, wristmenu.MenuButtonNone, d.PressedButton())
}

func TestRunScript(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	logPath := filepath.Join(t.TempDir(), "sim.log")
	log := newFileLogger(logPath)

	var boot, menu bytes.Buffer
	require.NoError(t, runScript(cfg, log, "", &boot))
	require.NoError(t, runScript(cfg, log, "s\rs", &menu))
	require.NoError(t, log.Close())

	assert.Equal(t, 32, strings.Count(boot.String(), "\n"))
	assert.Equal(t, 32, strings.Count(menu.String(), "\n"))
	assert.NotEqual(t, boot.String(), menu.String())

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "INFO init complete")
	assert.Contains(t, string(b), "DEBUG status boot -> idle")
}
