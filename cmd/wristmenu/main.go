//go:build tinygo

package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"

	"github.com/ajanata/wristmenu"
)

func main() {
	blink()
	machine.I2C0.Configure(machine.I2CConfig{
		SCL:       machine.I2C0_SCL_PIN,
		SDA:       machine.I2C0_SDA_PIN,
		Frequency: 400 * machine.KHz,
	})
	blink()

	dev := ssd1306.NewI2C(machine.I2C0)
	dev.Configure(ssd1306.Config{Width: 128, Height: 64, Address: 0x3D, VccState: ssd1306.SWITCHCAPVCC})
	blink()
	dev.ClearBuffer()
	dev.ClearDisplay()
	blink()

	w, err := wristmenu.New(30, &dev, machine.LED, &driver{
		up:   machine.D9,
		down: machine.D10,
		sel:  machine.D11,
	})
	if err != nil {
		earlyPanic()
	}
	err = w.Init()
	if err != nil {
		earlyPanic()
	}

	w.Run()
}

func blink() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.High()
	time.Sleep(100 * time.Millisecond)
	led.Low()
	time.Sleep(100 * time.Millisecond)
}

func earlyPanic() {
	for {
		blink()
	}
}
