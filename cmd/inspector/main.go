// Command inspector is a read-only Fyne debug window: it polls a
// running emulator on a timer and renders its register file, PPU mode
// and the pixel colour indices of one tile.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"dmgcore/internal/emulator"
)

func main() {
	romPath := flag.String("rom", "", "Path to the cartridge ROM")
	bootPath := flag.String("boot", "", "Path to the boot ROM")
	flag.Parse()

	if *romPath == "" || *bootPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspector -boot <path> -rom <path>")
		os.Exit(1)
	}

	bootROM, err := os.ReadFile(*bootPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading boot ROM: %v\n", err)
		os.Exit(1)
	}
	cartridge, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading cartridge: %v\n", err)
		os.Exit(1)
	}

	emu := emulator.New(bootROM, cartridge, nil)
	emu.SetFrameLimit(true)
	emu.Start()

	a := app.New()
	w := a.NewWindow("dmgcore inspector")

	registers := newReadOnlyView()
	tiles := newReadOnlyView()

	copyBtn := widget.NewButton("Copy registers", func() {
		w.Clipboard().SetContent(registers.Text)
	})
	saveBtn := widget.NewButton("Save dump", func() {
		_ = os.WriteFile("dump.txt", []byte(registers.Text+"\n\n"+tiles.Text), 0o644)
	})

	content := container.NewVBox(
		widget.NewLabel("Registers"),
		container.NewScroll(registers),
		widget.NewLabel("Tile 0"),
		container.NewScroll(tiles),
		container.NewHBox(copyBtn, saveBtn),
	)
	w.SetContent(content)
	w.Resize(fyne.NewSize(420, 480))

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			if err := emu.RunFrame(); err != nil {
				return
			}
			registers.SetText(formatRegisters(emu))
			tiles.SetText(formatTile(emu))
		}
	}()

	w.ShowAndRun()
}

// newReadOnlyView returns a disabled multi-line entry used as a
// read-only text panel.
func newReadOnlyView() *widget.Entry {
	e := widget.NewMultiLineEntry()
	e.Disable()
	return e
}

func formatRegisters(emu *emulator.Emulator) string {
	c := emu.CPU
	return fmt.Sprintf(
		"AF=%04X BC=%04X DE=%04X HL=%04X\nSP=%04X PC=%04X IME=%v\nPPU mode=%d LY=%d frame-ready=%v",
		c.AF(), c.BC(), c.DE(), c.HL(), c.SP, c.PC, c.IME,
		emu.PPU.Mode(), emu.PPU.LY(), emu.PPU.FrameAvailable,
	)
}

func formatTile(emu *emulator.Emulator) string {
	t := emu.Bus.Tile(0x8000)
	out := ""
	for y := byte(0); y < 8; y++ {
		for x := byte(0); x < 8; x++ {
			out += fmt.Sprintf("%d", t.Pixel(x, y))
		}
		out += "\n"
	}
	return out
}
