// Command emulator is the SDL2 CLI host: it loads a boot ROM and
// cartridge image, drives the frame loop, and blits the PPU's
// completed framebuffer to a window each frame.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"dmgcore/internal/config"
	"dmgcore/internal/debug"
	"dmgcore/internal/emulator"
	"dmgcore/internal/input"
	"dmgcore/internal/ppu"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML run configuration file")
	romPath := flag.String("rom", "", "Path to the cartridge ROM (overrides config)")
	bootPath := flag.String("boot", "", "Path to the 256-byte boot ROM (overrides config)")
	scale := flag.Int("scale", 3, "Display scale factor")
	unlimited := flag.Bool("unlimited", false, "Run at unlimited speed (no frame limit)")
	breakFlags := flag.String("break", "", "Comma-separated hex breakpoint addresses (e.g. 0150,02A3)")
	watchFlags := flag.String("watch", "", "Comma-separated watch expressions (e.g. AF,HL)")
	cycleLogPath := flag.String("cycle-log", "", "Path to write a cycle-by-cycle debug log (empty disables it)")
	logPPU := flag.Bool("log-ppu", false, "Log PPU mode transitions and frame completion")
	logMemory := flag.Bool("log-memory", false, "Log joypad/timer interrupt-raising memory events")
	logInterrupts := flag.Bool("log-interrupts", false, "Log interrupt dispatch")
	flag.Parse()

	cfg := config.Config{UnimplementedOpcodePolicy: config.PolicyAbort, FrameLimitFPS: 59.7}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *romPath != "" {
		cfg.CartridgePath = *romPath
	}
	if *bootPath != "" {
		cfg.BootROMPath = *bootPath
	}

	if cfg.CartridgePath == "" || cfg.BootROMPath == "" {
		fmt.Fprintln(os.Stderr, "usage: emulator -boot <path> -rom <path> [-config <path>] [-scale N] [-unlimited]")
		os.Exit(1)
	}

	bootROM, err := os.ReadFile(cfg.BootROMPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading boot ROM: %v\n", err)
		os.Exit(1)
	}
	cartridge, err := os.ReadFile(cfg.CartridgePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading cartridge: %v\n", err)
		os.Exit(1)
	}

	logger := debug.NewLogger(10000)
	logger.SetComponentEnabled(debug.ComponentSystem, true)
	logger.SetComponentEnabled(debug.ComponentPPU, *logPPU)
	logger.SetComponentEnabled(debug.ComponentMemory, *logMemory)
	logger.SetComponentEnabled(debug.ComponentInterrupt, *logInterrupts)

	emu := emulator.New(bootROM, cartridge, logger)
	emu.CPU.Strict = cfg.Strict()
	emu.SetFrameLimit(!*unlimited && cfg.FrameLimitFPS > 0)

	for _, addr := range splitNonEmpty(*breakFlags) {
		v, err := strconv.ParseUint(addr, 16, 16)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -break address %q: %v\n", addr, err)
			os.Exit(1)
		}
		emu.Debugger.SetBreakpoint(uint16(v))
	}
	for _, expr := range splitNonEmpty(*watchFlags) {
		emu.Debugger.AddWatch(expr)
	}

	if *cycleLogPath != "" {
		cycleLogger, err := debug.NewCycleLogger(*cycleLogPath, 0, 0, emu.PPU)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening cycle log: %v\n", err)
			os.Exit(1)
		}
		defer cycleLogger.Close()
		emu.CycleLogger = cycleLogger
	}

	emu.Start()

	if err := runWindow(emu, *scale); err != nil {
		fmt.Fprintf(os.Stderr, "display error: %v\n", err)
		os.Exit(1)
	}
}

// splitNonEmpty splits a comma-separated flag value, dropping empty
// fields so an unset flag yields no entries.
func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

var shadeColor = map[ppu.Shade]uint32{
	ppu.ShadeWhite:     0xFFFFFFFF,
	ppu.ShadeLightGrey: 0xFFAAAAAA,
	ppu.ShadeDarkGrey:  0xFF555555,
	ppu.ShadeBlack:     0xFF000000,
}

var keyToButton = map[sdl.Keycode]input.Button{
	sdl.K_UP:     input.ButtonUp,
	sdl.K_DOWN:   input.ButtonDown,
	sdl.K_LEFT:   input.ButtonLeft,
	sdl.K_RIGHT:  input.ButtonRight,
	sdl.K_z:      input.ButtonA,
	sdl.K_x:      input.ButtonB,
	sdl.K_RETURN: input.ButtonStart,
	sdl.K_RSHIFT: input.ButtonSelect,
}

func runWindow(emu *emulator.Emulator, scale int) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdl.Quit()

	w := int32(ppu.ScreenWidth * scale)
	h := int32(ppu.ScreenHeight * scale)
	window, err := sdl.CreateWindow("dmgcore", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, w, h, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ARGB8888, sdl.TEXTUREACCESS_STREAMING, ppu.ScreenWidth, ppu.ScreenHeight)
	if err != nil {
		return fmt.Errorf("create texture: %w", err)
	}
	defer texture.Destroy()

	pixels := make([]uint32, ppu.ScreenWidth*ppu.ScreenHeight)

	running := true
	pauseReported := false
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if btn, ok := keyToButton[e.Keysym.Sym]; ok {
					emu.Bus.PressButton(btn, e.State == sdl.PRESSED)
				}
				if e.Keysym.Sym == sdl.K_ESCAPE {
					running = false
				}
				if e.Keysym.Sym == sdl.K_c && e.State == sdl.PRESSED && emu.Paused {
					emu.Resume()
					pauseReported = false
				}
			}
		}

		if emu.Paused {
			if !pauseReported {
				reportBreak(emu)
				pauseReported = true
			}
			time.Sleep(16 * time.Millisecond)
			continue
		}

		if err := emu.RunFrame(); err != nil {
			return err
		}

		framebuffer := emu.Framebuffer()
		for i, shade := range framebuffer {
			pixels[i] = shadeColor[shade]
		}

		texture.Update(nil, pixelsToBytes(pixels), ppu.ScreenWidth*4)
		renderer.Clear()
		renderer.Copy(texture, nil, nil)
		renderer.Present()
	}

	return nil
}

// reportBreak prints the breakpoint that stopped execution along with
// every registered watch expression's current and previous value.
// Press C to resume.
func reportBreak(emu *emulator.Emulator) {
	fmt.Fprintf(os.Stderr, "breakpoint hit at PC=%04X (press C to continue)\n", emu.CPU.PC)
	for i, w := range emu.Debugger.GetWatches() {
		emu.Debugger.UpdateWatch(i, watchValue(emu, w.Expression))
	}
	for _, w := range emu.Debugger.GetWatches() {
		fmt.Fprintf(os.Stderr, "  watch %s = %04X (was %v)\n", w.Expression, w.Value, w.LastValue)
	}
	for depth, frame := range emu.Debugger.GetCallStack() {
		fmt.Fprintf(os.Stderr, "  call[%d] return=%04X target=%04X\n", depth, frame.ReturnAddress, frame.Target)
	}
}

// watchValue resolves a watch expression naming a 16-bit register pair
// to its current value. Unrecognized expressions read as zero.
func watchValue(emu *emulator.Emulator, expr string) uint16 {
	switch strings.ToUpper(expr) {
	case "AF":
		return emu.CPU.AF()
	case "BC":
		return emu.CPU.BC()
	case "DE":
		return emu.CPU.DE()
	case "HL":
		return emu.CPU.HL()
	case "SP":
		return emu.CPU.SP
	case "PC":
		return emu.CPU.PC
	default:
		return 0
	}
}

func pixelsToBytes(pixels []uint32) []byte {
	out := make([]byte, len(pixels)*4)
	for i, p := range pixels {
		out[i*4+0] = byte(p)
		out[i*4+1] = byte(p >> 8)
		out[i*4+2] = byte(p >> 16)
		out[i*4+3] = byte(p >> 24)
	}
	return out
}
