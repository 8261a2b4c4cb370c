// Package emulator wires the CPU, MMU and PPU into the cooperative
// frame loop: one CPU instruction, the PPU catching up by that many
// cycles, then an interrupt-dispatch check, repeated until a frame's
// cycle budget is spent.
package emulator

import (
	"fmt"
	"time"

	"dmgcore/internal/cpu"
	"dmgcore/internal/debug"
	"dmgcore/internal/memory"
	"dmgcore/internal/ppu"
)

// CyclesPerFrame is the fixed machine-cycle budget of one 59.7 Hz DMG
// frame: 154 scanlines x 456 cycles.
const CyclesPerFrame = 70224

// Emulator owns one CPU/MMU/PPU triple and drives them through the
// fetch-execute-catch-up-dispatch loop a frame at a time.
type Emulator struct {
	CPU *cpu.CPU
	Bus *memory.MMU
	PPU *ppu.PPU

	Logger      *debug.Logger
	CycleLogger *debug.CycleLogger
	Debugger    *debug.Debugger

	FrameLimitEnabled bool
	TargetFPS         float64
	FrameTime         time.Duration
	LastFrameTime     time.Time

	FPS           float64
	FrameCount    uint64
	FPSUpdateTime time.Time

	Running bool
	Paused  bool

	// frameCycles accumulates machine cycles across RunFrame calls. It
	// is never reset to zero on overflow, only decremented by
	// CyclesPerFrame, so any cycles spent past one frame's budget carry
	// into the next frame's count instead of being discarded.
	frameCycles int
}

// New constructs an Emulator from a boot ROM image and cartridge ROM
// image. logger may be nil, in which case component logging is simply
// never attached.
func New(bootROM, cartridge []byte, logger *debug.Logger) *Emulator {
	bus := memory.New(bootROM, cartridge)
	tables := cpu.NewDecodeTables()
	c := cpu.New(tables)
	p := ppu.New()
	dbg := debug.NewDebugger()
	c.CallStack = dbg

	if logger != nil {
		c.Logger = cpu.NewDebugCPULogger(logger, cpu.CPULogInstructions)
		c.InterruptLog = logger
		bus.SetLogger(logger)
		p.SetLogger(logger)
	}

	return &Emulator{
		CPU:               c,
		Bus:               bus,
		PPU:               p,
		Logger:            logger,
		Debugger:          dbg,
		FrameLimitEnabled: true,
		TargetFPS:         59.7,
		FrameTime:         time.Second * 10 / 597, // 1/59.7 s
		LastFrameTime:     time.Now(),
		FPSUpdateTime:     time.Now(),
	}
}

// Step executes exactly one CPU instruction (or, if an interrupt is
// serviced first, the dispatch sequence instead), advances the PPU by
// the same number of cycles, and returns the cycle count consumed.
func (e *Emulator) Step() (int, error) {
	if dispatchCycles := e.CPU.ServiceInterrupts(e.Bus); dispatchCycles > 0 {
		e.PPU.Tick(dispatchCycles, e.Bus)
		e.Bus.TickTimer(dispatchCycles)
		return dispatchCycles, nil
	}

	pc := e.CPU.PC
	if e.Debugger != nil && e.Debugger.ShouldBreak(pc) {
		e.Paused = true
		return 0, nil
	}

	cycles, err := e.CPU.Tick(e.Bus)
	if err != nil {
		return cycles, err
	}

	e.PPU.Tick(cycles, e.Bus)
	e.Bus.TickTimer(cycles)

	if e.CycleLogger != nil && e.CycleLogger.IsEnabled() {
		e.CycleLogger.LogCycle(&debug.CPUStateSnapshot{
			A: e.CPU.A, F: e.CPU.F, B: e.CPU.B, C: e.CPU.C,
			D: e.CPU.D, E: e.CPU.E, H: e.CPU.H, L: e.CPU.L,
			SP: e.CPU.SP, PC: e.CPU.PC, IME: e.CPU.IME,
		})
	}

	return cycles, nil
}

// RunFrame runs CPU/PPU ticks until CyclesPerFrame machine cycles have
// elapsed, then applies frame-rate limiting if enabled. It stops early,
// without consuming the rest of the budget, if the debugger pauses
// execution.
func (e *Emulator) RunFrame() error {
	if !e.Running || e.Paused {
		return nil
	}

	for e.frameCycles < CyclesPerFrame {
		cycles, err := e.Step()
		if err != nil {
			return fmt.Errorf("emulator: step failed: %w", err)
		}
		if e.Paused {
			return nil
		}
		if cycles == 0 {
			cycles = 4 // halted CPU still advances the PPU and timer at NOP rate
			e.PPU.Tick(cycles, e.Bus)
			e.Bus.TickTimer(cycles)
		}
		e.frameCycles += cycles
	}
	e.frameCycles -= CyclesPerFrame

	e.FrameCount++
	now := time.Now()
	if now.Sub(e.FPSUpdateTime) >= time.Second {
		e.FPS = float64(e.FrameCount) / now.Sub(e.FPSUpdateTime).Seconds()
		e.FrameCount = 0
		e.FPSUpdateTime = now
	}

	if e.FrameLimitEnabled {
		elapsed := now.Sub(e.LastFrameTime)
		if elapsed < e.FrameTime {
			time.Sleep(e.FrameTime - elapsed)
		}
	}
	e.LastFrameTime = time.Now()

	return nil
}

// Start begins execution.
func (e *Emulator) Start() {
	e.Running = true
	e.Paused = false
	if e.Logger != nil {
		e.Logger.LogSystem(debug.LogLevelInfo, "emulator started", nil)
	}
}

// Stop halts execution entirely.
func (e *Emulator) Stop() {
	e.Running = false
	if e.Logger != nil {
		e.Logger.LogSystem(debug.LogLevelInfo, "emulator stopped", map[string]interface{}{"frames": e.FrameCount})
	}
}

// Pause suspends frame stepping without resetting state.
func (e *Emulator) Pause() {
	e.Paused = true
	if e.Debugger != nil {
		e.Debugger.Pause()
	}
	if e.Logger != nil {
		e.Logger.LogSystem(debug.LogLevelDebug, "emulator paused", map[string]interface{}{"pc": e.CPU.PC})
	}
}

// Resume continues a paused emulator.
func (e *Emulator) Resume() {
	e.Paused = false
	if e.Debugger != nil {
		e.Debugger.Resume()
	}
	if e.Logger != nil {
		e.Logger.LogSystem(debug.LogLevelDebug, "emulator resumed", map[string]interface{}{"pc": e.CPU.PC})
	}
}

// Reset restores the CPU to its power-on state and replaces the PPU
// with a fresh one. The MMU, including the boot ROM overlay flag, is
// untouched: execution restarts at 0x0000, which runs the boot ROM
// again only if the overlay has not yet been disabled.
func (e *Emulator) Reset() {
	e.CPU.Reset()
	e.PPU = ppu.New()
	e.frameCycles = 0
	if e.Logger != nil {
		e.PPU.SetLogger(e.Logger)
		e.Logger.LogSystem(debug.LogLevelInfo, "emulator reset", nil)
	}
}

// SetFrameLimit toggles real-time frame pacing.
func (e *Emulator) SetFrameLimit(enabled bool) {
	e.FrameLimitEnabled = enabled
}

// GetFPS returns the measured frames-per-second over the last second.
func (e *Emulator) GetFPS() float64 {
	return e.FPS
}

// Framebuffer returns the PPU's current completed-frame pixel buffer.
func (e *Emulator) Framebuffer() []ppu.Shade {
	return e.PPU.Framebuffer[:]
}
