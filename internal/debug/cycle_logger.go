package debug

import (
	"fmt"
	"os"
	"sync"
)

// PPUStateReader reads enough PPU state for a cycle log line without
// debug importing the ppu package (would create an import cycle with
// ppu's own use of debug-style logging conventions).
type PPUStateReader interface {
	GetLY() uint8
	GetMode() int
	GetFrameAvailable() bool
}

// CPUStateSnapshot is a register-file snapshot taken once per logged
// tick. A plain struct rather than the live cpu.Registers type, so this
// package never imports cpu.
type CPUStateSnapshot struct {
	A, F   uint8
	B, C   uint8
	D, E   uint8
	H, L   uint8
	SP, PC uint16
	IME    bool
}

// CycleLogger writes one line per CPU tick to a file: PC, registers,
// flags and PPU mode/LY. Useful for diffing against a reference trace.
type CycleLogger struct {
	file         *os.File
	maxCycles    uint64
	startCycle   uint64
	currentCycle uint64
	totalCycles  uint64
	enabled      bool
	mu           sync.Mutex

	ppu PPUStateReader
}

// NewCycleLogger opens filename and prepares a cycle logger. maxCycles
// of 0 means unlimited; startCycle is the 1-based number of the first
// tick written (earlier ticks are counted but not logged).
func NewCycleLogger(filename string, maxCycles, startCycle uint64, ppu PPUStateReader) (*CycleLogger, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create cycle log file: %w", err)
	}

	logger := &CycleLogger{
		file:       file,
		maxCycles:  maxCycles,
		startCycle: startCycle,
		enabled:    true,
		ppu:        ppu,
	}

	fmt.Fprintf(file, "Cycle-by-Cycle Debug Log\n========================\n\n")
	if startCycle > 0 {
		fmt.Fprintf(file, "Start cycle offset: %d\n", startCycle)
	}
	if maxCycles > 0 {
		fmt.Fprintf(file, "Max cycles to log: %d\n", maxCycles)
	}
	fmt.Fprintf(file, "\nFormat: Tick | PC | AF BC DE HL | SP | IME | PPU mode/LY/frame\n\n")

	return logger, nil
}

// LogCycle writes one line for the given register snapshot.
func (c *CycleLogger) LogCycle(state *CPUStateSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}

	c.totalCycles++
	if c.totalCycles < c.startCycle {
		return
	}
	if c.maxCycles > 0 && c.currentCycle >= c.maxCycles {
		c.enabled = false
		return
	}
	c.currentCycle++

	mode, ly, frame := -1, uint8(0), false
	if c.ppu != nil {
		mode = c.ppu.GetMode()
		ly = c.ppu.GetLY()
		frame = c.ppu.GetFrameAvailable()
	}

	fmt.Fprintf(c.file, "Tick %6d | PC:%04X | AF:%02X%02X BC:%02X%02X DE:%02X%02X HL:%02X%02X | SP:%04X | IME:%v | mode:%d LY:%03d frame:%v\n",
		c.totalCycles, state.PC,
		state.A, state.F, state.B, state.C, state.D, state.E, state.H, state.L,
		state.SP, state.IME, mode, ly, frame)
}

func (c *CycleLogger) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

func (c *CycleLogger) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = !c.enabled
}

func (c *CycleLogger) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.enabled = false
	if c.file != nil {
		fmt.Fprintf(c.file, "\n\nLog complete. Total cycles logged: %d\n", c.currentCycle)
		err := c.file.Close()
		c.file = nil
		return err
	}
	return nil
}

func (c *CycleLogger) IsEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled && (c.maxCycles == 0 || c.currentCycle < c.maxCycles)
}

func (c *CycleLogger) GetStatus() (enabled bool, currentCycle, totalCycles, maxCycles uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled, c.currentCycle, c.totalCycles, c.maxCycles
}
