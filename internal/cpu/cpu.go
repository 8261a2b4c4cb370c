package cpu

import (
	"fmt"

	"dmgcore/internal/debug"
)

// State names where the fetch/decode/execute loop currently sits.
type State int

const (
	StateRunning State = iota
	StatePrefix
	StateHalted
)

// Bus is the subset of the MMU the CPU touches: byte and word
// read/write. The CPU never reaches into backing storage directly.
type Bus interface {
	Read8(addr uint16) byte
	Write8(addr uint16, v byte)
	Read16(addr uint16) uint16
	Write16(addr uint16, v uint16)
}

// UnimplementedOpcodeError is returned when Tick decodes the
// NotImplemented sentinel. Policy (abort vs. log-and-continue) is a
// caller decision.
type UnimplementedOpcodeError struct {
	PC     uint16
	Opcode byte
	Prefix bool
	Regs   Registers
}

func (e *UnimplementedOpcodeError) Error() string {
	return fmt.Sprintf("cpu: unimplemented opcode 0x%02X at PC=0x%04X (CB=%v) A=%02X F=%02X BC=%04X DE=%04X HL=%04X SP=%04X",
		e.Opcode, e.PC, e.Prefix, e.Regs.A, e.Regs.F, e.Regs.BC(), e.Regs.DE(), e.Regs.HL(), e.Regs.SP)
}

// CPU is the fetch/decode/execute state machine. It owns only its mode
// state, the register file and IME; the decode tables and memory bus
// are supplied externally so they can be shared read-only across the
// run loop without a cyclic reference back to the CPU.
type CPU struct {
	Registers
	IME   bool
	state State

	Tables *DecodeTables

	// Strict aborts on NotImplemented opcodes instead of treating them
	// as a logged NOP. Recommended on in test builds, off in release.
	Strict bool

	Logger CPULogger

	// InterruptLog receives a LogInterrupt entry each time ServiceInterrupts
	// actually dispatches (not merely wakes a halted CPU). Nil-safe: left
	// unset, interrupt dispatch is simply not logged.
	InterruptLog *debug.Logger

	// CallStack receives a PushCallFrame/PopCallFrame on every taken
	// CALL/RST/RET/RETI, so a debugger host can show the live call
	// chain. Nil-safe: left unset, no call tracking happens.
	CallStack *debug.Debugger
}

// CPULogger receives a notification after every instruction executes.
// A nil-safe no-op implementation is used when no logger is attached.
type CPULogger interface {
	LogInstruction(pc uint16, opcode byte, prefix bool, ins Instruction, cycles int, regs Registers)
}

// New constructs a CPU in its power-on state, wired to the given decode
// tables.
func New(tables *DecodeTables) *CPU {
	c := &CPU{Tables: tables, Strict: true}
	c.Reset()
	return c
}

// Reset restores register power-on values, clears IME and returns to
// the Running state.
func (c *CPU) Reset() {
	c.Registers.Reset()
	c.IME = false
	c.state = StateRunning
}

func (c *CPU) State() State { return c.state }

// Tick executes exactly one step of the fetch/decode/execute loop and
// returns the number of machine cycles it consumed. When Halted it
// performs no work and returns 0; ExitHalt is responsible for resuming
// execution once an interrupt becomes pending.
func (c *CPU) Tick(bus Bus) (int, error) {
	if c.state == StateHalted {
		return 0, nil
	}

	startPC := c.PC
	opcode := bus.Read8(c.PC)
	c.PC++

	prefix := c.state == StatePrefix
	var ins Instruction
	if prefix {
		ins = c.Tables.CB[opcode]
		c.state = StateRunning
	} else {
		ins = c.Tables.Primary[opcode]
	}

	if ins.Kind == KindPrefixCB {
		c.state = StatePrefix
		return 4, nil
	}
	if ins.Kind == KindHALT {
		c.state = StateHalted
		return 4, nil
	}
	if ins.Kind == KindNotImplemented {
		err := &UnimplementedOpcodeError{PC: startPC, Opcode: opcode, Prefix: prefix, Regs: c.Registers}
		if c.Strict {
			return 4, err
		}
		// Logged and treated as a NOP.
		if c.Logger != nil {
			c.Logger.LogInstruction(startPC, opcode, prefix, ins, 4, c.Registers)
		}
		return 4, nil
	}

	immSize := ins.ImmSize()
	var imm [2]byte
	for i := 0; i < immSize; i++ {
		imm[i] = bus.Read8(c.PC)
		c.PC++
	}

	cycles := ins.Execute(c, bus, imm[:immSize])

	if c.Logger != nil {
		c.Logger.LogInstruction(startPC, opcode, prefix, ins, cycles, c.Registers)
	}

	return cycles, nil
}

// ExitHalt exits the Halted state. withDispatch is true when IME was set
// at the moment the pending interrupt arrived (so the caller will go on
// to dispatch it); false means the CPU merely resumes fetching (IME was
// clear, so no vector is taken).
func (c *CPU) ExitHalt(withDispatch bool) {
	if c.state == StateHalted {
		c.state = StateRunning
	}
}
