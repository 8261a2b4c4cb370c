package cpu

import (
	"fmt"

	"dmgcore/internal/debug"
)

// CPULogLevel controls how much detail DebugCPULogger forwards to the
// underlying debug.Logger.
type CPULogLevel int

const (
	CPULogNone         CPULogLevel = iota
	CPULogErrors                   // Unimplemented-opcode notices only
	CPULogBranches                 // Branches/calls/returns/RSTs, taken or not
	CPULogRegisters                // Instructions that change a register
	CPULogInstructions             // Every instruction
)

// DebugCPULogger adapts debug.Logger to the cpu.CPULogger interface,
// formatting each instruction with its real mnemonic rather than a raw
// opcode dump.
type DebugCPULogger struct {
	logger    *debug.Logger
	level     CPULogLevel
	enabled   bool
	lastRegs  Registers
	haveLast  bool
}

// NewDebugCPULogger creates a CPU logger bound to logger at the given
// level.
func NewDebugCPULogger(logger *debug.Logger, level CPULogLevel) *DebugCPULogger {
	return &DebugCPULogger{logger: logger, level: level, enabled: true}
}

func (a *DebugCPULogger) SetLevel(level CPULogLevel) { a.level = level }
func (a *DebugCPULogger) SetEnabled(enabled bool)     { a.enabled = enabled }

// LogInstruction implements cpu.CPULogger.
func (a *DebugCPULogger) LogInstruction(pc uint16, opcode byte, prefix bool, ins Instruction, cycles int, regs Registers) {
	if !a.enabled || a.logger == nil || a.level == CPULogNone {
		return
	}

	isBranch := isBranchKind(ins.Kind)

	switch a.level {
	case CPULogErrors:
		if ins.Kind != KindNotImplemented {
			return
		}
	case CPULogBranches:
		if !isBranch {
			return
		}
	case CPULogRegisters:
		changed := a.haveLast && regs != a.lastRegs
		if !changed && !isBranch {
			a.lastRegs, a.haveLast = regs, true
			return
		}
	case CPULogInstructions:
		// always logged
	}

	message := fmt.Sprintf("%s @ PC=%04X (%d cycles)", mnemonic(opcode, prefix, ins), pc, cycles)
	data := map[string]interface{}{
		"pc":     fmt.Sprintf("%04X", pc),
		"opcode": fmt.Sprintf("%02X", opcode),
		"cb":     prefix,
		"cycles": cycles,
		"af":     fmt.Sprintf("%04X", regs.AF()),
		"bc":     fmt.Sprintf("%04X", regs.BC()),
		"de":     fmt.Sprintf("%04X", regs.DE()),
		"hl":     fmt.Sprintf("%04X", regs.HL()),
		"sp":     fmt.Sprintf("%04X", regs.SP),
	}

	logLevel := debug.LogLevelDebug
	if isBranch {
		logLevel = debug.LogLevelInfo
	}

	a.logger.LogCPU(logLevel, message, data)
	a.lastRegs, a.haveLast = regs, true
}

func isBranchKind(k Kind) bool {
	switch k {
	case KindJR, KindJP, KindJPHL, KindCALL, KindRET, KindRETI, KindRST:
		return true
	default:
		return false
	}
}

var operandNames = map[Operand]string{
	OpNone: "", OpA: "A", OpB: "B", OpC: "C", OpD: "D", OpE: "E", OpH: "H", OpL: "L",
	OpIndHL: "(HL)", OpIndBC: "(BC)", OpIndDE: "(DE)",
	OpImm8: "n", OpImm16: "nn",
	OpBC: "BC", OpDE: "DE", OpHL: "HL", OpSP: "SP", OpAF: "AF",
}

var condNames = map[Condition]string{
	CondNone: "", CondNZ: "NZ", CondZ: "Z", CondNC: "NC", CondC: "C",
}

var kindMnemonics = map[Kind]string{
	KindNOP: "NOP", KindHALT: "HALT", KindSTOP: "STOP", KindDI: "DI", KindEI: "EI",
	KindDAA: "DAA", KindCPL: "CPL", KindCCF: "CCF", KindSCF: "SCF",
	KindRLCA: "RLCA", KindRRCA: "RRCA", KindRLA: "RLA", KindRRA: "RRA",
	KindRETI: "RETI", KindPrefixCB: "PREFIX CB",
}

// mnemonic renders a human-readable instruction form for log lines. It
// is deliberately approximate about immediate operand values (those are
// only known once fetched) and favors mnemonic + operand kind, which is
// enough to diff against a reference trace by PC and opcode.
func mnemonic(opcode byte, prefix bool, ins Instruction) string {
	if name, ok := kindMnemonics[ins.Kind]; ok {
		return name
	}

	space := "  "
	if prefix {
		space = "CB"
	}

	switch ins.Kind {
	case KindLD8, KindLD16:
		return fmt.Sprintf("[%s] LD %s,%s", space, operandNames[ins.Dst], operandNames[ins.Src])
	case KindLDH:
		if ins.Dst == OpA {
			return fmt.Sprintf("LDH A,(n)")
		}
		return fmt.Sprintf("LDH (n),A")
	case KindLDIndCHigh:
		if ins.Dst == OpA {
			return "LD A,(FF00+C)"
		}
		return "LD (FF00+C),A"
	case KindLDIndImm16:
		if ins.Dst == OpA {
			return "LD A,(nn)"
		}
		return "LD (nn),A"
	case KindLDSPImm16:
		return "LD (nn),SP"
	case KindLDHLIncFromA:
		return "LD (HL+),A"
	case KindLDHLDecFromA:
		return "LD (HL-),A"
	case KindLDAFromHLInc:
		return "LD A,(HL+)"
	case KindLDAFromHLDec:
		return "LD A,(HL-)"
	case KindLDSPFromHL:
		return "LD SP,HL"
	case KindLDHLFromSPOffset:
		return "LD HL,SP+e"
	case KindADDSPOffset:
		return "ADD SP,e"
	case KindINC8, KindINC16:
		return fmt.Sprintf("INC %s", operandNames[ins.Dst])
	case KindDEC8, KindDEC16:
		return fmt.Sprintf("DEC %s", operandNames[ins.Dst])
	case KindADD:
		return fmt.Sprintf("ADD A,%s", operandNames[ins.Src])
	case KindADD16:
		return fmt.Sprintf("ADD HL,%s", operandNames[ins.Src])
	case KindADC:
		return fmt.Sprintf("ADC A,%s", operandNames[ins.Src])
	case KindSUB:
		return fmt.Sprintf("SUB %s", operandNames[ins.Src])
	case KindSBC:
		return fmt.Sprintf("SBC A,%s", operandNames[ins.Src])
	case KindAND:
		return fmt.Sprintf("AND %s", operandNames[ins.Src])
	case KindOR:
		return fmt.Sprintf("OR %s", operandNames[ins.Src])
	case KindXOR:
		return fmt.Sprintf("XOR %s", operandNames[ins.Src])
	case KindCP:
		return fmt.Sprintf("CP %s", operandNames[ins.Src])
	case KindJR:
		if ins.Cond == CondNone {
			return "JR e"
		}
		return fmt.Sprintf("JR %s,e", condNames[ins.Cond])
	case KindJP:
		if ins.Cond == CondNone {
			return "JP nn"
		}
		return fmt.Sprintf("JP %s,nn", condNames[ins.Cond])
	case KindJPHL:
		return "JP (HL)"
	case KindCALL:
		if ins.Cond == CondNone {
			return "CALL nn"
		}
		return fmt.Sprintf("CALL %s,nn", condNames[ins.Cond])
	case KindRET:
		if ins.Cond == CondNone {
			return "RET"
		}
		return fmt.Sprintf("RET %s", condNames[ins.Cond])
	case KindRST:
		return fmt.Sprintf("RST %02XH", ins.Vector)
	case KindPUSH:
		return fmt.Sprintf("PUSH %s", operandNames[ins.Dst])
	case KindPOP:
		return fmt.Sprintf("POP %s", operandNames[ins.Dst])
	case KindRLC:
		return fmt.Sprintf("RLC %s", operandNames[ins.Dst])
	case KindRRC:
		return fmt.Sprintf("RRC %s", operandNames[ins.Dst])
	case KindRL:
		return fmt.Sprintf("RL %s", operandNames[ins.Dst])
	case KindRR:
		return fmt.Sprintf("RR %s", operandNames[ins.Dst])
	case KindSLA:
		return fmt.Sprintf("SLA %s", operandNames[ins.Dst])
	case KindSRA:
		return fmt.Sprintf("SRA %s", operandNames[ins.Dst])
	case KindSWAP:
		return fmt.Sprintf("SWAP %s", operandNames[ins.Dst])
	case KindSRL:
		return fmt.Sprintf("SRL %s", operandNames[ins.Dst])
	case KindBIT:
		return fmt.Sprintf("BIT %d,%s", ins.Bit, operandNames[ins.Dst])
	case KindRES:
		return fmt.Sprintf("RES %d,%s", ins.Bit, operandNames[ins.Dst])
	case KindSET:
		return fmt.Sprintf("SET %d,%s", ins.Bit, operandNames[ins.Dst])
	case KindNotImplemented:
		return fmt.Sprintf("??? (0x%02X)", opcode)
	default:
		return fmt.Sprintf("0x%02X", opcode)
	}
}
