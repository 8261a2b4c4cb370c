package cpu

// Kind tags every arm of the instruction variant. Execute switches on
// Kind rather than dispatching through a boxed closure or function
// pointer, so the whole opcode space is exhaustively checkable.
type Kind int

const (
	KindNotImplemented Kind = iota
	KindNOP
	KindLD8
	KindLD16
	KindLDH
	KindLDIndCHigh  // LD (0xFF00+C),A  /  LD A,(0xFF00+C)
	KindLDIndImm16  // LD (nn),A / LD A,(nn)
	KindLDSPImm16   // LD (nn),SP
	KindLDHLIncFromA
	KindLDHLDecFromA
	KindLDAFromHLInc
	KindLDAFromHLDec
	KindLDSPFromHL
	KindLDHLFromSPOffset
	KindINC8
	KindDEC8
	KindINC16
	KindDEC16
	KindADD
	KindADC
	KindSUB
	KindSBC
	KindAND
	KindOR
	KindXOR
	KindCP
	KindADD16
	KindADDSPOffset
	KindJR
	KindJP
	KindJPHL
	KindCALL
	KindRET
	KindRETI
	KindRST
	KindPUSH
	KindPOP
	KindDAA
	KindCPL
	KindCCF
	KindSCF
	KindRLCA
	KindRRCA
	KindRLA
	KindRRA
	KindHALT
	KindSTOP
	KindDI
	KindEI
	KindPrefixCB
	KindRLC
	KindRRC
	KindRL
	KindRR
	KindSLA
	KindSRA
	KindSWAP
	KindSRL
	KindBIT
	KindRES
	KindSET
)

// Operand identifies what an instruction reads or writes an 8- or
// 16-bit value from/to.
type Operand int

const (
	OpNone Operand = iota
	OpA
	OpB
	OpC
	OpD
	OpE
	OpH
	OpL
	OpIndHL // memory at (HL)
	OpIndBC // memory at (BC)
	OpIndDE // memory at (DE)
	OpImm8
	OpImm16
	OpBC
	OpDE
	OpHL
	OpSP
	OpAF
)

// Condition is the branch predicate JR/JP/CALL/RET may carry.
type Condition int

const (
	CondNone Condition = iota
	CondNZ
	CondZ
	CondNC
	CondC
)

// reg8ByIndex is the standard opcode register encoding: bits select one
// of B,C,D,E,H,L,(HL),A in that order.
var reg8ByIndex = [8]Operand{OpB, OpC, OpD, OpE, OpH, OpL, OpIndHL, OpA}

// reg16ByIndex is the standard 16-bit pair encoding used by LD rr,nn,
// INC rr, DEC rr and ADD HL,rr.
var reg16ByIndex = [4]Operand{OpBC, OpDE, OpHL, OpSP}

// stackReg16ByIndex is the 16-bit pair encoding used by PUSH/POP, which
// substitutes AF for SP at index 3.
var stackReg16ByIndex = [4]Operand{OpBC, OpDE, OpHL, OpAF}

// aluKindByRow is the ALU operation selected by bits 3-5 of an 0x80-0xBF
// or 0xC6-0xFE opcode.
var aluKindByRow = [8]Kind{KindADD, KindADC, KindSUB, KindSBC, KindAND, KindXOR, KindOR, KindCP}

// cbKindByRow is the shift/rotate operation selected by bits 3-5 of a
// 0x00-0x3F CB opcode.
var cbKindByRow = [8]Kind{KindRLC, KindRRC, KindRL, KindRR, KindSLA, KindSRA, KindSWAP, KindSRL}

var condByIndex = [4]Condition{CondNZ, CondZ, CondNC, CondC}
