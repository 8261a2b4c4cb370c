package cpu

// DecodeTables holds the two fixed 256-entry opcode tables. Both are
// built once by NewDecodeTables and never mutated afterward; unassigned
// slots hold the NotImplemented sentinel, distinct from NOP.
type DecodeTables struct {
	Primary [256]Instruction
	CB      [256]Instruction
}

// NewDecodeTables constructs both decode tables.
func NewDecodeTables() *DecodeTables {
	t := &DecodeTables{}
	for i := range t.Primary {
		t.Primary[i] = Instruction{Kind: KindNotImplemented}
	}
	for i := range t.CB {
		t.CB[i] = Instruction{Kind: KindNotImplemented}
	}
	buildPrimaryTable(&t.Primary)
	buildCBTable(&t.CB)
	return t
}

func buildPrimaryTable(p *[256]Instruction) {
	p[0x00] = Instruction{Kind: KindNOP}
	p[0x10] = Instruction{Kind: KindSTOP}
	p[0x76] = Instruction{Kind: KindHALT}
	p[0xF3] = Instruction{Kind: KindDI}
	p[0xFB] = Instruction{Kind: KindEI}
	p[0xCB] = Instruction{Kind: KindPrefixCB}

	p[0x07] = Instruction{Kind: KindRLCA}
	p[0x0F] = Instruction{Kind: KindRRCA}
	p[0x17] = Instruction{Kind: KindRLA}
	p[0x1F] = Instruction{Kind: KindRRA}
	p[0x27] = Instruction{Kind: KindDAA}
	p[0x2F] = Instruction{Kind: KindCPL}
	p[0x37] = Instruction{Kind: KindSCF}
	p[0x3F] = Instruction{Kind: KindCCF}

	p[0x18] = Instruction{Kind: KindJR, Cond: CondNone}
	p[0xC3] = Instruction{Kind: KindJP, Cond: CondNone}
	p[0xE9] = Instruction{Kind: KindJPHL}
	p[0xCD] = Instruction{Kind: KindCALL, Cond: CondNone}
	p[0xC9] = Instruction{Kind: KindRET, Cond: CondNone}
	p[0xD9] = Instruction{Kind: KindRETI}

	p[0x08] = Instruction{Kind: KindLDSPImm16}
	p[0xE0] = Instruction{Kind: KindLDH, Dst: OpNone, Src: OpA}
	p[0xF0] = Instruction{Kind: KindLDH, Dst: OpA, Src: OpNone}
	p[0xE2] = Instruction{Kind: KindLDIndCHigh, Dst: OpNone, Src: OpA}
	p[0xF2] = Instruction{Kind: KindLDIndCHigh, Dst: OpA, Src: OpNone}
	p[0xEA] = Instruction{Kind: KindLDIndImm16, Dst: OpNone, Src: OpA}
	p[0xFA] = Instruction{Kind: KindLDIndImm16, Dst: OpA, Src: OpNone}
	p[0xE8] = Instruction{Kind: KindADDSPOffset}
	p[0xF8] = Instruction{Kind: KindLDHLFromSPOffset}
	p[0xF9] = Instruction{Kind: KindLDSPFromHL}

	// LD rr,nn / LD (rr),A or (HL+/-),A / LD A,(rr) or (HL+/-) / INC rr / DEC rr / ADD HL,rr.
	for i, rr := range reg16ByIndex {
		base := byte(i) * 0x10
		p[base+0x01] = Instruction{Kind: KindLD16, Dst: rr, Src: OpImm16}
		p[base+0x03] = Instruction{Kind: KindINC16, Dst: rr}
		p[base+0x0B] = Instruction{Kind: KindDEC16, Dst: rr}
		p[base+0x09] = Instruction{Kind: KindADD16, Src: rr}
	}
	p[0x02] = Instruction{Kind: KindLD8, Dst: OpIndBC, Src: OpA}
	p[0x12] = Instruction{Kind: KindLD8, Dst: OpIndDE, Src: OpA}
	p[0x22] = Instruction{Kind: KindLDHLIncFromA}
	p[0x32] = Instruction{Kind: KindLDHLDecFromA}
	p[0x0A] = Instruction{Kind: KindLD8, Dst: OpA, Src: OpIndBC}
	p[0x1A] = Instruction{Kind: KindLD8, Dst: OpA, Src: OpIndDE}
	p[0x2A] = Instruction{Kind: KindLDAFromHLInc}
	p[0x3A] = Instruction{Kind: KindLDAFromHLDec}

	// INC r / DEC r / LD r,n over the 8 register slots (including (HL)).
	for i, r := range reg8ByIndex {
		base := byte(i) * 0x08
		p[base+0x04] = Instruction{Kind: KindINC8, Dst: r}
		p[base+0x05] = Instruction{Kind: KindDEC8, Dst: r}
		p[base+0x06] = Instruction{Kind: KindLD8, Dst: r, Src: OpImm8}
	}

	// LD r,r' grid, 0x40-0x7F, except 0x76 (HALT) already assigned above.
	for dstIdx, dst := range reg8ByIndex {
		for srcIdx, src := range reg8ByIndex {
			op := byte(0x40 + dstIdx*8 + srcIdx)
			if op == 0x76 {
				continue
			}
			p[op] = Instruction{Kind: KindLD8, Dst: dst, Src: src}
		}
	}

	// ALU A,r grid, 0x80-0xBF.
	for row, kind := range aluKindByRow {
		for srcIdx, src := range reg8ByIndex {
			op := byte(0x80 + row*8 + srcIdx)
			p[op] = Instruction{Kind: kind, Dst: OpA, Src: src}
		}
	}

	// ALU A,n immediates, 0xC6/0xCE/.../0xFE.
	for row, kind := range aluKindByRow {
		op := byte(0xC6 + row*8)
		p[op] = Instruction{Kind: kind, Dst: OpA, Src: OpImm8}
	}

	// JR cc,e / JP cc,nn / CALL cc,nn / RET cc / PUSH rr / POP rr / RST n.
	for i, cond := range condByIndex {
		p[0x20+byte(i)*8] = Instruction{Kind: KindJR, Cond: cond}
		p[0xC2+byte(i)*8] = Instruction{Kind: KindJP, Cond: cond}
		p[0xC4+byte(i)*8] = Instruction{Kind: KindCALL, Cond: cond}
		p[0xC0+byte(i)*8] = Instruction{Kind: KindRET, Cond: cond}
	}
	for i, rr := range stackReg16ByIndex {
		p[0xC1+byte(i)*0x10] = Instruction{Kind: KindPOP, Dst: rr}
		p[0xC5+byte(i)*0x10] = Instruction{Kind: KindPUSH, Dst: rr}
	}
	for i := 0; i < 8; i++ {
		op := byte(0xC7 + i*8)
		p[op] = Instruction{Kind: KindRST, Vector: byte(i) * 8}
	}
}

func buildCBTable(cb *[256]Instruction) {
	for row, kind := range cbKindByRow {
		for srcIdx, src := range reg8ByIndex {
			op := byte(row*8 + srcIdx)
			cb[op] = Instruction{Kind: kind, Dst: src}
		}
	}
	for bit := uint(0); bit < 8; bit++ {
		for srcIdx, src := range reg8ByIndex {
			base := byte(bit*8) + byte(srcIdx)
			cb[0x40+base] = Instruction{Kind: KindBIT, Dst: src, Bit: bit}
			cb[0x80+base] = Instruction{Kind: KindRES, Dst: src, Bit: bit}
			cb[0xC0+base] = Instruction{Kind: KindSET, Dst: src, Bit: bit}
		}
	}
}
