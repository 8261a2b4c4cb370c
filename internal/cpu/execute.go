package cpu

import "dmgcore/internal/byteutil"

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func isIndirect(op Operand) bool {
	return op == OpIndHL || op == OpIndBC || op == OpIndDE
}

// Execute runs the instruction against the given CPU and bus, using the
// already-fetched immediate bytes, and returns the machine-cycle cost.
func (ins Instruction) Execute(c *CPU, bus Bus, imm []byte) int {
	switch ins.Kind {
	case KindNOP:
		return 4

	case KindLD8:
		v := c.get8(ins.Src, bus, imm)
		c.set8(ins.Dst, bus, v)
		cost := 4
		if isIndirect(ins.Dst) {
			cost += 4
		}
		if isIndirect(ins.Src) || ins.Src == OpImm8 {
			cost += 4
		}
		return cost

	case KindLD16:
		v := byteutil.CombineLittle(imm[0], imm[1])
		c.set16(ins.Dst, v)
		return 12

	case KindLDH:
		addr := 0xFF00 + uint16(imm[0])
		if ins.Dst == OpA {
			c.A = bus.Read8(addr)
		} else {
			bus.Write8(addr, c.A)
		}
		return 12

	case KindLDIndCHigh:
		addr := 0xFF00 + uint16(c.C)
		if ins.Dst == OpA {
			c.A = bus.Read8(addr)
		} else {
			bus.Write8(addr, c.A)
		}
		return 8

	case KindLDIndImm16:
		addr := byteutil.CombineLittle(imm[0], imm[1])
		if ins.Dst == OpA {
			c.A = bus.Read8(addr)
		} else {
			bus.Write8(addr, c.A)
		}
		return 16

	case KindLDSPImm16:
		addr := byteutil.CombineLittle(imm[0], imm[1])
		bus.Write16(addr, c.SP)
		return 20

	case KindLDHLIncFromA:
		bus.Write8(c.HL(), c.A)
		c.SetHL(c.HL() + 1)
		return 8

	case KindLDHLDecFromA:
		bus.Write8(c.HL(), c.A)
		c.SetHL(c.HL() - 1)
		return 8

	case KindLDAFromHLInc:
		c.A = bus.Read8(c.HL())
		c.SetHL(c.HL() + 1)
		return 8

	case KindLDAFromHLDec:
		c.A = bus.Read8(c.HL())
		c.SetHL(c.HL() - 1)
		return 8

	case KindLDSPFromHL:
		c.SP = c.HL()
		return 8

	case KindLDHLFromSPOffset:
		result, h, cy := addSPOffset(c.SP, imm[0])
		c.SetHL(result)
		c.SetFlag(FlagZ, false)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, h)
		c.SetFlag(FlagC, cy)
		return 12

	case KindADDSPOffset:
		result, h, cy := addSPOffset(c.SP, imm[0])
		c.SP = result
		c.SetFlag(FlagZ, false)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, h)
		c.SetFlag(FlagC, cy)
		return 16

	case KindINC8:
		v := c.get8(ins.Dst, bus, imm)
		result := v + 1
		c.set8(ins.Dst, bus, result)
		c.SetFlag(FlagZ, result == 0)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, result&0x0F == 0)
		if ins.Dst == OpIndHL {
			return 12
		}
		return 4

	case KindDEC8:
		v := c.get8(ins.Dst, bus, imm)
		result := v - 1
		c.set8(ins.Dst, bus, result)
		c.SetFlag(FlagZ, result == 0)
		c.SetFlag(FlagN, true)
		c.SetFlag(FlagH, result&0x0F == 0x0F)
		if ins.Dst == OpIndHL {
			return 12
		}
		return 4

	case KindINC16:
		c.set16(ins.Dst, c.get16(ins.Dst)+1)
		return 8

	case KindDEC16:
		c.set16(ins.Dst, c.get16(ins.Dst)-1)
		return 8

	case KindADD:
		v := c.get8(ins.Src, bus, imm)
		sum := int(c.A) + int(v)
		result := byte(sum)
		c.SetFlag(FlagZ, result == 0)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, (c.A&0x0F)+(v&0x0F) > 0x0F)
		c.SetFlag(FlagC, sum > 0xFF)
		c.A = result
		return aluCost(ins.Src)

	case KindADC:
		v := c.get8(ins.Src, bus, imm)
		cy := boolToByte(c.Flag(FlagC))
		sum := int(c.A) + int(v) + int(cy)
		result := byte(sum)
		c.SetFlag(FlagZ, result == 0)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, (c.A&0x0F)+(v&0x0F)+cy > 0x0F)
		c.SetFlag(FlagC, sum > 0xFF)
		c.A = result
		return aluCost(ins.Src)

	case KindSUB:
		v := c.get8(ins.Src, bus, imm)
		result := c.A - v
		c.SetFlag(FlagZ, result == 0)
		c.SetFlag(FlagN, true)
		c.SetFlag(FlagH, (c.A&0x0F) < (v&0x0F))
		c.SetFlag(FlagC, v > c.A)
		c.A = result
		return aluCost(ins.Src)

	case KindSBC:
		v := c.get8(ins.Src, bus, imm)
		cy := boolToByte(c.Flag(FlagC))
		result := c.A - v - cy
		c.SetFlag(FlagZ, result == 0)
		c.SetFlag(FlagN, true)
		c.SetFlag(FlagH, (c.A&0x0F) < (v&0x0F)+cy)
		c.SetFlag(FlagC, int(v)+int(cy) > int(c.A))
		c.A = result
		return aluCost(ins.Src)

	case KindAND:
		v := c.get8(ins.Src, bus, imm)
		c.A &= v
		c.SetFlag(FlagZ, c.A == 0)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, true)
		c.SetFlag(FlagC, false)
		return aluCost(ins.Src)

	case KindOR:
		v := c.get8(ins.Src, bus, imm)
		c.A |= v
		c.SetFlag(FlagZ, c.A == 0)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, false)
		c.SetFlag(FlagC, false)
		return aluCost(ins.Src)

	case KindXOR:
		v := c.get8(ins.Src, bus, imm)
		c.A ^= v
		c.SetFlag(FlagZ, c.A == 0)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, false)
		c.SetFlag(FlagC, false)
		return aluCost(ins.Src)

	case KindCP:
		v := c.get8(ins.Src, bus, imm)
		c.SetFlag(FlagZ, c.A == v)
		c.SetFlag(FlagN, true)
		c.SetFlag(FlagH, (c.A&0x0F) < (v&0x0F))
		c.SetFlag(FlagC, v > c.A)
		return aluCost(ins.Src)

	case KindADD16:
		hl := c.HL()
		rr := c.get16(ins.Src)
		sum := int(hl) + int(rr)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, (hl&0x0FFF)+(rr&0x0FFF) > 0x0FFF)
		c.SetFlag(FlagC, sum > 0xFFFF)
		c.SetHL(uint16(sum))
		return 8

	case KindJR:
		taken := c.checkCond(ins.Cond)
		if taken {
			c.PC = byteutil.AddSigned(c.PC, int8(imm[0]))
			return 12
		}
		return 8

	case KindJP:
		taken := c.checkCond(ins.Cond)
		if taken {
			c.PC = byteutil.CombineLittle(imm[0], imm[1])
			return 16
		}
		return 12

	case KindJPHL:
		c.PC = c.HL()
		return 4

	case KindCALL:
		taken := c.checkCond(ins.Cond)
		if taken {
			target := byteutil.CombineLittle(imm[0], imm[1])
			c.push(bus, c.PC)
			if c.CallStack != nil {
				c.CallStack.PushCallFrame(c.PC, target)
			}
			c.PC = target
			return 24
		}
		return 12

	case KindRET:
		taken := c.checkCond(ins.Cond)
		if taken {
			c.PC = c.pop(bus)
			if c.CallStack != nil {
				c.CallStack.PopCallFrame()
			}
			if ins.Cond == CondNone {
				return 16
			}
			return 20
		}
		return 8

	case KindRETI:
		c.PC = c.pop(bus)
		if c.CallStack != nil {
			c.CallStack.PopCallFrame()
		}
		c.IME = true
		return 16

	case KindRST:
		c.push(bus, c.PC)
		if c.CallStack != nil {
			c.CallStack.PushCallFrame(c.PC, uint16(ins.Vector))
		}
		c.PC = uint16(ins.Vector)
		return 16

	case KindPUSH:
		c.push(bus, c.get16(ins.Dst))
		return 16

	case KindPOP:
		c.set16(ins.Dst, c.pop(bus))
		return 12

	case KindDAA:
		c.daa()
		return 4

	case KindCPL:
		c.A = ^c.A
		c.SetFlag(FlagN, true)
		c.SetFlag(FlagH, true)
		return 4

	case KindCCF:
		c.SetFlag(FlagC, !c.Flag(FlagC))
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, false)
		return 4

	case KindSCF:
		c.SetFlag(FlagC, true)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, false)
		return 4

	case KindRLCA:
		result, cy := rlc(c.A)
		c.A = result
		c.SetFlag(FlagZ, false)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, false)
		c.SetFlag(FlagC, cy)
		return 4

	case KindRRCA:
		result, cy := rrc(c.A)
		c.A = result
		c.SetFlag(FlagZ, false)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, false)
		c.SetFlag(FlagC, cy)
		return 4

	case KindRLA:
		result, cy := rl(c.A, c.Flag(FlagC))
		c.A = result
		c.SetFlag(FlagZ, false)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, false)
		c.SetFlag(FlagC, cy)
		return 4

	case KindRRA:
		result, cy := rr(c.A, c.Flag(FlagC))
		c.A = result
		c.SetFlag(FlagZ, false)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, false)
		c.SetFlag(FlagC, cy)
		return 4

	case KindDI:
		c.IME = false
		return 4

	case KindEI:
		c.IME = true
		return 4

	case KindRLC:
		v := c.get8(ins.Dst, bus, imm)
		result, cy := rlc(v)
		c.set8(ins.Dst, bus, result)
		c.setShiftFlags(result, cy)
		return cbCost(ins.Dst, false)

	case KindRRC:
		v := c.get8(ins.Dst, bus, imm)
		result, cy := rrc(v)
		c.set8(ins.Dst, bus, result)
		c.setShiftFlags(result, cy)
		return cbCost(ins.Dst, false)

	case KindRL:
		v := c.get8(ins.Dst, bus, imm)
		result, cy := rl(v, c.Flag(FlagC))
		c.set8(ins.Dst, bus, result)
		c.setShiftFlags(result, cy)
		return cbCost(ins.Dst, false)

	case KindRR:
		v := c.get8(ins.Dst, bus, imm)
		result, cy := rr(v, c.Flag(FlagC))
		c.set8(ins.Dst, bus, result)
		c.setShiftFlags(result, cy)
		return cbCost(ins.Dst, false)

	case KindSLA:
		v := c.get8(ins.Dst, bus, imm)
		cy := v&0x80 != 0
		result := v << 1
		c.set8(ins.Dst, bus, result)
		c.setShiftFlags(result, cy)
		return cbCost(ins.Dst, false)

	case KindSRA:
		v := c.get8(ins.Dst, bus, imm)
		cy := v&0x01 != 0
		result := (v >> 1) | (v & 0x80)
		c.set8(ins.Dst, bus, result)
		c.setShiftFlags(result, cy)
		return cbCost(ins.Dst, false)

	case KindSRL:
		v := c.get8(ins.Dst, bus, imm)
		cy := v&0x01 != 0
		result := v >> 1
		c.set8(ins.Dst, bus, result)
		c.setShiftFlags(result, cy)
		return cbCost(ins.Dst, false)

	case KindSWAP:
		v := c.get8(ins.Dst, bus, imm)
		result := (v << 4) | (v >> 4)
		c.set8(ins.Dst, bus, result)
		c.SetFlag(FlagZ, result == 0)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, false)
		c.SetFlag(FlagC, false)
		return cbCost(ins.Dst, false)

	case KindBIT:
		v := c.get8(ins.Dst, bus, imm)
		c.SetFlag(FlagZ, !byteutil.CheckBit(v, ins.Bit))
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, true)
		return cbCost(ins.Dst, true)

	case KindRES:
		v := c.get8(ins.Dst, bus, imm)
		c.set8(ins.Dst, bus, byteutil.SetBit(v, ins.Bit, false))
		return cbCost(ins.Dst, false)

	case KindSET:
		v := c.get8(ins.Dst, bus, imm)
		c.set8(ins.Dst, bus, byteutil.SetBit(v, ins.Bit, true))
		return cbCost(ins.Dst, false)

	case KindSTOP:
		return 4

	default:
		return 4
	}
}

func aluCost(src Operand) int {
	if src == OpIndHL || src == OpImm8 {
		return 8
	}
	return 4
}

func cbCost(dst Operand, isBit bool) int {
	if dst != OpIndHL {
		return 8
	}
	if isBit {
		return 12
	}
	return 16
}

func (c *CPU) setShiftFlags(result byte, carry bool) {
	c.SetFlag(FlagZ, result == 0)
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagC, carry)
}

func rlc(v byte) (result byte, carry bool) {
	carry = v&0x80 != 0
	result = (v << 1) | boolToByte(carry)
	return
}

func rrc(v byte) (result byte, carry bool) {
	carry = v&0x01 != 0
	result = (v >> 1) | (boolToByte(carry) << 7)
	return
}

func rl(v byte, carryIn bool) (result byte, carry bool) {
	carry = v&0x80 != 0
	result = (v << 1) | boolToByte(carryIn)
	return
}

func rr(v byte, carryIn bool) (result byte, carry bool) {
	carry = v&0x01 != 0
	result = (v >> 1) | (boolToByte(carryIn) << 7)
	return
}

// addSPOffset computes SP + signed immediate the way real hardware
// does: the result is a sign-extended 16-bit add, but H/C flags are
// computed as if it were an 8-bit unsigned add of SP's low byte and the
// raw immediate byte.
func addSPOffset(sp uint16, raw byte) (result uint16, h, c bool) {
	result = byteutil.AddSigned(sp, int8(raw))
	h = (sp&0x0F)+(uint16(raw)&0x0F) > 0x0F
	c = (sp&0xFF)+uint16(raw) > 0xFF
	return
}

// daa adjusts A after BCD arithmetic per the documented DMG algorithm,
// using the existing N/H/C flags to decide the correction.
func (c *CPU) daa() {
	n := c.Flag(FlagN)
	h := c.Flag(FlagH)
	cy := c.Flag(FlagC)

	var correction byte
	carry := cy
	if h || (!n && (c.A&0x0F) > 0x09) {
		correction |= 0x06
	}
	if cy || (!n && c.A > 0x99) {
		correction |= 0x60
		carry = true
	}
	if n {
		c.A -= correction
	} else {
		c.A += correction
	}

	c.SetFlag(FlagZ, c.A == 0)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagC, carry)
}
