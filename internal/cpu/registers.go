package cpu

import "dmgcore/internal/byteutil"

// Flag bit positions within the F register. The low nibble of F is always
// zero; only bits 4-7 carry meaning.
const (
	FlagZ = 7
	FlagN = 6
	FlagH = 5
	FlagC = 4
)

// Registers holds the eight 8-bit registers, the stack pointer and the
// program counter of the DMG CPU. A, B, C, D, E, F, H, L pair up into the
// 16-bit views AF, BC, DE, HL.
type Registers struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte
	SP   uint16
	PC   uint16
}

// Reset sets every register to its documented power-on value. Cartridge
// boot hands off at PC 0x0000 and relies on the boot ROM overlay to run
// the real DMG bootstrap; this only establishes SP per spec.
func (r *Registers) Reset() {
	*r = Registers{SP: 0xFFFE, PC: 0x0000}
}

func (r *Registers) AF() uint16 { return byteutil.CombineLittle(r.F&0xF0, r.A) }
func (r *Registers) BC() uint16 { return byteutil.CombineLittle(r.C, r.B) }
func (r *Registers) DE() uint16 { return byteutil.CombineLittle(r.E, r.D) }
func (r *Registers) HL() uint16 { return byteutil.CombineLittle(r.L, r.H) }

func (r *Registers) SetAF(v uint16) {
	r.A = byte(v >> 8)
	r.F = byte(v) & 0xF0
}

func (r *Registers) SetBC(v uint16) {
	r.B = byte(v >> 8)
	r.C = byte(v)
}

func (r *Registers) SetDE(v uint16) {
	r.D = byte(v >> 8)
	r.E = byte(v)
}

func (r *Registers) SetHL(v uint16) {
	r.H = byte(v >> 8)
	r.L = byte(v)
}

// Flag reads one of the four condition flags out of F.
func (r *Registers) Flag(bit uint) bool {
	return byteutil.CheckBit(r.F, bit)
}

// SetFlag writes one of the four condition flags into F, keeping the
// unused low nibble clear.
func (r *Registers) SetFlag(bit uint, on bool) {
	r.F = byteutil.SetBit(r.F, bit, on) & 0xF0
}

// IncSP/DecSP advance the stack pointer by a 16-bit push/pop, wrapping at
// the 16-bit boundary the way real hardware does.
func (r *Registers) IncSP() { r.SP += 2 }
func (r *Registers) DecSP() { r.SP -= 2 }
