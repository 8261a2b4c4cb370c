package cpu

import "dmgcore/internal/byteutil"

// fakeBus is a flat 64KiB RAM array standing in for the MMU in unit
// tests that only care about CPU behavior, not memory-map dispatch.
type fakeBus struct {
	mem [0x10000]byte
}

func (b *fakeBus) Read8(addr uint16) byte  { return b.mem[addr] }
func (b *fakeBus) Write8(addr uint16, v byte) { b.mem[addr] = v }
func (b *fakeBus) Read16(addr uint16) uint16 {
	return byteutil.CombineLittle(b.mem[addr], b.mem[addr+1])
}
func (b *fakeBus) Write16(addr uint16, v uint16) {
	hi, lo := byteutil.SplitWord(v)
	b.mem[addr] = lo
	b.mem[addr+1] = hi
}

func (b *fakeBus) loadProgram(at uint16, bytes ...byte) {
	copy(b.mem[at:], bytes)
}
