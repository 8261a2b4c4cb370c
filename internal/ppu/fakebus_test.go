package ppu

// fakeBus is a minimal in-memory stand-in for the MMU, enough to drive
// PPU.Tick in isolation: a flat register file plus both tile maps and
// a set of tiles keyed by address, all addressable the way the real
// bus addresses them.
type fakeBus struct {
	regs    map[uint16]byte
	tiles   map[uint16]Tile
	tileMap [2][1024]byte
	ly      byte
}

func newFakeBus() *fakeBus {
	b := &fakeBus{regs: make(map[uint16]byte), tiles: make(map[uint16]Tile)}
	b.regs[regLCDC] = lcdcEnable
	return b
}

func (b *fakeBus) Read8(addr uint16) byte    { return b.regs[addr] }
func (b *fakeBus) Write8(addr uint16, v byte) { b.regs[addr] = v }
func (b *fakeBus) Tile(addr uint16) Tile      { return b.tiles[addr] }
func (b *fakeBus) TileMapEntry(useSecondMap bool, index int) byte {
	if useSecondMap {
		return b.tileMap[1][index]
	}
	return b.tileMap[0][index]
}
func (b *fakeBus) SetLY(v byte) { b.ly = v; b.regs[regLYtest] = v }

// regLYtest mirrors the real LY address (0xFF44) without depending on
// the memory package's constant.
const regLYtest = 0xFF44
