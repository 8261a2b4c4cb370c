package ppu

import "testing"

func TestNewStartsInOAMModeAtLineZero(t *testing.T) {
	p := New()
	if p.Mode() != ModeOAM {
		t.Fatalf("Mode() = %v, want ModeOAM", p.Mode())
	}
	if p.LY() != 0 {
		t.Fatalf("LY() = %d, want 0", p.LY())
	}
}

func TestTickDoesNothingWhileLCDDisabled(t *testing.T) {
	p := New()
	bus := newFakeBus()
	bus.regs[regLCDC] = 0 // disabled
	p.Tick(1000, bus)
	if p.Mode() != ModeOAM {
		t.Fatalf("Mode() = %v, want ModeOAM (disabled LCD should not advance)", p.Mode())
	}
}

func TestModeAdvancesOAMToVRAMAtEightyCycles(t *testing.T) {
	p := New()
	bus := newFakeBus()
	p.Tick(79, bus)
	if p.Mode() != ModeOAM {
		t.Fatalf("Mode() after 79 cycles = %v, want still ModeOAM", p.Mode())
	}
	p.Tick(1, bus)
	if p.Mode() != ModeVRAM {
		t.Fatalf("Mode() after 80 cycles = %v, want ModeVRAM", p.Mode())
	}
}

func TestFullScanlineReachesHBlankThenNextOAM(t *testing.T) {
	p := New()
	bus := newFakeBus()
	p.Tick(80, bus)  // OAM -> VRAM
	p.Tick(172, bus) // VRAM -> HBlank (80+172=252 threshold)
	if p.Mode() != ModeHBlank {
		t.Fatalf("Mode() = %v, want ModeHBlank", p.Mode())
	}
	p.Tick(204, bus) // HBlank -> next line's OAM (456 total for the line)
	if p.Mode() != ModeOAM {
		t.Fatalf("Mode() = %v, want ModeOAM for line 1", p.Mode())
	}
	if p.LY() != 1 {
		t.Fatalf("LY() = %d, want 1", p.LY())
	}
}

func TestFrameAvailableLatchesAtLineOneFourtyFour(t *testing.T) {
	p := New()
	bus := newFakeBus()
	for line := 0; line < 144; line++ {
		p.Tick(456, bus)
	}
	if !p.FrameAvailable {
		t.Fatalf("FrameAvailable should be true once LY reaches 144")
	}
	if p.Mode() != ModeVBlank {
		t.Fatalf("Mode() = %v, want ModeVBlank", p.Mode())
	}
}

func TestVBlankWrapsBackToLineZeroAfterLineOneFiftyThree(t *testing.T) {
	p := New()
	bus := newFakeBus()
	for line := 0; line < 154; line++ {
		p.Tick(456, bus)
	}
	if p.LY() != 0 {
		t.Fatalf("LY() = %d, want 0 after full VBlank sweep", p.LY())
	}
	if p.Mode() != ModeOAM {
		t.Fatalf("Mode() = %v, want ModeOAM after VBlank wraps", p.Mode())
	}
}

func TestSTATLYCBitSetsWhenLYMatchesLYC(t *testing.T) {
	p := New()
	bus := newFakeBus()
	bus.regs[0xFF45] = 0 // LYC = 0, matches LY = 0 immediately
	p.Tick(80, bus)
	if bus.regs[regSTAT]&0x04 == 0 {
		t.Fatalf("STAT coincidence bit should be set when LY == LYC")
	}
}

func TestRenderScanlineWritesFramebufferRowFromBackgroundTile(t *testing.T) {
	p := New()
	bus := newFakeBus()
	// Tile 0: every pixel color index 3 (both bit planes all-ones).
	var solid Tile
	for i := range solid.Data {
		solid.Data[i] = 0xFF
	}
	bus.regs[regLCDC] |= lcdcTileDataSel // use unsigned $8000 addressing
	bus.tiles[0x8000] = solid
	bus.regs[regBGP] = 0xFF // every color index maps to ShadeBlack (3)

	p.Tick(80, bus)  // OAM -> VRAM
	p.Tick(172, bus) // VRAM -> HBlank, renders line 0

	for i := 0; i < ScreenWidth; i++ {
		if p.Framebuffer[i] != ShadeBlack {
			t.Fatalf("Framebuffer[%d] = %v, want ShadeBlack", i, p.Framebuffer[i])
		}
	}
}

func TestWindowOverridesBackgroundOnceColumnReachesWX(t *testing.T) {
	p := New()
	bus := newFakeBus()
	bus.regs[regLCDC] = lcdcEnable | lcdcWindowEnable | lcdcWindowTileMap | lcdcTileDataSel
	bus.regs[regWY] = 0
	bus.regs[regWX] = 7 // window starts at screen column 0 (WX-7)

	var bgTile, winTile Tile
	for i := range bgTile.Data {
		bgTile.Data[i] = 0x00 // every pixel color index 0
	}
	for i := range winTile.Data {
		winTile.Data[i] = 0xFF // every pixel color index 3
	}
	bus.tiles[0x8000] = bgTile // background tile map (index 0) points here
	bus.tiles[0x8010] = winTile
	bus.tileMap[1][0] = 1 // window's (second) tile map entry -> tile 1

	bus.regs[regBGP] = 0xE4 // identity-ish: index n -> shade n

	p.Tick(80, bus)
	p.Tick(172, bus)

	if p.Framebuffer[0] != ShadeBlack {
		t.Fatalf("Framebuffer[0] = %v, want ShadeBlack (window tile, color index 3)", p.Framebuffer[0])
	}
}
