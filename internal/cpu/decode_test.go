package cpu

import "testing"

func TestDecodeTablesHaveNoUnexpectedGaps(t *testing.T) {
	tables := NewDecodeTables()

	// A handful of opcodes genuinely have no DMG meaning and are
	// expected to remain NotImplemented.
	illegal := map[byte]bool{
		0xD3: true, 0xDB: true, 0xDD: true,
		0xE3: true, 0xE4: true, 0xEB: true, 0xEC: true, 0xED: true,
		0xF4: true, 0xFC: true, 0xFD: true,
	}

	for op := 0; op < 256; op++ {
		ins := tables.Primary[op]
		if ins.Kind == KindNotImplemented && !illegal[byte(op)] {
			t.Errorf("primary opcode 0x%02X decoded as NotImplemented", op)
		}
	}

	// Every CB-prefixed opcode is legal DMG hardware; none should be
	// left as NotImplemented.
	for op := 0; op < 256; op++ {
		if tables.CB[op].Kind == KindNotImplemented {
			t.Errorf("CB opcode 0x%02X decoded as NotImplemented", op)
		}
	}
}

func TestDecodeSpotChecks(t *testing.T) {
	tables := NewDecodeTables()

	cases := []struct {
		op   byte
		kind Kind
	}{
		{0x00, KindNOP},
		{0x76, KindHALT},
		{0xCB, KindPrefixCB},
		{0xF3, KindDI},
		{0xFB, KindEI},
		{0xC3, KindJP},
		{0x18, KindJR},
		{0xCD, KindCALL},
		{0xC9, KindRET},
		{0xD9, KindRETI},
		{0x01, KindLD16},
		{0x21, KindLD16},
		{0x31, KindLD16},
		{0x02, KindLD8},
		{0x22, KindLDHLIncFromA},
		{0x32, KindLDHLDecFromA},
		{0x2A, KindLDAFromHLInc},
		{0x3A, KindLDAFromHLDec},
		{0x80, KindADD},
		{0xA8, KindXOR},
		{0xB8, KindCP},
		{0xC7, KindRST},
		{0xFF, KindRST},
	}
	for _, tc := range cases {
		if got := tables.Primary[tc.op].Kind; got != tc.kind {
			t.Errorf("opcode 0x%02X = %v, want %v", tc.op, got, tc.kind)
		}
	}

	cbCases := []struct {
		op   byte
		kind Kind
		bit  uint
	}{
		{0x00, KindRLC, 0},
		{0x38, KindSRL, 0},
		{0x40, KindBIT, 0},
		{0x7F, KindBIT, 7},
		{0x80, KindRES, 0},
		{0xC0, KindSET, 0},
	}
	for _, tc := range cbCases {
		ins := tables.CB[tc.op]
		if ins.Kind != tc.kind {
			t.Errorf("CB opcode 0x%02X kind = %v, want %v", tc.op, ins.Kind, tc.kind)
		}
		if ins.Kind == KindBIT && ins.Bit != tc.bit {
			t.Errorf("CB opcode 0x%02X bit = %d, want %d", tc.op, ins.Bit, tc.bit)
		}
	}
}

func TestRSTVectorsCoverAllEightSlots(t *testing.T) {
	tables := NewDecodeTables()
	for i := 0; i < 8; i++ {
		op := byte(0xC7 + i*8)
		ins := tables.Primary[op]
		if ins.Kind != KindRST {
			t.Fatalf("opcode 0x%02X = %v, want RST", op, ins.Kind)
		}
		if ins.Vector != byte(i)*8 {
			t.Errorf("RST opcode 0x%02X vector = %02X, want %02X", op, ins.Vector, byte(i)*8)
		}
	}
}
