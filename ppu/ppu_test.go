package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeRotation(t *testing.T) {
	p := New()
	p.lcdc = lcdcDisplayOn

	assert.Equal(t, ModeOAM, p.mode)

	p.Step(oamCycles)
	assert.Equal(t, ModeTransfer, p.mode)

	p.Step(transferCycles)
	assert.Equal(t, ModeHBlank, p.mode)

	p.Step(hblankCycles)
	assert.Equal(t, ModeOAM, p.mode)
	assert.Equal(t, byte(1), p.ly)
}

func TestEntersVBlankAfter144Lines(t *testing.T) {
	p := New()
	p.lcdc = lcdcDisplayOn

	for i := 0; i < ScreenHeight; i++ {
		p.Step(oamCycles)
		p.Step(transferCycles)
		p.Step(hblankCycles)
	}

	assert.Equal(t, ModeVBlank, p.mode)
	assert.Equal(t, byte(ScreenHeight), p.ly)
	assert.True(t, p.FrameReady())
}

func TestVBlankReturnsToOAMAtLine154(t *testing.T) {
	p := New()
	p.lcdc = lcdcDisplayOn
	p.mode = ModeVBlank
	p.ly = ScreenHeight

	for i := 0; i < vblankLines; i++ {
		p.Step(vblankCycles)
	}

	assert.Equal(t, ModeOAM, p.mode)
	assert.Equal(t, byte(0), p.ly)
}

func TestLYWriteResetsToZero(t *testing.T) {
	p := New()
	p.ly = 42
	p.WriteRegister(RegLY, 99)
	assert.Equal(t, byte(0), p.ly)
}

func TestSTATLowBitsReadOnly(t *testing.T) {
	p := New()
	p.mode = ModeTransfer
	p.WriteRegister(RegSTAT, 0xFF)
	assert.Equal(t, byte(ModeTransfer), p.ReadRegister(RegSTAT)&0x3)
	assert.Equal(t, byte(0xF8), p.stat&0xF8)
}

func TestBackgroundTileDecodeUnsignedMode(t *testing.T) {
	p := New()
	p.lcdc = lcdcDisplayOn | lcdcBGEnable | lcdcTileData // unsigned 0x8000 mode, map at 0x9800

	// tile 1 at 0x8000+16, row 0: bitplane low=0xFF, high=0x00 -> color
	// index 1 for every pixel in that row
	p.vram[0x9800&0x1FFF] = 1
	p.vram[(0x8000+16)&0x1FFF] = 0xFF
	p.vram[(0x8000+16+1)&0x1FFF] = 0x00
	p.bgp = 0b11_10_01_00 // color index 1 maps to the "01" field -> shade 1

	p.ly = 0
	p.renderScanline()

	assert.Equal(t, byte(1), p.Frame[0][0])
}

func TestLCDOffRendersBlank(t *testing.T) {
	p := New()
	p.lcdc = 0
	p.vram[0x9800&0x1FFF] = 1
	p.renderScanline()
	for x := 0; x < ScreenWidth; x++ {
		assert.Equal(t, byte(0), p.Frame[0][x])
	}
}

// TestBGDisabledWithBGPNonzeroRendersBlank guards against routing the
// BG-disabled case through shade(), which would pick up BGP's low bits
// (color index 0's field) instead of the literal 0 the LCD requires.
func TestBGDisabledWithBGPNonzeroRendersBlank(t *testing.T) {
	p := New()
	p.lcdc = lcdcDisplayOn // BG bit clear, window bit clear
	p.bgp = 0xFF           // every color index, including 0, maps to shade 3

	p.ly = 0
	p.renderScanline()

	for x := 0; x < ScreenWidth; x++ {
		assert.Equal(t, byte(0), p.Frame[0][x])
		assert.Equal(t, byte(0), p.bgColorIndex[x])
	}
}

func TestOAMDMATargetsAreReadableBack(t *testing.T) {
	p := New()
	p.WriteOAM8(0xFE00, 0x42)
	assert.Equal(t, byte(0x42), p.ReadOAM8(0xFE00))
}

func TestLCDDisabledForcesLYModeAndIsANoOp(t *testing.T) {
	p := New()
	p.lcdc = lcdcDisplayOn
	p.Step(oamCycles) // mode 3 now
	p.lcdc = 0

	p.Step(1000)
	assert.Equal(t, byte(0), p.ly)
	assert.Equal(t, ModeHBlank, p.mode)
	assert.Equal(t, uint32(0), p.modeClock)

	p.Step(1000) // still a no-op
	assert.Equal(t, byte(0), p.ly)
}

// TestFullFrameTick exercises spec.md §8 scenario 6: feeding exactly one
// frame's worth of T-cycles (in 4-T units, matching how Cpu.Step reports
// cycles) walks LY through 0..153 and back to 0 exactly once, latching
// a frame.
func TestFullFrameTick(t *testing.T) {
	p := New()
	p.lcdc = lcdcDisplayOn
	p.scy, p.scx = 0, 0
	p.bgp = 0xE4

	const totalTCycles = 144*456 + 10*456
	seenVBlank := false
	for fed := uint32(0); fed < totalTCycles; fed += 4 {
		p.Step(4)
		if p.ly >= ScreenHeight {
			seenVBlank = true
		}
	}

	assert.True(t, seenVBlank)
	assert.Equal(t, byte(0), p.ly)
	assert.Equal(t, ModeOAM, p.mode)
	assert.True(t, p.FrameReady())
}
