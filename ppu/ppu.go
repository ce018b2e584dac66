// Package ppu implements the four-phase scanline state machine that
// produces a 160x144 4-shade framebuffer from tile data, tile maps, scroll
// registers and palettes, the way original_source's GPU.cpp does -- with
// its mode-clock thresholds corrected to the canonical values spec.md's
// Open Questions settle on (80/172/204/456), not the conflicting
// 20/172/51/114 the original actually ships.
package ppu

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	vramSize = 0x2000
	oamSize  = 0xA0
)

// Mode values match STAT bits 0-1 (spec.md §4.4).
const (
	ModeHBlank byte = 0
	ModeVBlank byte = 1
	ModeOAM    byte = 2
	ModeTransfer byte = 3
)

const (
	oamCycles      = 80
	transferCycles = 172
	hblankCycles   = 204
	vblankCycles   = 456
	vblankLines    = 10
)

// Register addresses, per spec.md §4.2.
const (
	RegLCDC = 0xFF40
	RegSTAT = 0xFF41
	RegSCY  = 0xFF42
	RegSCX  = 0xFF43
	RegLY   = 0xFF44
	RegLYC  = 0xFF45
	RegDMA  = 0xFF46
	RegBGP  = 0xFF47
	RegOBP0 = 0xFF48
	RegOBP1 = 0xFF49
	RegWY   = 0xFF4A
	RegWX   = 0xFF4B
)

// LCDC bit masks.
const (
	lcdcBGEnable     = 1 << 0
	lcdcObjEnable    = 1 << 1
	lcdcObjSize      = 1 << 2
	lcdcBGMap        = 1 << 3
	lcdcTileData     = 1 << 4
	lcdcWindowEnable = 1 << 5
	lcdcWindowMap    = 1 << 6
	lcdcDisplayOn    = 1 << 7
)

// sprite attribute flag bits.
const (
	oamPriority = 1 << 7
	oamFlipY    = 1 << 6
	oamFlipX    = 1 << 5
	oamPalette  = 1 << 4
)

// PPU implements the scanline state machine plus the VRAM/OAM/IO registers
// spec.md §3/§4.2 delegate to it.
type PPU struct {
	mode      byte
	modeClock uint32

	lcdc, stat              byte
	scy, scx                byte
	ly, lyc                 byte
	dma                     byte
	bgp, obp0, obp1         byte
	wy, wx                  byte

	vram [vramSize]byte
	oam  [oamSize]byte

	Frame      [ScreenHeight][ScreenWidth]byte
	frameReady bool

	// bgColorIndex holds the raw (pre-palette) background/window color
	// index for the line currently being rendered, so sprite priority
	// (OAM attribute bit 7) can tell "background pixel 0" apart from an
	// opaque background pixel that merely happens to shade the same.
	bgColorIndex [ScreenWidth]byte
}

// New returns a PPU in its post-Reset state.
func New() *PPU {
	p := &PPU{}
	p.Reset()
	return p
}

// Reset clears VRAM/OAM and every register, and re-enters OAM-scan at line
// 0.
func (p *PPU) Reset() {
	p.vram = [vramSize]byte{}
	p.oam = [oamSize]byte{}
	p.mode = ModeOAM
	p.modeClock = 0
	p.lcdc, p.stat = 0, 0
	p.scy, p.scx = 0, 0
	p.ly, p.lyc = 0, 0
	p.dma = 0
	p.bgp, p.obp0, p.obp1 = 0, 0, 0
	p.wy, p.wx = 0, 0
	p.Frame = [ScreenHeight][ScreenWidth]byte{}
	p.frameReady = false
}

// Step advances the scanline state machine by cycles T-states, rendering a
// scanline on the pixel-transfer->H-blank transition and latching a
// completed frame when V-blank is entered (spec.md §4.4).
func (p *PPU) Step(cycles uint32) {
	if p.lcdc&lcdcDisplayOn == 0 {
		p.ly = 0
		p.mode = ModeHBlank
		p.modeClock = 0
		p.updateCoincidence()
		return
	}

	p.modeClock += cycles

	switch p.mode {
	case ModeOAM:
		if p.modeClock >= oamCycles {
			p.modeClock -= oamCycles
			p.mode = ModeTransfer
		}

	case ModeTransfer:
		if p.modeClock >= transferCycles {
			p.modeClock -= transferCycles
			p.mode = ModeHBlank
			p.renderScanline()
		}

	case ModeHBlank:
		if p.modeClock >= hblankCycles {
			p.modeClock -= hblankCycles
			p.ly++
			if p.ly == ScreenHeight {
				p.mode = ModeVBlank
				p.frameReady = true
			} else {
				p.mode = ModeOAM
			}
			p.updateCoincidence()
		}

	case ModeVBlank:
		if p.modeClock >= vblankCycles {
			p.modeClock -= vblankCycles
			p.ly++
			p.updateCoincidence()
			if p.ly >= ScreenHeight+vblankLines {
				p.ly = 0
				p.mode = ModeOAM
				p.updateCoincidence()
			}
		}
	}
}

func (p *PPU) updateCoincidence() {
	if p.ly == p.lyc {
		p.stat |= 1 << 2
	} else {
		p.stat &^= 1 << 2
	}
}

// FrameReady reports whether a full frame has been produced since the last
// call to TakeFrame.
func (p *PPU) FrameReady() bool { return p.frameReady }

// TakeFrame returns a copy of the completed framebuffer and clears the
// ready latch.
func (p *PPU) TakeFrame() [ScreenHeight][ScreenWidth]byte {
	p.frameReady = false
	return p.Frame
}

// ReadVRAM8/WriteVRAM8 implement mem.Video for the 0x8000-0x9FFF window.
func (p *PPU) ReadVRAM8(addr uint16) byte     { return p.vram[addr&0x1FFF] }
func (p *PPU) WriteVRAM8(addr uint16, v byte) { p.vram[addr&0x1FFF] = v }

// ReadOAM8/WriteOAM8 implement mem.Video for the 0xFE00-0xFE9F window.
func (p *PPU) ReadOAM8(addr uint16) byte     { return p.oam[addr&0xFF] }
func (p *PPU) WriteOAM8(addr uint16, v byte) { p.oam[addr&0xFF] = v }

// ReadRegister/WriteRegister implement mem.Video for 0xFF40-0xFF4B.
func (p *PPU) ReadRegister(addr uint16) byte {
	switch addr {
	case RegLCDC:
		return p.lcdc
	case RegSTAT:
		return p.stat&0xFC | p.mode
	case RegSCY:
		return p.scy
	case RegSCX:
		return p.scx
	case RegLY:
		return p.ly
	case RegLYC:
		return p.lyc
	case RegDMA:
		return p.dma
	case RegBGP:
		return p.bgp
	case RegOBP0:
		return p.obp0
	case RegOBP1:
		return p.obp1
	case RegWY:
		return p.wy
	case RegWX:
		return p.wx
	}
	return 0xFF
}

func (p *PPU) WriteRegister(addr uint16, v byte) {
	switch addr {
	case RegLCDC:
		p.lcdc = v
	case RegSTAT:
		// Bits 0-2 (mode + coincidence flag) are hardware-controlled;
		// bits 3-7 are stored as written.
		p.stat = (p.stat & 0x07) | (v & 0xF8)
	case RegSCY:
		p.scy = v
	case RegSCX:
		p.scx = v
	case RegLY:
		p.ly = 0 // writes always reset LY
	case RegLYC:
		p.lyc = v
		p.updateCoincidence()
	case RegDMA:
		p.dma = v
	case RegBGP:
		p.bgp = v
	case RegOBP0:
		p.obp0 = v
	case RegOBP1:
		p.obp1 = v
	case RegWY:
		p.wy = v
	case RegWX:
		p.wx = v
	}
}
