// Package mem implements the unified 16-bit address space: the dispatcher
// that routes every Cpu read/write to ROM, RAM, the PPU, or an I/O register,
// the way original_source's MMU.cpp switches on address&0xF000.
package mem

// Video is the structural interface mem.Bus depends on instead of the
// concrete ppu package, so that mem and ppu never import each other; only
// the machine package wires a concrete *ppu.PPU into a Bus. This mirrors
// original_source's MMU holding a GPU* and delegating VRAM/OAM/IO-register
// accesses to it.
type Video interface {
	ReadVRAM8(addr uint16) byte
	WriteVRAM8(addr uint16, v byte)
	ReadOAM8(addr uint16) byte
	WriteOAM8(addr uint16, v byte)
	ReadRegister(addr uint16) byte
	WriteRegister(addr uint16, v byte)
}

const (
	oamSize     = 0xA0
	bootROMSize = 0x100
	romSize     = 0x8000
	eramSize    = 0x2000
	wramSize    = 0x2000
	hramSize    = 0x7F
)

// A Bus is the Game Boy's single 64 kB address space. It has no clock of its
// own; every access is driven synchronously by the Cpu or by a direct poke
// from a host (e.g. to preload a test program).
type Bus struct {
	bios [bootROMSize]byte
	rom  [romSize]byte
	eram [eramSize]byte
	wram [wramSize]byte
	hram [hramSize]byte
	ie   byte

	hasBIOS bool
	inBIOS  bool

	Video Video
}

// New returns a Bus with no ROM, no BIOS and no Video attached yet; the
// caller (machine.New) wires Video before any Read/Write involving
// 0x8000-0x9FFF, 0xFE00-0xFE9F or 0xFF40-0xFF4B.
func New() *Bus {
	return &Bus{}
}

// LoadROM copies program into ROM space, truncating at 0x8000 (ROM-only
// cartridges; bank switching is out of scope, see spec.md Non-goals).
func (b *Bus) LoadROM(program []byte) {
	copy(b.rom[:], program)
}

// PokeROM writes directly into ROM space, bypassing the read-only dispatch
// in Write8. It exists for tests and the debugger, which both need to seed
// a program at an arbitrary offset; real instruction execution never calls
// it.
func (b *Bus) PokeROM(addr uint16, v byte) {
	b.rom[addr] = v
}

// LoadBIOS installs an optional 256-byte boot ROM and arms the BIOS
// overlay. Without a call to LoadBIOS, the overlay is never armed and
// 0x0000-0x00FF read straight from ROM.
func (b *Bus) LoadBIOS(bios [bootROMSize]byte) {
	b.bios = bios
	b.hasBIOS = true
	b.inBIOS = true
}

// Reset clears RAM and re-arms the BIOS overlay if one was loaded. ROM
// content is untouched (it is the cartridge, not volatile state).
func (b *Bus) Reset() {
	b.eram = [eramSize]byte{}
	b.wram = [wramSize]byte{}
	b.hram = [hramSize]byte{}
	b.ie = 0
	b.inBIOS = b.hasBIOS
}

// Read8 dispatches a single byte read across the address map (spec.md §3/
// §4.2).
func (b *Bus) Read8(addr uint16) byte {
	switch {
	case addr < 0x0100 && b.inBIOS:
		return b.bios[addr]

	case addr == 0x0100 && b.inBIOS:
		// original_source's MMU::GetMemoryPtr drops out of the BIOS
		// overlay the instant the Cpu reaches this address.
		b.inBIOS = false
		return b.rom[addr]

	case addr < 0x8000: // ROM
		return b.rom[addr]

	case addr < 0xA000: // VRAM, PPU-owned
		return b.Video.ReadVRAM8(addr)

	case addr < 0xC000: // external RAM
		return b.eram[addr-0xA000]

	case addr < 0xE000: // working RAM
		return b.wram[addr-0xC000]

	case addr < 0xFE00: // working RAM echo
		return b.wram[(addr-0xE000)%wramSize]

	case addr < 0xFEA0: // OAM, PPU-owned
		return b.Video.ReadOAM8(addr)

	case addr < 0xFF00: // unusable hole
		return 0x00

	case addr < 0xFF80: // I/O registers
		return b.readIO(addr)

	case addr < 0xFFFF: // HRAM
		return b.hram[addr-0xFF80]

	default: // 0xFFFF, IE
		return b.ie
	}
}

// Write8 dispatches a single byte write across the address map. Writes to
// ROM are discarded (no mapper, see spec.md Non-goals); writes to the
// unusable hole are discarded; a write to 0xFF46 triggers the synchronous
// OAM DMA copy.
func (b *Bus) Write8(addr uint16, v byte) {
	switch {
	case addr < 0x8000: // ROM, read-only
		return

	case addr < 0xA000:
		b.Video.WriteVRAM8(addr, v)

	case addr < 0xC000:
		b.eram[addr-0xA000] = v

	case addr < 0xE000:
		b.wram[addr-0xC000] = v

	case addr < 0xFE00:
		b.wram[(addr-0xE000)%wramSize] = v

	case addr < 0xFEA0:
		b.Video.WriteOAM8(addr, v)

	case addr < 0xFF00:
		return

	case addr < 0xFF80:
		b.writeIO(addr, v)

	case addr < 0xFFFF:
		b.hram[addr-0xFF80] = v

	default:
		b.ie = v
	}
}

func (b *Bus) readIO(addr uint16) byte {
	if addr >= 0xFF40 && addr <= 0xFF4B {
		return b.Video.ReadRegister(addr)
	}
	return 0xFF
}

func (b *Bus) writeIO(addr uint16, v byte) {
	switch {
	case addr == 0xFF46:
		b.doOAMDMA(v)
	case addr >= 0xFF40 && addr <= 0xFF4B:
		b.Video.WriteRegister(addr, v)
	}
}

// doOAMDMA performs the synchronous 160-byte copy from
// (v<<8)..(v<<8)+0x9F into OAM that a write to 0xFF46 triggers (spec.md
// §4.2).
func (b *Bus) doOAMDMA(v byte) {
	src := uint16(v) << 8
	for i := uint16(0); i < oamSize; i++ {
		b.Video.WriteOAM8(0xFE00+i, b.Read8(src+i))
	}
}

// Read16/Write16 read/write a little-endian word, the way every 16-bit
// immediate and register pair is encoded on this platform.
func (b *Bus) Read16(addr uint16) uint16 {
	lo := b.Read8(addr)
	hi := b.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (b *Bus) Write16(addr uint16, v uint16) {
	b.Write8(addr, byte(v))
	b.Write8(addr+1, byte(v>>8))
}

// InBIOS reports whether the Cpu is currently executing from the boot ROM
// overlay.
func (b *Bus) InBIOS() bool { return b.inBIOS }
