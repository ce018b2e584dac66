// Package cpu implements the Sharp LR35902 microprocessor, a Z80-family
// derivative used in Game Boy-class handhelds.

package cpu

import (
	"fmt"

	"goboy/mem"
)

// IllegalOpcodeError is returned by Step when the fetched byte has no
// defined instruction. The eleven illegal primary opcodes
// (0xD3,0xDB,0xDD,0xE3,0xE4,0xEB,0xEC,0xED,0xF4,0xFC,0xFD) halt the Cpu;
// further Step calls return the same error without side effects.
type IllegalOpcodeError struct {
	Opcode byte
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("illegal opcode %#02x at %#04x", e.Opcode, e.PC)
}

// The Cpu has no memory of its own beyond its registers. Every memory access
// goes through Bus, which also owns the PPU and therefore the whole
// address space (see mem.Bus).
type Cpu struct {
	Registers

	Bus *mem.Bus

	Halted bool

	// IME is the interrupt master enable flip-flop. Interrupt dispatch
	// itself is out of scope; IME is tracked so EI/DI/RETI read back
	// correctly and so a host can observe it.
	IME        bool
	pendingIME bool // EI takes effect after the *next* instruction

	IllegalOpcode *IllegalOpcodeError
}

// New returns a Cpu wired to bus, with all registers at zero.
func New(bus *mem.Bus) *Cpu {
	return &Cpu{Bus: bus}
}

// Reset zeroes every register and clears Halted/IME state. It does not
// touch the Bus.
func (c *Cpu) Reset() {
	c.Registers.Reset()
	c.Halted = false
	c.IME = false
	c.pendingIME = false
	c.IllegalOpcode = nil
}

func (c *Cpu) Read(addr uint16) byte      { return c.Bus.Read8(addr) }
func (c *Cpu) Write(addr uint16, v byte)  { c.Bus.Write8(addr, v) }
func (c *Cpu) Read16(addr uint16) uint16  { return c.Bus.Read16(addr) }
func (c *Cpu) Write16(addr uint16, v uint16) { c.Bus.Write16(addr, v) }

// fetch8 reads the byte at PC and advances PC.
func (c *Cpu) fetch8() byte {
	b := c.Read(c.PC)
	c.PC++
	return b
}

// fetch16 reads the word at PC (low byte first) and advances PC by two.
func (c *Cpu) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return (uint16(hi) << 8) | uint16(lo)
}

func (c *Cpu) push16(w uint16) {
	c.SP--
	c.Write(c.SP, byte(w>>8))
	c.SP--
	c.Write(c.SP, byte(w))
}

func (c *Cpu) pop16() uint16 {
	lo := c.Read(c.SP)
	c.SP++
	hi := c.Read(c.SP)
	c.SP++
	return (uint16(hi) << 8) | uint16(lo)
}

// Step runs one fetch/decode/execute cycle and returns the number of T-cycles
// it consumed. HALT is a 4-T no-op (interrupt-driven wake is out of scope,
// see spec.md §9); an illegal opcode halts the Cpu permanently and returns
// *IllegalOpcodeError on every subsequent call.
func (c *Cpu) Step() (uint32, error) {
	if c.IllegalOpcode != nil {
		return 0, c.IllegalOpcode
	}
	if c.Halted {
		return 4, nil
	}

	// EI's enable takes effect only after the instruction following it.
	enableAfter := c.pendingIME
	c.pendingIME = false

	opPC := c.PC
	b := c.fetch8()
	op := Opcodes[b]
	if op.Exec == nil {
		c.IllegalOpcode = &IllegalOpcodeError{Opcode: b, PC: opPC}
		c.Halted = true
		return 0, c.IllegalOpcode
	}

	extra := op.Exec(c)
	cycles := op.Cycles + extra

	if enableAfter {
		c.IME = true
	}

	return cycles, nil
}

// ExecuteCB is entered by the 0xCB primary opcode: it fetches the second
// byte and dispatches through CBOpcodes.
func (c *Cpu) ExecuteCB() uint32 {
	b := c.fetch8()
	op := CBOpcodes[b]
	return op.Cycles + op.Exec(c)
}
