// Package machine wires cpu, mem and ppu together into the single
// host-facing entry point spec.md §6 describes: load a ROM, step an
// instruction or a whole frame, and read back registers/memory/the
// framebuffer. Everything outside this surface (ROM loading from disk,
// window presentation, audio, input, the CLI) is the host's job, not
// this package's.
package machine

import (
	"goboy/cpu"
	"goboy/mem"
	"goboy/ppu"
)

// Machine owns one Cpu, one Bus and one PPU, wired exactly the way
// original_source's main.cpp wires a Z80, an MMU and a GPU together.
type Machine struct {
	cpu *cpu.Cpu
	bus *mem.Bus
	ppu *ppu.PPU
}

// New returns a freshly wired, freshly reset Machine with no ROM loaded.
func New() *Machine {
	bus := mem.New()
	p := ppu.New()
	bus.Video = p

	m := &Machine{
		cpu: cpu.New(bus),
		bus: bus,
		ppu: p,
	}
	return m
}

// Reset puts the Cpu, Bus and PPU back to their post-construction state.
// ROM content survives (it's the cartridge); RAM, registers and the PPU's
// framebuffer do not.
func (m *Machine) Reset() {
	m.cpu.Reset()
	m.bus.Reset()
	m.ppu.Reset()
}

// LoadROM installs program as the cartridge's ROM image, truncated at
// 0x8000 (spec.md Non-goals: no mapper/bank switching).
func (m *Machine) LoadROM(program []byte) {
	m.bus.LoadROM(program)
}

// LoadBIOS installs an optional 256-byte boot ROM. Without it, 0x0000-0x00FF
// read straight from ROM; PC is not moved to 0x0100, so after New or Reset
// execution starts at 0x0000 unless the caller sets PC.
func (m *Machine) LoadBIOS(bios [256]byte) {
	m.bus.LoadBIOS(bios)
}

// Step runs one Cpu instruction and advances the PPU's scanline state
// machine by the same number of T-cycles, keeping the two in lockstep the
// way spec.md §4.5's step loop requires.
func (m *Machine) Step() (uint32, error) {
	cycles, err := m.cpu.Step()
	if cycles > 0 {
		m.ppu.Step(cycles)
	}
	return cycles, err
}

// RunFrame steps the Machine until the PPU latches a completed frame, then
// returns a copy of it. A ROM that hits an illegal opcode before V-blank
// returns the error from the Step call that stopped it, with a partially
// drawn frame. HALT is not an error: a halted Cpu still reports 4 T-cycles
// per Step, so the PPU keeps running and the frame completes.
func (m *Machine) RunFrame() ([144][160]byte, error) {
	for !m.ppu.FrameReady() {
		if _, err := m.Step(); err != nil {
			return m.ppu.Frame, err
		}
	}
	return m.ppu.TakeFrame(), nil
}

// Registers exposes the live register file for a debugger or test harness
// to read or mutate directly (spec.md §6).
func (m *Machine) Registers() *cpu.Registers { return &m.cpu.Registers }

// Cpu exposes the underlying Cpu, e.g. for a debugger front-end.
func (m *Machine) Cpu() *cpu.Cpu { return m.cpu }

// MMU exposes the underlying Bus for direct reads/writes (spec.md §6).
func (m *Machine) MMU() *mem.Bus { return m.bus }

// PPU exposes the underlying PPU, e.g. for a host inspecting VRAM/OAM
// directly instead of waiting on RunFrame.
func (m *Machine) PPU() *ppu.PPU { return m.ppu }

// IsIllegalOpcodeHalted reports whether the Cpu stopped on an undefined
// opcode and will not make further progress without a Reset.
func (m *Machine) IsIllegalOpcodeHalted() bool {
	return m.cpu.IllegalOpcode != nil
}
