package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoBIOSBootsAtROMStart(t *testing.T) {
	m := New()
	m.LoadROM([]byte{0x3E, 0x07}) // LD A,7
	m.cpu.PC = 0x0100
	m.bus.PokeROM(0x0100, 0x3E)
	m.bus.PokeROM(0x0101, 0x07)

	_, err := m.Step()
	assert.NoError(t, err)
	assert.Equal(t, byte(7), m.Registers().A)
}

func TestStepAdvancesPPUInLockstep(t *testing.T) {
	m := New()
	m.PPU().WriteRegister(0xFF40, 0x80) // LCD on
	m.cpu.PC = 0
	m.bus.PokeROM(0, 0x00) // NOP, 4 cycles

	cycles, err := m.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint32(4), cycles)

	// 19 more NOPs bring the PPU to 80 T-cycles: OAM-scan ends, mode 3.
	for i := 0; i < 19; i++ {
		_, err = m.Step()
		assert.NoError(t, err)
	}
	assert.Equal(t, byte(3), m.PPU().ReadRegister(0xFF41)&0x03)
}

func TestRunFrameStopsOnIllegalOpcode(t *testing.T) {
	m := New()
	m.cpu.PC = 0
	m.bus.PokeROM(0, 0xD3) // illegal

	_, err := m.RunFrame()
	assert.Error(t, err)
	assert.True(t, m.IsIllegalOpcodeHalted())
}

func TestResetClearsRAMButKeepsROM(t *testing.T) {
	m := New()
	m.LoadROM([]byte{0xAA})
	m.MMU().Write8(0xC000, 0x55)

	m.Reset()

	assert.Equal(t, byte(0xAA), m.MMU().Read8(0x0000))
	assert.Equal(t, byte(0x00), m.MMU().Read8(0xC000))
}

func TestRunFrameProducesFullyLatchedFrame(t *testing.T) {
	m := New()
	m.PPU().WriteRegister(0xFF40, 0x80)
	m.cpu.PC = 0
	// An infinite NOP stream keeps the Cpu running until the PPU itself
	// latches a frame (144 scanlines worth of T-cycles, on entering V-blank).
	for i := uint16(0); i < 0x8000; i++ {
		m.bus.PokeROM(i, 0x00)
	}

	frame, err := m.RunFrame()
	assert.NoError(t, err)
	assert.Equal(t, 144, len(frame))
	assert.Equal(t, 160, len(frame[0]))
}
