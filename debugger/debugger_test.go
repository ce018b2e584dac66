package debugger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"goboy/machine"
)

func TestInitLoadsProgramAtOffset(t *testing.T) {
	m := machine.New()
	md := model{m: m, program: []byte{0x00, 0x3E, 0x07}, offset: 0x0150}
	md.Init()

	assert.Equal(t, uint16(0x0150), m.Registers().PC)
	assert.Equal(t, byte(0x3E), m.MMU().Read8(0x0151))
}

func TestViewShowsCurrentPCAndOpcode(t *testing.T) {
	m := machine.New()
	md := model{m: m, program: []byte{0x3E, 0x07}, offset: 0}
	md.Init()

	view := md.View()
	assert.True(t, strings.Contains(view, "PC: 0000"))
	assert.True(t, strings.Contains(view, "[3e]"))
}

func TestStatusReflectsFlags(t *testing.T) {
	m := machine.New()
	m.Registers().SetFlag(0x80) // Z
	md := model{m: m}

	assert.True(t, strings.HasPrefix(md.status()[1:], "PC:"))
	assert.True(t, strings.Contains(md.status(), "/ "))
}
