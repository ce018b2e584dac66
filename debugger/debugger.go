// Package debugger is the optional interactive front-end spec.md §6
// anticipates: "an optional debugger front-end calling: get/set any
// register, get/set any memory byte, read current PC, reset, and
// single-step." It drives a machine.Machine exactly the way a host would,
// through the same exported surface any other caller uses -- it has no
// access to unexported Cpu/Bus/PPU state.
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"goboy/cpu"
	"goboy/machine"
)

type model struct {
	m       *machine.Machine
	program []byte
	offset  uint16

	prevPC uint16
	err    error
}

// Init loads the program into ROM at offset and points PC at it.
func (md model) Init() tea.Cmd {
	for i, b := range md.program {
		md.m.MMU().PokeROM(md.offset+uint16(i), b)
	}
	md.m.Registers().PC = md.offset
	return nil
}

// Update single-steps the Machine on space or 'j', resets on 'r', and quits
// on 'q'.
func (md model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return md, tea.Quit

		case "r":
			md.m.Reset()
			for i, b := range md.program {
				md.m.MMU().PokeROM(md.offset+uint16(i), b)
			}
			md.m.Registers().PC = md.offset
			md.err = nil

		case " ", "j":
			md.prevPC = md.m.Registers().PC
			if _, err := md.m.Step(); err != nil {
				md.err = err
				return md, tea.Quit
			}
		}
	}
	return md, nil
}

const bytesPerPage = 16

// renderPage renders one 16-byte row of the address space, highlighting PC.
func (md model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < bytesPerPage; i++ {
		addr := start + i
		b := md.m.MMU().Read8(addr)
		if addr == md.m.Registers().PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (md model) status() string {
	regs := md.m.Registers()
	var flags string
	for _, set := range []bool{
		regs.GetFlag(cpu.FlagZ),
		regs.GetFlag(cpu.FlagN),
		regs.GetFlag(cpu.FlagH),
		regs.GetFlag(cpu.FlagC),
	} {
		if set {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
AF: %04x  BC: %04x
DE: %04x  HL: %04x
SP: %04x
Z N H C
`,
		regs.PC, md.prevPC,
		regs.AF(), regs.BC(),
		regs.DE(), regs.HL(),
		regs.SP,
	) + flags
}

func (md model) pageTable() string {
	header := "page | "
	for b := 0; b < bytesPerPage; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}

	pc := md.m.Registers().PC - (md.m.Registers().PC % bytesPerPage)
	offsets := []uint16{0, pc, pc + bytesPerPage, pc + 2*bytesPerPage}
	pages := []string{header}
	for _, addr := range offsets {
		pages = append(pages, md.renderPage(addr))
	}
	return strings.Join(pages, "\n")
}

// View renders the register/flag readout beside a paged hex dump, with the
// current opcode dumped below, same layout as the teacher's 6502 debugger.
func (md model) View() string {
	op := cpu.Opcodes[md.m.MMU().Read8(md.m.Registers().PC)]
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			md.pageTable(),
			md.status(),
		),
		"",
		spew.Sdump(op),
	)
	if md.err != nil {
		body += "\n" + md.err.Error()
	}
	return body
}

// Run loads program into the Machine's ROM at offset, then starts an
// interactive single-step TUI: space/j single-steps, r resets, q quits.
func Run(m *machine.Machine, program []byte, offset uint16) error {
	final, err := tea.NewProgram(model{m: m, program: program, offset: offset}).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		fmt.Println("Error:", fm.err)
	}
	return nil
}
