package cpu

import "goboy/mask"

// Flag masks for the F register. Only the high nibble is ever non-zero; the
// low nibble of F always reads as zero, even across POP AF.
//
// https://problemkaputt.de/everynes.htm#cpuregistersandflags describes the
// 6502/NES P register this way; the Game Boy's F register keeps the same
// idea but with different bit positions, given below.
const (
	FlagZ byte = 1 << 7 // Zero
	FlagN byte = 1 << 6 // Subtract
	FlagH byte = 1 << 5 // Half carry
	FlagC byte = 1 << 4 // Carry
)

// Registers holds the eight 8-bit registers plus SP and PC. A, B, C, D, E, H
// and L pair up into AF, BC, DE and HL as big-endian composites; the low
// nibble of F is masked off on every write.
type Registers struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte

	SP uint16
	PC uint16
}

func (r *Registers) AF() uint16 { return mask.Word(r.A, r.F) }
func (r *Registers) BC() uint16 { return mask.Word(r.B, r.C) }
func (r *Registers) DE() uint16 { return mask.Word(r.D, r.E) }
func (r *Registers) HL() uint16 { return mask.Word(r.H, r.L) }

func (r *Registers) SetAF(w uint16) {
	r.A = mask.Hi(w)
	r.F = mask.Unset(mask.Lo(w), mask.I5, mask.I8)
}

func (r *Registers) SetBC(w uint16) {
	r.B = mask.Hi(w)
	r.C = mask.Lo(w)
}

func (r *Registers) SetDE(w uint16) {
	r.D = mask.Hi(w)
	r.E = mask.Lo(w)
}

func (r *Registers) SetHL(w uint16) {
	r.H = mask.Hi(w)
	r.L = mask.Lo(w)
}

// GetFlag reports whether every bit set in m is also set in F.
func (r *Registers) GetFlag(m byte) bool { return r.F&m == m }

func (r *Registers) SetFlag(m byte)   { r.F = mask.Unset(r.F|m, mask.I5, mask.I8) }
func (r *Registers) ClearFlag(m byte) { r.F = mask.Unset(r.F&^m, mask.I5, mask.I8) }

// WriteFlag sets or clears m in F according to on.
func (r *Registers) WriteFlag(m byte, on bool) {
	if on {
		r.SetFlag(m)
	} else {
		r.ClearFlag(m)
	}
}

// WriteFlags sets Z, N, H and C in one call, as nearly every ALU
// instruction's doc comment in original_source's Instructions.h lists them.
func (r *Registers) WriteFlags(z, n, h, c bool) {
	r.WriteFlag(FlagZ, z)
	r.WriteFlag(FlagN, n)
	r.WriteFlag(FlagH, h)
	r.WriteFlag(FlagC, c)
}

// Reset zeroes every register. spec.md leaves post-BIOS register values
// unspecified, so the documented boot state here is simply zero (see
// SPEC_FULL.md §10).
func (r *Registers) Reset() {
	*r = Registers{}
}
