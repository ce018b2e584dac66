package cpu

import "goboy/mask"

// CB's BIT/RES/SET opcodes number bits 0 (LSB) to 7 (MSB); mask's
// IsSet/Set/Unset instead take a 1-indexed position counted from the MSB
// (mask.I1 = bit 7 ... mask.I8 = bit 0). isBitSet/setBit/clearBit translate
// between the two numberings at each of the 8 fixed positions -- mask's
// byteIndex type is unexported, so the translation has to happen inside a
// function that returns the already-computed bool/byte, not by building a
// lookup table of byteIndex values.
func isBitSet(v byte, bit byte) bool {
	switch bit {
	case 0:
		return mask.IsSet(v, mask.I8)
	case 1:
		return mask.IsSet(v, mask.I7)
	case 2:
		return mask.IsSet(v, mask.I6)
	case 3:
		return mask.IsSet(v, mask.I5)
	case 4:
		return mask.IsSet(v, mask.I4)
	case 5:
		return mask.IsSet(v, mask.I3)
	case 6:
		return mask.IsSet(v, mask.I2)
	default:
		return mask.IsSet(v, mask.I1)
	}
}

func setBit(v byte, bit byte) byte {
	switch bit {
	case 0:
		return mask.Set(v, mask.I8, 1)
	case 1:
		return mask.Set(v, mask.I7, 1)
	case 2:
		return mask.Set(v, mask.I6, 1)
	case 3:
		return mask.Set(v, mask.I5, 1)
	case 4:
		return mask.Set(v, mask.I4, 1)
	case 5:
		return mask.Set(v, mask.I3, 1)
	case 6:
		return mask.Set(v, mask.I2, 1)
	default:
		return mask.Set(v, mask.I1, 1)
	}
}

func clearBit(v byte, bit byte) byte {
	switch bit {
	case 0:
		return mask.Unset(v, mask.I8, mask.I8)
	case 1:
		return mask.Unset(v, mask.I7, mask.I7)
	case 2:
		return mask.Unset(v, mask.I6, mask.I6)
	case 3:
		return mask.Unset(v, mask.I5, mask.I5)
	case 4:
		return mask.Unset(v, mask.I4, mask.I4)
	case 5:
		return mask.Unset(v, mask.I3, mask.I3)
	case 6:
		return mask.Unset(v, mask.I2, mask.I2)
	default:
		return mask.Unset(v, mask.I1, mask.I1)
	}
}

// CBOpcodes is the 256-entry CB-prefixed table. Unlike the primary table,
// every one of its 256 byte values is legal: the whole space is a single
// regular grid of 8 operations (RLC,RRC,RL,RR,SLA,SRA,SWAP,SRL for 0x00-
// 0x3F, then BIT/RES/SET with an explicit bit number for 0x40-0xFF) across
// the same 8 registers the primary table uses. Cycles already include the
// CB prefix byte itself -- see Opcodes[0xCB] in opcodes.go, whose own
// Cycles is 0.
var CBOpcodes [256]Opcode

func init() {
	regNames := [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

	shiftOps := [8]struct {
		name string
		fn   func(c *Cpu, v byte) byte
	}{
		{"RLC", (*Cpu).rlc},
		{"RRC", (*Cpu).rrc},
		{"RL", (*Cpu).rl},
		{"RR", (*Cpu).rr},
		{"SLA", (*Cpu).sla},
		{"SRA", (*Cpu).sra},
		{"SWAP", (*Cpu).swap},
		{"SRL", (*Cpu).srl},
	}

	for op := byte(0); op < 8; op++ {
		for r := byte(0); r < 8; r++ {
			opcode := op*8 + r
			cycles := uint32(8)
			if r == r8HL {
				cycles = 16
			}
			o, reg := shiftOps[op], r
			CBOpcodes[opcode] = Opcode{
				Name:   o.name + " " + regNames[reg],
				Cycles: cycles,
				Exec:   func(c *Cpu) uint32 { c.set8(reg, o.fn(c, c.get8(reg))); return 0 },
			}
		}
	}

	for bit := byte(0); bit < 8; bit++ {
		for r := byte(0); r < 8; r++ {
			reg, b := r, bit

			bitOpcode := 0x40 + bit*8 + r
			cyclesBit := uint32(8)
			if r == r8HL {
				cyclesBit = 12
			}
			CBOpcodes[bitOpcode] = Opcode{
				Name:   bitName("BIT", b, reg, regNames),
				Cycles: cyclesBit,
				Exec: func(c *Cpu) uint32 {
					v := c.get8(reg)
					c.WriteFlag(FlagZ, !isBitSet(v, b))
					c.WriteFlag(FlagN, false)
					c.WriteFlag(FlagH, true)
					return 0
				},
			}

			resOpcode := 0x80 + bit*8 + r
			cyclesRS := uint32(8)
			if r == r8HL {
				cyclesRS = 16
			}
			CBOpcodes[resOpcode] = Opcode{
				Name:   bitName("RES", b, reg, regNames),
				Cycles: cyclesRS,
				Exec:   func(c *Cpu) uint32 { c.set8(reg, clearBit(c.get8(reg), b)); return 0 },
			}

			setOpcode := 0xC0 + bit*8 + r
			CBOpcodes[setOpcode] = Opcode{
				Name:   bitName("SET", b, reg, regNames),
				Cycles: cyclesRS,
				Exec:   func(c *Cpu) uint32 { c.set8(reg, setBit(c.get8(reg), b)); return 0 },
			}
		}
	}
}

func bitName(mnemonic string, bit, reg byte, regNames [8]string) string {
	digits := "01234567"
	return mnemonic + " " + digits[bit:bit+1] + "," + regNames[reg]
}
