package cpu

import "goboy/mask"

// instructions.go implements the families too irregular to generate from a
// bit-field loop: control flow, stack, misc and 16-bit load instructions.
// The regular families (8-bit loads between registers, the ALU grid,
// INC/DEC, and the whole CB-prefixed space) are generated in opcodes.go and
// cb_opcodes.go instead.

func opNOP(c *Cpu) uint32 { return 0 }

func opHALT(c *Cpu) uint32 {
	c.Halted = true
	return 0
}

func opSTOP(c *Cpu) uint32 {
	c.fetch8() // STOP's second byte is always 0x00 and is discarded
	return 0
}

func opDI(c *Cpu) uint32 {
	c.IME = false
	c.pendingIME = false
	return 0
}

func opEI(c *Cpu) uint32 {
	c.pendingIME = true
	return 0
}

func opCPL(c *Cpu) uint32 {
	c.A = mask.Flip(c.A, mask.I1, mask.I8)
	c.WriteFlag(FlagN, true)
	c.WriteFlag(FlagH, true)
	return 0
}

func opSCF(c *Cpu) uint32 {
	c.WriteFlag(FlagN, false)
	c.WriteFlag(FlagH, false)
	c.WriteFlag(FlagC, true)
	return 0
}

func opCCF(c *Cpu) uint32 {
	c.WriteFlag(FlagN, false)
	c.WriteFlag(FlagH, false)
	c.WriteFlag(FlagC, !c.GetFlag(FlagC))
	return 0
}

func opDAA(c *Cpu) uint32 {
	c.daa()
	return 0
}

func opRLCA(c *Cpu) uint32 {
	c.A = c.rlc(c.A)
	c.WriteFlag(FlagZ, false) // unlike CB RLC r, the accumulator form never sets Z
	return 0
}

func opRRCA(c *Cpu) uint32 {
	c.A = c.rrc(c.A)
	c.WriteFlag(FlagZ, false)
	return 0
}

func opRLA(c *Cpu) uint32 {
	c.A = c.rl(c.A)
	c.WriteFlag(FlagZ, false)
	return 0
}

func opRRA(c *Cpu) uint32 {
	c.A = c.rr(c.A)
	c.WriteFlag(FlagZ, false)
	return 0
}

// --- 8-bit loads with memory, not covered by the LD r,r' grid ---

func opLDAFromBC(c *Cpu) uint32 { c.A = c.Read(c.BC()); return 0 }
func opLDAFromDE(c *Cpu) uint32 { c.A = c.Read(c.DE()); return 0 }
func opLDBCFromA(c *Cpu) uint32 { c.Write(c.BC(), c.A); return 0 }
func opLDDEFromA(c *Cpu) uint32 { c.Write(c.DE(), c.A); return 0 }

func opLDAFromNN(c *Cpu) uint32 { c.A = c.Read(c.fetch16()); return 0 }
func opLDNNFromA(c *Cpu) uint32 { c.Write(c.fetch16(), c.A); return 0 }

func opLDHFromA(c *Cpu) uint32 { c.Write(0xFF00+uint16(c.fetch8()), c.A); return 0 }
func opLDHToA(c *Cpu) uint32   { c.A = c.Read(0xFF00 + uint16(c.fetch8())); return 0 }

func opLDCFromA(c *Cpu) uint32 { c.Write(0xFF00+uint16(c.C), c.A); return 0 }
func opLDAFromC(c *Cpu) uint32 { c.A = c.Read(0xFF00 + uint16(c.C)); return 0 }

func opLDHLIFromA(c *Cpu) uint32 {
	c.Write(c.HL(), c.A)
	c.SetHL(c.HL() + 1)
	return 0
}

func opLDAFromHLI(c *Cpu) uint32 {
	c.A = c.Read(c.HL())
	c.SetHL(c.HL() + 1)
	return 0
}

func opLDHLDFromA(c *Cpu) uint32 {
	c.Write(c.HL(), c.A)
	c.SetHL(c.HL() - 1)
	return 0
}

func opLDAFromHLD(c *Cpu) uint32 {
	c.A = c.Read(c.HL())
	c.SetHL(c.HL() - 1)
	return 0
}

// --- 16-bit loads, stack ---

func ldRR16(pair byte) func(*Cpu) uint32 {
	return func(c *Cpu) uint32 {
		c.set16(pair, c.fetch16())
		return 0
	}
}

func opLDNNFromSP(c *Cpu) uint32 {
	c.Write16(c.fetch16(), c.SP)
	return 0
}

func opLDSPFromHL(c *Cpu) uint32 {
	c.SP = c.HL()
	return 0
}

func opLDHLFromSPPlusE(c *Cpu) uint32 {
	c.SetHL(c.addSPSigned(c.fetch8()))
	return 0
}

func opADDSPE(c *Cpu) uint32 {
	c.SP = c.addSPSigned(c.fetch8())
	return 0
}

func pushR16(pair byte) func(*Cpu) uint32 {
	return func(c *Cpu) uint32 {
		c.push16(c.getStk(pair))
		return 0
	}
}

func popR16(pair byte) func(*Cpu) uint32 {
	return func(c *Cpu) uint32 {
		c.setStk(pair, c.pop16())
		return 0
	}
}

// --- control flow ---

func opJPNN(c *Cpu) uint32 {
	c.PC = c.fetch16()
	return 0
}

func opJPHL(c *Cpu) uint32 {
	c.PC = c.HL()
	return 0
}

func jpCond(idx byte, extraOnTaken uint32) func(*Cpu) uint32 {
	return func(c *Cpu) uint32 {
		addr := c.fetch16()
		if c.cond(idx) {
			c.PC = addr
			return extraOnTaken
		}
		return 0
	}
}

func opJR(c *Cpu) uint32 {
	e := c.fetch8()
	c.PC += mask.SignExtend8(e)
	return 0
}

func jrCond(idx byte, extraOnTaken uint32) func(*Cpu) uint32 {
	return func(c *Cpu) uint32 {
		e := c.fetch8()
		if c.cond(idx) {
			c.PC += mask.SignExtend8(e)
			return extraOnTaken
		}
		return 0
	}
}

func opCALL(c *Cpu) uint32 {
	addr := c.fetch16()
	c.push16(c.PC)
	c.PC = addr
	return 0
}

func callCond(idx byte, extraOnTaken uint32) func(*Cpu) uint32 {
	return func(c *Cpu) uint32 {
		addr := c.fetch16()
		if c.cond(idx) {
			c.push16(c.PC)
			c.PC = addr
			return extraOnTaken
		}
		return 0
	}
}

func opRET(c *Cpu) uint32 {
	c.PC = c.pop16()
	return 0
}

func opRETI(c *Cpu) uint32 {
	c.PC = c.pop16()
	c.IME = true
	return 0
}

func retCond(idx byte, extraOnTaken uint32) func(*Cpu) uint32 {
	return func(c *Cpu) uint32 {
		if c.cond(idx) {
			c.PC = c.pop16()
			return extraOnTaken
		}
		return 0
	}
}

func rst(addr uint16) func(*Cpu) uint32 {
	return func(c *Cpu) uint32 {
		c.push16(c.PC)
		c.PC = addr
		return 0
	}
}

func opEnterCB(c *Cpu) uint32 {
	return c.ExecuteCB()
}
