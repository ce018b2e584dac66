package cpu

// Opcode carries everything Step needs to run one primary-table
// instruction: its cycle cost and the closure that performs it. Unlike the
// teacher's 6502 table (13 addressing modes shared across instructions),
// this instruction set encodes its operands directly in the opcode byte, so
// Exec closures read/write registers and memory themselves rather than
// going through a separate decode step.
type Opcode struct {
	Name   string
	Cycles uint32 // base T-cycles; Exec may add more (taken branches)
	Exec   func(c *Cpu) uint32
}

// Opcodes is the primary 256-entry dispatch table. The 11 opcodes with no
// defined instruction (0xD3,0xDB,0xDD,0xE3,0xE4,0xEB,0xEC,0xED,0xF4,0xFC,
// 0xFD) are left with a nil Exec, which Step treats as *IllegalOpcodeError.
var Opcodes [256]Opcode

var cbEntryPoint = Opcode{Name: "PREFIX CB", Cycles: 0, Exec: opEnterCB}

func init() {
	regNames := [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	pairNames := [4]string{"BC", "DE", "HL", "SP"}
	stkNames := [4]string{"BC", "DE", "HL", "AF"}
	condNames := [4]string{"NZ", "Z", "NC", "C"}

	set := func(b byte, op Opcode) { Opcodes[b] = op }

	// --- LD r,r' grid: 0x40-0x7F, except 0x76 (HALT) ---
	for dst := byte(0); dst < 8; dst++ {
		for src := byte(0); src < 8; src++ {
			opcode := 0x40 + dst*8 + src
			if opcode == 0x76 {
				continue
			}
			cycles := uint32(4)
			if dst == r8HL || src == r8HL {
				cycles = 8
			}
			d, s := dst, src
			set(opcode, Opcode{
				Name:   "LD " + regNames[d] + "," + regNames[s],
				Cycles: cycles,
				Exec:   func(c *Cpu) uint32 { c.set8(d, c.get8(s)); return 0 },
			})
		}
	}
	set(0x76, Opcode{Name: "HALT", Cycles: 4, Exec: opHALT})

	// --- LD r,n: 0x06 + 8*r ---
	for r := byte(0); r < 8; r++ {
		opcode := 0x06 + r*8
		cycles := uint32(8)
		if r == r8HL {
			cycles = 12
		}
		reg := r
		set(opcode, Opcode{
			Name:   "LD " + regNames[reg] + ",n",
			Cycles: cycles,
			Exec:   func(c *Cpu) uint32 { c.set8(reg, c.fetch8()); return 0 },
		})
	}

	// --- ALU A,r grid: 0x80-0xBF, 8 ops x 8 registers ---
	aluOps := [8]struct {
		name string
		fn   func(c *Cpu, v byte)
	}{
		{"ADD A,", func(c *Cpu, v byte) { c.add8(v) }},
		{"ADC A,", func(c *Cpu, v byte) { c.adc8(v) }},
		{"SUB ", func(c *Cpu, v byte) { c.A = c.sub8(v) }},
		{"SBC A,", func(c *Cpu, v byte) { c.sbc8(v) }},
		{"AND ", func(c *Cpu, v byte) { c.and8(v) }},
		{"XOR ", func(c *Cpu, v byte) { c.xor8(v) }},
		{"OR ", func(c *Cpu, v byte) { c.or8(v) }},
		{"CP ", func(c *Cpu, v byte) { c.cp8(v) }},
	}
	for op := byte(0); op < 8; op++ {
		for src := byte(0); src < 8; src++ {
			opcode := 0x80 + op*8 + src
			cycles := uint32(4)
			if src == r8HL {
				cycles = 8
			}
			o, s := aluOps[op], src
			set(opcode, Opcode{
				Name:   o.name + regNames[s],
				Cycles: cycles,
				Exec:   func(c *Cpu) uint32 { o.fn(c, c.get8(s)); return 0 },
			})
		}
	}
	// ALU A,n immediate forms: 0xC6,0xCE,0xD6,0xDE,0xE6,0xEE,0xF6,0xFE
	for op := byte(0); op < 8; op++ {
		opcode := 0xC6 + op*8
		o := aluOps[op]
		set(opcode, Opcode{
			Name:   o.name + "n",
			Cycles: 8,
			Exec:   func(c *Cpu) uint32 { o.fn(c, c.fetch8()); return 0 },
		})
	}

	// --- INC r / DEC r: 0x04+8r, 0x05+8r ---
	for r := byte(0); r < 8; r++ {
		cycles := uint32(4)
		if r == r8HL {
			cycles = 12
		}
		reg := r
		set(0x04+reg*8, Opcode{
			Name:   "INC " + regNames[reg],
			Cycles: cycles,
			Exec:   func(c *Cpu) uint32 { c.set8(reg, c.inc8(c.get8(reg))); return 0 },
		})
		set(0x05+reg*8, Opcode{
			Name:   "DEC " + regNames[reg],
			Cycles: cycles,
			Exec:   func(c *Cpu) uint32 { c.set8(reg, c.dec8(c.get8(reg))); return 0 },
		})
	}

	// --- 16-bit register pair ops: LD rr,nn / INC rr / DEC rr / ADD HL,rr ---
	for p := byte(0); p < 4; p++ {
		pair := p
		set(0x01+pair*0x10, Opcode{
			Name: "LD " + pairNames[pair] + ",nn", Cycles: 12, Exec: ldRR16(pair),
		})
		set(0x03+pair*0x10, Opcode{
			Name: "INC " + pairNames[pair], Cycles: 8,
			Exec: func(c *Cpu) uint32 { c.set16(pair, c.get16(pair)+1); return 0 },
		})
		set(0x0B+pair*0x10, Opcode{
			Name: "DEC " + pairNames[pair], Cycles: 8,
			Exec: func(c *Cpu) uint32 { c.set16(pair, c.get16(pair)-1); return 0 },
		})
		set(0x09+pair*0x10, Opcode{
			Name: "ADD HL," + pairNames[pair], Cycles: 8,
			Exec: func(c *Cpu) uint32 { c.addHL16(c.get16(pair)); return 0 },
		})
	}

	// --- PUSH/POP rr (stack group: BC,DE,HL,AF) ---
	for p := byte(0); p < 4; p++ {
		pair := p
		set(0xC5+pair*0x10, Opcode{Name: "PUSH " + stkNames[pair], Cycles: 16, Exec: pushR16(pair)})
		set(0xC1+pair*0x10, Opcode{Name: "POP " + stkNames[pair], Cycles: 12, Exec: popR16(pair)})
	}

	// --- conditional JP/JR/CALL/RET (condition group: NZ,Z,NC,C) ---
	for cc := byte(0); cc < 4; cc++ {
		idx := cc
		set(0xC2+cc*0x08, Opcode{Name: "JP " + condNames[cc] + ",nn", Cycles: 12, Exec: jpCond(idx, 4)})
		set(0x20+cc*0x08, Opcode{Name: "JR " + condNames[cc] + ",e", Cycles: 8, Exec: jrCond(idx, 4)})
		set(0xC4+cc*0x08, Opcode{Name: "CALL " + condNames[cc] + ",nn", Cycles: 12, Exec: callCond(idx, 12)})
		set(0xC0+cc*0x08, Opcode{Name: "RET " + condNames[cc], Cycles: 8, Exec: retCond(idx, 12)})
	}

	// --- RST n: 8 fixed vectors ---
	for n := byte(0); n < 8; n++ {
		addr := uint16(n) * 8
		set(0xC7+n*0x08, Opcode{Name: "RST", Cycles: 16, Exec: rst(addr)})
	}

	// --- everything else: hand-listed, exactly the way the teacher lists
	// its irregular 6502 opcodes one literal at a time ---
	literal := map[byte]Opcode{
		0x00: {Name: "NOP", Cycles: 4, Exec: opNOP},
		0x10: {Name: "STOP", Cycles: 4, Exec: opSTOP},
		0xF3: {Name: "DI", Cycles: 4, Exec: opDI},
		0xFB: {Name: "EI", Cycles: 4, Exec: opEI},
		0x2F: {Name: "CPL", Cycles: 4, Exec: opCPL},
		0x37: {Name: "SCF", Cycles: 4, Exec: opSCF},
		0x3F: {Name: "CCF", Cycles: 4, Exec: opCCF},
		0x27: {Name: "DAA", Cycles: 4, Exec: opDAA},
		0x07: {Name: "RLCA", Cycles: 4, Exec: opRLCA},
		0x0F: {Name: "RRCA", Cycles: 4, Exec: opRRCA},
		0x17: {Name: "RLA", Cycles: 4, Exec: opRLA},
		0x1F: {Name: "RRA", Cycles: 4, Exec: opRRA},

		0x0A: {Name: "LD A,(BC)", Cycles: 8, Exec: opLDAFromBC},
		0x1A: {Name: "LD A,(DE)", Cycles: 8, Exec: opLDAFromDE},
		0x02: {Name: "LD (BC),A", Cycles: 8, Exec: opLDBCFromA},
		0x12: {Name: "LD (DE),A", Cycles: 8, Exec: opLDDEFromA},
		0xFA: {Name: "LD A,(nn)", Cycles: 16, Exec: opLDAFromNN},
		0xEA: {Name: "LD (nn),A", Cycles: 16, Exec: opLDNNFromA},
		0xE0: {Name: "LDH (n),A", Cycles: 12, Exec: opLDHFromA},
		0xF0: {Name: "LDH A,(n)", Cycles: 12, Exec: opLDHToA},
		0xE2: {Name: "LD (C),A", Cycles: 8, Exec: opLDCFromA},
		0xF2: {Name: "LD A,(C)", Cycles: 8, Exec: opLDAFromC},
		0x22: {Name: "LD (HL+),A", Cycles: 8, Exec: opLDHLIFromA},
		0x2A: {Name: "LD A,(HL+)", Cycles: 8, Exec: opLDAFromHLI},
		0x32: {Name: "LD (HL-),A", Cycles: 8, Exec: opLDHLDFromA},
		0x3A: {Name: "LD A,(HL-)", Cycles: 8, Exec: opLDAFromHLD},

		0x08: {Name: "LD (nn),SP", Cycles: 20, Exec: opLDNNFromSP},
		0xF9: {Name: "LD SP,HL", Cycles: 8, Exec: opLDSPFromHL},
		0xF8: {Name: "LD HL,SP+e", Cycles: 12, Exec: opLDHLFromSPPlusE},
		0xE8: {Name: "ADD SP,e", Cycles: 16, Exec: opADDSPE},

		0xC3: {Name: "JP nn", Cycles: 16, Exec: opJPNN},
		0xE9: {Name: "JP HL", Cycles: 4, Exec: opJPHL},
		0x18: {Name: "JR e", Cycles: 12, Exec: opJR},
		0xCD: {Name: "CALL nn", Cycles: 24, Exec: opCALL},
		0xC9: {Name: "RET", Cycles: 16, Exec: opRET},
		0xD9: {Name: "RETI", Cycles: 16, Exec: opRETI},

		0xCB: cbEntryPoint,
	}
	for b, op := range literal {
		set(b, op)
	}
}
