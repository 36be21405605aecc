package cpu

import (
	"fmt"
)

const (
	ROMSize      = 32768
	ScreenBase   = 16384
	ScreenWords  = 8192
	KeyboardAddr = 24576
	// RAMSize covers data memory, the screen map and the keyboard register.
	RAMSize = KeyboardAddr + 1
)

// Jump bits of a compute instruction.
const (
	jumpGT uint16 = 0b001
	jumpEQ uint16 = 0b010
	jumpLT uint16 = 0b100
)

// Dest bits of a compute instruction.
const (
	destM uint16 = 0b001
	destD uint16 = 0b010
	destA uint16 = 0b100
)

// CPU is a Hack computer: 32K words of ROM, data RAM with memory-mapped
// screen and keyboard, and the A, D and PC registers.
type CPU struct {
	A  uint16
	D  uint16
	PC uint16

	ROM [ROMSize]uint16
	RAM [RAMSize]uint16

	// ProgramSize is the number of words loaded into ROM. Fetching past it halts.
	ProgramSize int

	Halted bool
	Cycles uint64
}

func NewCPU() *CPU {
	return &CPU{}
}

// Load copies a program into ROM from address 0 and resets the registers.
// RAM is left untouched so tests can seed inputs before or after loading.
func (c *CPU) Load(program []uint16) error {
	if len(program) > ROMSize {
		return fmt.Errorf("program too large for ROM: %d words > %d", len(program), ROMSize)
	}
	c.ROM = [ROMSize]uint16{}
	copy(c.ROM[:], program)
	c.ProgramSize = len(program)
	c.Reset()
	return nil
}

// Reset clears the registers and the halt flag; memory is kept.
func (c *CPU) Reset() {
	c.A, c.D, c.PC = 0, 0, 0
	c.Halted = false
	c.Cycles = 0
}

// SetKey sets the keyboard register to a Hack key code, 0 meaning no key.
func (c *CPU) SetKey(code uint16) {
	c.RAM[KeyboardAddr] = code
}

// ReadMem returns RAM[addr], or 0 for addresses past the keyboard register.
func (c *CPU) ReadMem(addr uint16) uint16 {
	if int(addr) >= RAMSize {
		return 0
	}
	return c.RAM[addr]
}

// WriteMem stores val at addr. The keyboard register and unmapped addresses
// are read-only.
func (c *CPU) WriteMem(addr uint16, val uint16) {
	if int(addr) >= KeyboardAddr {
		return
	}
	c.RAM[addr] = val
}

// Step executes one instruction.
func (c *CPU) Step() {
	if c.Halted {
		return
	}
	if int(c.PC) >= c.ProgramSize {
		c.Halted = true
		return
	}

	pc := c.PC
	instr := c.ROM[pc]
	c.Cycles++

	if instr&0x8000 == 0 {
		c.A = instr
		c.PC++
		return
	}

	y := c.A
	if instr&(1<<12) != 0 {
		y = c.ReadMem(c.A)
	}
	out := ALU(c.D, y, instr>>6&0x3F)

	oldA := c.A
	dest := instr >> 3 & 0b111
	if dest&destM != 0 {
		c.WriteMem(oldA, out)
	}
	if dest&destA != 0 {
		c.A = out
	}
	if dest&destD != 0 {
		c.D = out
	}

	if !jumps(instr&0b111, out) {
		c.PC++
		return
	}

	c.PC = oldA & 0x7FFF
	// @X at X followed by a jump to X is the conventional end-of-program loop.
	if pc > 0 && c.PC == pc-1 && c.ROM[pc-1] == c.PC {
		c.Halted = true
	}
}

// Run steps until the program halts or maxCycles instructions have run.
// maxCycles <= 0 means no limit. It returns the number of instructions executed.
func (c *CPU) Run(maxCycles int) int {
	start := c.Cycles
	for !c.Halted && (maxCycles <= 0 || int(c.Cycles-start) < maxCycles) {
		c.Step()
	}
	return int(c.Cycles - start)
}

// ALU computes the Hack ALU output for inputs x (D) and y (A or M) under the
// six control bits zx nx zy ny f no.
func ALU(x, y, control uint16) uint16 {
	if control&0b100000 != 0 {
		x = 0
	}
	if control&0b010000 != 0 {
		x = ^x
	}
	if control&0b001000 != 0 {
		y = 0
	}
	if control&0b000100 != 0 {
		y = ^y
	}
	var out uint16
	if control&0b000010 != 0 {
		out = x + y
	} else {
		out = x & y
	}
	if control&0b000001 != 0 {
		out = ^out
	}
	return out
}

func jumps(bits, out uint16) bool {
	v := int16(out)
	return (bits&jumpLT != 0 && v < 0) ||
		(bits&jumpEQ != 0 && v == 0) ||
		(bits&jumpGT != 0 && v > 0)
}
