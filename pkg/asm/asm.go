package asm

import (
	"errors"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// Assembler translates one Hack program. It carries the symbol table across
// both passes, so a fresh Assembler is needed per source.
type Assembler struct {
	symbols      *SymbolTable
	nextVariable int
}

func NewAssembler() *Assembler {
	return &Assembler{
		symbols:      NewSymbolTable(),
		nextVariable: VariableBase,
	}
}

// Assemble returns the machine words for code and a map from ROM address to
// 1-based source line.
func Assemble(code string) ([]uint16, map[uint16]int, error) {
	return NewAssembler().Assemble(code)
}

func (a *Assembler) Assemble(code string) ([]uint16, map[uint16]int, error) {
	return a.Run(ParseLines(strings.Split(code, "\n")))
}

// Run binds labels, rewinds p and encodes.
func (a *Assembler) Run(p *Parser) ([]uint16, map[uint16]int, error) {
	if err := a.pass1(p); err != nil {
		return nil, nil, err
	}
	p.Reset()
	return a.pass2(p)
}

// Symbols exposes the table, fully populated once Run has returned.
func (a *Assembler) Symbols() *SymbolTable {
	return a.symbols
}

func (a *Assembler) pass1(p *Parser) error {
	address := 0

	for ; p.HasMore(); p.Advance() {
		ins := p.Current()
		if ins.Kind() != LabelInstruction {
			if address > MaxAddress {
				return &Error{Kind: OperandOutOfRange, Line: ins.Line, Text: ins.Text, Msg: "program exceeds ROM"}
			}
			address++
			continue
		}

		name, err := labelName(ins)
		if err != nil {
			return err
		}
		if address > MaxAddress {
			return &Error{Kind: OperandOutOfRange, Line: ins.Line, Text: ins.Text, Msg: "label points past ROM"}
		}
		if err := a.symbols.Bind(name, uint16(address)); err != nil {
			return atLine(err, ins)
		}
		glog.V(2).Infof("label %s = %d (line %d)", name, address, ins.Line)
	}

	glog.V(1).Infof("pass 1: %d instructions, %d symbols", address, a.symbols.Len())
	return nil
}

func (a *Assembler) pass2(p *Parser) ([]uint16, map[uint16]int, error) {
	words := make([]uint16, 0, len(p.Instructions()))
	sourceMap := make(map[uint16]int)

	for ; p.HasMore(); p.Advance() {
		ins := p.Current()

		var word uint16
		var err error
		switch ins.Kind() {
		case LabelInstruction:
			continue
		case AddressInstruction:
			word, err = a.encodeAddress(ins)
		case ComputeInstruction:
			word, err = encodeCompute(ins)
		}
		if err != nil {
			return nil, nil, atLine(err, ins)
		}

		sourceMap[uint16(len(words))] = ins.Line
		words = append(words, word)
	}

	glog.V(1).Infof("pass 2: %d words, %d variables", len(words), a.nextVariable-VariableBase)
	return words, sourceMap, nil
}

// encodeCompute rejects an '=' or ';' with nothing on its far side; the
// empty mnemonic is reserved for an absent field.
func encodeCompute(ins Instruction) (uint16, error) {
	if ins.HasDest() && ins.Dest() == "" {
		return 0, newError(MalformedInstruction, ins.Text, "'=' without a destination")
	}
	if ins.HasJump() && ins.Jump() == "" {
		return 0, newError(MalformedInstruction, ins.Text, "';' without a jump")
	}
	return EncodeCompute(ins.Dest(), ins.Comp(), ins.Jump())
}

func (a *Assembler) encodeAddress(ins Instruction) (uint16, error) {
	value, err := a.resolve(ins.Symbol())
	if err != nil {
		return 0, err
	}
	return EncodeAddress(value)
}

// resolve turns an A-instruction operand into an address, allocating a new
// variable the first time an unbound symbol is seen.
func (a *Assembler) resolve(operand string) (int, error) {
	if operand == "" {
		return 0, newError(MalformedInstruction, "@", "missing operand")
	}
	if strings.ContainsAny(operand, whitespace) {
		return 0, newError(MalformedInstruction, operand, "whitespace in operand %q", operand)
	}

	if isNumeral(operand) {
		n, err := strconv.Atoi(operand)
		if errors.Is(err, strconv.ErrRange) || n > MaxAddress {
			return 0, newError(OperandOutOfRange, operand, "%s exceeds %d", operand, MaxAddress)
		}
		if err != nil {
			return 0, newError(MalformedInstruction, operand, "%v", err)
		}
		return n, nil
	}
	if strings.HasPrefix(operand, "-") && isNumeral(operand[1:]) {
		return 0, newError(OperandOutOfRange, operand, "negative address %s", operand)
	}

	if a.symbols.Contains(operand) {
		addr, err := a.symbols.Get(operand)
		return int(addr), err
	}

	if a.nextVariable > MaxAddress {
		return 0, newError(OperandOutOfRange, operand, "no RAM left for variable %s", operand)
	}
	addr := a.nextVariable
	if err := a.symbols.Bind(operand, uint16(addr)); err != nil {
		return 0, err
	}
	a.nextVariable++
	glog.V(2).Infof("variable %s = %d", operand, addr)
	return addr, nil
}

func labelName(ins Instruction) (string, error) {
	text := ins.Text
	if len(text) < 3 || !strings.HasSuffix(text, ")") {
		return "", &Error{Kind: MalformedInstruction, Line: ins.Line, Text: text, Msg: "label must be (NAME)"}
	}
	name := text[1 : len(text)-1]
	if strings.ContainsAny(name, whitespace) {
		return "", &Error{Kind: MalformedInstruction, Line: ins.Line, Text: text, Msg: "whitespace in label name"}
	}
	if strings.ContainsAny(name, "()") {
		return "", &Error{Kind: MalformedInstruction, Line: ins.Line, Text: text, Msg: "nested parentheses"}
	}
	if isNumeral(name) {
		return "", &Error{Kind: MalformedInstruction, Line: ins.Line, Text: text, Msg: "label may not be a number"}
	}
	return name, nil
}

func isNumeral(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
