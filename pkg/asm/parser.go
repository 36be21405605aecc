package asm

import (
	"fmt"
	"io"
	"strings"
)

// Kind is the classification of a cleaned source line.
type Kind int

const (
	AddressInstruction Kind = iota
	ComputeInstruction
	LabelInstruction
)

func (k Kind) String() string {
	switch k {
	case AddressInstruction:
		return "A"
	case ComputeInstruction:
		return "C"
	case LabelInstruction:
		return "L"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Instruction is one non-blank, non-comment source line with comments and
// whitespace removed.
type Instruction struct {
	Line int
	Text string
}

// Classify reports the kind of a cleaned instruction text.
func Classify(text string) Kind {
	switch {
	case strings.HasPrefix(text, "@"):
		return AddressInstruction
	case strings.HasPrefix(text, "("):
		return LabelInstruction
	default:
		return ComputeInstruction
	}
}

func (ins Instruction) Kind() Kind {
	return Classify(ins.Text)
}

// Symbol returns the operand of an A-instruction or the name of a label.
func (ins Instruction) Symbol() string {
	switch ins.Kind() {
	case AddressInstruction:
		return ins.Text[1:]
	case LabelInstruction:
		return strings.TrimSuffix(ins.Text[1:], ")")
	}
	return ""
}

// HasDest reports whether the instruction contains '='.
func (ins Instruction) HasDest() bool {
	return strings.Contains(ins.Text, "=")
}

// HasJump reports whether the instruction contains ';'.
func (ins Instruction) HasJump() bool {
	return strings.Contains(ins.Text, ";")
}

// Dest returns the destination mnemonic, or "" when the instruction has no '='.
func (ins Instruction) Dest() string {
	dest, _, found := strings.Cut(ins.Text, "=")
	if !found {
		return ""
	}
	return dest
}

// Comp returns what remains after removing the dest prefix and jump suffix.
func (ins Instruction) Comp() string {
	comp := ins.Text
	if _, after, found := strings.Cut(comp, "="); found {
		comp = after
	}
	comp, _, _ = strings.Cut(comp, ";")
	return comp
}

// Jump returns the jump mnemonic, or "" when the instruction has no ';'.
func (ins Instruction) Jump() string {
	_, jump, found := strings.Cut(ins.Text, ";")
	if !found {
		return ""
	}
	return jump
}

// Parser is a cursor over the instructions of one source text. The source is
// read once; Reset rewinds the cursor for the second pass.
type Parser struct {
	instructions []Instruction
	pos          int
}

// NewParser reads all of r. Lines may be any length.
func NewParser(r io.Reader) (*Parser, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return ParseLines(strings.Split(string(data), "\n")), nil
}

// ParseLines builds a parser over in-memory lines. Line numbers are 1-based
// positions in lines.
func ParseLines(lines []string) *Parser {
	p := &Parser{}
	for i, raw := range lines {
		text := cleanLine(raw)
		if text == "" {
			continue
		}
		p.instructions = append(p.instructions, Instruction{Line: i + 1, Text: text})
	}
	return p
}

func (p *Parser) HasMore() bool {
	return p.pos < len(p.instructions)
}

// Current returns the instruction under the cursor. It must only be called
// while HasMore is true.
func (p *Parser) Current() Instruction {
	return p.instructions[p.pos]
}

func (p *Parser) Advance() {
	if p.pos < len(p.instructions) {
		p.pos++
	}
}

func (p *Parser) Reset() {
	p.pos = 0
}

// Instructions returns the full instruction sequence in source order.
func (p *Parser) Instructions() []Instruction {
	return p.instructions
}

const whitespace = " \t\r\v\f"

// cleanLine drops the comment and surrounding whitespace. Compute
// instructions also lose inner whitespace; A-instructions and labels keep it
// so the driver can reject names like "LO OP".
func cleanLine(raw string) string {
	line, _, _ := strings.Cut(raw, "//")
	line = strings.Trim(line, whitespace)
	if line == "" || Classify(line) != ComputeInstruction {
		return line
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(whitespace, r) {
			return -1
		}
		return r
	}, line)
}
