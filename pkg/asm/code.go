package asm

import (
	"fmt"
	"strconv"
	"strings"
)

var destCodes = map[string]uint16{
	"":    0b000,
	"M":   0b001,
	"D":   0b010,
	"MD":  0b011,
	"A":   0b100,
	"AM":  0b101,
	"AD":  0b110,
	"AMD": 0b111,
}

var jumpCodes = map[string]uint16{
	"":    0b000,
	"JGT": 0b001,
	"JEQ": 0b010,
	"JGE": 0b011,
	"JLT": 0b100,
	"JNE": 0b101,
	"JLE": 0b110,
	"JMP": 0b111,
}

// compCodes holds the a-bit followed by the six ALU control bits
// (zx nx zy ny f no).
var compCodes = map[string]uint16{
	// a=0
	"0":   0b0101010,
	"1":   0b0111111,
	"-1":  0b0111010,
	"D":   0b0001100,
	"A":   0b0110000,
	"!D":  0b0001101,
	"!A":  0b0110001,
	"-D":  0b0001111,
	"-A":  0b0110011,
	"D+1": 0b0011111,
	"A+1": 0b0110111,
	"D-1": 0b0001110,
	"A-1": 0b0110010,
	"D+A": 0b0000010,
	"D-A": 0b0010011,
	"A-D": 0b0000111,
	"D&A": 0b0000000,
	"D|A": 0b0010101,
	// a=1
	"M":   0b1110000,
	"!M":  0b1110001,
	"-M":  0b1110011,
	"M+1": 0b1110111,
	"M-1": 0b1110010,
	"D+M": 0b1000010,
	"D-M": 0b1010011,
	"M-D": 0b1000111,
	"D&M": 0b1000000,
	"D|M": 0b1010101,
}

var (
	destNames = invert(destCodes)
	jumpNames = invert(jumpCodes)
	compNames = invert(compCodes)
)

func invert(m map[string]uint16) map[uint16]string {
	out := make(map[uint16]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

const (
	computeHeader uint16 = 0b111 << 13
	// MemoryBit is the a-bit inside a 7-bit comp field.
	MemoryBit uint16 = 1 << 6
)

func DestBits(mnemonic string) (uint16, error) {
	bits, ok := destCodes[mnemonic]
	if !ok {
		return 0, newError(UnknownMnemonic, mnemonic, "dest %s", mnemonic)
	}
	return bits, nil
}

func JumpBits(mnemonic string) (uint16, error) {
	bits, ok := jumpCodes[mnemonic]
	if !ok {
		return 0, newError(UnknownMnemonic, mnemonic, "jump %s", mnemonic)
	}
	return bits, nil
}

// CompBits returns the 7-bit comp field. The leading bit is set when the
// mnemonic reads M rather than A.
func CompBits(mnemonic string) (uint16, error) {
	if mnemonic == "" {
		return 0, newError(MalformedInstruction, mnemonic, "missing comp")
	}
	bits, ok := compCodes[mnemonic]
	if !ok {
		return 0, newError(UnknownMnemonic, mnemonic, "comp %s", mnemonic)
	}
	return bits, nil
}

// AddressBits checks that value fits in 15 bits.
func AddressBits(value int) (uint16, error) {
	if value < 0 || value > MaxAddress {
		return 0, newError(OperandOutOfRange, strconv.Itoa(value), "%d not in [0, %d]", value, MaxAddress)
	}
	return uint16(value), nil
}

// EncodeCompute builds 111 a cccccc ddd jjj.
func EncodeCompute(dest, comp, jump string) (uint16, error) {
	c, err := CompBits(comp)
	if err != nil {
		return 0, err
	}
	d, err := DestBits(dest)
	if err != nil {
		return 0, err
	}
	j, err := JumpBits(jump)
	if err != nil {
		return 0, err
	}
	return computeHeader | c<<6 | d<<3 | j, nil
}

// EncodeAddress builds 0 vvvvvvvvvvvvvvv.
func EncodeAddress(value int) (uint16, error) {
	return AddressBits(value)
}

// FormatWord renders w as 16 binary digits.
func FormatWord(w uint16) string {
	return fmt.Sprintf("%016b", w)
}

// ParseWord is the inverse of FormatWord.
func ParseWord(text string) (uint16, error) {
	if len(text) != 16 || strings.Trim(text, "01") != "" {
		return 0, fmt.Errorf("invalid machine word %q", text)
	}
	v, err := strconv.ParseUint(text, 2, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid machine word %q: %w", text, err)
	}
	return uint16(v), nil
}

func DecodeDest(bits uint16) string {
	return destNames[bits&0b111]
}

func DecodeJump(bits uint16) string {
	return jumpNames[bits&0b111]
}

// DecodeComp maps a 7-bit comp field back to its mnemonic. Only the 28
// documented patterns are recognised.
func DecodeComp(bits uint16) (string, error) {
	name, ok := compNames[bits&0x7F]
	if !ok {
		return "", newError(UnknownMnemonic, fmt.Sprintf("%07b", bits&0x7F), "no comp for bits %07b", bits&0x7F)
	}
	return name, nil
}

// Disassemble renders one machine word as assembly text.
func Disassemble(word uint16) (string, error) {
	if word&0x8000 == 0 {
		return "@" + strconv.Itoa(int(word)), nil
	}
	if word&computeHeader != computeHeader {
		return "", newError(MalformedInstruction, FormatWord(word), "compute word without 111 header")
	}
	comp, err := DecodeComp(word >> 6)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if dest := DecodeDest(word >> 3); dest != "" {
		sb.WriteString(dest)
		sb.WriteByte('=')
	}
	sb.WriteString(comp)
	if jump := DecodeJump(word); jump != "" {
		sb.WriteByte(';')
		sb.WriteString(jump)
	}
	return sb.String(), nil
}
