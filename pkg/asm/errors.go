package asm

import "fmt"

// ErrorKind classifies an assembly failure.
type ErrorKind int

const (
	UnknownMnemonic ErrorKind = iota
	OperandOutOfRange
	UndefinedSymbol
	MalformedInstruction
	DuplicateSymbol
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownMnemonic:
		return "unknown mnemonic"
	case OperandOutOfRange:
		return "operand out of range"
	case UndefinedSymbol:
		return "undefined symbol"
	case MalformedInstruction:
		return "malformed instruction"
	case DuplicateSymbol:
		return "duplicate symbol"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned for every fault found in the source. Line is the 1-based
// source line and is zero when the fault was raised outside a source context
// (a direct call into the encoder, for example).
type Error struct {
	Kind ErrorKind
	Line int
	Text string
	Msg  string
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrUnknownMnemonic      = &Error{Kind: UnknownMnemonic}
	ErrOperandOutOfRange    = &Error{Kind: OperandOutOfRange}
	ErrUndefinedSymbol      = &Error{Kind: UndefinedSymbol}
	ErrMalformedInstruction = &Error{Kind: MalformedInstruction}
	ErrDuplicateSymbol      = &Error{Kind: DuplicateSymbol}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s on line %d: %q", msg, e.Line, e.Text)
	}
	if e.Text != "" {
		return fmt.Sprintf("%s: %q", msg, e.Text)
	}
	return msg
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind ErrorKind, text, format string, args ...any) *Error {
	return &Error{Kind: kind, Text: text, Msg: fmt.Sprintf(format, args...)}
}

// atLine attaches source position to an encoder or symbol table error.
func atLine(err error, ins Instruction) error {
	if e, ok := err.(*Error); ok && e.Line == 0 {
		c := *e
		c.Line = ins.Line
		c.Text = ins.Text
		return &c
	}
	return err
}
