package asm

import (
	"errors"
	"fmt"
	"testing"
)

func TestSymbolTable(t *testing.T) {
	t.Run("Predefined", func(t *testing.T) {
		s := NewSymbolTable()
		tests := []struct {
			name string
			want uint16
		}{
			{"SP", 0},
			{"LCL", 1},
			{"ARG", 2},
			{"THIS", 3},
			{"THAT", 4},
			{"R7", 7},
			{"R15", 15},
			{"SCREEN", 16384},
			{"KBD", 24576},
		}
		for _, tc := range tests {
			got, err := s.Get(tc.name)
			if err != nil || got != tc.want {
				t.Errorf("Get(%q) = %d, %v; want %d", tc.name, got, err, tc.want)
			}
		}
		for i := 0; i < 16; i++ {
			name := fmt.Sprintf("R%d", i)
			if got, _ := s.Get(name); got != uint16(i) {
				t.Errorf("%s = %d; want %d", name, got, i)
			}
		}
		if s.Len() != 23 {
			t.Errorf("Len() = %d; want 23", s.Len())
		}
	})

	t.Run("BindAndGet", func(t *testing.T) {
		s := NewSymbolTable()
		if s.Contains("LOOP") {
			t.Fatal("LOOP bound before Bind")
		}
		if err := s.Bind("LOOP", 42); err != nil {
			t.Fatalf("Bind: %v", err)
		}
		if !s.Contains("LOOP") {
			t.Error("Contains(LOOP) = false after Bind")
		}
		if got, err := s.Get("LOOP"); err != nil || got != 42 {
			t.Errorf("Get(LOOP) = %d, %v; want 42", got, err)
		}
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		s := NewSymbolTable()
		if s.Contains("screen") || s.Contains("r1") {
			t.Error("lowercase predefined names must not resolve")
		}
	})

	t.Run("Undefined", func(t *testing.T) {
		s := NewSymbolTable()
		_, err := s.Get("missing")
		if !errors.Is(err, ErrUndefinedSymbol) {
			t.Errorf("Get(missing) error = %v; want undefined symbol", err)
		}
	})

	t.Run("RebindRejected", func(t *testing.T) {
		s := NewSymbolTable()
		if err := s.Bind("x", 16); err != nil {
			t.Fatalf("Bind: %v", err)
		}
		if err := s.Bind("x", 16); !errors.Is(err, ErrDuplicateSymbol) {
			t.Errorf("second Bind(x) error = %v; want duplicate symbol", err)
		}
		if err := s.Bind("SCREEN", 1); !errors.Is(err, ErrDuplicateSymbol) {
			t.Errorf("Bind(SCREEN) error = %v; want duplicate symbol", err)
		}
		if got, _ := s.Get("SCREEN"); got != ScreenBase {
			t.Errorf("SCREEN changed to %d", got)
		}
	})

	t.Run("SymbolsOrdered", func(t *testing.T) {
		s := NewSymbolTable()
		_ = s.Bind("b", 16)
		_ = s.Bind("a", 16)
		syms := s.Symbols()
		if len(syms) != s.Len() {
			t.Fatalf("Symbols() returned %d entries; want %d", len(syms), s.Len())
		}
		for i := 1; i < len(syms); i++ {
			prev, cur := syms[i-1], syms[i]
			if prev.Address > cur.Address || (prev.Address == cur.Address && prev.Name > cur.Name) {
				t.Errorf("Symbols() out of order at %d: %v before %v", i, prev, cur)
			}
		}
		if syms[0] != (Symbol{Name: "R0", Address: 0}) {
			t.Errorf("Symbols()[0] = %v; want R0 (sorts before SP)", syms[0])
		}
	})
}
