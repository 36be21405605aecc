package asm

import (
	"fmt"
	"sort"
)

const (
	// VariableBase is the first RAM address handed to a variable, just above R15.
	VariableBase = 16
	ScreenBase   = 16384
	KeyboardAddr = 24576
	// MaxAddress is the largest value a 15-bit A-instruction can carry.
	MaxAddress = 0x7FFF
)

var predefinedSymbols = map[string]uint16{
	"SP":     0,
	"LCL":    1,
	"ARG":    2,
	"THIS":   3,
	"THAT":   4,
	"SCREEN": ScreenBase,
	"KBD":    KeyboardAddr,
}

// Symbol is one name/address binding.
type Symbol struct {
	Name    string
	Address uint16
}

// SymbolTable maps label and variable names to addresses. A name is bound at
// most once per assembly.
type SymbolTable struct {
	addrs map[string]uint16
}

func NewSymbolTable() *SymbolTable {
	s := &SymbolTable{addrs: make(map[string]uint16, len(predefinedSymbols)+16)}
	for name, addr := range predefinedSymbols {
		s.addrs[name] = addr
	}
	for i := 0; i < 16; i++ {
		s.addrs[fmt.Sprintf("R%d", i)] = uint16(i)
	}
	return s
}

func (s *SymbolTable) Contains(name string) bool {
	_, ok := s.addrs[name]
	return ok
}

func (s *SymbolTable) Get(name string) (uint16, error) {
	addr, ok := s.addrs[name]
	if !ok {
		return 0, newError(UndefinedSymbol, name, "%s is not bound", name)
	}
	return addr, nil
}

// Bind adds name at addr. Rebinding an existing name, predefined ones
// included, is an error even when the address would not change.
func (s *SymbolTable) Bind(name string, addr uint16) error {
	if prev, ok := s.addrs[name]; ok {
		return newError(DuplicateSymbol, name, "%s already bound to %d", name, prev)
	}
	s.addrs[name] = addr
	return nil
}

// Symbols lists every binding ordered by address, then name.
func (s *SymbolTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(s.addrs))
	for name, addr := range s.addrs {
		out = append(out, Symbol{Name: name, Address: addr})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Address != out[j].Address {
			return out[i].Address < out[j].Address
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (s *SymbolTable) Len() int {
	return len(s.addrs)
}
