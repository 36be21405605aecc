package main

import (
	"bytes"
	"testing"
)

func TestDisassemble(t *testing.T) {
	words := []uint16{2, 0xEC10, 0x0000, 0xE308}

	var plain bytes.Buffer
	if err := disassemble(&plain, words, false); err != nil {
		t.Fatal(err)
	}
	if want := "@2\nD=A\n@0\nM=D\n"; plain.String() != want {
		t.Errorf("plain output = %q; want %q", plain.String(), want)
	}

	var listed bytes.Buffer
	if err := disassemble(&listed, words[:1], true); err != nil {
		t.Fatal(err)
	}
	if want := "    0  0000000000000010  @2\n"; listed.String() != want {
		t.Errorf("listing = %q; want %q", listed.String(), want)
	}
}

func TestDisassembleRejectsBadWord(t *testing.T) {
	var out bytes.Buffer
	if err := disassemble(&out, []uint16{0x8000}, false); err == nil {
		t.Error("disassemble accepted a word without the compute header")
	}
}
