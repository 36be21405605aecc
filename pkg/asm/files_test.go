package asm

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestWriteReadHack(t *testing.T) {
	words := []uint16{2, 0xEC10, 0x7FFF}
	var buf bytes.Buffer
	if err := WriteHack(&buf, words); err != nil {
		t.Fatalf("WriteHack: %v", err)
	}

	want := "0000000000000010\n1110110000010000\n0111111111111111\n"
	if buf.String() != want {
		t.Errorf("WriteHack wrote %q; want %q", buf.String(), want)
	}

	got, err := ReadHack(strings.NewReader(buf.String() + "\n"))
	if err != nil {
		t.Fatalf("ReadHack: %v", err)
	}
	if !reflect.DeepEqual(got, words) {
		t.Errorf("ReadHack = %v; want %v", got, words)
	}

	if _, err := ReadHack(strings.NewReader("0000000000000010\n12\n")); err == nil {
		t.Error("ReadHack accepted a malformed line")
	}
}

func TestAssembleFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "Add.asm")
	out := filepath.Join(dir, "Add.hack")
	src := "@2\nD=A\n@3\nD=D+A\n@0\nM=D\n"
	if err := os.WriteFile(in, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	a, words, err := AssembleFile(in, out)
	if err != nil {
		t.Fatalf("AssembleFile: %v", err)
	}
	if len(words) != 6 || a.Symbols().Len() != 23 {
		t.Errorf("got %d words, %d symbols; want 6, 23", len(words), a.Symbols().Len())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	want := strings.Join([]string{
		"0000000000000010",
		"1110110000010000",
		"0000000000000011",
		"1110000010010000",
		"0000000000000000",
		"1110001100001000",
	}, "\n") + "\n"
	if string(data) != want {
		t.Errorf("output =\n%s\nwant\n%s", data, want)
	}
}

func TestAssembleFileNoPartialOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "Bad.asm")
	out := filepath.Join(dir, "Bad.hack")
	if err := os.WriteFile(in, []byte("@1\nD=A\nD=Z\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := AssembleFile(in, out)
	if !errors.Is(err, ErrUnknownMnemonic) {
		t.Fatalf("AssembleFile error = %v; want unknown mnemonic", err)
	}
	if !strings.Contains(err.Error(), "Bad.asm") {
		t.Errorf("error %q does not name the source file", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("output file exists after failed assembly (stat err %v)", statErr)
	}
}

func TestAssembleFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := AssembleFile(filepath.Join(dir, "nope.asm"), filepath.Join(dir, "nope.hack")); err == nil {
		t.Error("AssembleFile succeeded on a missing input")
	}
}

func TestLoadProgram(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Prog.asm")
	if err := os.WriteFile(src, []byte("@5\nD=A\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	hack := filepath.Join(dir, "Prog.hack")
	if err := os.WriteFile(hack, []byte("0000000000000101\n1110110000010000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fromAsm, err := LoadProgram(src)
	if err != nil {
		t.Fatalf("LoadProgram(asm): %v", err)
	}
	fromHack, err := LoadProgram(hack)
	if err != nil {
		t.Fatalf("LoadProgram(hack): %v", err)
	}
	if !reflect.DeepEqual(fromAsm, fromHack) {
		t.Errorf("asm gave %v, hack gave %v", fromAsm, fromHack)
	}
}

func TestAssembleFileLongLine(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "Long.asm")
	out := filepath.Join(dir, "Long.hack")
	src := "@2\n// " + strings.Repeat("x", 70000) + "\nD=A\n"
	if err := os.WriteFile(in, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	want, _, err := Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	_, got, err := AssembleFile(in, out)
	if err != nil {
		t.Fatalf("AssembleFile: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AssembleFile = %v; Assemble = %v", got, want)
	}
	if loaded, err := LoadProgram(in); err != nil || !reflect.DeepEqual(loaded, want) {
		t.Errorf("LoadProgram = %v, %v; want %v", loaded, err, want)
	}
}
