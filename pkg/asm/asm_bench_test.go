package asm

import (
	"fmt"
	"strings"
	"testing"
)

// smallProgram multiplies R0 by R1 into R2.
const smallProgram = `
    @R2
    M=0
(LOOP)
    @R0
    D=M
    @END
    D;JLE
    @R1
    D=M
    @R2
    M=D+M
    @R0
    M=M-1
    @LOOP
    0;JMP
(END)
    @END
    0;JMP
`

// mediumProgram draws a 16 pixel wide rectangle R0 rows high at the top
// left of the screen, using variables and both label directions.
const mediumProgram = `
   @0
   D=M
   @INFINITE_LOOP
   D;JLE
   @counter
   M=D
   @SCREEN
   D=A
   @address
   M=D
(LOOP)
   @address
   A=M
   M=-1
   @address
   D=M
   @32
   D=D+A
   @address
   M=D
   @counter
   MD=M-1
   @LOOP
   D;JGT
(INFINITE_LOOP)
   @INFINITE_LOOP
   0;JMP
`

// largeProgram repeats a block with its own labels and variables until it
// is a few thousand instructions long.
var largeProgram = func() string {
	var sb strings.Builder
	for i := 0; i < 400; i++ {
		fmt.Fprintf(&sb, "(BLOCK_%d)\n", i)
		fmt.Fprintf(&sb, "    @var_%d // allocate\n", i)
		sb.WriteString("    M=0\n")
		fmt.Fprintf(&sb, "    @BLOCK_%d\n", (i+1)%400)
		sb.WriteString("    D=A\n")
		fmt.Fprintf(&sb, "    @var_%d\n", i)
		sb.WriteString("    AM=M+1\n")
		sb.WriteString("    D;JNE\n")
	}
	return sb.String()
}()

func TestBenchmarkProgramsAssemble(t *testing.T) {
	for name, code := range map[string]string{"small": smallProgram, "medium": mediumProgram, "large": largeProgram} {
		if _, _, err := Assemble(code); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func BenchmarkAssemble_Small(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, err := Assemble(smallProgram)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAssemble_Medium(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, err := Assemble(mediumProgram)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAssemble_Large(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, err := Assemble(largeProgram)
		if err != nil {
			b.Fatal(err)
		}
	}
}
