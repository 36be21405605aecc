package asm

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteHack writes one 16-digit binary line per word, each newline-terminated.
func WriteHack(w io.Writer, words []uint16) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := bw.WriteString(FormatWord(word)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadHack parses the output of WriteHack. Blank lines are ignored.
func ReadHack(r io.Reader) ([]uint16, error) {
	var words []uint16
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		word, err := ParseWord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// AssembleFile assembles inPath into outPath. The output file is only
// created once assembly has succeeded.
func AssembleFile(inPath, outPath string) (*Assembler, []uint16, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return nil, nil, err
	}
	p, err := NewParser(in)
	in.Close()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", inPath, err)
	}

	a := NewAssembler()
	words, _, err := a.Run(p)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", inPath, err)
	}

	var buf bytes.Buffer
	if err := WriteHack(&buf, words); err != nil {
		return nil, nil, err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return nil, nil, fmt.Errorf("write %s: %w", outPath, err)
	}
	return a, words, nil
}

// LoadProgram returns the machine words for path: .hack files are read as
// binary text, anything else is assembled.
func LoadProgram(path string) ([]uint16, error) {
	if strings.EqualFold(filepath.Ext(path), ".hack") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		words, err := ReadHack(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return words, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	p, err := NewParser(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	words, _, err := NewAssembler().Run(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}
