package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"hackasm/pkg/asm"
)

// disassemble writes one assembly line per word. With addresses set each
// line is prefixed by its ROM address and the raw word.
func disassemble(w io.Writer, words []uint16, addresses bool) error {
	for addr, word := range words {
		text, err := asm.Disassemble(word)
		if err != nil {
			return fmt.Errorf("ROM[%d]: %w", addr, err)
		}
		if addresses {
			_, err = fmt.Fprintf(w, "%5d  %s  %s\n", addr, asm.FormatWord(word), text)
		} else {
			_, err = fmt.Fprintln(w, text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func main() {
	addresses := flag.Bool("addr", false, "prefix each line with its ROM address and binary word")
	flag.Parse()

	in := io.Reader(os.Stdin)
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			glog.Exitf("read error: %v", err)
		}
		defer f.Close()
		in = f
	}

	words, err := asm.ReadHack(in)
	if err != nil {
		glog.Exitf("bad .hack input: %v", err)
	}
	glog.V(1).Infof("disassembling %d words", len(words))
	if err := disassemble(os.Stdout, words, *addresses); err != nil {
		glog.Exit(err)
	}
	glog.Flush()
}
