//go:build !js

package main

import (
	"errors"
	goflag "flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"hackasm/pkg/asm"
	"hackasm/pkg/cpu"
	"hackasm/pkg/utils"
)

type options struct {
	outPath   string
	all       bool
	symbols   bool
	runCycles int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "hackasm [flags] file.asm...",
		Short: "Assemble Hack assembly into .hack binary text",
		Long: `hackasm translates Hack symbolic assembly into 16-bit machine words,
one line of 0s and 1s per instruction. Each source is written next to itself
with a .hack extension unless --out is given. With --all every *.asm file in
the current directory is assembled. The first error stops the whole run.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.outPath, "out", "o", "", "output file path (single source only; default: source with .hack extension)")
	f.BoolVarP(&opts.all, "all", "a", false, "assemble every *.asm file in the current directory")
	f.BoolVarP(&opts.symbols, "symbols", "s", false, "print the final symbol table")
	f.IntVarP(&opts.runCycles, "run", "r", 0, "run the result on the emulator for up to N instructions")

	cmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)
	return cmd
}

func run(w io.Writer, opts *options, args []string) error {
	sources := args
	if opts.all {
		found, err := utils.FindSources(".")
		if err != nil {
			return err
		}
		sources = append(sources, found...)
	}
	sources = uniqueSources(sources)

	if len(sources) == 0 {
		return errors.New("nothing to do: provide a source file or use --all")
	}
	if opts.outPath != "" && len(sources) != 1 {
		return fmt.Errorf("--out needs exactly one source, got %d", len(sources))
	}

	for _, src := range sources {
		output := opts.outPath
		if output == "" {
			output = utils.OutputPath(src, utils.OutputExt)
		}

		a, words, err := asm.AssembleFile(src, output)
		if err != nil {
			return err
		}
		glog.V(1).Infof("%s: %d words, %d symbols", src, len(words), a.Symbols().Len())
		fmt.Fprintf(w, "assembled %d words -> %s\n", len(words), output)

		if opts.symbols {
			pp.Fprintln(w, a.Symbols().Symbols())
		}
		if opts.runCycles > 0 {
			if err := runProgram(w, words, opts.runCycles); err != nil {
				return fmt.Errorf("run %s: %w", output, err)
			}
		}
	}
	return nil
}

// uniqueSources drops repeated paths, keeping the first occurrence.
func uniqueSources(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		key := filepath.Clean(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

func runProgram(w io.Writer, words []uint16, maxCycles int) error {
	vm := cpu.NewCPU()
	if err := vm.Load(words); err != nil {
		return err
	}
	n := vm.Run(maxCycles)

	fmt.Fprintf(w,
		"run complete: cycles=%d halted=%t PC=%d A=%d D=%d R0=%d R1=%d R2=%d\n",
		n,
		vm.Halted,
		vm.PC,
		vm.A,
		int16(vm.D),
		int16(vm.RAM[0]),
		int16(vm.RAM[1]),
		int16(vm.RAM[2]),
	)
	return nil
}

func main() {
	// glog registers on the standard flag set; cobra parses it through pflag.
	_ = goflag.CommandLine.Parse(nil)

	err := newRootCmd().Execute()
	glog.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "assembly failed: %v\n", err)
		os.Exit(1)
	}
}
