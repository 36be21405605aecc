package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"hackasm/pkg/asm"
	"hackasm/pkg/cpu"
	"hackasm/pkg/utils"
)

// parseAssignments reads "addr=value,addr=value" RAM presets.
func parseAssignments(presets string) (map[uint16]uint16, error) {
	out := make(map[uint16]uint16)
	if presets == "" {
		return out, nil
	}
	for _, pair := range strings.Split(presets, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad RAM preset %q, want addr=value", pair)
		}
		addr, err := strconv.ParseUint(strings.TrimSpace(k), 0, 16)
		if err != nil || addr >= cpu.RAMSize {
			return nil, fmt.Errorf("bad RAM address %q", k)
		}
		val, err := strconv.ParseInt(strings.TrimSpace(v), 0, 32)
		if err != nil || val < -32768 || val > 65535 {
			return nil, fmt.Errorf("bad RAM value %q", v)
		}
		out[uint16(addr)] = uint16(val)
	}
	return out, nil
}

func main() {
	cycles := flag.Int("cycles", 1_000_000, "maximum instructions to run (0 = until halt)")
	ramPresets := flag.String("ram", "", "comma separated RAM presets, e.g. 0=3,1=9")
	screenshot := flag.String("screenshot", "", "write the screen to this PNG file after the run")
	scale := flag.Int("scale", 1, "screenshot scale factor")
	snapshot := flag.String("hibernate", "", "write a machine snapshot to this file after the run")
	restore := flag.String("restore", "", "resume from a snapshot instead of loading a program")
	flag.Parse()

	vm := cpu.NewCPU()
	switch {
	case *restore != "":
		if err := vm.RestoreFromFile(*restore); err != nil {
			glog.Exitf("Failed to restore %s: %v", *restore, err)
		}
	case flag.NArg() == 1:
		fullPath, _, err := utils.GetPathInfo(flag.Arg(0))
		if err != nil {
			glog.Exitf("Bad path %s: %v", flag.Arg(0), err)
		}
		program, err := asm.LoadProgram(fullPath)
		if err != nil {
			glog.Exitf("Failed to load program: %v", err)
		}
		if err := vm.Load(program); err != nil {
			glog.Exitf("Failed to load program: %v", err)
		}
		glog.V(1).Infof("loaded %d words from %s", len(program), fullPath)
	default:
		fmt.Fprintln(os.Stderr, "usage: console [flags] program.asm|program.hack")
		flag.PrintDefaults()
		os.Exit(2)
	}

	presets, err := parseAssignments(*ramPresets)
	if err != nil {
		glog.Exit(err)
	}
	for addr, val := range presets {
		vm.RAM[addr] = val
	}

	n := vm.Run(*cycles)
	fmt.Printf(
		"run complete: cycles=%d halted=%t PC=%d A=%d D=%d R0=%d R1=%d R2=%d\n",
		n, vm.Halted, vm.PC, vm.A, int16(vm.D),
		int16(vm.RAM[0]), int16(vm.RAM[1]), int16(vm.RAM[2]),
	)

	if *screenshot != "" {
		if err := vm.SaveScreenshot(*screenshot, *scale); err != nil {
			glog.Exitf("Failed to save screenshot: %v", err)
		}
	}
	if *snapshot != "" {
		if err := vm.HibernateToFile(*snapshot); err != nil {
			glog.Exitf("Failed to hibernate: %v", err)
		}
	}
	glog.Flush()
}
