package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"hackasm/pkg/asm"
	"hackasm/pkg/cpu"
	"hackasm/pkg/utils"
)

// Hack keyboard codes for keys that have no printable character.
var specialKeys = map[ebiten.Key]uint16{
	ebiten.KeySpace:      ' ',
	ebiten.KeyEnter:      128,
	ebiten.KeyBackspace:  129,
	ebiten.KeyArrowLeft:  130,
	ebiten.KeyArrowUp:    131,
	ebiten.KeyArrowRight: 132,
	ebiten.KeyArrowDown:  133,
	ebiten.KeyHome:       134,
	ebiten.KeyEnd:        135,
	ebiten.KeyPageUp:     136,
	ebiten.KeyPageDown:   137,
	ebiten.KeyInsert:     138,
	ebiten.KeyDelete:     139,
	ebiten.KeyEscape:     140,
	ebiten.KeyF1:         141,
	ebiten.KeyF2:         142,
	ebiten.KeyF3:         143,
	ebiten.KeyF4:         144,
	ebiten.KeyF5:         145,
	ebiten.KeyF6:         146,
	ebiten.KeyF7:         147,
	ebiten.KeyF8:         148,
	ebiten.KeyF9:         149,
	ebiten.KeyF10:        150,
	ebiten.KeyF11:        151,
	ebiten.KeyF12:        152,
}

// keyCode maps a physical key to the value the Hack keyboard register
// reports while it is held. Unmapped keys give 0.
func keyCode(k ebiten.Key) uint16 {
	if code, ok := specialKeys[k]; ok {
		return code
	}
	name := k.String()
	switch {
	case len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z':
		return uint16(name[0])
	case len(name) == 6 && strings.HasPrefix(name, "Digit"):
		return uint16(name[5])
	}
	return 0
}

// heldKey returns the code of the first mapped key in keys.
func heldKey(keys []ebiten.Key) uint16 {
	for _, k := range keys {
		if code := keyCode(k); code != 0 {
			return code
		}
	}
	return 0
}

type Game struct {
	vm           *cpu.CPU
	screenImg    *ebiten.Image // reused 512x256 framebuffer
	stepsPerTick int
	showStatus   bool
	keys         []ebiten.Key
}

func (g *Game) Update() error {
	g.keys = inpututil.AppendPressedKeys(g.keys[:0])
	g.vm.SetKey(heldKey(g.keys))

	for i := 0; i < g.stepsPerTick; i++ {
		if g.vm.Halted {
			break
		}
		g.vm.Step()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.screenImg == nil {
		g.screenImg = ebiten.NewImage(cpu.ScreenWidth, cpu.ScreenHeight)
	}
	g.screenImg.WritePixels(g.vm.GetFramebufferRGBA())
	screen.DrawImage(g.screenImg, nil)

	if g.showStatus {
		status := fmt.Sprintf("PC=%d A=%d D=%d cycles=%d", g.vm.PC, g.vm.A, int16(g.vm.D), g.vm.Cycles)
		if g.vm.Halted {
			status += " halted"
		}
		ebitenutil.DebugPrintAt(screen, status, 4, cpu.ScreenHeight-16)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return cpu.ScreenWidth, cpu.ScreenHeight
}

func main() {
	steps := flag.Int("steps", 50000, "instructions executed per frame")
	status := flag.Bool("status", false, "overlay registers on the screen")
	restore := flag.String("restore", "", "resume from a snapshot instead of loading a program")
	snapshot := flag.String("hibernate", "", "write a machine snapshot here when the window closes")
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
	default:
		fmt.Fprintln(os.Stderr, "usage: desktop [flags] program.asm|program.hack")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cpu.ScreenWidth*2, cpu.ScreenHeight*2)
	ebiten.SetWindowTitle("Hack Desktop")

	game := &Game{vm: vm, stepsPerTick: *steps, showStatus: *status}
	if err := ebiten.RunGame(game); err != nil {
		glog.Exit(err)
	}

	if *snapshot != "" {
		if err := vm.HibernateToFile(*snapshot); err != nil {
			glog.Errorf("Failed to hibernate: %v", err)
		}
	}
	glog.Flush()
}
