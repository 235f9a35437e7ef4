package main

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"codemorph/pkg/grid"
	"codemorph/pkg/transpiler"
	"codemorph/pkg/utils"
)

const (
	paneCols   = 70
	paneRows   = 44
	cellWidth  = 7
	cellHeight = 13
	paneGap    = 14
	statusRows = 2
)

var (
	sourceColor = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	outputColor = color.RGBA{R: 0x9f, G: 0xd6, B: 0x9f, A: 0xff}
)

type Game struct {
	source   []rune
	srcPath  string // where Ctrl+S writes the Python output
	srcHash  uint64 // xxhash of the buffer at the last transpile
	result   transpiler.Result
	saveNote string
}

func (g *Game) Update() error {
	for _, r := range ebiten.AppendInputChars(nil) {
		g.source = append(g.source, r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.source = append(g.source, '\n')
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(g.source) > 0 {
		g.source = g.source[:len(g.source)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.source = append(g.source, ' ', ' ', ' ', ' ')
	}

	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveOutput()
	}

	g.refresh()

	return nil
}

// refresh re-runs the pipeline, but only when the buffer actually changed
// since the last transpile.
func (g *Game) refresh() {
	h := xxhash.Sum64String(string(g.source))
	if h != g.srcHash {
		g.srcHash = h
		g.result = transpiler.Transpile(string(g.source))
		g.saveNote = ""
	}
}

func (g *Game) saveOutput() {
	target := "codemorph_out.py"
	if g.srcPath != "" {
		target = utils.WithExtension(g.srcPath, ".py")
	}
	if err := os.WriteFile(target, []byte(g.result.Python), 0o644); err != nil {
		g.saveNote = fmt.Sprintf("save failed: %v", err)
		return
	}
	g.saveNote = "saved " + target
}

// drawPane renders content into a cols-wide character grid at originX.
func drawPane(screen *ebiten.Image, content string, originX int, clr color.Color) {
	idx := 0
	limit := paneCols * paneRows
	for _, r := range content {
		if idx >= limit {
			break
		}
		if r == '\n' {
			_, y := grid.GetGridCoords(idx, paneCols)
			idx = (y + 1) * paneCols
			continue
		}
		x, y := grid.GetGridCoords(idx, paneCols)
		if y >= paneRows {
			break
		}
		px, py := grid.CellOrigin(x, y, cellWidth, cellHeight)
		text.Draw(screen, string(r), basicfont.Face7x13, originX+px, py+cellHeight, clr)
		idx++
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawPane(screen, string(g.source)+"_", 0, sourceColor)
	drawPane(screen, g.result.Python, paneCols*cellWidth+paneGap, outputColor)

	status := fmt.Sprintf("C source | Python   %d token(s), %d diagnostic(s)   Ctrl+S saves",
		len(g.result.Tokens), len(g.result.Diagnostics))
	if g.saveNote != "" {
		status += "   " + g.saveNote
	}
	ebitenutil.DebugPrintAt(screen, status, 4, paneRows*cellHeight+4)
	if len(g.result.Diagnostics) > 0 {
		ebitenutil.DebugPrintAt(screen, g.result.Diagnostics[0], 4, paneRows*cellHeight+20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return paneCols*cellWidth*2 + paneGap, (paneRows + statusRows) * cellHeight
}

func main() {
	game := &Game{}

	if len(os.Args) > 1 {
		fullPath, _, err := utils.GetPathInfo(os.Args[1])
		if err != nil {
			log.Fatalf("Failed to resolve source path: %v", err)
		}
		sourceBytes, err := os.ReadFile(fullPath)
		if err != nil {
			log.Fatalf("Failed to read source file: %v", err)
		}
		game.source = []rune(string(sourceBytes))
		game.srcPath = fullPath
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(paneCols*cellWidth*2+paneGap, (paneRows+statusRows)*cellHeight)
	ebiten.SetWindowTitle("CodeMorph Desktop")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
