package dashboard

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/require"
)

const (
	screenWidth  = 160
	screenHeight = 50
)

// newTestScreen returns an initialised simulation screen
func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(screenWidth, screenHeight)
	t.Cleanup(screen.Fini)
	return screen
}

// renderToString draws p on a fresh simulation screen and returns its text
func renderToString(t *testing.T, p tview.Primitive) string {
	t.Helper()
	screen := newTestScreen(t)
	p.SetRect(0, 0, screenWidth, screenHeight)
	p.Draw(screen)
	screen.Show()
	return screenText(screen)
}

// screenText returns the screen contents, one line per row
func screenText(screen tcell.SimulationScreen) string {
	cells, width, height := screen.GetContents()
	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			runes := cells[y*width+x].Runes
			if len(runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(runes[0])
		}
		b.WriteRune('\n')
	}
	return b.String()
}

// halves splits screen text into the self pane and the opponent pane
func halves(text string) (string, string) {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	mid := len(lines) / 2
	return strings.Join(lines[:mid], "\n"), strings.Join(lines[mid:], "\n")
}
