// Package dashboard draws the two-pane terminal view.
package dashboard

import (
	"w3dash/models"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	log "github.com/sirupsen/logrus"
)

// Dashboard owns the terminal. Run blocks on the event loop; Draw may be called
// from any goroutine and replaces the whole frame.
type Dashboard struct {
	app *tview.Application
}

// New creates a dashboard on the real terminal (alternate screen buffer)
func New() *Dashboard {
	return newDashboard(tview.NewApplication())
}

// NewWithScreen creates a dashboard on the given screen, e.g. a tcell simulation screen
func NewWithScreen(screen tcell.Screen) *Dashboard {
	return newDashboard(tview.NewApplication().SetScreen(screen))
}

func newDashboard(app *tview.Application) *Dashboard {
	d := &Dashboard{app: app}
	app.SetRoot(Layout(models.Data{}), true)
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			log.Info("Quit requested from keyboard")
			app.Stop()
			return nil
		}
		return event
	})
	return d
}

// Run starts the event loop and returns when the dashboard is stopped.
// Terminal setup failures are returned from here.
func (d *Dashboard) Run() error {
	return d.app.Run()
}

// Draw clears the screen and draws data. Users are never mutated after
// construction, so the snapshot may be shared with the event loop.
func (d *Dashboard) Draw(data models.Data) {
	d.app.QueueUpdateDraw(func() {
		d.app.SetRoot(Layout(data), true)
	})
}

// Stop ends the event loop and restores the terminal
func (d *Dashboard) Stop() {
	d.app.Stop()
}
