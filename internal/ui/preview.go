package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/realmforge/internal/tiles"
	"github.com/samdwyer/realmforge/internal/zone"
)

// Preview shows a zone until the user quits or ctx is cancelled.
func Preview(ctx context.Context, z *zone.Zone, catalog *tiles.Catalog) error {
	screen, err := NewScreen()
	if err != nil {
		return err
	}
	defer screen.Close()

	renderer := NewRenderer(screen, catalog)

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	renderer.Render(z)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quitKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
				renderer.Render(z)
			}
		}
	}
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		r := ev.Rune()
		return r == 'q' || r == 'Q'
	}
	return false
}
