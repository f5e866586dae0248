package cli

import (
	"context"
	"time"

	"github.com/tracery-dev/tracery"
	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// RunWatch re-renders the catalogue for root whenever the registry
// document changes, until ctx is cancelled. render is invoked once up
// front and again after every successful reload.
func RunWatch(ctx context.Context, engine *tracery.Engine, root schema.TypeID, render func(*domain.Catalogue)) error {
	events, err := engine.Watch(ctx)
	if err != nil {
		return err
	}

	rebuild := func() {
		cat, err := engine.Catalogue(ctx, root)
		if err != nil {
			printSystemMessage("Build failed: %v", err)
			return
		}
		render(cat)
	}

	rebuild()
	printSystemMessage("Watching '%s' for changes...", engine.Name)

	for {
		select {
		case <-ctx.Done():
			printSystemMessage("Stopped.")
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			// Delay slightly to ensure the file system is stable
			time.Sleep(100 * time.Millisecond)
			if err := engine.Refresh(ctx); err != nil {
				printSystemMessage("Reload failed: %v", err)
				continue
			}
			printSystemMessage("Change detected, rebuilding...")
			rebuild()
		}
	}
}
