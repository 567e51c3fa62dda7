package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
)

// WatchInterval is how often watch mode refreshes. Each refresh issues
// several az calls, so it is slower than a typical terminal dashboard.
const WatchInterval = 10 * time.Second

// RunWithWatch executes fn once, or in watch mode repeatedly with the screen
// cleared between refreshes until ctx is cancelled. Errors after the first
// refresh are logged and the loop continues.
func RunWithWatch(ctx context.Context, fn func(ctx context.Context) error, enableWatch bool) error {
	if !enableWatch {
		return fn(ctx)
	}

	ticker := time.NewTicker(WatchInterval)
	defer ticker.Stop()

	fmt.Print("\033[2J\033[H") // Clear screen and move cursor to top
	if err := fn(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ticker.C:
			fmt.Print("\033[2J\033[H")
			if err := fn(ctx); err != nil {
				if ctx.Err() != nil {
					fmt.Println("\nWatch mode interrupted")
					return nil
				}
				logging.Error("Error updating display: %v", err)
			}
		case <-ctx.Done():
			fmt.Println("\nWatch mode interrupted")
			return nil
		}
	}
}
