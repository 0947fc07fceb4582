package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxfeld/reel/internal/playback"
	"github.com/voxfeld/reel/internal/tail"
)

var (
	tailNoEmoji   bool
	tailTimestamp bool
	tailFormat    string
	tailInterval  time.Duration
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow playback changes in real-time",
	Long: `Watch the playback state for changes and print them as they happen.

Events tracked:
  - Session changes (new item started)
  - Audio playback changes
  - Subtitle track or toggle changes
  - Intro skip segments becoming available
  - Playback stopping`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().BoolVar(&tailNoEmoji, "no-emoji", false, "disable emoji output")
	tailCmd.Flags().BoolVarP(&tailTimestamp, "timestamp", "t", false, "show timestamps")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "", "custom format template")
	tailCmd.Flags().DurationVarP(&tailInterval, "interval", "i", 0, "fallback poll interval")

	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	storage, err := playback.NewStateStorage(cfg.Playback.StateFile)
	if err != nil {
		return err
	}

	interval := tailInterval
	if interval <= 0 {
		interval = time.Duration(cfg.Tail.Interval) * time.Millisecond
	}

	formatter := tail.NewFormatter(
		tail.WithEmoji(!tailNoEmoji && IsTerminal()),
		tail.WithTimestamp(tailTimestamp),
		tail.WithTemplate(tailFormat),
	)

	// Handle Ctrl+C gracefully
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		cancel()
	}()

	// Show current state on startup, if any.
	if snap, err := storage.Load(); err == nil && (snap.Session != nil || snap.Audio != nil) {
		eventType := tail.EventSessionChange
		if snap.Audio != nil {
			eventType = tail.EventAudioChange
		}
		fmt.Println(formatter.Format(tail.Event{
			Type:      eventType,
			Timestamp: time.Now(),
			Current:   snap,
		}))
	}

	watcher := tail.NewWatcher(storage, interval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- watcher.Start(ctx)
	}()

	for {
		select {
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			fmt.Println(formatter.Format(event))

		case err := <-errCh:
			if err == context.Canceled {
				return nil
			}
			return err
		}
	}
}
