package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/voxfeld/reel/internal/tui"
)

var tuiRefresh int

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard provides a live view with:
  • Now Playing - current item, progress, subtitles, intro segments
  • Queue - upcoming items with the playback cursor

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  n, →         Next item
  p, ←         Previous item
  s            Toggle subtitles
  S            Disable subtitles
  j/k          Scroll queue
  Tab          Switch panel`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVar(&tuiRefresh, "refresh", 0, "Refresh interval in milliseconds")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	sess, err := getSession()
	if err != nil {
		return err
	}

	refresh := tuiRefresh
	if refresh <= 0 {
		refresh = cfg.TUI.RefreshInterval
	}

	app := tui.NewApp(sess.orchestrator, sess.storage, time.Duration(refresh)*time.Millisecond)
	return app.Run()
}
