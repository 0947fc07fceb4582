package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voxfeld/reel/internal/core"
	"github.com/voxfeld/reel/internal/playback"
)

var queueLimit int

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show the playback queue",
	Long:  `Show the current playback queue and cursor position.`,
	RunE:  runQueue,
}

func init() {
	queueCmd.Flags().IntVarP(&queueLimit, "limit", "n", 0, "show at most this many items (0 = all)")
	rootCmd.AddCommand(queueCmd)
}

func runQueue(cmd *cobra.Command, args []string) error {
	storage, err := playback.NewStateStorage(cfg.Playback.StateFile)
	if err != nil {
		return err
	}
	snap, err := storage.Load()
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(snap.Queue)
	}

	if snap.Queue.IsEmpty() {
		fmt.Println("Queue is empty")
		return nil
	}

	limit := snap.Queue.Len()
	if queueLimit > 0 && queueLimit < limit {
		limit = queueLimit
	}

	table := NewTable("", "#", "TITLE", "KIND", "LENGTH")
	for i := 0; i < limit; i++ {
		item := snap.Queue.At(i)
		marker := " "
		if i == snap.Queue.CurrentIndex {
			marker = "▶"
		}
		length := ""
		if item.RuntimeTicks > 0 {
			length = FormatTicks(item.RuntimeTicks)
		}
		table.Row(marker, fmt.Sprintf("%d", i+1), queueItemLabel(*item), string(item.Kind), length)
	}
	table.Flush()

	if limit < snap.Queue.Len() {
		fmt.Printf("... and %d more\n", snap.Queue.Len()-limit)
	}
	return nil
}

func queueItemLabel(item core.Item) string {
	if item.SeriesID != "" {
		return fmt.Sprintf("%s S%d:E%d %s", item.SeriesName, item.SeasonNumber, item.EpisodeNumber, item.Name)
	}
	return item.Name
}
