package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	playChildren bool
	playStart    int
)

var playCmd = &cobra.Command{
	Use:   "play <item-id>",
	Short: "Start playback of an item",
	Long: `Start playback of a movie, episode, or track by its id.

With --children, the id names a container (season, album, playlist) and
the queue is built from its playable children.

Examples:
  reel play 9a1f3c                # Play a single item
  reel play 9a1f3c --children     # Queue a whole season or album
  reel play 9a1f3c --children --start 3`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playChildren, "children", false, "queue the item's playable children")
	playCmd.Flags().IntVar(&playStart, "start", 0, "queue index to start from (with --children)")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	sess, err := getSession()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if playChildren {
		err = sess.orchestrator.PlayChildren(ctx, args[0], playStart)
	} else {
		err = sess.orchestrator.Play(ctx, args[0])
	}
	if err != nil {
		return err
	}

	if err := sess.save(); err != nil {
		return err
	}
	sess.orchestrator.Wait()

	// Persist once more: the intro fetch may have landed after the first
	// save, and Wait guarantees it is finished either way.
	if err := sess.save(); err != nil {
		return err
	}

	return outputNowPlaying(sess)
}

// outputNowPlaying prints the committed session after an advance.
func outputNowPlaying(sess *session) error {
	snap := sess.orchestrator.Store().Snapshot()

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(snap)
	}

	switch {
	case snap.Audio != nil:
		fmt.Printf("🎵 Playing: %s\n", snap.Audio.Item.Name)
		if Verbose() {
			fmt.Printf("   url: %s\n", snap.Audio.URL)
		}
	case snap.Session != nil:
		s := snap.Session
		if s.EpisodeTitle != "" {
			fmt.Printf("🎬 Playing: %s (%s)\n", s.ItemName, s.EpisodeTitle)
		} else {
			fmt.Printf("🎬 Playing: %s\n", s.ItemName)
		}
		fmt.Printf("   [%d/%d in queue]", snap.Queue.CurrentIndex+1, snap.Queue.Len())
		if s.DurationTicks > 0 {
			fmt.Printf("  %s", FormatTicks(s.DurationTicks))
		}
		fmt.Println()
		if s.Subtitle.Enabled {
			fmt.Printf("   💬 subtitles on (track %d, %s)\n", s.Subtitle.Track, s.Subtitle.Format)
		}
		if Verbose() {
			fmt.Printf("   container: %s  source: %s  session: %s\n", s.Container, s.MediaSourceID, s.PlaySessionID)
			fmt.Printf("   url: %s\n", s.StreamURL)
		}
	default:
		fmt.Println("Nothing playing")
	}
	return nil
}
