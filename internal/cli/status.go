package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voxfeld/reel/internal/core"
	"github.com/voxfeld/reel/internal/errors"
	"github.com/voxfeld/reel/internal/playback"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current playback status",
	Long:  `Shows the item currently playing and its position in the queue.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	storage, err := playback.NewStateStorage(cfg.Playback.StateFile)
	if err != nil {
		return err
	}

	snap, err := storage.Load()
	if err != nil {
		if errors.Is(err, errors.ErrNoStoredSession) {
			if JSONOutput() {
				return json.NewEncoder(os.Stdout).Encode(struct{}{})
			}
			fmt.Println("No active playback")
			return nil
		}
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(snap)
	}

	switch {
	case snap.Audio != nil:
		printAudioStatus(snap.Audio, &snap.Queue)
	case snap.Session != nil:
		printVideoStatus(snap.Session, &snap.Queue)
	default:
		fmt.Println("No active playback")
	}

	return nil
}

func printVideoStatus(sess *core.PlaybackSession, queue *core.Queue) {
	title := sess.ItemName
	if sess.EpisodeTitle != "" {
		title = fmt.Sprintf("%s · %s", sess.ItemName, sess.EpisodeTitle)
	}

	fmt.Printf("🎬 %s\n", title)

	if sess.DurationTicks > 0 {
		bar := FormatProgress(int(sess.StartTicks/ticksPerSecond), int(sess.DurationTicks/ticksPerSecond), 30)
		fmt.Printf("   %s %s / %s\n", bar, FormatTicks(sess.StartTicks), FormatTicks(sess.DurationTicks))
	}

	if sess.Subtitle.Enabled {
		fmt.Printf("   💬 Subtitles on (track %d)\n", sess.Subtitle.Track)
	}

	if sess.Intro != nil && sess.Intro.Introduction != nil && sess.Intro.Introduction.Valid {
		fmt.Printf("   ⏭️  Intro skip: %.0fs to %.0fs\n",
			sess.Intro.Introduction.Start, sess.Intro.Introduction.End)
	}

	if len(queue.Items) > 1 {
		fmt.Printf("   [%d/%d in queue]\n", queue.CurrentIndex+1, len(queue.Items))
	}

	if Verbose() {
		fmt.Printf("   Container: %s\n", sess.Container)
		fmt.Printf("   Source: %s\n", sess.MediaSourceID)
		if sess.PlaySessionID != "" {
			fmt.Printf("   Session: %s\n", sess.PlaySessionID)
		}
		fmt.Printf("   URL: %s\n", sess.StreamURL)
	}
}

func printAudioStatus(audio *core.AudioSession, queue *core.Queue) {
	fmt.Printf("🎵 %s\n", audio.Item.Name)
	if len(queue.Items) > 1 {
		fmt.Printf("   [%d/%d in queue]\n", queue.CurrentIndex+1, len(queue.Items))
	}
	if Verbose() {
		fmt.Printf("   URL: %s\n", audio.URL)
	}
}
