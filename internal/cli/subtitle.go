package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/voxfeld/reel/internal/core"
	"github.com/voxfeld/reel/internal/errors"
	"github.com/voxfeld/reel/internal/playback"
)

var subtitleCmd = &cobra.Command{
	Use:     "subtitle",
	Aliases: []string{"subs"},
	Short:   "Manage subtitles for the active session",
	RunE:    runSubtitleList,
}

var subtitleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available subtitle tracks",
	RunE:  runSubtitleList,
}

var subtitleSetCmd = &cobra.Command{
	Use:   "set <track-index>",
	Short: "Select a subtitle track",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubtitleSet,
}

var subtitleOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Disable subtitles",
	RunE:  runSubtitleOff,
}

var subtitleToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle subtitles on or off",
	RunE:  runSubtitleToggle,
}

func init() {
	subtitleCmd.AddCommand(subtitleListCmd)
	subtitleCmd.AddCommand(subtitleSetCmd)
	subtitleCmd.AddCommand(subtitleOffCmd)
	subtitleCmd.AddCommand(subtitleToggleCmd)
	rootCmd.AddCommand(subtitleCmd)
}

func runSubtitleList(cmd *cobra.Command, args []string) error {
	storage, err := playback.NewStateStorage(cfg.Playback.StateFile)
	if err != nil {
		return err
	}
	snap, err := storage.Load()
	if err != nil {
		return err
	}
	if snap.Session == nil {
		return errors.ErrNoStoredSession
	}

	sub := snap.Session.Subtitle

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(sub)
	}

	if len(sub.AllTracks) == 0 {
		fmt.Println("No subtitle tracks available")
		return nil
	}

	table := NewTable("", "#", "LANGUAGE", "FORMAT", "TITLE")
	for _, track := range sub.AllTracks {
		marker := " "
		if sub.Enabled && track.Index == sub.Track {
			marker = "●"
		}
		table.Row(marker, strconv.Itoa(track.Index), track.Language, track.Codec, track.DisplayTitle)
	}
	table.Flush()
	return nil
}

func runSubtitleSet(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid track index %q", args[0])
	}

	return applySubtitleChange(func(sess *session) error {
		return sess.orchestrator.ChangeSubtitleTrack(core.SubtitleIndex(index))
	}, fmt.Sprintf("💬 Subtitle track %d selected", index))
}

func runSubtitleOff(cmd *cobra.Command, args []string) error {
	return applySubtitleChange(func(sess *session) error {
		return sess.orchestrator.ChangeSubtitleTrack(core.NoSubtitle())
	}, "💬 Subtitles disabled")
}

func runSubtitleToggle(cmd *cobra.Command, args []string) error {
	return applySubtitleChange(func(sess *session) error {
		return sess.orchestrator.ToggleSubtitle()
	}, "")
}

func applySubtitleChange(fn func(*session) error, message string) error {
	sess, err := getSession()
	if err != nil {
		return err
	}
	if err := fn(sess); err != nil {
		return err
	}
	if err := sess.save(); err != nil {
		return err
	}

	snap := sess.orchestrator.Store().Snapshot()
	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(snap.Session.Subtitle)
	}
	if message == "" {
		if snap.Session.Subtitle.Enabled {
			message = fmt.Sprintf("💬 Subtitles on (track %d)", snap.Session.Subtitle.Track)
		} else {
			message = "💬 Subtitles off"
		}
	}
	fmt.Println(message)
	return nil
}
