package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/voxfeld/reel/internal/playback"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Play the next item in the queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdvance(playback.Next())
	},
}

var prevCmd = &cobra.Command{
	Use:     "prev",
	Aliases: []string{"previous"},
	Short:   "Play the previous item in the queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdvance(playback.Previous())
	},
}

var gotoCmd = &cobra.Command{
	Use:   "goto <index>",
	Short: "Jump to a queue position",
	Long:  `Jump to the queue item at the given position (1-based, as shown by 'reel queue').`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[0])
		}
		return runAdvance(playback.Absolute(pos - 1))
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop playback",
	Long:  `Report the active session stopped and clear playback state.`,
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(gotoCmd)
	rootCmd.AddCommand(stopCmd)
}

func runAdvance(target playback.Target) error {
	sess, err := getSession()
	if err != nil {
		return err
	}

	if err := sess.orchestrator.Advance(context.Background(), target); err != nil {
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

func runStop(cmd *cobra.Command, args []string) error {
	sess, err := getSession()
	if err != nil {
		return err
	}

	if err := sess.orchestrator.Stop(context.Background()); err != nil {
		return err
	}
	if err := sess.save(); err != nil {
		return err
	}

	if !JSONOutput() {
		fmt.Println("⏹️  Stopped playback")
	}
	return nil
}
