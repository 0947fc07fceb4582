package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/voxfeld/reel/internal/auth"
	"github.com/voxfeld/reel/internal/config"
	"github.com/voxfeld/reel/internal/errors"
	"github.com/voxfeld/reel/internal/jellyfin"
	"github.com/voxfeld/reel/internal/logging"
	"github.com/voxfeld/reel/internal/playback"
)

var (
	cfgFile    string
	jsonOut    bool
	verbose    bool
	serverFlag string

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "reel",
	Short: "Play media from your server on the command line",
	Long:  `Reel is a CLI for playing movies, series, and music from a media server, with queue control, subtitle switching, and session tracking.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.reelrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "server name (default: configured default)")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log = logging.Setup(cfg.Log, verbose)
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if msg := errors.Format(err); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getServer resolves the server to use: the --server flag, then the
// configured default, then a sole stored server.
func getServer() (*auth.Server, error) {
	storage, err := auth.NewStorage("")
	if err != nil {
		return nil, err
	}
	list, err := storage.Load()
	if err != nil {
		return nil, err
	}
	if len(list.Servers) == 0 {
		return nil, errors.ErrNoServer
	}

	name := serverFlag
	if name == "" {
		name = cfg.Server.Default
	}
	server := list.Get(name)
	if server == nil {
		if name == "" {
			return nil, errors.ErrNoServer
		}
		return nil, fmt.Errorf("%w: %s", errors.ErrServerNotFound, name)
	}
	return server, nil
}

// getClient builds an API client for the selected server.
func getClient() (*jellyfin.Client, error) {
	server, err := getServer()
	if err != nil {
		return nil, err
	}
	if server.AccessToken == "" {
		return nil, errors.ErrNotAuthenticated
	}

	client := jellyfin.New(server.BaseURL, server.AccessToken, server.UserID, server.DeviceID)
	client.SetLogger(log)
	if cfg.Playback.TimeoutSeconds > 0 {
		client.SetTimeout(time.Duration(cfg.Playback.TimeoutSeconds) * time.Second)
	}
	return client, nil
}

// session bundles the orchestrator with its persistence for one command
// invocation. Load at start, save after every mutation.
type session struct {
	orchestrator *playback.Orchestrator
	storage      *playback.StateStorage
}

// getSession builds an orchestrator seeded from the persisted snapshot.
func getSession() (*session, error) {
	client, err := getClient()
	if err != nil {
		return nil, err
	}

	storage, err := playback.NewStateStorage(cfg.Playback.StateFile)
	if err != nil {
		return nil, err
	}

	store := playback.NewStore()
	if snap, err := storage.Load(); err == nil {
		store.Restore(*snap)
	}

	orchestrator := playback.New(client, store, log)
	orchestrator.SetSubtitlePreference(cfg.Playback.Subtitle)

	return &session{
		orchestrator: orchestrator,
		storage:      storage,
	}, nil
}

// save persists the current snapshot after a state-changing operation.
func (s *session) save() error {
	return s.storage.Save(s.orchestrator.Store().Snapshot())
}
