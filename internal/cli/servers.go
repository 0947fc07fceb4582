package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxfeld/reel/internal/auth"
	"github.com/voxfeld/reel/internal/jellyfin"
)

var (
	addURL    string
	addUser   string
	addToken  string
	removeYes bool
)

var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "Manage media servers",
	Long:  `Commands for registering, listing, and discovering media servers.`,
}

var serversAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a server",
	Long: `Register a media server with its credentials.

Examples:
  reel servers add home --url https://media.example.com --user-id abc123 --token xyz`,
	Args: cobra.ExactArgs(1),
	RunE: runServersAdd,
}

var serversListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered servers",
	RunE:  runServersList,
}

var serversRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a registered server",
	Args:  cobra.ExactArgs(1),
	RunE:  runServersRemove,
}

var serversDefaultCmd = &cobra.Command{
	Use:   "default <name>",
	Short: "Set the default server",
	Args:  cobra.ExactArgs(1),
	RunE:  runServersDefault,
}

var serversDiscoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover servers on the local network",
	Long:  `Broadcast on the local network and list the media servers that answer.`,
	RunE:  runServersDiscover,
}

func init() {
	serversAddCmd.Flags().StringVar(&addURL, "url", "", "server base URL (required)")
	serversAddCmd.Flags().StringVar(&addUser, "user-id", "", "user id on the server (required)")
	serversAddCmd.Flags().StringVar(&addToken, "token", "", "API access token (required)")
	_ = serversAddCmd.MarkFlagRequired("url")
	_ = serversAddCmd.MarkFlagRequired("user-id")
	_ = serversAddCmd.MarkFlagRequired("token")

	serversCmd.AddCommand(serversAddCmd)
	serversCmd.AddCommand(serversListCmd)
	serversCmd.AddCommand(serversRemoveCmd)
	serversCmd.AddCommand(serversDefaultCmd)
	serversCmd.AddCommand(serversDiscoverCmd)
	rootCmd.AddCommand(serversCmd)
}

func loadServerList() (*auth.Storage, *auth.ServerList, error) {
	storage, err := auth.NewStorage("")
	if err != nil {
		return nil, nil, err
	}
	list, err := storage.Load()
	if err != nil {
		return nil, nil, err
	}
	return storage, list, nil
}

func runServersAdd(cmd *cobra.Command, args []string) error {
	storage, list, err := loadServerList()
	if err != nil {
		return err
	}

	server := auth.Server{
		Name:        args[0],
		BaseURL:     addURL,
		UserID:      addUser,
		AccessToken: addToken,
	}
	if err := list.Add(server); err != nil {
		return err
	}
	if err := storage.Save(list); err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(list.Get(args[0]))
	}
	fmt.Printf("✓ Registered server %q\n", args[0])
	return nil
}

func runServersList(cmd *cobra.Command, args []string) error {
	_, list, err := loadServerList()
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(list)
	}

	if len(list.Servers) == 0 {
		fmt.Println("No servers registered. Run 'reel servers add' to get started.")
		return nil
	}

	table := NewTable("", "NAME", "URL", "USER")
	for _, s := range list.Servers {
		marker := " "
		if s.Name == list.Default {
			marker = "●"
		}
		table.Row(marker, s.Name, s.BaseURL, s.UserID)
	}
	table.Flush()
	return nil
}

func runServersRemove(cmd *cobra.Command, args []string) error {
	storage, list, err := loadServerList()
	if err != nil {
		return err
	}

	if !list.Remove(args[0]) {
		return fmt.Errorf("server %q not found", args[0])
	}
	if err := storage.Save(list); err != nil {
		return err
	}

	if !JSONOutput() {
		fmt.Printf("✓ Removed server %q\n", args[0])
	}
	return nil
}

func runServersDefault(cmd *cobra.Command, args []string) error {
	storage, list, err := loadServerList()
	if err != nil {
		return err
	}

	server := list.Get(args[0])
	if server == nil {
		return fmt.Errorf("server %q not found", args[0])
	}
	list.Default = server.Name
	if err := storage.Save(list); err != nil {
		return err
	}

	if !JSONOutput() {
		fmt.Printf("✓ Default server is now %q\n", server.Name)
	}
	return nil
}

func runServersDiscover(cmd *cobra.Command, args []string) error {
	timeout := time.Duration(cfg.Server.DiscoveryTimeout) * time.Second

	if !JSONOutput() {
		fmt.Printf("🔍 Discovering servers (%s)...\n", timeout)
	}

	servers, err := jellyfin.Discover(context.Background(), timeout)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(servers)
	}

	if len(servers) == 0 {
		fmt.Println("No servers found")
		return nil
	}

	table := NewTable("NAME", "ADDRESS", "ID")
	for _, s := range servers {
		table.Row(s.Name, s.Address, s.ID)
	}
	table.Flush()
	return nil
}
