package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

const (
	discoveryAddr    = "255.255.255.255:7359"
	discoveryMessage = "who is JellyfinServer?"
)

// DiscoveredServer is one server that answered a discovery broadcast.
type DiscoveredServer struct {
	ID      string `json:"Id"`
	Name    string `json:"Name"`
	Address string `json:"Address"`
}

// Discover broadcasts a Jellyfin discovery request on the local network and
// collects responses until the timeout elapses.
func Discover(ctx context.Context, timeout time.Duration) ([]DiscoveredServer, error) {
	if timeout == 0 {
		timeout = 3 * time.Second
	}

	addr, err := net.ResolveUDPAddr("udp4", discoveryAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve discovery addr: %w", err)
	}

	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return nil, fmt.Errorf("listen udp: %w", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	if _, err := conn.WriteToUDP([]byte(discoveryMessage), addr); err != nil {
		return nil, fmt.Errorf("send discovery broadcast: %w", err)
	}

	var servers []DiscoveredServer
	seen := make(map[string]bool)
	buf := make([]byte, 2048)

	for {
		select {
		case <-ctx.Done():
			return servers, ctx.Err()
		default:
		}

		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				break // Discovery complete
			}
			continue
		}

		var server DiscoveredServer
		if err := json.Unmarshal(buf[:n], &server); err != nil || server.Address == "" {
			continue
		}

		if seen[server.ID] {
			continue
		}
		seen[server.ID] = true
		servers = append(servers, server)
	}

	return servers, nil
}
