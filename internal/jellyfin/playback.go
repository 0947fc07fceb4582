package jellyfin

import (
	"context"
	"fmt"
	"strconv"
)

// PlaybackInfoParams are the inputs to a playback-info negotiation.
type PlaybackInfoParams struct {
	ItemID              string
	MediaSourceID       string
	AudioStreamIndex    int
	SubtitleStreamIndex int
	StartTimeTicks      int64
}

// PlaybackInfo negotiates playable media sources for an item. The server
// decides between direct streaming and transcoding based on the declared
// device profile and returns the resulting sources plus a play session id.
func (c *Client) PlaybackInfo(ctx context.Context, p PlaybackInfoParams) (*PlaybackInfoResponse, error) {
	params := map[string]string{
		"UserId":              c.userID,
		"AudioStreamIndex":    strconv.Itoa(p.AudioStreamIndex),
		"SubtitleStreamIndex": strconv.Itoa(p.SubtitleStreamIndex),
		"StartTimeTicks":      strconv.FormatInt(p.StartTimeTicks, 10),
	}
	if p.MediaSourceID != "" {
		params["MediaSourceId"] = p.MediaSourceID
	}

	path := BuildURL("/Items/"+p.ItemID+"/PlaybackInfo", params)
	body := PlaybackInfoBody{DeviceProfile: DefaultDeviceProfile()}

	var resp PlaybackInfoResponse
	if err := c.Post(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	if resp.ErrorCode != "" {
		return nil, fmt.Errorf("playback info refused: %s", resp.ErrorCode)
	}
	return &resp, nil
}

// ReportPlaybackStopped tells the server a play session ended, so the next
// session for the same user can report cleanly.
func (c *Client) ReportPlaybackStopped(ctx context.Context, info PlaybackStopInfo) error {
	return c.Post(ctx, "/Sessions/Playing/Stopped", info, nil)
}

// IntroSegments fetches intro-skip segment metadata for an episode. The
// endpoint is provided by a server plugin and may be absent entirely.
func (c *Client) IntroSegments(ctx context.Context, itemID string) (*IntroSegments, error) {
	var segments IntroSegments
	if err := c.Get(ctx, "/Episode/"+itemID+"/IntroSkipperSegments", &segments); err != nil {
		return nil, err
	}
	return &segments, nil
}

// VideoStreamURL composes the direct-stream URL for a media source.
func (c *Client) VideoStreamURL(sourceID, container, etag string) string {
	params := map[string]string{
		"Static":        "true",
		"tag":           etag,
		"mediaSourceId": sourceID,
		"deviceId":      c.deviceID,
		"api_key":       c.accessToken,
	}
	return c.baseURL + BuildURL("/Videos/"+sourceID+"/stream."+container, params)
}

// AudioStreamURL composes the universal audio stream URL for an item.
func (c *Client) AudioStreamURL(itemID string) string {
	params := map[string]string{
		"userId":   c.userID,
		"deviceId": c.deviceID,
	}
	return c.baseURL + BuildURL("/Audio/"+itemID+"/universal", params)
}

// TranscodeURL resolves a server-issued transcoding path against the base
// URL. The path replaces the direct-stream URL entirely.
func (c *Client) TranscodeURL(path string) string {
	return c.baseURL + path
}
