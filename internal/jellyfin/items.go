package jellyfin

import "context"

// Item fetches a single catalog item with its media sources.
func (c *Client) Item(ctx context.Context, itemID string) (*BaseItem, error) {
	path := BuildURL("/Users/"+c.userID+"/Items/"+itemID, map[string]string{
		"Fields": "MediaSources,MediaStreams",
	})

	var item BaseItem
	if err := c.Get(ctx, path, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ChildItems fetches the playable children of a container item (a season,
// album, or playlist), ordered the way the server presents them.
func (c *Client) ChildItems(ctx context.Context, parentID string) ([]BaseItem, error) {
	path := BuildURL("/Users/"+c.userID+"/Items", map[string]string{
		"ParentId": parentID,
		"Fields":   "MediaSources,MediaStreams",
		"SortBy":   "SortName",
	})

	var result ItemsResult
	if err := c.Get(ctx, path, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}
