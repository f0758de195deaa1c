package immich

import (
	"context"
	"fmt"
	"net/http"

	"github.com/meltforce/immich-bulk-share-cli/pkg/immich/types"
)

// Albums fetches all albums, including their share lists.
func (c *Client) Albums(ctx context.Context) ([]types.Album, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, "/api/albums", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for albums: %w", err)
	}

	var albums []types.Album
	if err := c.Do(req, &albums); err != nil {
		return nil, fmt.Errorf("getting albums: %w", err)
	}

	return albums, nil
}

// Album fetches a single album by id, excluding its assets.
func (c *Client) Album(ctx context.Context, id string) (*types.Album, error) {
	path := fmt.Sprintf("/api/albums/%s?withoutAssets=true", id)

	req, err := c.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for album %s: %w", id, err)
	}

	var album types.Album
	if err := c.Do(req, &album); err != nil {
		return nil, fmt.Errorf("getting album %s: %w", id, err)
	}

	return &album, nil
}

// Users fetches all users known to the server.
func (c *Client) Users(ctx context.Context) ([]types.User, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, "/api/users", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for users: %w", err)
	}

	var users []types.User
	if err := c.Do(req, &users); err != nil {
		return nil, fmt.Errorf("getting users: %w", err)
	}

	return users, nil
}

// UpdateAlbumUsers shares an album with the given users or updates their
// roles. The server treats this as an upsert per (album, user) pair.
func (c *Client) UpdateAlbumUsers(ctx context.Context, albumID string, users []types.AlbumUserUpdate) error {
	path := fmt.Sprintf("/api/albums/%s/users", albumID)
	body := map[string]any{"albumUsers": users}

	req, err := c.NewRequest(ctx, http.MethodPut, path, body)
	if err != nil {
		return fmt.Errorf("creating share request for album %s: %w", albumID, err)
	}

	if err := c.Do(req, nil); err != nil {
		return fmt.Errorf("sharing album %s: %w", albumID, err)
	}

	return nil
}

// RemoveAlbumUser removes a user from an album.
func (c *Client) RemoveAlbumUser(ctx context.Context, albumID, userID string) error {
	path := fmt.Sprintf("/api/albums/%s/user/%s", albumID, userID)

	req, err := c.NewRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return fmt.Errorf("creating remove request for album %s: %w", albumID, err)
	}

	if err := c.Do(req, nil); err != nil {
		return fmt.Errorf("removing user %s from album %s: %w", userID, albumID, err)
	}

	return nil
}
