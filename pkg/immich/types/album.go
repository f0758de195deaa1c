// Package types provides Immich API data types.
package types

// Album represents an Immich album.
type Album struct {
	ID         string      `json:"id"`
	Name       string      `json:"albumName"`
	AlbumUsers []AlbumUser `json:"albumUsers"`
}

// AlbumUser represents a user an album is shared with.
type AlbumUser struct {
	User User   `json:"user"`
	Role string `json:"role"`
}

// AlbumUserUpdate is the payload entry for sharing an album with a user
// or changing their role.
type AlbumUserUpdate struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}
