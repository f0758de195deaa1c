package immich

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meltforce/immich-bulk-share-cli/pkg/immich/types"
)

func TestClient_Albums(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/albums" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"id":        "album-1",
				"albumName": "Holiday",
				"albumUsers": []map[string]any{
					{"role": "viewer", "user": map[string]string{"id": "user-1", "email": "a@x.com"}},
				},
			},
			{"id": "album-2", "albumName": "Empty"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	albums, err := client.Albums(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(albums) != 2 {
		t.Fatalf("Expected 2 albums, got %d", len(albums))
	}
	if albums[0].Name != "Holiday" || albums[0].AlbumUsers[0].User.Email != "a@x.com" {
		t.Errorf("Unexpected album decoding: %+v", albums[0])
	}
	if len(albums[1].AlbumUsers) != 0 {
		t.Errorf("Expected no shares for album-2, got %+v", albums[1].AlbumUsers)
	}
}

func TestClient_Album(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/albums/album-1" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("withoutAssets") != "true" {
			t.Errorf("Expected withoutAssets=true, got query %q", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":        "album-1",
			"albumName": "Holiday",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	album, err := client.Album(context.Background(), "album-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if album.Name != "Holiday" {
		t.Errorf("Unexpected album: %+v", album)
	}
}

func TestClient_Users(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/users" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"id": "user-1", "email": "a@x.com", "name": "Alice"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	users, err := client.Users(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(users) != 1 || users[0].ID != "user-1" || users[0].Email != "a@x.com" {
		t.Errorf("Unexpected users: %+v", users)
	}
}

func TestClient_UpdateAlbumUsers(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/albums/album-1/users" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)

		var payload struct {
			AlbumUsers []types.AlbumUserUpdate `json:"albumUsers"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("Decoding payload: %v", err)
		}
		if len(payload.AlbumUsers) != 1 || payload.AlbumUsers[0].UserID != "user-1" || payload.AlbumUsers[0].Role != "editor" {
			t.Errorf("Unexpected payload: %s", body)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	err := client.UpdateAlbumUsers(context.Background(), "album-1", []types.AlbumUserUpdate{
		{UserID: "user-1", Role: "editor"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestClient_RemoveAlbumUser(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/albums/album-1/user/user-1" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if body, _ := io.ReadAll(r.Body); len(body) != 0 {
			t.Errorf("Expected empty body for DELETE, got %s", body)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	if err := client.RemoveAlbumUser(context.Background(), "album-1", "user-1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}
