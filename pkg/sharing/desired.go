// Package sharing reconciles Immich album sharing permissions with a
// desired state declared in a sharing sheet, and exports the current
// server state back into the same sheet schema.
package sharing

import (
	"strings"

	"github.com/meltforce/immich-bulk-share-cli/pkg/sheet"
)

// Entry is one desired (email, role) grant.
type Entry struct {
	Email string
	Role  string
}

// AlbumState is the desired sharing state for a single album. Entries
// keep file order so that when a user is listed under two roles the
// later row deterministically wins (the share call is an upsert).
type AlbumState struct {
	Role    string
	Entries []Entry
}

// DesiredState holds the desired sharing state per album. AlbumIDs
// preserves first-seen file order so runs are reproducible.
type DesiredState struct {
	AlbumIDs []string
	Albums   map[string]*AlbumState
}

// Desired groups sheet rows into per-album desired state. Rows with an
// empty album id or role are skipped; emails and roles are trimmed and
// lowercased; multiple rows for one album merge, with exact duplicate
// (email, role) pairs deduplicated.
func Desired(rows []sheet.Row) *DesiredState {
	ds := &DesiredState{Albums: make(map[string]*AlbumState)}

	for _, row := range rows {
		albumID := strings.TrimSpace(row.AlbumID)
		role := strings.ToLower(strings.TrimSpace(row.Role))
		if albumID == "" || role == "" {
			continue
		}

		state, ok := ds.Albums[albumID]
		if !ok {
			state = &AlbumState{Role: role}
			ds.Albums[albumID] = state
			ds.AlbumIDs = append(ds.AlbumIDs, albumID)
		}

		for _, cell := range row.Users {
			email := strings.ToLower(strings.TrimSpace(cell))
			if email == "" {
				continue
			}
			state.add(email, role)
		}
	}

	return ds
}

func (s *AlbumState) add(email, role string) {
	for _, e := range s.Entries {
		if e.Email == email && e.Role == role {
			return
		}
	}
	s.Entries = append(s.Entries, Entry{Email: email, Role: role})
}
