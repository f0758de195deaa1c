package sharing

import (
	"sort"
	"strings"

	"github.com/meltforce/immich-bulk-share-cli/pkg/directory"
	"github.com/meltforce/immich-bulk-share-cli/pkg/immich/types"
)

// Removal is a planned removal of a currently-shared user.
type Removal struct {
	Email  string
	UserID string
}

// Upsert is a planned share or role change for a desired user.
type Upsert struct {
	Email  string
	UserID string
	Role   string
}

// AlbumDiff is the set of mutations that makes an album's current state
// match its desired state. Removals and upserts are disjoint by
// construction: removal only targets emails absent from the desired set.
type AlbumDiff struct {
	Removals []Removal
	Upserts  []Upsert
	// Unresolved holds one element per desired entry whose email the
	// directory does not know. No call is attempted for these.
	Unresolved []string
}

// CurrentUsers derives the current email→role mapping from an album's
// share list. Entries missing the email or role are dropped.
func CurrentUsers(album *types.Album) map[string]string {
	current := make(map[string]string, len(album.AlbumUsers))
	for _, au := range album.AlbumUsers {
		email := strings.ToLower(au.User.Email)
		if email == "" || au.Role == "" {
			continue
		}
		current[email] = au.Role
	}
	return current
}

// Diff computes the mutations for one album. Any currently-shared user
// absent from the desired set is slated for removal, regardless of role;
// unresolvable removals are silently skipped since the server id is
// unknown. Desired entries keep their ingestion order, and each is
// compared against the same current-state snapshot: entries whose
// current role already matches are no-ops.
func Diff(state *AlbumState, current map[string]string, dir directory.Directory) AlbumDiff {
	desired := make(map[string]struct{}, len(state.Entries))
	for _, e := range state.Entries {
		desired[e.Email] = struct{}{}
	}

	currentEmails := make([]string, 0, len(current))
	for email := range current {
		currentEmails = append(currentEmails, email)
	}
	sort.Strings(currentEmails)

	var d AlbumDiff
	for _, email := range currentEmails {
		if _, ok := desired[email]; ok {
			continue
		}
		id, ok := dir.Resolve(email)
		if !ok {
			continue
		}
		d.Removals = append(d.Removals, Removal{Email: email, UserID: id})
	}

	for _, e := range state.Entries {
		id, ok := dir.Resolve(e.Email)
		if !ok {
			d.Unresolved = append(d.Unresolved, e.Email)
			continue
		}
		if current[e.Email] == e.Role {
			continue
		}
		d.Upserts = append(d.Upserts, Upsert{Email: e.Email, UserID: id, Role: e.Role})
	}

	return d
}
