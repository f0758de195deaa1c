// Package directory resolves user email addresses to server-side user ids.
package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/meltforce/immich-bulk-share-cli/pkg/immich/types"
)

// UserLister lists every user known to the server.
type UserLister interface {
	Users(ctx context.Context) ([]types.User, error)
}

// Directory maps lowercase email addresses to server user ids. It is
// built once per run and read-only afterwards.
type Directory map[string]string

// Build fetches the full user listing and indexes it by lowercase email.
// Entries without an email or id are skipped; on duplicate emails the
// last entry wins. A listing failure is returned to the caller and must
// abort the run, since no mutation is safe without the directory.
func Build(ctx context.Context, lister UserLister) (Directory, error) {
	users, err := lister.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	d := make(Directory, len(users))
	for _, u := range users {
		if u.Email == "" || u.ID == "" {
			continue
		}
		d[strings.ToLower(u.Email)] = u.ID
	}

	return d, nil
}

// Resolve returns the user id for an email address, if known.
func (d Directory) Resolve(email string) (string, bool) {
	id, ok := d[strings.ToLower(email)]
	return id, ok
}
