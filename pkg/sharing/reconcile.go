package sharing

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/meltforce/immich-bulk-share-cli/pkg/directory"
	"github.com/meltforce/immich-bulk-share-cli/pkg/immich/types"
)

const unknownAlbumName = "Unknown Album"

// AlbumAPI is the subset of the Immich API the reconciler needs.
type AlbumAPI interface {
	Album(ctx context.Context, id string) (*types.Album, error)
	UpdateAlbumUsers(ctx context.Context, albumID string, users []types.AlbumUserUpdate) error
	RemoveAlbumUser(ctx context.Context, albumID, userID string) error
}

// Reconciler drives album sharing state towards the desired state.
type Reconciler struct {
	API       AlbumAPI
	Directory directory.Directory
	Log       *zap.Logger

	// Concurrency is the number of albums reconciled in parallel.
	// Albums are independent; ordering within an album (removals before
	// upserts) is always preserved. Values below 1 mean sequential.
	Concurrency int

	// DryRun logs planned mutations without performing any.
	DryRun bool
}

// Run reconciles every album in the desired state and returns the
// accumulated statistics. Individual call failures are recorded and
// never abort the run.
func (r *Reconciler) Run(ctx context.Context, desired *DesiredState) *Stats {
	stats := newStats()

	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	limit := r.Concurrency
	if limit < 1 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, albumID := range desired.AlbumIDs {
		albumID := albumID
		state := desired.Albums[albumID]
		g.Go(func() error {
			r.reconcileAlbum(ctx, log, albumID, state, stats)
			return nil
		})
	}
	_ = g.Wait()

	return stats
}

func (r *Reconciler) reconcileAlbum(ctx context.Context, log *zap.Logger, albumID string, state *AlbumState, stats *Stats) {
	stats.countAlbum()

	name := unknownAlbumName
	current := map[string]string{}

	album, err := r.API.Album(ctx, albumID)
	if err != nil {
		// A failed detail fetch is not fatal: the album is treated as
		// unshared and reconciliation proceeds.
		log.Warn("fetching album details failed",
			zap.String("album_id", albumID),
			zap.Error(err))
	} else {
		if album.Name != "" {
			name = album.Name
		}
		current = CurrentUsers(album)
	}

	log = log.With(zap.String("album", name), zap.String("album_id", albumID))
	log.Info("processing album", zap.Int("current_users", len(current)))

	diff := Diff(state, current, r.Directory)

	for _, email := range diff.Unresolved {
		stats.addUnresolved(email)
		stats.countShare(false)
	}

	if r.DryRun {
		for _, rm := range diff.Removals {
			log.Info("would remove user", zap.String("email", rm.Email))
		}
		for _, up := range diff.Upserts {
			log.Info("would share album", zap.String("email", up.Email), zap.String("role", up.Role))
		}
		return
	}

	for _, rm := range diff.Removals {
		if err := r.API.RemoveAlbumUser(ctx, albumID, rm.UserID); err != nil {
			log.Warn("removing user failed", zap.String("email", rm.Email), zap.Error(err))
			stats.countRemoval(false)
			continue
		}
		log.Info("removed user", zap.String("email", rm.Email))
		stats.countRemoval(true)
	}

	for _, up := range diff.Upserts {
		update := []types.AlbumUserUpdate{{UserID: up.UserID, Role: up.Role}}
		if err := r.API.UpdateAlbumUsers(ctx, albumID, update); err != nil {
			log.Warn("sharing album failed", zap.String("email", up.Email), zap.Error(err))
			stats.countShare(false)
			continue
		}
		log.Info("shared album", zap.String("email", up.Email), zap.String("role", up.Role))
		stats.countShare(true)
	}
}
