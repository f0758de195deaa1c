package sharing

import (
	"go.uber.org/zap"

	"github.com/meltforce/immich-bulk-share-cli/pkg/immich/types"
	"github.com/meltforce/immich-bulk-share-cli/pkg/sheet"
)

// Exporter turns server-side album share state into sharing sheet rows.
type Exporter struct {
	Log *zap.Logger
}

// Export produces one row per (album, role) bucket, grouping roles in
// encounter order. An album with no shares emits a single row with an
// empty role so unshared albums stay visible in the export.
func (e *Exporter) Export(albums []types.Album) []sheet.Row {
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}

	var rows []sheet.Row
	for i, album := range albums {
		if (i+1)%10 == 0 {
			log.Info("processing albums", zap.Int("done", i+1), zap.Int("total", len(albums)))
		}

		if len(album.AlbumUsers) == 0 {
			rows = append(rows, sheet.Row{AlbumName: album.Name, AlbumID: album.ID})
			continue
		}

		var roleOrder []string
		roleUsers := make(map[string][]string)
		for _, au := range album.AlbumUsers {
			role := au.Role
			if role == "" {
				role = "unknown"
			}
			if _, ok := roleUsers[role]; !ok {
				roleOrder = append(roleOrder, role)
				roleUsers[role] = nil
			}
			if au.User.Email != "" {
				roleUsers[role] = append(roleUsers[role], au.User.Email)
			}
		}

		for _, role := range roleOrder {
			rows = append(rows, sheet.Row{
				AlbumName: album.Name,
				AlbumID:   album.ID,
				Role:      role,
				Users:     roleUsers[role],
			})
		}
	}

	return rows
}
