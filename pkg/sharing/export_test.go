package sharing

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meltforce/immich-bulk-share-cli/pkg/immich/types"
	"github.com/meltforce/immich-bulk-share-cli/pkg/sheet"
)

func TestExport_GroupsByRole(t *testing.T) {
	albums := []types.Album{
		{ID: "A1", Name: "Holiday", AlbumUsers: []types.AlbumUser{
			shared("user-a", "a@x.com", "viewer"),
			shared("user-b", "b@x.com", "editor"),
			shared("user-c", "c@x.com", "viewer"),
		}},
	}

	exporter := &Exporter{}
	rows := exporter.Export(albums)

	require.Len(t, rows, 2)
	assert.Equal(t, sheet.Row{
		AlbumName: "Holiday",
		AlbumID:   "A1",
		Role:      "viewer",
		Users:     []string{"a@x.com", "c@x.com"},
	}, rows[0])
	assert.Equal(t, sheet.Row{
		AlbumName: "Holiday",
		AlbumID:   "A1",
		Role:      "editor",
		Users:     []string{"b@x.com"},
	}, rows[1])
}

func TestExport_UnsharedAlbum(t *testing.T) {
	exporter := &Exporter{}
	rows := exporter.Export([]types.Album{{ID: "A2", Name: "Empty"}})

	require.Len(t, rows, 1)
	assert.Equal(t, sheet.Row{AlbumName: "Empty", AlbumID: "A2"}, rows[0])
}

func TestExport_MissingFields(t *testing.T) {
	albums := []types.Album{
		{ID: "A1", Name: "Odd", AlbumUsers: []types.AlbumUser{
			{User: types.User{ID: "user-a", Email: "a@x.com"}, Role: ""},
			{User: types.User{ID: "user-b", Email: ""}, Role: "viewer"},
		}},
	}

	exporter := &Exporter{}
	rows := exporter.Export(albums)

	require.Len(t, rows, 2)
	assert.Equal(t, "unknown", rows[0].Role)
	assert.Equal(t, []string{"a@x.com"}, rows[0].Users)
	assert.Equal(t, "viewer", rows[1].Role)
	assert.Empty(t, rows[1].Users)
}

// Three users across two roles produce exactly two rows, each padded to
// the global max-user-column width when written.
func TestExport_WrittenTableIsRectangular(t *testing.T) {
	albums := []types.Album{
		{ID: "A1", Name: "Holiday", AlbumUsers: []types.AlbumUser{
			shared("user-a", "a@x.com", "viewer"),
			shared("user-b", "b@x.com", "viewer"),
			shared("user-c", "c@x.com", "editor"),
		}},
	}

	exporter := &Exporter{}
	rows := exporter.Export(albums)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, sheet.MaxUsers(rows))

	var buf bytes.Buffer
	require.NoError(t, sheet.Write(&buf, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 4, strings.Count(line, ";"), "line %q not padded to full width", line)
	}
	assert.Equal(t, "Holiday;A1;editor;c@x.com;", lines[2])
}
