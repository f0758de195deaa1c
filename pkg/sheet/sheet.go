// Package sheet reads and writes the semicolon-delimited album sharing
// table shared by the import and export paths.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Names of the three fixed leading columns. User columns follow them.
const (
	ColAlbumName = "AlbumName"
	ColAlbumID   = "AlbumId"
	ColRole      = "Role"
)

// Delimiter separates cells in the tabular format.
const Delimiter = ';'

const fixedColumns = 3

// Row is one (album, role) bucket listing the users holding that role.
type Row struct {
	AlbumName string
	AlbumID   string
	Role      string
	Users     []string
}

// Read parses the table from r. The header must contain the three fixed
// columns; user emails are taken from every column after the third.
// A malformed header aborts with no rows returned.
func Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	nameIdx := indexOf(header, ColAlbumName)
	idIdx := indexOf(header, ColAlbumID)
	roleIdx := indexOf(header, ColRole)
	if nameIdx < 0 || idIdx < 0 || roleIdx < 0 {
		return nil, fmt.Errorf("invalid header: expected columns %s, %s, %s; found: %s",
			ColAlbumName, ColAlbumID, ColRole, strings.Join(header, ", "))
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		row := Row{
			AlbumName: cell(record, nameIdx),
			AlbumID:   cell(record, idIdx),
			Role:      cell(record, roleIdx),
		}
		for i := fixedColumns; i < len(record); i++ {
			row.Users = append(row.Users, record[i])
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Write emits the table to w. The number of user columns is the widest
// user count across all rows; shorter rows are padded with empty cells
// so the output is rectangular.
func Write(w io.Writer, rows []Row) error {
	maxUsers := MaxUsers(rows)

	cw := csv.NewWriter(w)
	cw.Comma = Delimiter

	header := []string{ColAlbumName, ColAlbumID, ColRole}
	for i := 0; i < maxUsers; i++ {
		header = append(header, fmt.Sprintf("User %d", i+1))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, row := range rows {
		record := make([]string, 0, fixedColumns+maxUsers)
		record = append(record, row.AlbumName, row.AlbumID, row.Role)
		record = append(record, row.Users...)
		for len(record) < fixedColumns+maxUsers {
			record = append(record, "")
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// MaxUsers returns the widest user count across all rows.
func MaxUsers(rows []Row) int {
	max := 0
	for _, row := range rows {
		if len(row.Users) > max {
			max = len(row.Users)
		}
	}
	return max
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func cell(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}
