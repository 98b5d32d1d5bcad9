package service

import (
	"testing"

	"github.com/campusdesk/studentdir/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRoster(t *testing.T) {
	svc := NewExportService()

	workbook, err := svc.BuildRoster([]model.Student{
		{ID: 1, Name: "anurag adarsh", Age: 20, Year: "year 26"},
		{ID: 2, Name: "mohit", Age: 22, Year: "year 26"},
	})
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Students")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"ID", "Name", "Age", "Year"}, rows[0])
	assert.Equal(t, []string{"1", "anurag adarsh", "20", "year 26"}, rows[1])
	assert.Equal(t, []string{"2", "mohit", "22", "year 26"}, rows[2])
}

func TestBuildRosterEmptyDirectory(t *testing.T) {
	svc := NewExportService()

	workbook, err := svc.BuildRoster(nil)
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Students")
	require.NoError(t, err)
	require.Len(t, rows, 1) // Header only.
}
