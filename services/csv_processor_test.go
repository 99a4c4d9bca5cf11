package services

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csv2project/config"
	"csv2project/models"
	"csv2project/utils"
)

func TestParseImportCSV(t *testing.T) {
	input := "Title,Body,Labels,Assignees,Priority,Points\n" +
		"Fix bug,Crash on start,\"bug, urgent\",\"@octocat, hubot\",High,3\n" +
		"Write docs,,,,,\n"

	rows, err := ParseImportCSV(strings.NewReader(input), ',')
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, "Fix bug", first.Title)
	assert.Equal(t, "Crash on start", first.Body)
	assert.Equal(t, []string{"bug", "urgent"}, first.Labels)
	assert.Equal(t, []string{"octocat", "hubot"}, first.Assignees)
	assert.Equal(t, []models.ExtraColumn{{Name: "Priority", Value: "High"}, {Name: "Points", Value: "3"}}, first.Extras)

	second := rows[1]
	assert.Equal(t, 2, second.Line)
	assert.Empty(t, second.Body)
	assert.Nil(t, second.Labels)
	assert.Nil(t, second.Assignees)
}

func TestParseImportCSVLowercaseHeadersAndDelimiter(t *testing.T) {
	input := "title;body;labels;assignees;Status\n" +
		"Spike idea;;;;Todo\n"

	rows, err := ParseImportCSV(strings.NewReader(input), ';')
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Spike idea", rows[0].Title)
	assert.Equal(t, []models.ExtraColumn{{Name: "Status", Value: "Todo"}}, rows[0].Extras)
}

func TestParseImportCSVCapitalizedWinsWhenBothPresent(t *testing.T) {
	input := "Title,title\n" +
		"Upper,lower\n" +
		",only lower\n"

	rows, err := ParseImportCSV(strings.NewReader(input), ',')
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Upper", rows[0].Title)
	assert.Equal(t, "only lower", rows[1].Title)
	assert.Empty(t, rows[0].Extras)
}

func TestParseImportCSVRaggedRows(t *testing.T) {
	input := "Title,Points,Notes\n" +
		"Short,5\n" +
		"Long,1,n,overflow\n" +
		"   \n"

	rows, err := ParseImportCSV(strings.NewReader(input), ',')
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []models.ExtraColumn{{Name: "Points", Value: "5"}, {Name: "Notes", Value: ""}}, rows[0].Extras)
	assert.Equal(t, []models.ExtraColumn{{Name: "Points", Value: "1"}, {Name: "Notes", Value: "n"}}, rows[1].Extras)
	assert.Empty(t, rows[2].Title)
}

func TestParseImportCSVDuplicateHeaderLastValueWins(t *testing.T) {
	input := "Title,Points,Notes,Points\nA,1,x,2\n"

	rows, err := ParseImportCSV(strings.NewReader(input), ',')
	require.NoError(t, err)

	assert.Equal(t, []models.ExtraColumn{{Name: "Points", Value: "2"}, {Name: "Notes", Value: "x"}}, rows[0].Extras)
}

func TestParseImportCSVHeaderOnlyAndEmpty(t *testing.T) {
	rows, err := ParseImportCSV(strings.NewReader("Title,Body\n"), ',')
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = ParseImportCSV(strings.NewReader(""), ',')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ヘッダー")
}

func TestEachImportRowFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.tsv")
	require.NoError(t, os.WriteFile(path, []byte("Title\tPoints\nOne\t1\nTwo\t2\n"), 0o600))

	proc := NewCSVProcessor(&config.Config{CSVPath: path, Delimiter: "\t"}, utils.Discard())
	var titles []string
	err := proc.EachImportRow(func(row models.ImportRow) error {
		titles = append(titles, row.Title)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"One", "Two"}, titles)

	stop := errors.New("stop")
	titles = nil
	err = proc.EachImportRow(func(row models.ImportRow) error {
		titles = append(titles, row.Title)
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"One"}, titles)

	proc = NewCSVProcessor(&config.Config{CSVPath: filepath.Join(t.TempDir(), "nope.csv"), Delimiter: ","}, utils.Discard())
	err = proc.EachImportRow(func(models.ImportRow) error { return nil })
	assert.Error(t, err)
}

func TestImportReaderYieldsRowsBeforeLaterReadError(t *testing.T) {
	broken := io.MultiReader(strings.NewReader("Title\nOne\nTwo\n"), iotest.ErrReader(errors.New("disk failure")))

	reader, err := NewImportReader(broken, ',')
	require.NoError(t, err)

	row, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "One", row.Title)
	assert.Equal(t, 1, row.Line)

	row, err = reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "Two", row.Title)

	_, err = reader.Next()
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
	assert.Contains(t, err.Error(), "行 3")
}

func TestIsReservedColumn(t *testing.T) {
	assert.True(t, IsReservedColumn("Title"))
	assert.True(t, IsReservedColumn("assignees"))
	assert.False(t, IsReservedColumn("TITLE"))
	assert.False(t, IsReservedColumn("Priority"))
}
