package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/storelinks/internal/core"
	"github.com/JonMunkholm/storelinks/internal/links"
	"github.com/JonMunkholm/storelinks/internal/spreadsheet"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDedupCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "visits.csv", "store,link_1,link_2\nStore A,http://a1,http://a2\nStore A,http://a2,\n")

	out, err := execute(t, "dedup", "--input", input)
	require.NoError(t, err)

	output := filepath.Join(dir, "visits_dedup.xlsx")
	assert.Contains(t, out, "2 unique pairs, 1 stores")

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	names, err := spreadsheet.SheetNames(output, f)
	require.NoError(t, err)
	assert.Equal(t, []string{core.SheetLinksByRow, core.SheetLinksInColumns, core.SheetLinksByStore, core.SheetSummary, core.SheetOnePerStore}, names)
}

func TestDedupCommand_OutputAndFlags(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "visits.csv", "tienda,web\nStore A,http://a1\n")
	output := filepath.Join(dir, "custom.xlsx")

	_, err := execute(t, "dedup", "--input", input, "--store-col", "tienda", "--link-col", "web",
		"--one-per-store=false", "--output", output)
	require.NoError(t, err)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	names, err := spreadsheet.SheetNames(output, f)
	require.NoError(t, err)
	assert.NotContains(t, names, core.SheetOnePerStore)
}

func TestDedupCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "dedup", "--input", filepath.Join(t.TempDir(), "nope.csv"))

	assert.True(t, errors.Is(err, spreadsheet.ErrMissingFile), "got %v", err)
}

func TestDedupCommand_RequiresInput(t *testing.T) {
	_, err := execute(t, "dedup")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"input"`)
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "store,link\nStore A,http://a\nStore B,http://b\n")
	b := writeFile(t, dir, "b.csv", "shop\nStore  B\nStore C\n")
	output := filepath.Join(dir, "cmp.xlsx")

	out, err := execute(t, "compare", "--a", a, "--b", b, "--store-col-b", "shop", "--links", "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "1 in both, 1 only in A, 1 only in B")

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	matched, err := spreadsheet.Load(output, f, core.SheetMatched)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Store B"}}, matched.Rows)
}

func TestCompareCommand_LinkColumns(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "store,site,alt\nStore B,http://site-a,http://alt-a\n")
	b := writeFile(t, dir, "b.csv", "store,web,notes\nStore B,http://web-b,x\n")
	output := filepath.Join(dir, "cmp.xlsx")

	_, err := execute(t, "compare", "--a", a, "--b", b, "--links",
		"--link-col-a", "alt", "--link-col-b", "web", "--output", output)
	require.NoError(t, err)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	side, err := spreadsheet.Load(output, f, core.SheetMatchedLinks)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Store B", "http://alt-a", "http://web-b"}}, side.Rows)

	_, err = execute(t, "compare", "--a", a, "--b", b, "--links", "--link-col-b", "enlace",
		"--output", filepath.Join(dir, "bad.xlsx"))
	assert.True(t, errors.Is(err, links.ErrSchema), "got %v", err)
}

func TestExtractCommand(t *testing.T) {
	dir := t.TempDir()

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "store"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "Store A"))
	require.NoError(t, f.SetCellValue("Sheet1", "C2", "0a1b2c3d-0000-1111-2222-333344445555"))
	input := filepath.Join(dir, "visits.xlsx")
	require.NoError(t, f.SaveAs(input))
	require.NoError(t, f.Close())

	out, err := execute(t, "extract", "--input", input, "--store-letter", "b", "--link-letter", "c",
		"--url-prefix", "https://visits.test/")
	require.NoError(t, err)
	assert.Contains(t, out, "1 rows read, 1 unique pairs, 1 stores")

	_, err = os.Stat(filepath.Join(dir, "visits_store_links.xlsx"))
	assert.NoError(t, err)
}

func TestExtractCommand_RejectsCSV(t *testing.T) {
	input := writeFile(t, t.TempDir(), "visits.csv", "a\n")

	_, err := execute(t, "extract", "--input", input)

	assert.True(t, errors.Is(err, spreadsheet.ErrFormat), "got %v", err)
}
