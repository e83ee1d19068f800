package terminal

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const (
	referentialCSV = "LOGIN,SADI,RAVT\nu1,S1,R1\nu2,S1,R2\n"
	weeklyCSV      = "LOGIN;AGENCE;ACCUEIL;OPERATION NFC;OPERATION MANUELLE;TOTAL OPERATION\n" +
		"u1;DV-DRVE_DIRECTION REGIONALE DES VENTES EST;PVT A;3;7;10\n" +
		"u2;DV-DRVE_DIRECTION REGIONALE DES VENTES EST;BOUTIQUE B;7;3;10\n"
)

func testCtx() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCLI_List(t *testing.T) {
	var out bytes.Buffer
	cli := NewCLI(Options{Output: &out})

	require.NoError(t, cli.Execute(testCtx(), "list"))

	assert.Contains(t, out.String(), "preactivation")
	assert.Contains(t, out.String(), "ranking")
	assert.Contains(t, out.String(), "referential:")
	assert.Contains(t, out.String(), "weekly:")
}

func TestCLI_Run_WritesWorkbook(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.csv", referentialCSV)
	weekly := writeFile(t, dir, "weekly.csv", weeklyCSV)
	outDir := filepath.Join(dir, "out")

	var out bytes.Buffer
	cli := NewCLI(Options{Output: &out, OutputDir: outDir})

	err := cli.Execute(testCtx(), "run", "nfc",
		"--input", "referential="+ref,
		"--input", "weekly="+weekly)
	require.NoError(t, err)

	path := filepath.Join(outDir, "Reporting_NFC_Orange_Final.xlsx")
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"SYNTHESE DR", "REPORTING DR-SADI-RAVT", "REPORTING DR-RAVT-PVT"}, f.GetSheetList())
	taux, err := f.GetCellValue("SYNTHESE DR", "E2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "50", taux)

	assert.Contains(t, out.String(), "Reporting NFC Orange")
	assert.Contains(t, out.String(), "Output: "+path)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCLI_Run_Profile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ref.csv", referentialCSV)
	writeFile(t, dir, "weekly.csv", weeklyCSV)
	profiles := writeFile(t, dir, "profiles.ini", fmt.Sprintf(`[weekly]
report            = nfc
input.referential = ref.csv
input.weekly      = weekly.csv
output            = %s
`, "nfc.xlsx"))

	cli := NewCLI(Options{Output: &bytes.Buffer{}})
	require.NoError(t, cli.Execute(testCtx(), "run", "--profile", "weekly", "--profiles", profiles))

	_, err := os.Stat(filepath.Join(dir, "nfc.xlsx"))
	assert.NoError(t, err)
}

func TestCLI_Profiles(t *testing.T) {
	dir := t.TempDir()
	profiles := writeFile(t, dir, "profiles.ini", `[weekly]
report            = nfc
input.weekly      = weekly.csv
input.referential = ref.csv

[ranking]
report = ranking
input.sales = sales.csv
output = out/classement.xlsx
`)

	var out bytes.Buffer
	cli := NewCLI(Options{Output: &out})
	require.NoError(t, cli.Execute(testCtx(), "profiles", "--profiles", profiles))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "PROFILE"))
	assert.Contains(t, lines[1], "ranking")
	assert.Contains(t, lines[1], filepath.Join(dir, "out", "classement.xlsx"))
	assert.True(t, strings.HasPrefix(lines[2], "weekly"))
	assert.Contains(t, lines[2], "referential,weekly")

	err := cli.Execute(testCtx(), "profiles", "--profiles", filepath.Join(dir, "missing.ini"))
	assert.ErrorContains(t, err, "failed to load profiles")
}

func TestCLI_Run_ValidationErrorLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.csv", "LOGIN,SADI\nu1,S1\n")
	weekly := writeFile(t, dir, "weekly.csv", weeklyCSV)
	output := filepath.Join(dir, "out.xlsx")

	cli := NewCLI(Options{Output: &bytes.Buffer{}})
	err := cli.Execute(testCtx(), "run", "nfc",
		"-i", "referential="+ref, "-i", "weekly="+weekly, "-o", output)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"RAVT"}, verr.Missing)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCLI_Run_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no report", args: []string{"run"}, want: "report name or --profile is required"},
		{name: "unknown report", args: []string{"run", "weekly-sales"}, want: "unknown report"},
		{name: "bad input flag", args: []string{"run", "nfc", "--input", "weekly"}, want: "expected slot=path"},
		{name: "missing input slot", args: []string{"run", "ranking"}, want: "input file not provided"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := NewCLI(Options{Output: &bytes.Buffer{}, OutputDir: t.TempDir()})
			err := cli.Execute(testCtx(), tt.args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
