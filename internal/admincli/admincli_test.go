package admincli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igreja/internal/seed"
	"igreja/internal/services"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("AMQP_URL", "")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("LOG_LEVEL", "error")
	color.NoColor = true

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "igreja-admin", cmd.Use)

	for _, name := range []string{"migrate", "seed", "report"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "report", "--db", filepath.Join(t.TempDir(), "igreja.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestMigrate(t *testing.T) {
	db := filepath.Join(t.TempDir(), "igreja.db")

	out, err := execute(t, "migrate", "--db", db, "--format", "json")
	require.NoError(t, err)

	var res MigrateResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "sqlite", res.Driver)
	assert.Greater(t, res.Version, uint(0))
	assert.False(t, res.Dirty)

	out, err = execute(t, "migrate", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite schema at version")
}

func TestSeedBundledFixtureThenReport(t *testing.T) {
	db := filepath.Join(t.TempDir(), "igreja.db")

	out, err := execute(t, "seed", "--db", db, "--format", "json")
	require.NoError(t, err)
	var res seed.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, seed.Result{Churches: 2, Pastors: 3, Members: 3, Finance: 3, Activities: 2}, res)

	out, err = execute(t, "report", "--db", db, "--format", "json")
	require.NoError(t, err)
	var snap services.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, "1350.56", snap.CashFlow.Income.String())
	assert.Equal(t, "300.11", snap.CashFlow.Expense.String())
	assert.Equal(t, "1050.45", snap.CashFlow.Balance.String())
	require.Len(t, snap.Income, 2)
	assert.Equal(t, "Tithes", snap.Income[0].Category)

	out, err = execute(t, "report", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Balance:")
	assert.Contains(t, out, "1050.45")
	assert.Contains(t, out, "Expenses by category")
	assert.Contains(t, out, "Energy")
}

func TestSeedFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "fixture.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
finance:
  - kind: Expense
    category: Rent
    amount: "500"
`), 0o600))

	out, err := execute(t, "seed", "--db", filepath.Join(dir, "igreja.db"), "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 1 records")

	out, err = execute(t, "report", "--db", filepath.Join(dir, "igreja.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "-500.00")
	assert.Contains(t, out, "(none)")
}

func TestSeedRejectsBrokenFixture(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "fixture.yaml")
	require.NoError(t, os.WriteFile(file, []byte("pastors:\n  - name: P\n    church: Nowhere\n"), 0o600))

	_, err := execute(t, "seed", "--db", filepath.Join(dir, "igreja.db"), "--file", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown church")
}
