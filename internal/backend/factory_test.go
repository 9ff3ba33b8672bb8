package backend

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igreja/internal/config"
	"igreja/internal/core"
	applog "igreja/internal/log"
	"igreja/internal/metrics"
	"igreja/internal/sheets/memory"
	"igreja/internal/storage"
)

func quietFactory() Factory {
	return NewFactory(applog.New(applog.Config{Output: &bytes.Buffer{}}))
}

func TestFromAppConfig(t *testing.T) {
	cfg := &config.Config{
		DatabaseDriver: "sqlite",
		SQLiteDBPath:   "/tmp/igreja.db",
		AMQPExchange:   "igreja",
		AMQPQueue:      "ledger_sync",
	}

	bc, err := FromAppConfig(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, storage.DriverSQLite, bc.Driver)
	assert.Equal(t, "/tmp/igreja.db", bc.DSN)
	assert.Equal(t, MemoryLedger, bc.Ledger)

	cfg.GoogleSpreadsheetID = "sheet-123"
	bc, err = FromAppConfig(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, GoogleLedger, bc.Ledger)

	cfg.DatabaseDriver = "oracle"
	_, err = FromAppConfig(cfg, nil)
	assert.Error(t, err)

	_, err = FromAppConfig(nil, nil)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{"valid", Config{Driver: storage.DriverSQLite, DSN: "x.db"}, ""},
		{"unknown driver", Config{Driver: "oracle", DSN: "x"}, "invalid database driver"},
		{"missing dsn", Config{Driver: storage.DriverPostgres}, "data source is required"},
		{"bad ledger", Config{Driver: storage.DriverSQLite, DSN: "x.db", Ledger: "excel"}, "invalid ledger type"},
		{"google without id", Config{Driver: storage.DriverSQLite, DSN: "x.db", Ledger: GoogleLedger}, "Spreadsheet ID is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateBackendWithoutAMQP(t *testing.T) {
	ctx := context.Background()
	res, err := quietFactory().CreateBackend(ctx, Config{
		Driver:  storage.DriverSQLite,
		DSN:     filepath.Join(t.TempDir(), "igreja.db"),
		Metrics: metrics.New(),
	})
	require.NoError(t, err)
	assert.Nil(t, res.AMQP)

	m, err := res.Registry.CreateMember(ctx, core.Fields{"name": "Ana"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ID)

	dash, err := res.Reports.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dash.Members)

	require.NoError(t, res.Cleanup())
	assert.Error(t, res.Store.Ping(ctx))
}

func TestCreateBackendRejectsInvalidConfig(t *testing.T) {
	_, err := quietFactory().CreateBackend(context.Background(), Config{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestCreateLedger(t *testing.T) {
	ctx := context.Background()
	f := quietFactory()

	ledger, err := f.CreateLedger(ctx, Config{Ledger: MemoryLedger})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, ledger)

	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	_, err = f.CreateLedger(ctx, Config{Ledger: GoogleLedger, GoogleSpreadsheetID: "sheet-123"})
	assert.Error(t, err)

	_, err = f.CreateLedger(ctx, Config{Ledger: "excel"})
	assert.Error(t, err)
}
