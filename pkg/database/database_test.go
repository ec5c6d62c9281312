package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/bakery-api/config"
)

func TestInitDB_SQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.URL = "file:initdb_test?mode=memory&cache=shared"

	db, err := InitDB(cfg)
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)

	require.NoError(t, Close(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping())
}

func TestInitDB_UnsupportedDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Driver = "oracle"

	_, err := InitDB(cfg)
	assert.ErrorContains(t, err, "unsupported driver")
}
