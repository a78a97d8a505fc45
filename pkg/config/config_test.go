package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
admin:
  email: admin@snackmarket.local
mysql:
  host: db.internal
  port: 3306
  username: market
  password: secret
  database: snackmarket
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "snackmarket", cfg.Server.Name)
	assert.Equal(t, "admin@snackmarket.local", cfg.Admin.Email)
	assert.Equal(t, int64(30), cfg.Etcd.LeaseTTL)
	assert.Equal(t, "snackmarket.orders", cfg.AMQP.Exchange)

	assert.Equal(t,
		"market:secret@tcp(db.internal:3306)/snackmarket?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.MySQL.DSN())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
