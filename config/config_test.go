package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yml := []byte("mysql:\n  addr: db:3306\n  database: tube\njwt:\n  secret: s3cret\n  timeout: 2h\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), yml, 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("VIDTUBE_MYSQL_USERNAME", "tube_user")

	cfg, err := Init()
	require.NoError(t, err)
	assert.Equal(t, "db:3306", cfg.Mysql.Addr)
	assert.Equal(t, "tube_user", cfg.Mysql.Username)
	assert.Equal(t, 2*time.Hour, cfg.Jwt.Timeout)
	assert.Equal(t, "0.0.0.0:8888", cfg.Server.Addr)
	assert.Equal(t, "tube_user:@tcp(db:3306)/tube?charset=utf8mb4&parseTime=True&loc=Local", cfg.MysqlDSN())
}

func TestInitRequiresJwtSecret(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = Init()
	assert.Error(t, err)
}
