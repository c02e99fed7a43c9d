package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"parcel/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", config.HTTPPort)
	assert.Equal(t, "DECLINED", config.DeclinedPrefix)
	assert.Equal(t, "*/30 * * * * *", config.OrdersFlushSchedule)
	assert.Equal(t, 30*time.Second, config.DBConnectTimeout)
	assert.InDelta(t, 10.0, config.LoginAttemptsPerMinute, 0.001)
	assert.Equal(t,
		"host=localhost user=postgres password=postgres dbname=parcel port=5432 sslmode=disable TimeZone=UTC",
		config.DSN())
}

func TestLoadConfig_EnvFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_NAME=parcel_test\nHTTP_PORT=9000\n"), 0o600))
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("PASSWORD_COST", "4")
	t.Cleanup(func() { _ = os.Unsetenv("DB_NAME") })

	config, err := cmd.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "parcel_test", config.DBName)
	assert.Equal(t, "9100", config.HTTPPort, "the environment wins over the file")
	assert.Equal(t, 4, config.PasswordCost)
}

func TestLoadConfig_RejectsPasswordCost(t *testing.T) {
	t.Setenv("PASSWORD_COST", "99")

	_, err := cmd.LoadConfig("")

	assert.ErrorContains(t, err, "PASSWORD_COST")
}
