package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "sipp-api", cfg.App.Name)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 480, cfg.JWT.Expiration)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "0 6 1 * *", cfg.Reports.MonthlyCron)
	assert.True(t, cfg.Reports.SchedulerEnabled)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Empty(t, cfg.Admin.Email)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("HTTP_PORT", "9090")
	v.Set("JWT_EXPIRATION_MINUTES", "no-es-numero")
	v.Set("REPORT_SCHEDULER_ENABLED", false)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 480, cfg.JWT.Expiration, "un valor no numérico cae al default")
	assert.False(t, cfg.Reports.SchedulerEnabled)
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "localstorage")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "sipp", Password: "p@ss:word", DBName: "sipp", SSLMode: "disable"}
	assert.Equal(t, "postgres://sipp:p%40ss%3Aword@db:5432/sipp?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
