package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautylounge/salon-booking-service/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
[database]
host = "localhost"
user = "salon"
dbname = "salon"
`

func TestLoad_AppliesSalonDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultTimezone, cfg.Salon.Timezone)
	require.NotNil(t, cfg.Salon.ClosedWeekday)
	assert.Equal(t, int(domain.DefaultClosedWeekday), *cfg.Salon.ClosedWeekday)
	assert.Equal(t, domain.DefaultLunchStart, cfg.Salon.LunchStart)
	assert.Equal(t, domain.DefaultLunchEnd, cfg.Salon.LunchEnd)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
}

func TestLoad_ExplicitClosedWeekday(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[salon]
closed_weekday = 1
`))
	require.NoError(t, err)

	require.NotNil(t, cfg.Salon.ClosedWeekday)
	assert.Equal(t, 1, *cfg.Salon.ClosedWeekday)
}

func TestLoad_RejectsBadClosedWeekday(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
[salon]
closed_weekday = 7
`))
	assert.Error(t, err)
}

func TestLoad_RejectsBadTimezone(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
[salon]
timezone = "Mars/Olympus"
`))
	assert.Error(t, err)
}

func TestLoad_RequiresDatabase(t *testing.T) {
	_, err := Load(writeConfig(t, "[server]\nhttp_port = 9999\n"))
	assert.Error(t, err)
}
