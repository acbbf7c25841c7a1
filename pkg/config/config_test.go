package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 104, cfg.Scheduling.MaxOccurrences)
	assert.Equal(t, 5*time.Second, cfg.Scheduling.LockTimeout)
	assert.Equal(t, 15*time.Minute, cfg.Scheduling.HolidayCacheTTL)
	assert.False(t, cfg.Scheduling.HolidayCacheEnabled)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("SCHEDULE_MAX_OCCURRENCES", 0)
	v.Set("HOLIDAY_CACHE_TTL", "not-a-duration")
	v.Set("ALLOWED_ORIGINS", " https://portal.example.edu , ,http://localhost:3000")

	cfg := fromViper(v)
	assert.Equal(t, 104, cfg.Scheduling.MaxOccurrences)
	assert.Equal(t, 15*time.Minute, cfg.Scheduling.HolidayCacheTTL)
	assert.Equal(t, []string{"https://portal.example.edu", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}
