package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr())
	assert.Equal(t, DefaultReadTimeout, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Database.DSN)
	assert.Equal(t, DefaultCaloricDensity, cfg.Store.CaloricDensityPer100g)
	assert.Equal(t, []string{"Cairo", "Giza"}, cfg.Store.CitiesServed)
	assert.Equal(t, "en", cfg.Nutrition.Locale)
	assert.False(t, cfg.WhatsApp.Enabled)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
http:
  port: 9090
  write_timeout: 30s
store:
  brand_name: Bastet
  currency: EGP
  caloric_density_per_100g: 380
  cities_served: [Cairo, Alexandria]
nutrition:
  locale: ar
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("CATBOX_LOG_LEVEL", "debug")
	t.Setenv("CATBOX_STORE_CALORIC_DENSITY_PER_100G", "400")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, "Bastet", cfg.Store.BrandName)
	assert.Equal(t, []string{"Cairo", "Alexandria"}, cfg.Store.CitiesServed)
	assert.Equal(t, "ar", cfg.Nutrition.Locale)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 400.0, cfg.Store.CaloricDensityPer100g)
}

func TestLoad_EnvCityList(t *testing.T) {
	t.Setenv("CATBOX_STORE_CITIES_SERVED", "Cairo, Giza ,Alexandria")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"Cairo", "Giza", "Alexandria"}, cfg.Store.CitiesServed)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"CATBOX_STORE_CALORIC_DENSITY_PER_100G": "0",
		"CATBOX_LOG_LEVEL":                      "loud",
		"CATBOX_NUTRITION_LOCALE":               "fr",
		"CATBOX_STORE_ADMIN_WHATSAPP":           "01012345678",
		"CATBOX_WHATSAPP_ENABLED":               "true",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load(t.TempDir())
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultBrandName, cfg.Store.BrandName)
	assert.Equal(t, DefaultRenewalCron, cfg.Scheduler.RenewalCron)
}
