package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultPort            = 8080
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultAppName   = "catbox"

	DefaultDBMaxOpenConns    = 10
	DefaultDBMaxIdleConns    = 5
	DefaultDBConnMaxLifetime = 30 * time.Minute
	DefaultDBConnMaxIdleTime = 5 * time.Minute

	DefaultBrandName      = "Catbox"
	DefaultStoreBaseURL   = "http://localhost:8080"
	DefaultCurrency       = "EGP"
	DefaultCaloricDensity = 350.0

	DefaultWhatsAppAPIBaseURL = "https://graph.facebook.com/v17.0"
	DefaultHTTPClientTimeout  = 10 * time.Second

	DefaultNutritionLocale = "en"

	// todos los días 06:00 UTC
	DefaultRenewalCron = "0 6 * * *"
)

var DefaultCitiesServed = []string{"Cairo", "Giza"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", DefaultPort)
	v.SetDefault("http.read_timeout", DefaultReadTimeout)
	v.SetDefault("http.write_timeout", DefaultWriteTimeout)
	v.SetDefault("http.shutdown_timeout", DefaultShutdownTimeout)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.app", DefaultAppName)

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", DefaultDBMaxOpenConns)
	v.SetDefault("database.max_idle_conns", DefaultDBMaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", DefaultDBConnMaxLifetime)
	v.SetDefault("database.conn_max_idle_time", DefaultDBConnMaxIdleTime)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("auth.base_url", "")
	v.SetDefault("auth.api_key", "")
	v.SetDefault("auth.timeout", DefaultHTTPClientTimeout)

	v.SetDefault("store.brand_name", DefaultBrandName)
	v.SetDefault("store.admin_email", "")
	v.SetDefault("store.admin_whatsapp", "")
	v.SetDefault("store.base_url", DefaultStoreBaseURL)
	v.SetDefault("store.cities_served", DefaultCitiesServed)
	v.SetDefault("store.currency", DefaultCurrency)
	v.SetDefault("store.caloric_density_per_100g", DefaultCaloricDensity)

	v.SetDefault("whatsapp.enabled", false)
	v.SetDefault("whatsapp.api_base_url", DefaultWhatsAppAPIBaseURL)
	v.SetDefault("whatsapp.access_token", "")
	v.SetDefault("whatsapp.phone_number_id", "")
	v.SetDefault("whatsapp.timeout", DefaultHTTPClientTimeout)

	v.SetDefault("nutrition.locale", DefaultNutritionLocale)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.renewal_cron", DefaultRenewalCron)
}
