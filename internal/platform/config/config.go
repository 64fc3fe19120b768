// Package config carga la configuración del servicio: defaults, config.yaml
// opcional y variables CATBOX_* (en ese orden de precedencia creciente).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var ErrConfiguration = errors.New("configuration error")

const EnvPrefix = "CATBOX"

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Store     StoreConfig     `mapstructure:"store"`
	WhatsApp  WhatsAppConfig  `mapstructure:"whatsapp"`
	Nutrition NutritionConfig `mapstructure:"nutrition"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

type HTTPConfig struct {
	Port            int           `mapstructure:"port" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	App    string `mapstructure:"app"`
}

// DatabaseConfig: DSN vacío => repos in-memory.
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// AuthConfig: BaseURL vacío => modo dev (X-Debug-User-ID).
type AuthConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey  string        `mapstructure:"api_key" validate:"required_with=BaseURL"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StoreConfig son los settings de tenant/admin de la tienda.
type StoreConfig struct {
	BrandName             string   `mapstructure:"brand_name" validate:"required"`
	AdminEmail            string   `mapstructure:"admin_email" validate:"omitempty,email"`
	AdminWhatsApp         string   `mapstructure:"admin_whatsapp" validate:"omitempty,e164"`
	BaseURL               string   `mapstructure:"base_url" validate:"required,url"`
	CitiesServed          []string `mapstructure:"cities_served" validate:"min=1,dive,required"`
	Currency              string   `mapstructure:"currency" validate:"required"`
	CaloricDensityPer100g float64  `mapstructure:"caloric_density_per_100g" validate:"gt=0"`
}

type WhatsAppConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	APIBaseURL    string        `mapstructure:"api_base_url" validate:"omitempty,url"`
	AccessToken   string        `mapstructure:"access_token" validate:"required_if=Enabled true"`
	PhoneNumberID string        `mapstructure:"phone_number_id" validate:"required_if=Enabled true"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type NutritionConfig struct {
	Locale string `mapstructure:"locale" validate:"oneof=en ar"`
}

type SchedulerConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	RenewalCron string `mapstructure:"renewal_cron" validate:"required_if=Enabled true"`
}

// Addr devuelve ":<port>".
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load lee config.yaml desde paths (si no se pasan, "."), aplica env y valida.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: read config file: %v", ErrConfiguration, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: parse config: %v", ErrConfiguration, err)
	}

	// Desde env llega como "Cairo, Giza": recortamos espacios.
	if raw := v.GetString("store.cities_served"); raw != "" {
		cfg.Store.CitiesServed = splitList(raw)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Default devuelve la configuración solo con defaults (sin archivo ni env).
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &cfg
}
