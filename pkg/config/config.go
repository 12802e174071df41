package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	Store    StoreConfig
	HTTP     HTTPConfig
	Reminder ReminderConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Timezone string // zona IANA usada para "hoy" y para el recordatorio diario
	LogLevel string
}

// StoreConfig selecciona el almacén de registros.
// SQLite es el almacén embebido por defecto; PostgreSQL es opcional.
type StoreConfig struct {
	Driver     string
	SQLitePath string
	DB         DBConfig
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// HTTPConfig configuración del servidor HTTP local.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ReminderConfig contenido fijo de la notificación diaria.
type ReminderConfig struct {
	ChannelID   string
	ChannelName string
	Title       string
	Body        string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_DRIVER, SQLITE_PATH, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "notify"),
			Timezone: getString(v, "APP_TIMEZONE", "Local"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(getString(v, "STORE_DRIVER", DriverSQLite)),
			SQLitePath: getString(v, "SQLITE_PATH", "notify.db"),
			DB: DBConfig{
				DatabaseURL: getString(v, "DATABASE_URL", ""),
				Host:        getString(v, "DB_HOST", "localhost"),
				Port:        getInt(v, "DB_PORT", 5432),
				User:        getString(v, "DB_USER", "postgres"),
				Password:    getString(v, "DB_PASSWORD", ""),
				DBName:      getString(v, "DB_NAME", "notify"),
				SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			},
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Reminder: ReminderConfig{
			ChannelID:   getString(v, "REMINDER_CHANNEL_ID", "default"),
			ChannelName: getString(v, "REMINDER_CHANNEL_NAME", "Default Channel"),
			Title:       getString(v, "REMINDER_TITLE", "Notify"),
			Body:        getString(v, "REMINDER_BODY", "Check Renewals!"),
		},
	}

	switch cfg.Store.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("STORE_DRIVER no soportado: %q", cfg.Store.Driver)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
