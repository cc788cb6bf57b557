package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the service configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Dashboard DashboardConfig
	NewRelic  NewRelicConfig
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Port int
	Mode string // debug, release, test
}

// DatabaseConfig holds the database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds the Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig holds the session token configuration. Secret has no
// default: the service refuses to start without one.
type AuthConfig struct {
	Secret      string
	Issuer      string
	TokenTTLHrs int
}

// DashboardConfig controls the seller dashboard cache
type DashboardConfig struct {
	CacheTTLSeconds  int
	RefreshSeconds   int
	RecentOrderCount int
}

// NewRelicConfig holds the New Relic configuration
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// InitConfig initializes the configuration using Viper
func InitConfig(cfgFile string) error {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/order-service")
		viper.SetConfigName("config")
	}

	// ORDERS_SERVER_PORT overrides server.port, and so on
	viper.SetEnvPrefix("ORDERS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("No config file found, using defaults and environment variables")
		} else {
			return fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8093)
	viper.SetDefault("server.mode", "debug")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "orders")
	viper.SetDefault("database.password", "orders")
	viper.SetDefault("database.dbname", "order_service_db")
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// No default for auth.secret: a signing secret must be provided
	viper.SetDefault("auth.issuer", "order-service")
	viper.SetDefault("auth.tokenttlhrs", 72)

	viper.SetDefault("dashboard.cachettlseconds", 30)
	viper.SetDefault("dashboard.refreshseconds", 60)
	viper.SetDefault("dashboard.recentordercount", 20)

	viper.SetDefault("newrelic.appname", "Order Service Local")
	viper.SetDefault("newrelic.enabled", false)
}

// Load loads the configuration
func Load() (*Config, error) {
	serverConfig := ServerConfig{
		Port: viper.GetInt("server.port"),
		Mode: viper.GetString("server.mode"),
	}

	dbConfig := DatabaseConfig{
		Host:     viper.GetString("database.host"),
		Port:     viper.GetInt("database.port"),
		User:     viper.GetString("database.user"),
		Password: viper.GetString("database.password"),
		DBName:   viper.GetString("database.dbname"),
		SSLMode:  viper.GetString("database.sslmode"),
	}

	redisConfig := RedisConfig{
		Host:     viper.GetString("redis.host"),
		Port:     viper.GetInt("redis.port"),
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	}

	authConfig := AuthConfig{
		Secret:      viper.GetString("auth.secret"),
		Issuer:      viper.GetString("auth.issuer"),
		TokenTTLHrs: viper.GetInt("auth.tokenttlhrs"),
	}

	dashboardConfig := DashboardConfig{
		CacheTTLSeconds:  viper.GetInt("dashboard.cachettlseconds"),
		RefreshSeconds:   viper.GetInt("dashboard.refreshseconds"),
		RecentOrderCount: viper.GetInt("dashboard.recentordercount"),
	}

	newRelicConfig := NewRelicConfig{
		AppName:    viper.GetString("newrelic.appname"),
		LicenseKey: viper.GetString("newrelic.licensekey"),
		Enabled:    viper.GetBool("newrelic.enabled"),
	}

	return &Config{
		Server:    serverConfig,
		Database:  dbConfig,
		Redis:     redisConfig,
		Auth:      authConfig,
		Dashboard: dashboardConfig,
		NewRelic:  newRelicConfig,
	}, nil
}
