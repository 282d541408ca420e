package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	Log          LogConfig
	HTTP         HTTPConfig
	Data         DataConfig
	Pagination   PaginationConfig
	Auth         AuthConfig
	Marketplaces []MarketplaceConfig
	Swagger      SwaggerConfig
	Metrics      MetricsConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret                string
	AccessTokenExpiration time.Duration
	Issuer                string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// DataConfig selects the data-source strategy and its operating limits
type DataConfig struct {
	Source        string        // mock, db, api
	SourceTimeout time.Duration // per-marketplace fetch budget in unified queries
	StatsScanCap  int           // cap for the in-memory statistics scan
	MockDataDir   string        // directory holding the per-marketplace JSON datasets
}

// PaginationConfig holds pagination limits
type PaginationConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// AuthConfig holds login settings. The default user is seeded for
// single-operator deployments that have no user store.
type AuthConfig struct {
	Enabled             bool
	DefaultUser         string
	DefaultPasswordHash string // bcrypt hash, never plaintext
}

// MarketplaceConfig holds one marketplace's static configuration
type MarketplaceConfig struct {
	Slug         string
	Name         string
	Icon         string
	Color        string
	Enabled      bool
	MockEnabled  bool
	MockDataFile string
	APIBaseURL   string
	OrdersPath   string
	AuthType     string
	RequiresAuth bool
	Token        string
	APIKey       string
	Username     string
	Password     string
}

// SwaggerConfig holds Swagger documentation endpoint configuration
type SwaggerConfig struct {
	Enabled bool
}

// MetricsConfig holds Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with HUB_ prefix (e.g., HUB_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("HUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		JWT: JWTConfig{
			Secret:                v.GetString("jwt.secret"),
			AccessTokenExpiration: v.GetDuration("jwt.access_token_expiration"),
			Issuer:                v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Data: DataConfig{
			Source:        v.GetString("data.source"),
			SourceTimeout: v.GetDuration("data.source_timeout"),
			StatsScanCap:  v.GetInt("data.stats_scan_cap"),
			MockDataDir:   v.GetString("data.mock_data_dir"),
		},
		Pagination: PaginationConfig{
			DefaultLimit: v.GetInt("pagination.default_limit"),
			MaxLimit:     v.GetInt("pagination.max_limit"),
		},
		Auth: AuthConfig{
			Enabled:             v.GetBool("auth.enabled"),
			DefaultUser:         v.GetString("auth.default_user"),
			DefaultPasswordHash: v.GetString("auth.default_password_hash"),
		},
		Marketplaces: loadMarketplaces(v),
		Swagger: SwaggerConfig{
			Enabled: v.GetBool("swagger.enabled"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("metrics.enabled"),
			Path:    v.GetString("metrics.path"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadMarketplaces reads the [marketplaces.<slug>] tables. Viper maps
// don't support env overrides per key, so each field is read with its
// full dotted path to keep HUB_MARKETPLACES_SHOPEE_TOKEN working.
func loadMarketplaces(v *viper.Viper) []MarketplaceConfig {
	raw := v.GetStringMap("marketplaces")
	if len(raw) == 0 {
		return nil
	}

	out := make([]MarketplaceConfig, 0, len(raw))
	for slug := range raw {
		prefix := "marketplaces." + slug + "."
		mc := MarketplaceConfig{
			Slug:         slug,
			Name:         v.GetString(prefix + "name"),
			Icon:         v.GetString(prefix + "icon"),
			Color:        v.GetString(prefix + "color"),
			Enabled:      true,
			MockEnabled:  true,
			MockDataFile: v.GetString(prefix + "mock_data_file"),
			APIBaseURL:   v.GetString(prefix + "api_base_url"),
			OrdersPath:   v.GetString(prefix + "orders_path"),
			AuthType:     v.GetString(prefix + "auth_type"),
			RequiresAuth: v.GetBool(prefix + "requires_auth"),
			Token:        v.GetString(prefix + "token"),
			APIKey:       v.GetString(prefix + "api_key"),
			Username:     v.GetString(prefix + "username"),
			Password:     v.GetString(prefix + "password"),
		}
		if v.IsSet(prefix + "enabled") {
			mc.Enabled = v.GetBool(prefix + "enabled")
		}
		if v.IsSet(prefix + "mock_enabled") {
			mc.MockEnabled = v.GetBool(prefix + "mock_enabled")
		}
		out = append(out, mc)
	}
	return out
}

// BuiltinMarketplaces returns the three marketplaces the hub ships
// with. Used when the config file defines none.
func BuiltinMarketplaces() []MarketplaceConfig {
	return []MarketplaceConfig{
		{
			Slug: "shopee", Name: "Shopee", Icon: "SHOP", Color: "#FF6B35",
			Enabled: true, MockEnabled: true,
			MockDataFile: "shopee-orders.json",
			OrdersPath:   "/api/v2/order/get_order_list",
			AuthType:     "bearer", RequiresAuth: true,
		},
		{
			Slug: "mercadolivre", Name: "Mercado Livre", Icon: "STORE", Color: "#FFE600",
			Enabled: true, MockEnabled: true,
			MockDataFile: "mercadolivre-orders.json",
			APIBaseURL:   "https://api.mercadolibre.com",
			OrdersPath:   "/orders/search",
			AuthType:     "bearer", RequiresAuth: true,
		},
		{
			Slug: "shein", Name: "Shein", Icon: "FASHION", Color: "#8B5CF6",
			Enabled: true, MockEnabled: true,
			MockDataFile: "shein-orders.json",
			OrdersPath:   "/open-api/order/list",
			AuthType:     "apikey", RequiresAuth: true,
		},
	}
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "orderhub-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "3001"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "orderhub"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.JWT.AccessTokenExpiration == 0 {
		cfg.JWT.AccessTokenExpiration = 24 * time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "orderhub-backend"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Data.Source == "" {
		cfg.Data.Source = "mock"
	}
	if cfg.Data.SourceTimeout == 0 {
		cfg.Data.SourceTimeout = 10 * time.Second
	}
	if cfg.Data.StatsScanCap == 0 {
		cfg.Data.StatsScanCap = 10000
	}
	if cfg.Data.MockDataDir == "" {
		cfg.Data.MockDataDir = "data"
	}
	if cfg.Pagination.DefaultLimit == 0 {
		cfg.Pagination.DefaultLimit = 10
	}
	if cfg.Pagination.MaxLimit == 0 {
		cfg.Pagination.MaxLimit = 100
	}
	if cfg.Auth.DefaultUser == "" {
		cfg.Auth.DefaultUser = "admin"
	}
	if len(cfg.Marketplaces) == 0 {
		cfg.Marketplaces = BuiltinMarketplaces()
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	switch c.Data.Source {
	case "mock", "db", "api":
	default:
		return fmt.Errorf("data.source must be one of mock, db, api; got %q", c.Data.Source)
	}

	if c.Pagination.DefaultLimit > c.Pagination.MaxLimit {
		return fmt.Errorf("pagination.default_limit (%d) cannot exceed pagination.max_limit (%d)",
			c.Pagination.DefaultLimit, c.Pagination.MaxLimit)
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.Auth.Enabled {
			if c.JWT.Secret == "" {
				return fmt.Errorf("jwt.secret is required in production when auth is enabled")
			}
			if len(c.JWT.Secret) < 32 {
				return fmt.Errorf("jwt.secret must be at least 32 characters in production")
			}
			if c.Auth.DefaultPasswordHash == "" {
				return fmt.Errorf("auth.default_password_hash is required in production when auth is enabled")
			}
		}
		if c.Data.Source == "db" {
			if c.Database.Password == "" {
				return fmt.Errorf("database.password is required in production")
			}
			if c.Database.SSLMode == "disable" {
				return fmt.Errorf("database.sslmode cannot be 'disable' in production")
			}
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
