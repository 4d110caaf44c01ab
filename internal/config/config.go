package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Transport string

const (
	TransportStdio      Transport = "stdio"
	TransportSSE        Transport = "sse"
	TransportStreamable Transport = "streamable"
)

type Config struct {
	Host                  string    `mapstructure:"host"`
	Port                  int       `mapstructure:"port"`
	User                  string    `mapstructure:"user"`
	Password              string    `mapstructure:"password"`
	Database              string    `mapstructure:"database"`
	UseAAD                bool      `mapstructure:"use_aad"`
	SubscriptionID        string    `mapstructure:"subscription_id"`
	ResourceGroup         string    `mapstructure:"resource_group"`
	ConnectTimeoutSeconds int       `mapstructure:"connect_timeout_seconds"`
	StatementTimeoutMs    int       `mapstructure:"statement_timeout_ms"`
	AppName               string    `mapstructure:"app_name"`
	ReadOnly              bool      `mapstructure:"read_only"`
	MaxRows               int       `mapstructure:"max_rows"`
	MaxTextBytes          int       `mapstructure:"max_text_bytes"`
	EnableCaching         bool      `mapstructure:"enable_caching"`
	CacheTTLSeconds       int       `mapstructure:"cache_ttl_seconds"`
	Transport             Transport `mapstructure:"transport"`
	HTTPAddr              string    `mapstructure:"http_addr"`
	HTTPPort              int       `mapstructure:"http_port"`
	HTTPPath              string    `mapstructure:"http_path"`
	LogLevel              string    `mapstructure:"log_level"`
}

// ServerName returns the first label of the host, which is the Azure
// flexible-server resource name (e.g. "myserver" for
// "myserver.postgres.database.azure.com").
func (c Config) ServerName() string {
	if i := strings.Index(c.Host, "."); i >= 0 {
		return c.Host[:i]
	}
	return c.Host
}

func defaults(v *viper.Viper) {
	v.SetDefault("host", "")
	v.SetDefault("port", 5432)
	v.SetDefault("user", "")
	v.SetDefault("password", "")
	v.SetDefault("database", "postgres")
	v.SetDefault("use_aad", false)
	v.SetDefault("subscription_id", "")
	v.SetDefault("resource_group", "")
	v.SetDefault("connect_timeout_seconds", 5)
	v.SetDefault("statement_timeout_ms", 30000)
	v.SetDefault("app_name", "azure-postgresql-mcp")
	v.SetDefault("read_only", false)
	v.SetDefault("max_rows", 200)
	v.SetDefault("max_text_bytes", 200000)
	v.SetDefault("enable_caching", true)
	v.SetDefault("cache_ttl_seconds", 5)
	v.SetDefault("transport", string(TransportStdio))
	v.SetDefault("http_addr", "127.0.0.1")
	v.SetDefault("http_port", 8080)
	v.SetDefault("http_path", "/mcp")
	v.SetDefault("log_level", "info")
}

// bindEnv wires both the FLEXPG_MCP_* namespace and the conventional libpq
// and Azure variable names the server has always been driven by.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("host", "FLEXPG_MCP_HOST", "PGHOST")
	_ = v.BindEnv("port", "FLEXPG_MCP_PORT", "PGPORT")
	_ = v.BindEnv("user", "FLEXPG_MCP_USER", "PGUSER")
	_ = v.BindEnv("password", "FLEXPG_MCP_PASSWORD", "PGPASSWORD")
	_ = v.BindEnv("database", "FLEXPG_MCP_DATABASE", "PGDATABASE")
	_ = v.BindEnv("use_aad", "FLEXPG_MCP_USE_AAD", "AZURE_USE_AAD")
	_ = v.BindEnv("subscription_id", "FLEXPG_MCP_SUBSCRIPTION_ID", "AZURE_SUBSCRIPTION_ID")
	_ = v.BindEnv("resource_group", "FLEXPG_MCP_RESOURCE_GROUP", "AZURE_RESOURCE_GROUP")
}

func Load() (Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix("FLEXPG_MCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	// Flags override (parse early to locate config file)
	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	var cfgPathFlag string
	fs.StringVarP(&cfgPathFlag, "config", "c", "", "Config file path (yaml|json|toml)")
	fs.String("host", "", "Server hostname (fully qualified flexible-server name)")
	fs.Int("port", 5432, "Server port")
	fs.String("user", "", "Database user")
	fs.String("password", "", "Database password (ignored with --use-aad)")
	fs.String("database", "postgres", "Default database")
	fs.Bool("use-aad", false, "Authenticate with Microsoft EntraID instead of a password")
	fs.String("subscription-id", "", "Azure subscription ID (EntraID mode)")
	fs.String("resource-group", "", "Azure resource group (EntraID mode)")
	fs.Int("connect-timeout-seconds", 5, "Connection timeout in seconds")
	fs.Int("statement-timeout-ms", 30000, "Statement timeout in milliseconds")
	fs.String("app-name", "azure-postgresql-mcp", "Application name")
	fs.Bool("read-only", false, "Reject write tools")
	fs.Int("max-rows", 200, "Maximum rows returned by tools")
	fs.Int("max-text-bytes", 200000, "Maximum text bytes returned by tools")
	fs.Bool("enable-caching", true, "Enable caching")
	fs.Int("cache-ttl-seconds", 5, "Cache TTL in seconds")
	fs.String("transport", string(TransportStdio), "Transport: stdio|sse|streamable")
	fs.String("http-addr", "127.0.0.1", "HTTP listen address (sse/streamable)")
	fs.Int("http-port", 8080, "HTTP listen port (sse/streamable)")
	fs.String("http-path", "/mcp", "HTTP endpoint path (sse/streamable)")
	fs.String("log-level", "info", "Log level")

	_ = fs.Parse(os.Args[1:])

	// Config file resolution
	cfgPath := cfgPathFlag
	if cfgPath == "" {
		cfgPath = os.Getenv("FLEXPG_MCP_CONFIG")
	}
	if cfgPath != "" {
		if err := readConfigFile(v, cfgPath); err != nil {
			return Config{}, err
		}
	} else {
		_ = readDefaultConfig(v) // best-effort
	}

	// Flags override config
	_ = v.BindPFlags(fs)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if cfg.Host == "" {
		return errors.New("config: host is required (set PGHOST)")
	}
	if cfg.User == "" {
		return errors.New("config: user is required (set PGUSER)")
	}
	if cfg.UseAAD {
		if cfg.SubscriptionID == "" {
			return errors.New("config: subscription_id is required in EntraID mode (set AZURE_SUBSCRIPTION_ID)")
		}
		if cfg.ResourceGroup == "" {
			return errors.New("config: resource_group is required in EntraID mode (set AZURE_RESOURCE_GROUP)")
		}
	} else if cfg.Password == "" {
		return errors.New("config: password is required (set PGPASSWORD or use --use-aad)")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", cfg.Port)
	}
	if cfg.Database == "" {
		return errors.New("config: database must not be empty")
	}
	if cfg.ConnectTimeoutSeconds <= 0 {
		return errors.New("config: connect_timeout_seconds must be > 0")
	}
	if cfg.StatementTimeoutMs <= 0 {
		return errors.New("config: statement_timeout_ms must be > 0")
	}
	if cfg.MaxRows <= 0 {
		return errors.New("config: max_rows must be > 0")
	}
	if cfg.MaxTextBytes <= 0 {
		return errors.New("config: max_text_bytes must be > 0")
	}
	switch cfg.Transport {
	case TransportStdio, TransportSSE, TransportStreamable:
	default:
		return fmt.Errorf("config: transport must be one of [%s,%s,%s]", TransportStdio, TransportSSE, TransportStreamable)
	}
	return nil
}

func readConfigFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

func readDefaultConfig(v *viper.Viper) error {
	paths := defaultConfigCandidates()
	exts := []string{"yaml", "yml", "json", "toml"}
	for _, base := range paths {
		for _, ext := range exts {
			candidate := base + "." + ext
			if _, err := os.Stat(candidate); err == nil {
				v.SetConfigFile(candidate)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read default config %s: %w", candidate, err)
				}
				return nil
			}
		}
	}
	return nil
}

func defaultConfigCandidates() []string {
	var out []string
	cwd, _ := os.Getwd()
	if cwd != "" {
		out = append(out,
			filepath.Join(cwd, "azure-postgresql-mcp"),
			filepath.Join(cwd, "config", "azure-postgresql-mcp"),
		)
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			xdg = filepath.Join(home, ".config")
		}
	}
	if xdg != "" {
		out = append(out, filepath.Join(xdg, "azure-postgresql-mcp", "config"))
	}
	return out
}
