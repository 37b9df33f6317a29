package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sonobay/sonobay-indexer/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
// An empty URL disables change notifications.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// EthereumConfig holds chain connection and contract configuration
type EthereumConfig struct {
	WebSocketURL          string       `mapstructure:"websocket_url"`
	ChainID               domain.Chain `mapstructure:"chain_id"`
	MidiAddress           string       `mapstructure:"midi_address"`
	MarketAddress         string       `mapstructure:"market_address"`
	StartBlock            uint64       `mapstructure:"start_block"`
	MintHistoryStartBlock uint64       `mapstructure:"mint_history_start_block"`
	MaxBlockRange         uint64       `mapstructure:"max_block_range"`
}

// MetadataConfig holds metadata fetching configuration
type MetadataConfig struct {
	IPFSGateways    []string      `mapstructure:"ipfs_gateways"`
	ArweaveGateways []string      `mapstructure:"arweave_gateways"`
	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds

	// AllowedOrigins restricts CORS; empty allows every origin
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// WorkerConfig holds event worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// QueueConfig holds retry queue configuration
type QueueConfig struct {
	DrainInterval  time.Duration `mapstructure:"drain_interval"`
	AttemptCeiling int           `mapstructure:"attempt_ceiling"`
}

// ReconcileConfig holds reconciliation sweep configuration
type ReconcileConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	// AbortOnMissingOperator stops the sweep at the first id without a mint operator
	AbortOnMissingOperator bool `mapstructure:"abort_on_missing_operator"`
	RunOnStart             bool `mapstructure:"run_on_start"`
}

// IndexerConfig holds configuration for the indexer
type IndexerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Ethereum   EthereumConfig  `mapstructure:"ethereum"`
	Metadata   MetadataConfig  `mapstructure:"metadata"`
	Worker     WorkerConfig    `mapstructure:"worker"`
	Queue      QueueConfig     `mapstructure:"queue"`
	Reconcile  ReconcileConfig `mapstructure:"reconcile"`
	NATS       NATSConfig      `mapstructure:"nats"`
}

// LoadIndexerConfig loads configuration for the indexer
func LoadIndexerConfig(configFile string, envPath string) (*IndexerConfig, error) {
	v := configureViper("indexer", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("ethereum.chain_id", string(domain.ChainEthereumMainnet))
	v.SetDefault("ethereum.start_block", 0)
	v.SetDefault("ethereum.mint_history_start_block", domain.DEFAULT_MINT_HISTORY_START_BLOCK)
	v.SetDefault("ethereum.max_block_range", 1_000_000)
	v.SetDefault("metadata.ipfs_gateways", []string{domain.DEFAULT_IPFS_GATEWAY})
	v.SetDefault("metadata.arweave_gateways", []string{domain.DEFAULT_ARWEAVE_GATEWAY})
	v.SetDefault("metadata.http_timeout", "30s")
	v.SetDefault("worker.pool_size", 20)
	v.SetDefault("worker.queue_size", 2048)
	v.SetDefault("queue.drain_interval", "5m")
	v.SetDefault("queue.attempt_ceiling", domain.DEFAULT_QUEUE_ATTEMPT_CEILING)
	v.SetDefault("reconcile.interval", "24h")
	v.SetDefault("reconcile.abort_on_missing_operator", false)
	v.SetDefault("reconcile.run_on_start", false)
	v.SetDefault("nats.stream_name", "SONOBAY_EVENTS")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "sonobay-indexer")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use environment variables
	}

	var cfg IndexerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the required fields of the indexer configuration
func (c *IndexerConfig) Validate() error {
	if c.Ethereum.WebSocketURL == "" {
		return errors.New("ethereum.websocket_url is required")
	}
	if c.Ethereum.MidiAddress == "" {
		return errors.New("ethereum.midi_address is required")
	}
	if c.Ethereum.MarketAddress == "" {
		return errors.New("ethereum.market_address is required")
	}
	if !domain.IsValidChain(c.Ethereum.ChainID) {
		return fmt.Errorf("unsupported ethereum.chain_id: %s", c.Ethereum.ChainID)
	}
	if c.Queue.DrainInterval <= 0 {
		return errors.New("queue.drain_interval must be positive")
	}
	if c.Queue.AttemptCeiling <= 0 {
		return errors.New("queue.attempt_ceiling must be positive")
	}
	if c.Reconcile.Interval <= 0 {
		return errors.New("reconcile.interval must be positive")
	}
	if len(c.Metadata.IPFSGateways) == 0 {
		return errors.New("metadata.ipfs_gateways must not be empty")
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("SONOBAY_INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Ethereum
		"ethereum.websocket_url",
		"ethereum.chain_id",
		"ethereum.midi_address",
		"ethereum.market_address",
		"ethereum.start_block",
		"ethereum.mint_history_start_block",
		"ethereum.max_block_range",
		// Metadata
		"metadata.ipfs_gateways",
		"metadata.arweave_gateways",
		"metadata.http_timeout",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
		// Queue
		"queue.drain_interval",
		"queue.attempt_ceiling",
		// Reconcile
		"reconcile.interval",
		"reconcile.abort_on_missing_operator",
		"reconcile.run_on_start",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile)) // later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Addr returns the listen address of the HTTP server
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
