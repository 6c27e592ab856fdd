package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "STOCKLIST"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Environment variable names, kept as constants so tests can set them.
const (
	EnvAppEnv   = "STOCKLIST_APP_ENV"
	EnvPort     = "STOCKLIST_APP_PORT"
	EnvDBDriver = "STOCKLIST_DB_DRIVER"
	EnvDBPath   = "STOCKLIST_DB_PATH"
	EnvDBDSN    = "STOCKLIST_DB_DSN"
)

type Config struct {
	App AppConfig
	DB  DBConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOCKLIST_APP_ENV" required:"true"`
	Port         string `envconfig:"STOCKLIST_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOCKLIST_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKLIST_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"STOCKLIST_AUTO_MIGRATE" default:"true"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	// Driver selects the storage engine. SQLite is the shipping default;
	// postgres exists for hosted deployments and CI parity.
	Driver string `envconfig:"STOCKLIST_DB_DRIVER" default:"sqlite"`
	// Path is the sqlite database file. ":memory:" is accepted for tests.
	Path string `envconfig:"STOCKLIST_DB_PATH" default:"stocklist.db"`
	// DSN is only consulted when Driver is postgres.
	DSN string `envconfig:"STOCKLIST_DB_DSN"`

	MaxOpenConns    int           `envconfig:"STOCKLIST_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"STOCKLIST_DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKLIST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOCKLIST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db *DBConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(db.Driver)) {
	case DriverSQLite, "":
		db.Driver = DriverSQLite
		if db.Path == "" {
			return fmt.Errorf("%s is required when using the sqlite driver", EnvDBPath)
		}
	case DriverPostgres:
		if db.DSN == "" {
			return fmt.Errorf("%s is required when using the postgres driver", EnvDBDSN)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", db.Driver)
	}
	return nil
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}
