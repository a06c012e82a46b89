package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPConfig struct {
	Address    string        `yaml:"address" env:"TASKS_ADDRESS" env-default:":8080"`
	Timeout    time.Duration `yaml:"timeout" env:"TASKS_TIMEOUT" env-default:"5s"`
	CORSOrigin string        `yaml:"cors_origin" env:"CORS_ORIGIN" env-default:"*"`
}

type GRPCConfig struct {
	Address string `yaml:"address" env:"TASKS_GRPC_ADDRESS" env-default:":9090"`
}

type MongoConfig struct {
	ConnStr  string `yaml:"conn_str" env:"MONGO_CONN_STR" env-required:"true"`
	UseAuth  string `yaml:"use_auth" env:"USE_DB_AUTH"`
	Username string `yaml:"username" env:"MONGO_USERNAME"`
	Password string `yaml:"password" env:"MONGO_PASSWORD"`

	Database       string        `yaml:"database" env:"MONGO_DATABASE" env-default:"todo"`
	Collection     string        `yaml:"collection" env:"MONGO_COLLECTION" env-default:"tasks"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
	Required       bool          `yaml:"required" env:"MONGO_REQUIRED" env-default:"false"`
}

// AuthEnabled reports whether credentials must be attached. Only the exact
// string "true" enables them.
func (c MongoConfig) AuthEnabled() bool {
	return c.UseAuth == "true"
}

type Config struct {
	LogLevel string      `yaml:"log_level" env:"LOG_LEVEL" env-default:"DEBUG"`
	HTTP     HTTPConfig  `yaml:"tasks_server"`
	GRPC     GRPCConfig  `yaml:"tasks_grpc"`
	Mongo    MongoConfig `yaml:"mongo"`
}

// Load reads configPath and falls back to the environment when the file is
// missing or configPath is empty.
func Load(configPath string) (Config, error) {
	var cfg Config

	if configPath == "" {
		err := cleanenv.ReadEnv(&cfg)
		return cfg, err
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			cfg = Config{}
			err := cleanenv.ReadEnv(&cfg)
			return cfg, err
		}
		return cfg, err
	}

	return cfg, nil
}

func MustLoad(configPath string) Config {
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config %q: %s", configPath, err)
	}
	return cfg
}
