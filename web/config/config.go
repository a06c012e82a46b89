package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPConfig struct {
	Address string        `yaml:"address" env:"WEB_ADDRESS" env-default:":3000"`
	Timeout time.Duration `yaml:"timeout" env:"WEB_TIMEOUT" env-default:"5s"`
}

type Config struct {
	LogLevel string     `yaml:"log_level" env:"LOG_LEVEL" env-default:"DEBUG"`
	HTTP     HTTPConfig `yaml:"web_server"`
	TasksURL string     `yaml:"tasks_url" env:"TASKS_URL" env-default:"http://tasks:8080"`

	// TasksGRPCAddress switches the tasks client to gRPC when set.
	TasksGRPCAddress string `yaml:"tasks_grpc_address" env:"TASKS_GRPC_ADDRESS"`
}

func MustLoad(configPath string) Config {
	var cfg Config

	// no file: env only
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read env: %s", err)
		}
		return cfg
	}

	// file first, env when the file is absent
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			cfg = Config{}
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				log.Fatalf("cannot read env: %s", err)
			}
			return cfg
		}
		log.Fatalf("cannot read config %q: %s", configPath, err)
	}

	return cfg
}
