package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	ServerAddress string
	PostgresConn  string
}

// Load читает config.yaml, если он есть, и позволяет переопределить
// значения переменными окружения SERVER_ADDRESS и POSTGRES_CONN.
func Load() Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("server_address", "0.0.0.0:8080")
	v.BindEnv("server_address", "SERVER_ADDRESS")
	v.BindEnv("postgres_conn", "POSTGRES_CONN")

	if err := v.ReadInConfig(); err != nil {
		log.Println("no config.yaml found, using defaults and env vars")
	} else {
		log.Println("loaded config.yaml")
	}

	return Config{
		ServerAddress: v.GetString("server_address"),
		PostgresConn:  v.GetString("postgres_conn"),
	}
}
