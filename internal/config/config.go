// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек всех сервисов.
type Config struct {
	Env             string `yaml:"env" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	RedisConnection `yaml:"redis_connection"`
	RabbitMQ        `yaml:"rabbitmq"`
	Discord         `yaml:"discord"`
	Sheets          `yaml:"sheets"`
	Licensing       `yaml:"licensing"`
	Reminders       `yaml:"reminders"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// RabbitMQ структура для настройки подключения к RabbitMQ
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"10"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"3s"`
}

// Discord структура для подключения бота и проверки подписи вебхука
type Discord struct {
	BotToken      string `yaml:"bot_token" env:"BOT_TOKEN"`
	ApplicationID string `yaml:"application_id" env:"APPLICATION_ID"`
	GuildID       string `yaml:"guild_id" env:"GUILD_ID"`
	PublicKey     string `yaml:"public_key" env:"PUBLIC_KEY"`
}

// Sheets структура для доступа к таблице с записями лицензий
type Sheets struct {
	SpreadsheetID   string `yaml:"spreadsheet_id" env:"SHEET_ID"`
	CredentialsJSON string `yaml:"credentials_json" env:"GOOGLE_CREDS"`
}

// Licensing политика выдачи идентификаторов клиентов.
// ClientIDPolicy принимает значения "sequential" или "random".
type Licensing struct {
	ClientIDPolicy string `yaml:"client_id_policy" env-default:"sequential"`
	ClientIDPrefix string `yaml:"client_id_prefix" env-default:"CLT-"`
}

// Reminders время суток для ежедневного обхода записей
type Reminders struct {
	SweepHour   int `yaml:"sweep_hour" env-default:"10"`
	SweepMinute int `yaml:"sweep_minute" env-default:"0"`
}

// MustLoad функция для загрузки конфига, путь к файлу берется из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
