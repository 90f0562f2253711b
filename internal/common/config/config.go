package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/kingko/bd2redeem-bot/pkg/log"
)

const (
	EnvProd = "prod"
	EnvTest = "test"
)

type Config struct {
	Env string `yaml:"env" env:"ENV" env-default:"prod" env-upd:""`

	Log Log `yaml:"log"`

	Postgres Postgres `yaml:"postgres"`

	Bot Bot `yaml:"bot"`

	Redeem Redeem `yaml:"redeem"`
}

type Log struct {
	Level    string `yaml:"level" env:"LOG_LEVEL" env-default:"info" env-upd:""`
	Encoding string `yaml:"encoding" env:"LOG_ENCODING" env-default:"console" env-upd:""`
}

type Postgres struct {
	Database string `yaml:"database" env:"POSTGRES_DATABASE" env-upd:""`
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-upd:""`
	Schema   string `yaml:"schema" env:"POSTGRES_SCHEMA" env-default:"bd2redeem" env-upd:""`
	Username string `yaml:"username" env:"POSTGRES_USER" env-upd:""`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-upd:""`
	Port     int64  `yaml:"port" env:"POSTGRES_PORT" env-default:"5432" env-upd:""`
}

type Bot struct {
	APIKey  string        `yaml:"api_key" env:"BOT_API_KEY" env-upd:""`
	Timeout time.Duration `yaml:"timeout" env:"BOT_TIMEOUT" env-default:"10s" env-upd:""`
}

type Redeem struct {
	APIURL string `yaml:"api_url" env:"REDEEM_API_URL" env-default:"https://loj2urwaua.execute-api.ap-northeast-1.amazonaws.com/prod/coupon" env-upd:""`
	AppID  string `yaml:"app_id" env:"REDEEM_APP_ID" env-default:"bd2-live" env-upd:""`

	Aliases []string `yaml:"aliases" env:"REDEEM_ALIASES" env-default:"/redeem,/code" env-upd:""`

	// AccountIDPattern optionally tightens account id validation beyond
	// the built-in rules (min length 2, no whitespace). Empty means no
	// extra restriction.
	AccountIDPattern string `yaml:"account_id_pattern" env:"REDEEM_ACCOUNT_ID_PATTERN" env-upd:""`
}

func (c *Config) GetPostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Postgres.Username, c.Postgres.Password, c.Postgres.Host, c.Postgres.Port, c.Postgres.Database)
}

func GetConfig(configPath string) *Config {
	if configPath == "" {
		log.Fatal("config path is required")
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatal(err.Error())
	}

	if err := cleanenv.UpdateEnv(&cfg); err != nil {
		log.Fatal(err.Error())
	}

	return &cfg
}
