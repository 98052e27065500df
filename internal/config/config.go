package config

import (
	"fmt"
	"strings"

	viper "github.com/spf13/viper"
)

type Config struct {
	ServiceName     string `mapstructure:"SERVICE_NAME"`
	DbName          string `mapstructure:"POSTGRES_DB"`
	DbHost          string `mapstructure:"POSTGRES_HOST"`
	DbPort          string `mapstructure:"POSTGRES_PORT"`
	DbUser          string `mapstructure:"POSTGRES_USER"`
	DbPas           string `mapstructure:"POSTGRES_PASSWORD"`
	DbMaxOpenConns  int    `mapstructure:"POSTGRES_MAX_OPEN_CONNS"`
	TxMaxRetries    int    `mapstructure:"TX_MAX_RETRIES"`
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int    `mapstructure:"REDIS_DB"`
	KafkaBrokers    string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic string `mapstructure:"KAFKA_ORDER_TOPIC"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	LogPretty       bool   `mapstructure:"LOG_PRETTY"`
}

var defaults = map[string]any{
	"SERVICE_NAME":            "orderline",
	"POSTGRES_DB":             "orderline",
	"POSTGRES_HOST":           "localhost",
	"POSTGRES_PORT":           "5432",
	"POSTGRES_USER":           "postgres",
	"POSTGRES_PASSWORD":       "",
	"POSTGRES_MAX_OPEN_CONNS": 20,
	"TX_MAX_RETRIES":          3,
	"REDIS_ADDR":              "",
	"REDIS_PASSWORD":          "",
	"REDIS_DB":                0,
	"KAFKA_BROKERS":           "",
	"KAFKA_ORDER_TOPIC":       "order-items",
	"LOG_LEVEL":               "info",
	"LOG_PRETTY":              false,
}

// LoadConfig 讀取 .env 設定檔，環境變數優先
// path 為空時只讀環境變數與預設值
// 單純回傳錯誤  由外部決定要不要Fatal
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cf := &Config{}
	if err := v.Unmarshal(cf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cf, nil
}

// Brokers 將逗號分隔的 KAFKA_BROKERS 轉為列表
func (c *Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) KafkaEnabled() bool {
	return len(c.Brokers()) > 0
}
