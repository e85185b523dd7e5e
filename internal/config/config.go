package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPath задает переменную окружения с путем к YAML-конфигу.
const EnvPath = "TELEGRAM_BRIDGE_CONFIG"

// Config описывает параметры моста.
type Config struct {
	Telegram struct {
		TokenEnv            string `yaml:"token_env"`
		APIEndpoint         string `yaml:"api_endpoint"`
		RequestTimeoutMS    int    `yaml:"request_timeout_ms"`
		DefaultPollTimeoutS int    `yaml:"default_poll_timeout_s"`
		PollLimit           int    `yaml:"poll_limit"`
	} `yaml:"telegram"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	Audit struct {
		Enabled    bool   `yaml:"enabled"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"audit"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() Config {
	var cfg Config
	cfg.Telegram.TokenEnv = "TELEGRAM_BOT_TOKEN"
	cfg.Telegram.APIEndpoint = "https://api.telegram.org/bot%s/%s"
	cfg.Telegram.RequestTimeoutMS = 10000
	cfg.Telegram.DefaultPollTimeoutS = 0
	cfg.Telegram.PollLimit = 100
	cfg.Log.Level = "info"
	return cfg
}

// Load читает конфиг из файла YAML, поверх значений по умолчанию.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- путь к конфигу задается оператором.
	if err != nil {
		return cfg, err
	}
	if len(data) == 0 {
		return cfg, errors.New("config file is empty")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate проверяет согласованность значений.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Telegram.TokenEnv) == "" {
		return errors.New("telegram.token_env must not be empty")
	}
	if strings.Count(c.Telegram.APIEndpoint, "%s") != 2 {
		return fmt.Errorf("telegram.api_endpoint must contain two %%s placeholders: %q", c.Telegram.APIEndpoint)
	}
	if c.Telegram.RequestTimeoutMS <= 0 {
		return errors.New("telegram.request_timeout_ms must be positive")
	}
	if c.Telegram.DefaultPollTimeoutS < 0 {
		return errors.New("telegram.default_poll_timeout_s must not be negative")
	}
	if c.Telegram.PollLimit < 1 || c.Telegram.PollLimit > 100 {
		return errors.New("telegram.poll_limit must be between 1 and 100")
	}
	if c.Audit.Enabled && strings.TrimSpace(c.Audit.SQLitePath) == "" {
		return errors.New("audit.sqlite_path is required when audit is enabled")
	}
	return nil
}

// LoadEnvFile подгружает dotenv-файл. Отсутствующий файл не ошибка,
// уже заданные переменные окружения не перезаписываются.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ResolvePath выбирает путь к конфигу: флаг, затем TELEGRAM_BRIDGE_CONFIG.
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(EnvPath)
}
