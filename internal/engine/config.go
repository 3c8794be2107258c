package engine

import (
	"errors"
	"fmt"
	"os"
	"time"

	"dungeon-sim/internal/systems"

	"gopkg.in/yaml.v3"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - зерно для случайных ходов зомби и генерации уровня
	Seed int64 `yaml:"seed"`
	// PathSearchLimit - дистанция, после которой поиск пути сдаётся
	PathSearchLimit int `yaml:"path_search_limit"`
	// Ticks - сколько тиков крутит демо-раннер
	Ticks int `yaml:"ticks"`
	// MetricsAddr - адрес для /metrics, пустая строка отключает сервер
	MetricsAddr string `yaml:"metrics_addr"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:            time.Now().UnixNano(),
		PathSearchLimit: systems.DefaultSearchLimit,
		Ticks:           50,
	}
}

// LoadConfig накладывает YAML-файл на значения по умолчанию.
// yaml.v3 трогает только ключи, которые есть в файле: отсутствующие сохраняют умолчания,
// а явный ноль доходит до Validate.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return NewConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate проверяет значения, которые нельзя молча исправить
func (c Config) Validate() error {
	if c.PathSearchLimit <= 0 {
		return errors.New("path_search_limit must be positive")
	}
	if c.Ticks < 0 {
		return errors.New("ticks must not be negative")
	}
	return nil
}
