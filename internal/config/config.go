// Package config содержит логику чтения конфигурации сервиса слоутревел.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации сервиса слоутревел.
type Config struct {
	// DatabaseDSN — путь к файлу встроенной базы SQLite. Пустое
	// значение переключает хранилище на носитель в памяти.
	DatabaseDSN string `env:"DATABASE_DSN"`
	// LatencyMS — имитируемая задержка «сети» в миллисекундах.
	LatencyMS int `env:"LATENCY_MS"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных
// окружения. Значения из окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envDatabaseDSN := cfg.DatabaseDSN
	envLatencyMS := cfg.LatencyMS

	flag.StringVar(&cfg.DatabaseDSN, "d", "slowtravel.db", "SQLite database file (empty value keeps everything in memory)")
	flag.IntVar(&cfg.LatencyMS, "l", 120, "simulated backend latency in milliseconds")

	flag.Parse()

	if envDatabaseDSN != "" {
		cfg.DatabaseDSN = envDatabaseDSN
	}
	if envLatencyMS != 0 {
		cfg.LatencyMS = envLatencyMS
	}

	if cfg.LatencyMS < 0 {
		cfg.LatencyMS = 0
	}

	return cfg, nil
}
