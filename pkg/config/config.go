// pkg/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config - главная структура конфигурации
type Config struct {
	App      AppConfig      `koanf:"app"`
	Log      LogConfig      `koanf:"log"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Instance InstanceConfig `koanf:"instance"`
	Solver   SolverConfig   `koanf:"solver"`
	Output   OutputConfig   `koanf:"output"`
}

// AppConfig - общие настройки приложения
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // development, staging, production
	Debug       bool   `koanf:"debug"`
}

// LogConfig - настройки логирования
type LogConfig struct {
	Level      string `koanf:"level"`       // debug, info, warn, error
	Format     string `koanf:"format"`      // json, text
	Output     string `koanf:"output"`      // stdout, stderr, file
	FilePath   string `koanf:"file_path"`   // путь к файлу логов
	MaxSize    int    `koanf:"max_size"`    // MB
	MaxBackups int    `koanf:"max_backups"` // количество бэкапов
	MaxAge     int    `koanf:"max_age"`     // дней
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig - настройки Prometheus метрик
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Port      int    `koanf:"port"`
	Path      string `koanf:"path"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// InstanceConfig - настройки инстанса задачи
type InstanceConfig struct {
	Path string `koanf:"path"`
	// FractionNodes задаёт долю узлов в цикле: K = ceil(N * fraction)
	FractionNodes float64 `koanf:"fraction_nodes"`
}

// SolverConfig - настройки алгоритма
type SolverConfig struct {
	Algorithm            string `koanf:"algorithm"`
	CandidateListSize    int    `koanf:"candidate_list_size"`
	NumIterations        int    `koanf:"num_iterations"`
	MaxTimeMS            int64  `koanf:"max_time_ms"` // бюджет времени в миллисекундах
	PerturbationStrength int    `koanf:"perturbation_strength"`
	Accept               string `koanf:"accept"` // always, better
	InnerLocalSearch     bool   `koanf:"inner_local_search"`
	Seed                 int64  `koanf:"seed"` // 0 = из системных часов
	Repetitions          int    `koanf:"repetitions"`
}

// MaxTime возвращает бюджет времени как Duration
func (s SolverConfig) MaxTime() time.Duration {
	return time.Duration(s.MaxTimeMS) * time.Millisecond
}

// OutputConfig - настройки вывода результатов
type OutputConfig struct {
	Dir     string   `koanf:"dir"`
	Formats []string `koanf:"formats"` // text, csv, xlsx, pdf
}

// Algorithms перечисляет распознаваемые идентификаторы алгоритмов
var Algorithms = []string{
	"random_search",
	"nearest_neighbor",
	"greedy_cycle",
	"regret2",
	"regret2_weighted",
	"ls_steepest_2n_random",
	"ls_steepest_2e_random",
	"ls_greedy_2n_random",
	"ls_greedy_2e_random",
	"ls_steepest_2n_greedy_start",
	"ls_steepest_2e_greedy_start",
	"ls_greedy_2n_greedy_start",
	"ls_greedy_2e_greedy_start",
	"candidate_ls",
	"movecache_ls",
	"msls",
	"ils",
	"lsns",
	"lsns_no_inner",
}

// KnownAlgorithm проверяет, известен ли идентификатор алгоритма
func KnownAlgorithm(id string) bool {
	for _, a := range Algorithms {
		if a == id {
			return true
		}
	}
	return false
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	var errs []string

	if c.Instance.Path == "" {
		errs = append(errs, "instance.path is required")
	}
	if c.Instance.FractionNodes <= 0 || c.Instance.FractionNodes > 1 {
		errs = append(errs, fmt.Sprintf("instance.fraction_nodes must be in (0, 1], got %v", c.Instance.FractionNodes))
	}
	if !KnownAlgorithm(c.Solver.Algorithm) {
		errs = append(errs, fmt.Sprintf("solver.algorithm %q is not recognized", c.Solver.Algorithm))
	}
	if c.Solver.CandidateListSize < 0 {
		errs = append(errs, fmt.Sprintf("solver.candidate_list_size must be >= 0, got %d", c.Solver.CandidateListSize))
	}
	if c.Solver.NumIterations <= 0 {
		errs = append(errs, fmt.Sprintf("solver.num_iterations must be > 0, got %d", c.Solver.NumIterations))
	}
	if c.Solver.MaxTimeMS <= 0 {
		errs = append(errs, fmt.Sprintf("solver.max_time_ms must be > 0, got %d", c.Solver.MaxTimeMS))
	}
	if c.Solver.PerturbationStrength < 1 {
		errs = append(errs, fmt.Sprintf("solver.perturbation_strength must be >= 1, got %d", c.Solver.PerturbationStrength))
	}
	if c.Solver.Accept != "always" && c.Solver.Accept != "better" {
		errs = append(errs, fmt.Sprintf("solver.accept must be \"always\" or \"better\", got %q", c.Solver.Accept))
	}
	if c.Solver.Repetitions <= 0 {
		errs = append(errs, fmt.Sprintf("solver.repetitions must be > 0, got %d", c.Solver.Repetitions))
	}
	for _, f := range c.Output.Formats {
		switch f {
		case "text", "csv", "xlsx", "pdf":
		default:
			errs = append(errs, fmt.Sprintf("output.formats contains unknown format %q", f))
		}
	}
	if c.Metrics.Enabled && (c.Metrics.Port < 1 || c.Metrics.Port > 65535) {
		errs = append(errs, fmt.Sprintf("metrics.port must be a valid port, got %d", c.Metrics.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
