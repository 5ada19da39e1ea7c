// Package main is the entry point of the selective-cycle solver
// workbench.
//
// The solver reads a benchmark instance (semicolon-delimited x;y;cost
// lines), runs the configured constructive heuristic, local-search
// engine or metaheuristic driver for the configured number of
// repetitions, and writes the aggregated results to the output
// directory.
//
// # Configuration
//
// Configuration is loaded with the following priority (highest to
// lowest):
//  1. Environment variables (prefix: SOLVER_)
//  2. Config files (config.yaml, config/config.yaml, /etc/selcycle/config.yaml)
//  3. Default values
//
// Key options (environment variable format):
//
//	# Instance
//	SOLVER_INSTANCE_PATH            - instance file to solve (required)
//	SOLVER_INSTANCE_FRACTION_NODES  - fraction of nodes in the cycle (default: 0.5)
//
//	# Solver
//	SOLVER_SOLVER_ALGORITHM             - algorithm id (default: ls_steepest_2e_random)
//	SOLVER_SOLVER_SEED                  - PRNG seed, 0 = derive from clock
//	SOLVER_SOLVER_REPETITIONS           - runs per experiment (default: 20)
//	SOLVER_SOLVER_NUM_ITERATIONS        - restarts for msls (default: 200)
//	SOLVER_SOLVER_MAX_TIME_MS           - time budget for ils/lsns in milliseconds (default: 20000)
//	SOLVER_SOLVER_PERTURBATION_STRENGTH - 2-opt reversals per ils perturbation
//	SOLVER_SOLVER_CANDIDATE_LIST_SIZE   - candidate list size for candidate_ls
//
//	# Logging
//	SOLVER_LOG_LEVEL   - debug, info, warn, error (default: info)
//	SOLVER_LOG_FORMAT  - json, text (default: json)
//	SOLVER_LOG_OUTPUT  - stdout, stderr, file (default: stdout)
//
//	# Metrics (Prometheus, opt-in)
//	SOLVER_METRICS_ENABLED - enable the /metrics HTTP listener (default: false)
//	SOLVER_METRICS_PORT    - listener port (default: 9090)
//
// # Exit Codes
//
//	0 - success
//	1 - configuration error
//	2 - load failure (instance missing or malformed)
//	3 - solve failure
//	4 - write failure
package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"selcycle/internal/experiment"
	"selcycle/internal/instance"
	"selcycle/internal/report"
	"selcycle/pkg/config"
	"selcycle/pkg/logger"
	"selcycle/pkg/metrics"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	if cfg.Metrics.Enabled {
		m := metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
		m.ServiceInfo.WithLabelValues(cfg.App.Version, cfg.App.Name).Set(1)
		prometheus.MustRegister(metrics.NewRuntimeCollector(cfg.Metrics.Namespace, cfg.Metrics.Subsystem))
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			if err := metrics.Serve(addr, cfg.Metrics.Path); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	inst, err := instance.Load(cfg.Instance.Path)
	if err != nil {
		logger.Error("load failed", "error", err)
		fmt.Fprintf(os.Stderr, "load: %v\n", err)
		return 2
	}
	logger.Info("instance loaded",
		"name", inst.Name,
		"nodes", inst.NumNodes(),
		"cycle_size", inst.CycleSize(cfg.Instance.FractionNodes),
	)

	res, err := experiment.Run(cfg, inst)
	if err != nil {
		logger.Error("solve failed", "error", err)
		fmt.Fprintf(os.Stderr, "solve: %v\n", err)
		return 3
	}

	if err := report.WriteAll(res, cfg.Output.Dir, cfg.Output.Formats); err != nil {
		logger.Error("write failed", "error", err)
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		return 4
	}

	logger.Info("done",
		"run_id", res.RunID,
		"best", res.Summary.Best,
		"output_dir", cfg.Output.Dir,
	)
	return 0
}
