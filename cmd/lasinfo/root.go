package main

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-las/internal/config"
	"github.com/robert-malhotra/go-las/internal/logger"
	"github.com/robert-malhotra/go-las/las"
)

var version = "0.1.0"

// app holds state shared by all subcommands.
type app struct {
	out io.Writer

	configPath string
	logLevel   string
	chunkSize  int

	cfg      config.Config
	log      *zap.Logger
	registry *prometheus.Registry
	metrics  *las.Metrics
}

func newRootCommand(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "lasinfo",
		Short:         "Inspect LAS and LAZ point cloud files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.finish()
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().IntVar(&a.chunkSize, "chunk-size", 0, "Points decoded per chunk")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "lasinfo v%s\n", version)
		},
	})
	root.AddCommand(newHeaderCommand(a))
	root.AddCommand(newDumpCommand(a))
	root.AddCommand(newStatsCommand(a))
	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger and metrics registry.
func (a *app) setup(cmd *cobra.Command) error {
	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		a.cfg.Log.Level = a.logLevel
	}
	if flags.Changed("chunk-size") {
		a.cfg.Reader.ChunkSize = a.chunkSize
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Level: a.cfg.Log.Level, Encoding: a.cfg.Log.Encoding})
	if err != nil {
		return err
	}
	a.log = log

	a.registry = prometheus.NewRegistry()
	a.metrics, err = las.NewMetrics(a.registry)
	if err != nil {
		return err
	}
	return nil
}

// finish writes the metrics file, if configured, and flushes the logger.
func (a *app) finish() error {
	if path := a.cfg.Metrics.Path; path != "" {
		if err := prometheus.WriteToTextfile(path, a.registry); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		a.log.Debug("wrote metrics", zap.String("path", path))
	}
	_ = a.log.Sync()
	return nil
}

func (a *app) open(path string) (*las.Reader, error) {
	return las.Open(path,
		las.WithChunkSize(a.cfg.Reader.ChunkSize),
		las.WithLogger(a.log.With(zap.String("file", path))),
		las.WithMetrics(a.metrics),
	)
}
