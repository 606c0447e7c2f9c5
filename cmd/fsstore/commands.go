package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dannyswat/fsstore/internal/config"
	"github.com/dannyswat/fsstore/internal/logging"
	"github.com/dannyswat/fsstore/store"
	"github.com/dannyswat/fsstore/syncer"
)

type app struct {
	configPath  string
	root        string
	logLevel    string
	metricsFile string

	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	registry *prometheus.Registry
}

// execute runs cmd and then writes metrics, whether or not the command
// succeeded.
func execute(ctx context.Context, cmd *cobra.Command, a *app) error {
	err := cmd.ExecuteContext(ctx)
	return errors.Join(err, a.writeMetrics())
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:   "fsstore",
		Short: "Directory-scoped JSON record store",
		Long: `Manage JSON records stored one file per record, one directory per
namespace. Settings come from --config (YAML) and FSSTORE_* environment
variables; flags override both.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd) },
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.root, "root", "", "Store root directory (overrides config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "Write Prometheus text metrics to this file on exit (overrides config)")

	root.AddCommand(
		&cobra.Command{
			Use:   "get <namespace> <id>",
			Short: "Print one record",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := a.store.GetOne(args[1], args[0]).Await(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rec)
			},
		},
		&cobra.Command{
			Use:   "list <namespace>",
			Short: "Print every readable record in a namespace",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				recs, err := a.store.GetAll(args[0]).Await(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), recs)
			},
		},
		&cobra.Command{
			Use:   "put <namespace> [json]",
			Short: "Write a record read from the argument or stdin",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := readRecord(cmd, args[1:])
				if err != nil {
					return err
				}
				saved, err := a.store.Put(rec, args[0]).Await(cmd.Context())
				if err != nil {
					return err
				}
				a.logger.Info("saved", "namespace", args[0], "id", saved.ID())
				return printJSON(cmd.OutOrStdout(), saved)
			},
		},
		&cobra.Command{
			Use:   "delete <namespace> <id>",
			Short: "Remove a record",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.store.Delete(args[1], args[0]).Await(cmd.Context()); err != nil {
					return err
				}
				a.logger.Info("deleted", "namespace", args[0], "id", args[1])
				return nil
			},
		},
		a.syncCmd(),
	)
	return root, a
}

func (a *app) syncCmd() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "sync <read|create|update|delete> <namespace> [json]",
		Short: "Run a persistence request through the local/remote router",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := syncer.ParseMethod(args[0])
			if err != nil {
				return err
			}
			var rec store.Record
			if len(args) == 3 || method != syncer.MethodRead {
				if rec, err = readRecord(cmd, args[2:]); err != nil {
					return err
				}
			}
			var remoteSyncer syncer.Syncer
			if a.cfg.Remote.BaseURL != "" {
				remoteSyncer = syncer.NewRemoteSyncer(syncer.RemoteConfig{
					BaseURL:           a.cfg.Remote.BaseURL,
					Timeout:           a.cfg.Remote.Timeout,
					RequestsPerSecond: a.cfg.Remote.RequestsPerSecond,
					Logger:            a.logger,
				})
			}
			router := syncer.NewRouter(syncer.NewDispatcher(a.store), remoteSyncer, syncer.UseLocalFlag, a.logger)
			target := syncer.Target{
				Record:     rec,
				Collection: &syncer.Collection{Namespace: args[1], Local: !remote},
			}
			f, err := router.Sync(method, target)
			if err != nil {
				return err
			}
			v, err := f.Await(cmd.Context())
			if err != nil {
				return err
			}
			if v == nil {
				return nil
			}
			return printJSON(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "Send the request to the remote endpoint instead of the local store")
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.root != "" {
		cfg.Root = a.root
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.metricsFile != "" {
		cfg.MetricsFile = a.metricsFile
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.New(level)
	slog.SetDefault(a.logger)

	a.registry = prometheus.NewRegistry()
	s, err := store.New(cfg.Root,
		store.WithQuota(cfg.Quota(), cfg.QuotaBytes),
		store.WithListConcurrency(cfg.ListConcurrency),
		store.WithLogger(a.logger),
		store.WithMetrics(store.NewMetrics(a.registry)),
	)
	if err != nil {
		return err
	}
	a.store = s
	a.logger.Debug("store ready", "root", cfg.Root, "command", cmd.Name())
	return nil
}

func (a *app) writeMetrics() error {
	if a.cfg == nil || a.cfg.MetricsFile == "" || a.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.cfg.MetricsFile, a.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	a.logger.Debug("metrics written", "path", a.cfg.MetricsFile)
	return nil
}

func readRecord(cmd *cobra.Command, args []string) (store.Record, error) {
	var data []byte
	if len(args) > 0 {
		data = []byte(args[0])
	} else {
		var err error
		if data, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
	}
	var rec store.Record
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &rec); err != nil {
		return nil, fmt.Errorf("invalid record JSON: %w", err)
	}
	if rec == nil {
		rec = store.Record{}
	}
	return rec, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
