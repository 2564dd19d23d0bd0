package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sujay090/Dynamic-form-sub001/internal/app"
	"github.com/sujay090/Dynamic-form-sub001/internal/config"
)

// env holds what every subcommand needs. Services are connected lazily so
// that commands without database access (token) work offline.
type env struct {
	out  io.Writer
	cfg  *config.Config
	log  *slog.Logger
	svc  *app.Services
	load func() (*config.Config, error)
}

func (e *env) config() (*config.Config, error) {
	if e.cfg != nil {
		return e.cfg, nil
	}
	cfg, err := e.load()
	if err != nil {
		return nil, err
	}
	e.cfg = cfg
	e.log = app.NewLogger(cfg.Log)
	return cfg, nil
}

func (e *env) services(ctx context.Context) (*app.Services, error) {
	if e.svc != nil {
		return e.svc, nil
	}
	cfg, err := e.config()
	if err != nil {
		return nil, err
	}
	svc, err := app.Build(ctx, cfg, e.log)
	if err != nil {
		return nil, err
	}
	e.svc = svc
	return svc, nil
}

func (e *env) close() {
	if e.svc != nil {
		e.svc.Close()
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	return newRootCmdWith(&env{out: out, load: config.Load})
}

func newRootCmdWith(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "formctl",
		Short:         "Manage dynamic form definitions and records",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(*cobra.Command, []string) {
			e.close()
		},
	}
	root.SetOut(e.out)

	root.AddCommand(
		newFormsCmd(e),
		newRecordsCmd(e),
		newTokenCmd(e),
	)
	return root
}
