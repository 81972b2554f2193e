package commands

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"tableflip.dev/gantt/pkg/app"
	"tableflip.dev/gantt/pkg/logging"
	"tableflip.dev/gantt/pkg/printers"
	"tableflip.dev/gantt/pkg/store"
)

// env is what every project command needs: the config, a logger, the
// service over the store and the selected project name.
type env struct {
	cfg     store.Config
	log     *log.Logger
	store   store.Persistence
	svc     *app.Service
	project string
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel())

	p, err := store.Load(cfg, logger)
	if err != nil {
		return nil, err
	}
	name := po.Resolve(cfg.Project())
	logger.Debug("loaded store", "path", cfg.BasePath(), "project", name, "command", cmd.Name())

	return &env{
		cfg:     cfg,
		log:     logger,
		store:   p,
		svc:     &app.Service{Persistence: p},
		project: name,
	}, nil
}

func (e *env) printer(cmd *cobra.Command) *printers.PrettyPrint {
	return &printers.PrettyPrint{Out: cmd.OutOrStdout()}
}
