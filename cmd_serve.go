package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	serverx "github.com/tanpawarit/plan-advisor/agent/server"
	configx "github.com/tanpawarit/plan-advisor/pkg/config"
	logx "github.com/tanpawarit/plan-advisor/pkg/logger"
)

func newServeCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the agent server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			agent, err := newAgent(*envFile)
			if err != nil {
				return err
			}

			cfg, err := configx.New[serverx.Config]("SERVER", *envFile)
			if err != nil {
				return err
			}
			srv, err := serverx.New(*cfg, agent, logx.Component("server"))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
}
