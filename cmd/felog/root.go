package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/elvismelkic/felog"
)

type cli struct {
	cfgFile string
	cfg     felog.SiteConfig
	logger  *log.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: log.New("felog")}
	c.logger.SetLevel(log.INFO)

	root := &cobra.Command{
		Use:           "felog",
		Short:         "felog - a personal blog engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := felog.LoadConfig(c.cfgFile)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default ./felog.yaml)")

	root.AddCommand(c.serveCmd(), c.importCmd(), versionCmd())
	return root
}

func (c *cli) serveCmd() *cobra.Command {
	var staticDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := c.cfg.LoadResolver()
			if err != nil {
				return err
			}
			app := felog.New(c.cfg, felog.WithResolver(resolver), felog.WithStaticDir(staticDir))
			defer app.Close()

			go func() {
				sig := make(chan os.Signal, 1)
				signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
				<-sig
				_ = app.Echo.Close()
			}()
			return app.Start()
		},
	}
	cmd.Flags().StringVar(&staticDir, "static", "public", "directory with static assets")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <content-dir>",
		Short: "Import markdown posts with front matter into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := felog.NewStore(c.cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()

			im := &felog.Importer{Store: store, Logger: c.logger}
			n, err := im.ImportDir(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d post(s) into %s\n", n, c.cfg.DatabasePath)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the felog version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "felog %s\n", version)
		},
	}
}
