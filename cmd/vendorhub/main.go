package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/talkincode/vendorhub/config"
	"github.com/talkincode/vendorhub/internal/adminapi"
	"github.com/talkincode/vendorhub/internal/app"
	"github.com/talkincode/vendorhub/internal/webserver"
	"github.com/talkincode/vendorhub/internal/workflow"
	"go.uber.org/zap"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:           "vendorhub",
		Short:         "Marketplace back-office: orders, payments, reviews and vendor ratings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	root.AddCommand(serveCmd(), migrateCmd(), initdbCmd(), tokenCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadApp() (*app.Application, *config.AppConfig, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.InitDirs(); err != nil {
		return nil, nil, err
	}
	a := app.NewApplication(cfg)
	a.Init(cfg)
	return a, cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Release()

			srv := webserver.Init(cfg)
			adminapi.Init(a)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return err
			case s := <-sig:
				zap.L().Info("shutting down", zap.String("signal", s.String()))
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
}

func migrateCmd() *cobra.Command {
	var track bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Release()
			return a.MigrateDB(track)
		},
	}
	cmd.Flags().BoolVar(&track, "track", false, "log migration SQL")
	return cmd
}

func initdbCmd() *cobra.Command {
	var demo bool
	cmd := &cobra.Command{
		Use:   "initdb",
		Short: "Drop and recreate all tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Release()
			a.InitDb()
			if !demo {
				return nil
			}
			data, err := a.SeedDemo()
			if err != nil {
				return err
			}
			fmt.Printf("demo vendor:   %d\ndemo customer: %d\ndemo products: %v\n",
				data.VendorID, data.CustomerID, data.ProductIDs)
			return nil
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "seed a demo vendor, customer and catalog")
	return cmd
}

// tokenCmd signs a bearer token for local testing. It does not touch the database.
func tokenCmd() *cobra.Command {
	var (
		role string
		uid  int64
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			r, ok := workflow.ParseRole(role)
			if !ok {
				return fmt.Errorf("unknown role %q", role)
			}
			token, err := webserver.IssueToken(cfg.Web.Secret, workflow.Actor{Role: r, ID: uid}, ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "admin", "admin, vendor or customer")
	cmd.Flags().Int64Var(&uid, "uid", 0, "vendor or customer id")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
