// Command snsctl is the back-office and storefront console for the catalog
// API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/judyrop/sns-catalog/client"
	"github.com/judyrop/sns-catalog/views"
)

const defaultAPIURL = "http://localhost:8000"

// everything is the listing window the console asks for.
var everything = client.Page{Limit: 1000}

type app struct {
	apiURL      string
	sessionFile string
	verbose     bool

	out    io.Writer
	errOut io.Writer
	log    *zap.Logger
	client *client.Client
	styles views.Styles
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".snsctl-token"
	}
	return filepath.Join(dir, "snsctl", "token")
}

func (a *app) setup() error {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if a.verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log = log
	a.styles = views.NewStyles(a.out)
	a.client = client.New(a.apiURL,
		client.WithSession(client.NewFileSession(a.sessionFile)),
		client.WithLogger(log),
		client.WithUnauthorizedHandler(func() {
			fmt.Fprintln(a.errOut, "Session expired. Run `snsctl login` to sign in again.")
		}),
	)
	return nil
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	root := &cobra.Command{
		Use:           "snsctl",
		Short:         "Manage and browse the Star Network Solutions catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.apiURL, "api-url", envOr("SNS_API_URL", defaultAPIURL), "catalog API base URL (or set SNS_API_URL)")
	root.PersistentFlags().StringVar(&a.sessionFile, "session-file", defaultSessionFile(), "where the login token is kept")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		loginCmd(a),
		logoutCmd(a),
		dashboardCmd(a),
		categoryEntity().command(a),
		productEntity().command(a),
		subProductEntity().command(a),
		serviceEntity().command(a),
		solutionEntity().command(a),
		customerEntity().command(a),
		companyInfoCmd(a),
		siteCmd(a),
	)
	return root
}

func loginCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as an administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("SNS_PASSWORD")
			}
			if username == "" || password == "" {
				return errors.New("username and password are required")
			}
			if err := a.client.Login(cmd.Context(), username, password); err != nil {
				return err
			}
			a.log.Debug("logged in", zap.String("username", username))
			fmt.Fprintln(a.out, "Logged in as "+username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "admin", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password (or set SNS_PASSWORD)")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored login token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func dashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show how many records each section holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := views.LoadDashboard(cmd.Context(), a.client)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, views.DashboardView(a.styles, *d))
			return nil
		},
	}
}

// message is what the console prints for a failed command.
func message(err error) string {
	var apiErr *client.APIError
	var urlErr *url.Error
	switch {
	case errors.As(err, &apiErr):
		return client.UserMessage(err, "")
	case errors.As(err, &urlErr):
		return client.GenericFailure
	}
	return err.Error()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprint(os.Stderr, views.ErrorLine(views.NewStyles(os.Stderr), message(err)))
		stop()
		os.Exit(1)
	}
}
