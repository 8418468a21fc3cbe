// Command artisans is the marketplace client: search and contact artisans,
// or manage an artisan account, against a running server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/diewo77/go-artisans/internal/client"
	"github.com/diewo77/go-artisans/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	defaultAPI = "http://localhost:8080"
	apiEnv     = "ARTISANS_API"
)

// app holds what every command needs once flags are parsed.
type app struct {
	api    *client.API
	auth   *client.Auth
	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		apiURL      string
		sessionPath string
		verbose     bool
	)
	a := &app{}

	root := &cobra.Command{
		Use:   "artisans",
		Short: "Find and contact artisans in Lubumbashi",
		Long: `artisans talks to the marketplace API.

Clients search the directory and contact an artisan by WhatsApp or phone.
Artisans log in to manage their profile, availability and requests.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()
			if verbose {
				l, err := logging.New(true)
				if err != nil {
					return err
				}
				logger = l
			}
			a.logger = logger
			a.api = client.NewAPI(apiURL, nil)
			a.auth = client.NewAuth(a.api, client.FileStorage{Path: sessionPath})
			if err := a.auth.Init(); err != nil {
				return fmt.Errorf("restore session: %w", err)
			}
			logger.Debug("client ready",
				zap.String("api", apiURL),
				zap.String("session", sessionPath),
				zap.Bool("authenticated", a.auth.IsAuthenticated()))
			return nil
		},
	}

	api := os.Getenv(apiEnv)
	if api == "" {
		api = defaultAPI
	}
	root.PersistentFlags().StringVar(&apiURL, "api", api, "Marketplace API base URL (or set "+apiEnv+")")
	root.PersistentFlags().StringVar(&sessionPath, "session", defaultSessionPath(), "File holding the login session")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newTradesCmd(a),
		newSearchCmd(a),
		newShowCmd(a),
		newContactCmd(a),
		newSignupCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newRequestsCmd(a),
		newRequestStatusCmd(a),
		newAvailabilityCmd(a),
		newProfileCmd(a),
		newBrowseCmd(a),
	)
	return root
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".artisans-session.json"
	}
	return filepath.Join(dir, "go-artisans", "session.json")
}

// requireLogin returns the logged-in user id.
func (a *app) requireLogin() (string, error) {
	user := a.auth.User()
	if !a.auth.IsAuthenticated() || user == nil {
		return "", client.ErrNotLoggedIn
	}
	return user.ID, nil
}
