// Package cli implements diaryctl, the operator tool for the food diary:
// producing APP_PASSWORD_HASH values and reading the backend from a shell.
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/andypowell00/food-notes-ui/internal/core/ports"
	"github.com/andypowell00/food-notes-ui/internal/infrastructure/backend"
	"github.com/andypowell00/food-notes-ui/internal/pkg/config"
)

// App carries what the commands need from the outside world. Tests swap
// the gateway and the password reader.
type App struct {
	Out io.Writer
	In  *os.File
	// Gateway builds the backend client from the resolved flags.
	Gateway func(baseURL, apiKey string) ports.DiaryGateway
	// ReadPassword reads a line from a terminal without echo.
	ReadPassword func(fd int) ([]byte, error)
	Log          zerolog.Logger
}

// NewApp returns an App wired to the process: stdout, the terminal and the
// real backend client.
func NewApp(log zerolog.Logger) *App {
	return &App{
		Out: os.Stdout,
		In:  os.Stdin,
		Gateway: func(baseURL, apiKey string) ports.DiaryGateway {
			return backend.New(backend.Config{BaseURL: baseURL, APIKey: apiKey}, log)
		},
		ReadPassword: term.ReadPassword,
		Log:          log,
	}
}

// backendFlags are shared by the commands that talk to the backend.
type backendFlags struct {
	baseURL string
	apiKey  string
}

// gateway resolves flags over the environment and builds the client.
func (a *App) gateway(ctx context.Context, f backendFlags) (ports.DiaryGateway, error) {
	cfg, err := config.LoadWith(ctx, envconfig.OsLookuper())
	if err != nil {
		return nil, err
	}
	if f.baseURL == "" {
		f.baseURL = cfg.Backend.BaseURL
	}
	if f.apiKey == "" {
		f.apiKey = cfg.Backend.APIKey
	}
	if f.baseURL == "" {
		return nil, errors.New("no backend: set API_BASE_URL or pass --api-url")
	}
	return a.Gateway(f.baseURL, f.apiKey), nil
}

func (f *backendFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.baseURL, "api-url", "", "backend base URL (default $API_BASE_URL)")
	cmd.Flags().StringVar(&f.apiKey, "api-key", "", "backend API key (default $API_KEY)")
}

// RootCmd assembles the command tree.
func (a *App) RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "diaryctl",
		Short:         "Operator tool for the food diary",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.Out)
	root.AddCommand(a.hashPasswordCmd(), a.dayCmd(), a.marksCmd())
	return root
}

// Execute runs the command line.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.RootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
