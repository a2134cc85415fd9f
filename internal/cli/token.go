package cli

import (
	"aulaquiz/config"
	"aulaquiz/internal/app"
	"aulaquiz/internal/logger"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var idPortal string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logger.New(logger.Config{Env: cfg.AppEnv, Level: "warn"})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := app.New(ctx, cfg, log, app.Options{WithoutHub: true})
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			return printToken(ctx, cmd.OutOrStdout(), a, idPortal)
		},
	}
	cmd.Flags().StringVar(&idPortal, "id-portal", "", "idPortal of the user")
	cmd.MarkFlagRequired("id-portal")
	return cmd
}

func printToken(ctx context.Context, w io.Writer, a *app.App, idPortal string) error {
	idPortal = strings.TrimSpace(idPortal)
	if idPortal == "" {
		return errors.New("--id-portal is required")
	}
	resp, err := a.AuthService.IssueForPortalID(ctx, idPortal)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
