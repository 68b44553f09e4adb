package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hal9000y/gmail-inbox-mcp/internal/auth"
)

func newAuthCmd(root *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize the Gmail account and cache its token",
		Long: `Runs the OAuth2 consent flow in the browser and stores the resulting
token in --token-file. A cached token that is still usable is kept unless
--force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			closeLog, err := setupLogger(false, root.logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			cfg, err := root.oauthConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			provider := root.provider(cfg, &auth.LoopbackAuthorizer{})

			var cred *auth.Credential
			if force {
				cred, err = provider.Authorize(ctx)
			} else {
				cred, err = provider.Credential(ctx)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Token stored in %s (expires %s)\n", root.tokenFile, cred.Expiry.Local().Format("2006-01-02 15:04:05"))

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-authorize even if a usable token is cached")

	return cmd
}
