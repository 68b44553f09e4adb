package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/hal9000y/gmail-inbox-mcp/internal/auth"
)

const (
	appName             = "gmail-inbox-mcp"
	credentialsFileName = "credentials.json"
	tokenFileName       = "token.json"
)

type rootOptions struct {
	credentialsFile string
	tokenFile       string
	envFile         string
	logFile         string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "MCP server for sending Gmail messages and listing unread ones",
		Long: `gmail-inbox-mcp serves two MCP tools backed by the Gmail API:
  - send-email sends a plain text message from the authorized account
  - get-unread-emails lists the newest unread messages

Run "gmail-inbox-mcp auth" once to authorize the account, then
"gmail-inbox-mcp serve" from your MCP client.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.SetVersionTemplate(`{{printf "gmail-inbox-mcp version %s\n" .Version}}`)

	cmd.PersistentFlags().StringVar(&opts.credentialsFile, "credentials-file", defaultPath(credentialsFileName), "Path to the Google OAuth client secret JSON")
	cmd.PersistentFlags().StringVar(&opts.tokenFile, "token-file", defaultPath(tokenFileName), "Path to cache the Google OAuth token")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Path to env file with OAUTH_GOOGLE_CLIENT_ID and OAUTH_GOOGLE_CLIENT_SECRET")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Path to log file (stdio transport discards logs otherwise)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newAuthCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// defaultPath resolves name next to the running executable.
func defaultPath(name string) string {
	exe, err := os.Executable()
	if err != nil {
		return name
	}

	return filepath.Join(filepath.Dir(exe), name)
}

func (o *rootOptions) oauthConfig() (*oauth2.Config, error) {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return nil, fmt.Errorf("godotenv.Load failed: %w", err)
		}
	}

	cfg, err := auth.LoadConfig(o.credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("auth.LoadConfig failed: %w", err)
	}

	return cfg, nil
}

func (o *rootOptions) provider(cfg *oauth2.Config, authorizer auth.Authorizer) *auth.Provider {
	return auth.NewProvider(cfg, auth.NewStore(o.tokenFile), authorizer)
}

// setupLogger routes the standard logger. stdout carries the protocol in
// stdio mode, so logs are discarded there unless a log file is given.
func setupLogger(enableStdio bool, logFile string) (func(), error) {
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		log.SetOutput(f)

		return func() {
			if err := f.Close(); err != nil {
				log.Println(fmt.Errorf("f.Close failed: %w", err))
			}
		}, nil
	}

	if enableStdio {
		log.SetOutput(io.Discard)
	} else {
		log.SetOutput(os.Stdout)
	}

	return func() {}, nil
}
