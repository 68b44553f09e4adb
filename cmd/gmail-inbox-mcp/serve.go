package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/hal9000y/gmail-inbox-mcp/internal/auth"
	"github.com/hal9000y/gmail-inbox-mcp/internal/gservice"
	"github.com/hal9000y/gmail-inbox-mcp/internal/tool"
)

var errNoTransport = errors.New("no transport enabled: keep --stdio or set --http-addr")

type serveOptions struct {
	stdio           bool
	httpAddr        string
	interactiveAuth bool
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Serves the Gmail tools over stdio and, with --http-addr, over streamable
HTTP at /mcp with Prometheus metrics at /metrics.

The token cached by "gmail-inbox-mcp auth" is refreshed as needed. Without
--interactive-auth a missing or unusable token fails the tool call instead
of opening a browser.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.stdio, "stdio", true, "Serve MCP over stdin/stdout")
	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", "", "Listen address for streamable HTTP MCP and /metrics, empty to disable")
	cmd.Flags().BoolVar(&opts.interactiveAuth, "interactive-auth", false, "Run the browser consent flow from a tool call when no usable token is cached")

	return cmd
}

func runServe(ctx context.Context, root *rootOptions, opts *serveOptions) error {
	if !opts.stdio && opts.httpAddr == "" {
		return errNoTransport
	}

	closeLog, err := setupLogger(opts.stdio, root.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := root.oauthConfig()
	if err != nil {
		return err
	}

	var authorizer auth.Authorizer = auth.BootstrapRequired{Command: appName + " auth"}
	if opts.interactiveAuth {
		authorizer = newInteractiveAuthorizer(opts.stdio, root.logFile)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics, err := tool.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("tool.NewMetrics failed: %w", err)
	}

	factory := gservice.NewFactory(root.provider(cfg, authorizer))
	srv := tool.NewServer(tool.NewAdapter(openMailbox(factory), metrics), version)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var errHTTPCh <-chan error
	if opts.httpAddr != "" {
		ln, err := net.Listen("tcp", opts.httpAddr)
		if err != nil {
			return fmt.Errorf("net.Listen failed: %w", err)
		}

		var stopHTTP func()
		stopHTTP, errHTTPCh = serveHTTP(newHTTPServer(srv, reg), ln)
		defer stopHTTP()
	}

	var errStdioCh <-chan error
	if opts.stdio {
		var stopStdio func()
		stopStdio, errStdioCh = serveStdio(ctx, srv)
		defer stopStdio()
	}

	select {
	case err := <-errHTTPCh:
		return err
	case err := <-errStdioCh:
		return err
	case <-ctx.Done():
		log.Println("Shutdown signal received")
		return nil
	}
}

// newInteractiveAuthorizer sends the consent URL fallback to stderr when
// stdio mode discards the log, so the operator can still open it.
func newInteractiveAuthorizer(enableStdio bool, logFile string) *auth.LoopbackAuthorizer {
	a := &auth.LoopbackAuthorizer{}
	if enableStdio && logFile == "" {
		a.Notify = os.Stderr
	}

	return a
}

// openMailbox adapts the factory to tool.OpenFunc without leaking a typed
// nil Mailbox on error.
func openMailbox(f *gservice.Factory) tool.OpenFunc {
	return func(ctx context.Context) (tool.Mailbox, error) {
		c, err := f.Open(ctx)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

func newHTTPServer(srv *mcp.Server, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server { return srv }, nil))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func serveStdio(ctx context.Context, srv *mcp.Server) (func(), <-chan error) {
	errStdioCh := make(chan error, 1)
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		defer close(errStdioCh)
		log.Println("Starting stdio transport")

		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			errStdioCh <- fmt.Errorf("srv.Run failed: %w", err)
		}
	}()

	return func() {
		cancel()

		<-errStdioCh
		log.Println("Stdio transport stopped")
	}, errStdioCh
}

func serveHTTP(srv *http.Server, ln net.Listener) (func(), <-chan error) {
	errHTTPCh := make(chan error, 1)
	go func() {
		defer close(errHTTPCh)

		log.Println("Starting http server on", ln.Addr().String())

		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errHTTPCh <- fmt.Errorf("srv.Serve failed: %w", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Println(fmt.Errorf("srv.Shutdown failed: %w", err))
		}

		<-errHTTPCh
		log.Println("HTTP server stopped")
	}, errHTTPCh
}
