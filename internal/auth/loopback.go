package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/oauth2"
)

const callbackPath = "/oauth"

// LoopbackAuthorizer runs the OAuth2 authorization-code flow with a
// temporary HTTP listener on the loopback interface receiving the redirect.
type LoopbackAuthorizer struct {
	// Addr is the listen address, 127.0.0.1:0 when empty.
	Addr string
	// OpenURL presents the authorization URL to the user, opening the
	// system browser when nil.
	OpenURL func(url string) error
	// Notify receives the authorization URL when OpenURL fails. The
	// standard logger is used when nil.
	Notify io.Writer
}

// Authorize blocks until the user completes the consent screen, the
// callback reports an error, or ctx is done.
func (a *LoopbackAuthorizer) Authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	addr := a.Addr
	if addr == "" {
		addr = "127.0.0.1:0"
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.Listen failed: %w", err)
	}

	state, err := generateState()
	if err != nil {
		_ = ln.Close()
		return nil, fmt.Errorf("generateState failed: %w", err)
	}

	flowCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     cfg.Endpoint,
		Scopes:       cfg.Scopes,
		RedirectURL:  fmt.Sprintf("http://%s%s", ln.Addr().String(), callbackPath),
	}

	h := newCallbackHandler(state)
	mux := http.NewServeMux()
	mux.Handle(callbackPath, h)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.fail(fmt.Errorf("srv.Serve failed: %w", err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Println(fmt.Errorf("srv.Shutdown failed: %w", err))
		}
	}()

	authURL := flowCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	log.Printf("Waiting for authorization on %s", flowCfg.RedirectURL)

	open := a.OpenURL
	if open == nil {
		open = openBrowser
	}
	if err := open(authURL); err != nil {
		msg := fmt.Sprintf("Could not open browser automatically: %v; please copy and open link in the browser: %s\n", err, authURL)
		if a.Notify != nil {
			_, _ = io.WriteString(a.Notify, msg)
		} else {
			log.Print(msg)
		}
	}

	var code string
	select {
	case code = <-h.codes:
	case err := <-h.errs:
		return nil, err
	case <-ctx.Done():
		return nil, fmt.Errorf("authorization aborted: %w", ctx.Err())
	}

	tok, err := flowCfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("cfg.Exchange failed: %w", err)
	}

	return tok, nil
}

type callbackHandler struct {
	state string
	codes chan string
	errs  chan error
}

func newCallbackHandler(state string) *callbackHandler {
	return &callbackHandler{
		state: state,
		codes: make(chan string, 1),
		errs:  make(chan error, 1),
	}
}

func (h *callbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if e := q.Get("error"); e != "" {
		h.fail(fmt.Errorf("authorization denied: %s", e))
		http.Error(w, "Authorization denied", http.StatusBadRequest)
		return
	}

	if q.Get("state") != h.state {
		log.Println("Rejected OAuth callback with invalid state")
		http.Error(w, "Invalid or expired state parameter", http.StatusBadRequest)
		return
	}

	code := q.Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	select {
	case h.codes <- code:
	default:
		http.Error(w, "Authorization already completed", http.StatusConflict)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "Authorization complete, you can close this window.")
}

func (h *callbackHandler) fail(err error) {
	select {
	case h.errs <- err:
	default:
	}
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read failed: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	default:
		return fmt.Errorf("unsupported platform")
	}
}
