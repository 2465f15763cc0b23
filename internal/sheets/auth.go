package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

const (
	callbackAddr = "localhost:8080"
	authTimeout  = 5 * time.Minute
)

// Scopes are the OAuth scopes requested for catalog imports
var Scopes = []string{
	sheets.SpreadsheetsReadonlyScope,
}

// loadCredentials reads the OAuth desktop client from credPath
func loadCredentials(credPath string) (*oauth2.Config, error) {
	data, err := os.ReadFile(credPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w\n\nTo set up the Sheets API:\n1. Go to https://console.cloud.google.com/\n2. Create a project and enable the Google Sheets API\n3. Create OAuth 2.0 credentials (Desktop app)\n4. Download and save to: %s", err, credPath)
	}

	cfg, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return cfg, nil
}

func loadToken(tokenPath string) (*oauth2.Token, error) {
	data, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, err
	}

	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, err
	}
	return token, nil
}

func saveToken(tokenPath string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(tokenPath, data, 0600)
}

// authorize runs the browser consent flow and exchanges the returned code.
// Prompts are written to w.
func authorize(ctx context.Context, cfg *oauth2.Config, w io.Writer) (*oauth2.Token, error) {
	state := fmt.Sprintf("%d", time.Now().UnixNano())

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.Handle("/callback", callbackHandler(state, codeCh, errCh))

	server := &http.Server{Addr: callbackAddr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	defer func() { _ = server.Shutdown(context.Background()) }()

	cfg.RedirectURL = "http://" + callbackAddr + "/callback"
	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	fmt.Fprintln(w, "Opening browser for Google authentication...")
	fmt.Fprintln(w, "If the browser doesn't open, visit this URL:")
	fmt.Fprintln(w, authURL)
	openBrowser(authURL)

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(authTimeout):
		return nil, errors.New("authentication timeout")
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	return token, nil
}

// callbackHandler answers every redirect and reports the first outcome.
// Later outcomes are dropped so a stray request never blocks the handler.
func callbackHandler(state string, codeCh chan<- string, errCh chan<- error) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		fail := func(msg string) {
			http.Error(rw, "motomatch authorization failed: "+msg, http.StatusBadRequest)
			select {
			case errCh <- errors.New(msg):
			default:
			}
		}

		if r.URL.Query().Get("state") != state {
			fail("invalid state parameter")
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			fail("no code in callback")
			return
		}

		rw.Header().Set("Content-Type", "text/html")
		fmt.Fprint(rw, `<html><body><h1>motomatch is authorized</h1><p>You can close this window.</p></body></html>`)
		select {
		case codeCh <- code:
		default:
		}
	}
}

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}

	_ = cmd.Start()
}

// httpClient returns an authenticated client, running the consent flow when
// no cached token exists. Refreshed tokens are written back to tokenPath.
func httpClient(ctx context.Context, cfg *oauth2.Config, tokenPath string, w io.Writer) (*http.Client, error) {
	token, err := loadToken(tokenPath)
	if err != nil {
		token, err = authorize(ctx, cfg, w)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, token); err != nil {
			return nil, fmt.Errorf("failed to save token: %w", err)
		}
		fmt.Fprintln(w, "Authentication successful!")
	}

	source := cfg.TokenSource(ctx, token)
	if fresh, err := source.Token(); err == nil && fresh.AccessToken != token.AccessToken {
		_ = saveToken(tokenPath, fresh)
	}

	return oauth2.NewClient(ctx, source), nil
}
