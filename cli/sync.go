// ABOUTME: Google sync CLI commands
// ABOUTME: Handles OAuth setup and the contacts import
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/harperreed/dealflow/sync"
	"golang.org/x/oauth2"
)

// SyncInitCommand handles OAuth setup.
func SyncInitCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	_ = fs.Parse(args)

	ctx := context.Background()

	config, err := sync.GetClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to get OAuth config: %w", err)
	}

	callbackChan := make(chan *oauth2.Token)
	errChan := make(chan error)

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code received")
			return
		}

		token, err := config.Exchange(ctx, code)
		if err != nil {
			errChan <- fmt.Errorf("failed to exchange code: %w", err)
			return
		}

		callbackChan <- token
		_, _ = fmt.Fprintf(w, "Authorization successful! You can close this window.")
	})

	server := &http.Server{Addr: ":8080", Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	authURL := config.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Println("Open this URL in your browser to authorize:")
	fmt.Println(authURL)

	var token *oauth2.Token
	select {
	case token = <-callbackChan:
	case err := <-errChan:
		return err
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("authorization timed out")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	if err := sync.SaveToken(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	fmt.Println("Authorization complete. Run 'sync contacts' to import.")
	return nil
}

// SyncContactsCommand imports Google Contacts.
func SyncContactsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("contacts", flag.ExitOnError)
	_ = fs.Parse(args)

	token, err := sync.LoadToken()
	if err != nil {
		return fmt.Errorf("not authorized yet, run 'sync init' first: %w", err)
	}

	client, err := sync.NewPeopleClient(token)
	if err != nil {
		return fmt.Errorf("failed to create People client: %w", err)
	}

	if _, err := sync.ImportContacts(database, client); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	return nil
}
