package gphotos

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"spg-go/internal/spg"
)

// Scopes lists every OAuth scope the client needs: library read/append,
// sharing, edits of app-created data, and the Drive read scope used for the
// storage quota.
var Scopes = []string{
	"https://www.googleapis.com/auth/photoslibrary.readonly",
	"https://www.googleapis.com/auth/photoslibrary.appendonly",
	"https://www.googleapis.com/auth/photoslibrary.sharing",
	"https://www.googleapis.com/auth/photoslibrary.edit.appcreateddata",
	"https://www.googleapis.com/auth/photoslibrary",
	"https://www.googleapis.com/auth/drive.photos.readonly",
}

// storedCredentials is the on-disk credential file format, one file per
// account. The field names match what google-auth tooling writes, so
// credential files are interchangeable with other clients of the same API.
type storedCredentials struct {
	RefreshToken string `json:"refresh_token"`
	Token        string `json:"token"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	TokenURI     string `json:"token_uri"`
}

// loadOAuthConfig parses an installed-app client secret file.
func loadOAuthConfig(clientSecretFile string) (*oauth2.Config, error) {
	data, err := os.ReadFile(clientSecretFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &spg.NotFoundError{Resource: "client secret file", Key: clientSecretFile}
		}
		return nil, fmt.Errorf("reading client secret file: %w", err)
	}

	conf, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing client secret file %s: %w", clientSecretFile, err)
	}
	return conf, nil
}

// loadStoredCredentials reads and validates a saved credential file.
func loadStoredCredentials(credsFile string) (*storedCredentials, error) {
	data, err := os.ReadFile(credsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &spg.NotFoundError{Resource: "credentials file", Key: credsFile}
		}
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	var creds storedCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parsing credentials file %s: %w", credsFile, err)
	}

	if creds.RefreshToken == "" {
		return nil, fmt.Errorf("credentials file %s has no refresh token", credsFile)
	}
	if creds.ClientID == "" {
		return nil, fmt.Errorf("credentials file %s has no client id", credsFile)
	}

	return &creds, nil
}

// saveStoredCredentials writes a credential file with owner-only permissions.
func saveStoredCredentials(credsFile string, conf *oauth2.Config, token *oauth2.Token) error {
	creds := storedCredentials{
		RefreshToken: token.RefreshToken,
		Token:        token.AccessToken,
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		TokenURI:     conf.Endpoint.TokenURL,
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}
	if err := os.WriteFile(credsFile, data, 0600); err != nil {
		return fmt.Errorf("writing credentials file %s: %w", credsFile, err)
	}
	return nil
}

// savingTokenSource persists tokens back to the credential file whenever the
// underlying source refreshes them, so the refresh token survives restarts.
type savingTokenSource struct {
	source    oauth2.TokenSource
	conf      *oauth2.Config
	credsFile string

	mu   sync.Mutex
	last string // last saved access token
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token.AccessToken != s.last {
		if err := saveStoredCredentials(s.credsFile, s.conf, token); err != nil {
			return nil, err
		}
		s.last = token.AccessToken
	}
	return token, nil
}

// NewAuthorizedHTTPClient builds an http.Client that attaches and refreshes
// the account's OAuth credentials. Authenticate must have been run once for
// the account before this succeeds.
func NewAuthorizedHTTPClient(credsFile, clientSecretFile string) (*http.Client, error) {
	conf, err := loadOAuthConfig(clientSecretFile)
	if err != nil {
		return nil, err
	}

	creds, err := loadStoredCredentials(credsFile)
	if err != nil {
		return nil, err
	}

	token := &oauth2.Token{
		AccessToken:  creds.Token,
		RefreshToken: creds.RefreshToken,
	}

	ctx := context.Background()
	source := &savingTokenSource{
		source:    conf.TokenSource(ctx, token),
		conf:      conf,
		credsFile: credsFile,
		last:      token.AccessToken,
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(token, source)), nil
}

// Authenticate runs the manual installed-app OAuth flow for one account:
// print the consent URL on out, read the authorization code from in,
// exchange it, and save the resulting credentials.
func Authenticate(name, credsFile, clientSecretFile string, in io.Reader, out io.Writer) error {
	conf, err := loadOAuthConfig(clientSecretFile)
	if err != nil {
		return err
	}
	if conf.RedirectURL == "" {
		conf.RedirectURL = "urn:ietf:wg:oauth:2.0:oob"
	}

	url := conf.AuthCodeURL("state-"+name, oauth2.AccessTypeOffline)
	fmt.Fprintf(out, "For %s, please visit this URL:\n%s\n\nAuthorization code: ", name, url)

	code, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && code == "" {
		return fmt.Errorf("reading authorization code: %w", err)
	}
	code = strings.TrimSpace(code)

	token, err := conf.Exchange(context.Background(), code)
	if err != nil {
		return fmt.Errorf("exchanging authorization code for %s: %w", name, err)
	}

	if err := saveStoredCredentials(credsFile, conf, token); err != nil {
		return err
	}
	fmt.Fprintf(out, "Credentials for %s saved to %s\n", name, credsFile)
	return nil
}
