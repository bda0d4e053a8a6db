package googlesheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ServiceAccountKey holds the fields of a service account JSON key that the
// JWT flow needs
type ServiceAccountKey struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	TokenURI     string `json:"token_uri"`
}

// NewFromCredentials creates a SheetsAdaptor authenticated with the key file
// at credentialsPath. An empty path falls back to GOOGLE_APPLICATION_CREDENTIALS
// and then to Application Default Credentials.
func NewFromCredentials(ctx context.Context, config Config, credentialsPath string) (*SheetsAdaptor, error) {
	opt, err := ClientOption(ctx, credentialsPath)
	if err != nil {
		return nil, err
	}
	return NewSheetsAdaptor(ctx, config, opt)
}

// ClientOption resolves credentials into an API client option
func ClientOption(ctx context.Context, credentialsPath string) (option.ClientOption, error) {
	if credentialsPath == "" {
		credentialsPath = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}

	if credentialsPath == "" {
		ts, err := google.DefaultTokenSource(ctx, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("failed to get default token source: %w", err)
		}
		return option.WithTokenSource(ts), nil
	}

	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	if probe.Type == "service_account" {
		key, err := ParseServiceAccountJSON(data)
		if err != nil {
			return nil, err
		}
		return option.WithTokenSource(TokenSource(ctx, key)), nil
	}

	// authorized_user and other credential types
	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return option.WithCredentials(creds), nil
}

// ParseServiceAccountJSON parses and checks a service account key
func ParseServiceAccountJSON(jsonData []byte) (*ServiceAccountKey, error) {
	var key ServiceAccountKey
	if err := json.Unmarshal(jsonData, &key); err != nil {
		return nil, fmt.Errorf("failed to parse service account JSON: %w", err)
	}

	if key.Type != "service_account" {
		return nil, fmt.Errorf("invalid key type: %s (expected: service_account)", key.Type)
	}

	if key.ClientEmail == "" || key.PrivateKey == "" {
		return nil, fmt.Errorf("missing required fields in service account key")
	}

	return &key, nil
}

// TokenSource returns a JWT token source for a service account key. Tokens
// are fetched lazily on the first API call.
func TokenSource(ctx context.Context, key *ServiceAccountKey) oauth2.TokenSource {
	tokenURL := key.TokenURI
	if tokenURL == "" {
		tokenURL = google.JWTTokenURL
	}

	cfg := &jwt.Config{
		Email:        key.ClientEmail,
		PrivateKey:   []byte(key.PrivateKey),
		PrivateKeyID: key.PrivateKeyID,
		Scopes:       []string{sheets.SpreadsheetsScope},
		TokenURL:     tokenURL,
	}
	return cfg.TokenSource(ctx)
}
