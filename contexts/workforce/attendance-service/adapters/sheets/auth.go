package sheetsadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenEndpoint = "https://oauth2.googleapis.com/token"
	sheetsScope   = "https://www.googleapis.com/auth/spreadsheets"
)

// tokenSource exchanges a signed service-account assertion for a short
// lived access token and caches it until close to expiry.
type tokenSource struct {
	serviceAccountEmail string
	privateKeyPEM       string
	client              *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time
}

func newTokenSource(serviceAccountEmail string, privateKeyPEM string, client *http.Client) *tokenSource {
	return &tokenSource{
		serviceAccountEmail: serviceAccountEmail,
		privateKeyPEM:       normalizePrivateKey(privateKeyPEM),
		client:              client,
	}
}

func (ts *tokenSource) AccessToken(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	now := time.Now().UTC()
	if ts.token != "" && now.Before(ts.expires.Add(-1*time.Minute)) {
		return ts.token, nil
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(ts.privateKeyPEM))
	if err != nil {
		return "", fmt.Errorf("parse service account private key: %w", err)
	}

	claims := jwt.MapClaims{
		"iss":   ts.serviceAccountEmail,
		"scope": sheetsScope,
		"aud":   tokenEndpoint,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign service account assertion: %w", err)
	}

	form := url.Values{
		"grant_type": {"urn:ietf:params:oauth:grant-type:jwt-bearer"},
		"assertion":  {assertion},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("exchange service account assertion: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || payload.AccessToken == "" {
		if payload.Error != "" {
			return "", fmt.Errorf("google token endpoint: %s", payload.Error)
		}
		return "", errors.New("google token endpoint returned no access token")
	}

	ts.token = payload.AccessToken
	ts.expires = now.Add(time.Duration(payload.ExpiresIn) * time.Second)
	return ts.token, nil
}

// normalizePrivateKey accepts keys as deployment platforms store them:
// optionally quoted, with literal \n and \r escapes instead of newlines.
func normalizePrivateKey(raw string) string {
	key := strings.TrimSpace(raw)
	if len(key) >= 2 {
		if (key[0] == '"' && key[len(key)-1] == '"') || (key[0] == '\'' && key[len(key)-1] == '\'') {
			key = key[1 : len(key)-1]
		}
	}
	key = strings.ReplaceAll(key, `\r`, "\r")
	key = strings.ReplaceAll(key, `\n`, "\n")
	return strings.TrimSpace(key)
}
