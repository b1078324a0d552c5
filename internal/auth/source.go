package auth

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/pupbiru/humanitix-auto-codes/internal/logger"
)

// tokenExpiryBuffer is how long before actual expiry a cached token is
// already treated as stale.
const tokenExpiryBuffer = 60 * time.Second

// TokenSource exchanges the refresh token on first use and hands out the
// cached ID token until shortly before it expires. Safe for concurrent use so
// the serve mode can share one source across runs.
type TokenSource struct {
	client       *http.Client
	log          *logger.Logger
	tokenURL     string
	apiKey       string
	refreshToken string

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewTokenSource(client *http.Client, log *logger.Logger, tokenURL, apiKey, refreshToken string) *TokenSource {
	return &TokenSource{
		client:       client,
		log:          log,
		tokenURL:     tokenURL,
		apiKey:       apiKey,
		refreshToken: refreshToken,
	}
}

func (s *TokenSource) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Add(tokenExpiryBuffer).Before(s.expiresAt) {
		return s.token, nil
	}

	s.log.Info("AUTH", "Exchanging refresh token for a new ID token")
	resp, err := ExchangeRefreshToken(s.client, s.tokenURL, s.apiKey, s.refreshToken)
	if err != nil {
		return "", err
	}

	expiresAt, err := TokenExpiry(resp.IDToken)
	if err != nil {
		// Fall back to the advertised lifetime when the exp claim is absent.
		seconds, convErr := strconv.Atoi(resp.ExpiresIn)
		if convErr != nil {
			return "", fmt.Errorf("token lifetime unknown: %w", err)
		}
		expiresAt = time.Now().Add(time.Duration(seconds) * time.Second)
	}

	s.token = resp.IDToken
	s.expiresAt = expiresAt
	s.log.Info("AUTH", fmt.Sprintf("ID token valid until %s", expiresAt.Format(time.RFC3339)))
	return s.token, nil
}
