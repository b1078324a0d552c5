package auth

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pupbiru/humanitix-auto-codes/internal/models"
)

// ExchangeRefreshToken swaps a Firebase refresh token for a fresh ID token at
// the securetoken endpoint. The API key travels as a query parameter, the
// grant as a form body.
func ExchangeRefreshToken(client *http.Client, tokenURL, apiKey, refreshToken string) (*models.TokenResponse, error) {
	endpoint := fmt.Sprintf("%s?key=%s", tokenURL, url.QueryEscape(apiKey))

	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("token exchange returned status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp models.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tokenResp.IDToken == "" {
		return nil, fmt.Errorf("token response carried no id_token")
	}
	return &tokenResp, nil
}

// TokenExpiry reads the exp claim from an ID token without verifying the
// signature. The token is consumed by the console, not by us; we only need to
// know when to ask for a new one.
func TokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("parse id token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid id token claims")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("id token has no exp claim")
	}
	return exp.Time, nil
}
