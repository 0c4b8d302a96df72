package dropbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"platodropbox/internal/core/domain/models"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// AccessToken performs a refresh_token grant against the token endpoint.
// The returned token lives for one run only and is never persisted.
func (c *Client) AccessToken(ctx context.Context, cred models.Credential) (*oauth2.Token, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", cred.ClientID)
	form.Set("refresh_token", cred.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("refreshing access token", "url", c.tokenURL)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get token: %w: failed to send token refresh request: %w", models.ErrNetwork, err)
	}
	defer resp.Body.Close()

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("get token: %w: failed to parse response as JSON (status %d): %w", models.ErrProtocol, resp.StatusCode, err)
	}

	if body.AccessToken == "" {
		if body.Error != "" {
			return nil, fmt.Errorf("get token: %w: response missing access token: %s %s", models.ErrAuth, body.Error, body.ErrorDescription)
		}
		return nil, fmt.Errorf("get token: %w: response missing access token", models.ErrAuth)
	}

	token := &oauth2.Token{
		AccessToken: body.AccessToken,
		TokenType:   body.TokenType,
	}
	if body.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(body.ExpiresIn) * time.Second)
	}

	c.logger.Info("access token obtained", "expires_in", body.ExpiresIn)
	return token, nil
}
