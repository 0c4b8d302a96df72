package dropbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"platodropbox/internal/core/domain/models"

	"golang.org/x/oauth2"
)

// ListFolder lists the root of the app folder. Files that cannot be downloaded are
// excluded by the server.
func (c *Client) ListFolder(ctx context.Context, token *oauth2.Token) ([]models.RemoteEntry, error) {
	payload, err := json.Marshal(listFolderRequest{
		Path:                        "",
		IncludeNonDownloadableFiles: false,
		Limit:                       ListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list folder: %w", err)
	}

	endpoint := c.apiURL + "/files/list_folder"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("list folder: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	token.SetAuthHeader(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list folder: %w: failed to send list folder request: %w", models.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("list folder: %w: unexpected status %d: %s", models.ErrProtocol, resp.StatusCode, string(body))
	}

	var listing listFolderResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("list folder: %w: failed to parse response as JSON: %w", models.ErrProtocol, err)
	}
	if listing.Entries == nil {
		return nil, fmt.Errorf("list folder: %w: response missing entries", models.ErrProtocol)
	}
	entries := *listing.Entries

	if listing.HasMore {
		c.logger.Warn("listing truncated to first page", "limit", ListLimit, "returned", len(entries))
	}

	c.logger.Info("folder listed", "entries", len(entries))
	return entries, nil
}

// Download starts a content download for the entry with the given id. The caller
// owns the returned body.
func (c *Client) Download(ctx context.Context, token *oauth2.Token, entryID string) (io.ReadCloser, error) {
	arg, err := json.Marshal(downloadArg{Path: entryID})
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.contentURL+"/files/download", nil)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	req.Header.Set("Dropbox-API-Arg", string(arg))
	token.SetAuthHeader(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w: %w", models.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, &models.RemoteStatusError{Status: resp.StatusCode, Body: string(body)}
	}

	return resp.Body, nil
}
