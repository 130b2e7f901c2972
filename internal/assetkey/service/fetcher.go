package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	keyDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/assetkey/domain"
	apperrors "github.com/nvish-ganesh/contentful-embargoed-api/internal/errors"
)

// maxErrorBodySize bounds how much of an authority error response is read
// back into the FetchError detail.
const maxErrorBodySize = 4 << 10

// assetKeyFetcher implements AssetKeyFetcher against the authority's
// asset_keys endpoint.
type assetKeyFetcher struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewAssetKeyFetcher creates a fetcher with a pooled HTTP client bounded by
// the given timeout. The timeout is the only latency bound on key fetches;
// the cache layer imposes none of its own.
func NewAssetKeyFetcher(timeout time.Duration, logger *slog.Logger) AssetKeyFetcher {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = timeout

	return &assetKeyFetcher{
		httpClient: client,
		logger:     logger,
	}
}

// NewAssetKeyFetcherWithClient creates a fetcher using the given HTTP client.
// Used by tests to point the fetcher at a stub authority.
func NewAssetKeyFetcherWithClient(client *http.Client, logger *slog.Logger) AssetKeyFetcher {
	return &assetKeyFetcher{
		httpClient: client,
		logger:     logger,
	}
}

// createKeyRequest is the JSON body sent to the asset_keys endpoint.
// The authority expects the expiry in unix seconds.
type createKeyRequest struct {
	ExpiresAt int64 `json:"expiresAt"`
}

// createKeyResponse is the success body returned by the asset_keys endpoint.
type createKeyResponse struct {
	Policy string `json:"policy"`
	Secret string `json:"secret"`
}

// Fetch performs one POST to the authority and returns the issued key.
func (f *assetKeyFetcher) Fetch(
	ctx context.Context,
	scope keyDomain.Scope,
	accessToken string,
	expiresAt time.Time,
) (*keyDomain.AssetKey, error) {
	endpoint := fmt.Sprintf(
		"https://%s/spaces/%s/environments/%s/asset_keys",
		scope.Host, scope.SpaceID, scope.EnvironmentID,
	)

	body, err := json.Marshal(createKeyRequest{ExpiresAt: expiresAt.Unix()})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode asset key request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build asset key request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("asset key request failed: %w: %w", apperrors.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		f.logger.Warn("asset key fetch rejected by authority",
			slog.String("host", scope.Host),
			slog.String("space_id", scope.SpaceID),
			slog.String("environment_id", scope.EnvironmentID),
			slog.Int("status", resp.StatusCode),
		)
		return nil, &keyDomain.FetchError{
			StatusCode: resp.StatusCode,
			Detail:     string(bytes.TrimSpace(detail)),
		}
	}

	var payload createKeyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode asset key response")
	}

	f.logger.Debug("asset key fetched",
		slog.String("host", scope.Host),
		slog.String("space_id", scope.SpaceID),
		slog.String("environment_id", scope.EnvironmentID),
		slog.Time("expires_at", expiresAt),
		slog.Duration("duration", time.Since(start)),
	)

	return &keyDomain.AssetKey{
		Policy:    payload.Policy,
		Secret:    keyDomain.Secret(payload.Secret),
		ExpiresAt: expiresAt,
	}, nil
}
