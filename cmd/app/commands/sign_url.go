package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nvish-ganesh/contentful-embargoed-api/internal/app"
	"github.com/nvish-ganesh/contentful-embargoed-api/internal/config"
	signingDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/signing/domain"
)

// signURLResult is the JSON shape printed by `sign-url --format json`.
type signURLResult struct {
	URL       string    `json:"url"`
	Policy    string    `json:"policy"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RunSignURL signs one asset URL from the command line and prints the result.
// Useful for smoke-testing a deployment's authority credentials.
func RunSignURL(ctx context.Context, rawURL string, ttlSeconds int, format string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)

	useCase, err := container.SignURLUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize sign url use case: %w", err)
	}

	ttl := cfg.SignedURLTTL
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}

	output, err := useCase.SignURL(ctx, &signingDomain.SignURLInput{
		Host:          cfg.AuthorityHost,
		AccessToken:   cfg.AuthorityAccessToken,
		SpaceID:       cfg.SpaceID,
		EnvironmentID: cfg.EnvironmentID,
		URL:           rawURL,
		ExpiresAt:     time.Now().Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("failed to sign url: %w", err)
	}

	switch format {
	case "json":
		encoded, err := json.MarshalIndent(signURLResult{
			URL:       output.URL,
			Policy:    output.Policy,
			ExpiresAt: output.ExpiresAt,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Println(string(encoded))
	default:
		fmt.Printf("Signed URL: %s\n", output.URL)
		fmt.Printf("Policy:     %s\n", output.Policy)
		fmt.Printf("Expires at: %s\n", output.ExpiresAt.Format(time.RFC3339))
	}

	return nil
}
