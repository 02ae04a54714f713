package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/raindrop-mcp/internal/config"
	"github.com/roivaz/raindrop-mcp/internal/logging"
	"github.com/roivaz/raindrop-mcp/internal/raindrop"
)

type Config struct {
	Gateway Gateway
	Logger  logging.Logger
	Options []server.StreamableHTTPOption
}

// DefaultConfig wires the server against the real Raindrop.io API using the
// process configuration. A missing token is a startup error, not a per-call
// one.
func DefaultConfig(logger logging.Logger) (Config, error) {
	client, err := raindrop.NewClient(raindrop.Config{
		Token:        config.Token(),
		BaseURL:      config.BaseURL(),
		Timeout:      config.RequestTimeout(),
		RateInterval: config.RateLimitInterval(),
		Logger:       logger,
	})
	if err != nil {
		return Config{}, err
	}

	return Config{
		Gateway: client,
		Logger:  logger,
		Options: []server.StreamableHTTPOption{
			server.WithStateLess(true),
		},
	}, nil
}
