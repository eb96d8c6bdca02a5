package matrix

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"maunium.net/go/mautrix"
	"maunium.net/go/mautrix/id"

	"invitebot/internal/config"
)

// NewClient builds the homeserver client. The access token may be inline or
// named through access_token_env, the same indirection used for other bot
// credentials.
func NewClient(cfg config.HomeserverConfig, log zerolog.Logger) (*mautrix.Client, error) {
	token := strings.TrimSpace(cfg.AccessToken)
	if token == "" && cfg.AccessTokenEnv != "" {
		token = strings.TrimSpace(os.Getenv(cfg.AccessTokenEnv))
	}
	if token == "" {
		return nil, errors.New("matrix access token is required (homeserver.access_token or homeserver.access_token_env)")
	}

	client, err := mautrix.NewClient(cfg.URL, id.UserID(cfg.UserID), token)
	if err != nil {
		return nil, fmt.Errorf("create matrix client: %w", err)
	}
	client.Log = log.With().Str("component", "mautrix").Logger()
	return client, nil
}
