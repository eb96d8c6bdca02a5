package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	flag "github.com/spf13/pflag"
)

// HomeserverConfig describes the Matrix connection. Changing it requires a
// restart; the live session is not rebuilt on reload.
type HomeserverConfig struct {
	URL            string `koanf:"url"`
	UserID         string `koanf:"user_id"`
	AccessToken    string `koanf:"access_token"`
	AccessTokenEnv string `koanf:"access_token_env"`
}

type BotConfig struct {
	CommandPrefix string   `koanf:"command_prefix"`
	AllowUsers    []string `koanf:"allow_users"`
	AllowRooms    []string `koanf:"allow_rooms"`
}

// InviteGroup grants access to all of its rooms to anyone presenting any of
// its tokens. The same room or token may appear in multiple groups.
type InviteGroup struct {
	RoomIDs    []string `koanf:"room_ids"`
	AuthTokens []string `koanf:"auth_tokens"`
}

func (g InviteGroup) HasToken(token string) bool {
	for _, t := range g.AuthTokens {
		if t == token {
			return true
		}
	}
	return false
}

// Config is the full configuration document. Group order and the order of
// entries within a group follow the document and are preserved; report output
// depends on it.
type Config struct {
	Homeserver   HomeserverConfig `koanf:"homeserver"`
	Bot          BotConfig        `koanf:"bot"`
	InviteGroups []InviteGroup    `koanf:"invite_groups"`
	AdminUsers   []string         `koanf:"admin_users"`
}

func (c *Config) IsAdmin(userID string) bool {
	for _, admin := range c.AdminUsers {
		if admin == userID {
			return true
		}
	}
	return false
}

func (c *Config) applyDefaults() {
	if c.Bot.CommandPrefix == "" {
		c.Bot.CommandPrefix = "!"
	}
}

// Validate rejects the document wholesale on the first malformed entry. A
// group with a missing or blank room or token never loads partially.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Homeserver.URL) == "" {
		return errors.New("homeserver.url is required")
	}
	if strings.TrimSpace(c.Homeserver.UserID) == "" {
		return errors.New("homeserver.user_id is required")
	}
	if strings.TrimSpace(c.Homeserver.AccessToken) == "" && strings.TrimSpace(c.Homeserver.AccessTokenEnv) == "" {
		return errors.New("homeserver.access_token or homeserver.access_token_env is required")
	}

	for i, g := range c.InviteGroups {
		if len(g.RoomIDs) == 0 {
			return fmt.Errorf("invite_groups[%d]: room_ids is required", i)
		}
		if len(g.AuthTokens) == 0 {
			return fmt.Errorf("invite_groups[%d]: auth_tokens is required", i)
		}
		for _, roomID := range g.RoomIDs {
			if strings.TrimSpace(roomID) == "" {
				return fmt.Errorf("invite_groups[%d]: room_ids must not contain blank entries", i)
			}
		}
		for _, token := range g.AuthTokens {
			if strings.TrimSpace(token) == "" {
				return fmt.Errorf("invite_groups[%d]: auth_tokens must not contain blank entries", i)
			}
		}
	}

	for _, admin := range c.AdminUsers {
		if strings.TrimSpace(admin) == "" {
			return errors.New("admin_users must not contain blank entries")
		}
	}

	return nil
}

// Load reads one or more YAML config files in order, merges INVITEBOT_ env
// variables and command line flags over them, and validates the result.
func Load(paths []string, flags *flag.FlagSet) (*Config, error) {
	ko := koanf.New(".")

	for _, p := range paths {
		if err := ko.Load(file.Provider(p), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %q: %w", p, err)
		}
	}

	// INVITEBOT_BOT__COMMAND_PREFIX=~ overrides bot.command_prefix, etc.
	if err := ko.Load(env.Provider("INVITEBOT_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "INVITEBOT_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	if flags != nil {
		if err := ko.Load(posflag.Provider(flags, ".", ko), nil); err != nil {
			return nil, fmt.Errorf("load flag config: %w", err)
		}
	}

	var cfg Config
	if err := ko.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if !ko.Exists("admin_users") {
		return nil, errors.New("admin_users is required")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
