package config

// Sample returns a commented starter configuration for --new-config.
func Sample() []byte {
	return []byte(`# invitebot configuration.

homeserver:
  url: "https://matrix.example.org"
  user_id: "@invitebot:example.org"
  # Either set the token inline or name an environment variable holding it.
  # access_token: "syt_..."
  access_token_env: "INVITEBOT_ACCESS_TOKEN"

bot:
  command_prefix: "!"
  # Restrict who may talk to the bot at all. Empty lists allow everyone;
  # invite authorization itself is always token-based.
  # allow_users:
  #   - "@someone:example.org"
  # allow_rooms:
  #   - "!lobby:example.org"

# Each group grants access to all of its rooms to anyone presenting any of
# its tokens. The bot must itself be a member of a room to invite into it.
invite_groups:
  - room_ids:
      - "!team:example.org"
      - "!random:example.org"
    auth_tokens:
      - "welcome-token"

# Users allowed to run the config command. The report includes raw tokens,
# so only list operators trusted with them.
admin_users:
  - "@alice:example.org"
`)
}
