package matrix

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"maunium.net/go/mautrix"
	"maunium.net/go/mautrix/event"

	"invitebot/internal/config"
	"invitebot/internal/invite"
)

const (
	unauthorizedReply = "Only admins can use the `!config` command."
	failureReply      = "Sorry, something went wrong. Please try again."
)

type InviteFunc func(ctx context.Context, principal, token string) (string, error)
type ReportFunc func(ctx context.Context, principal string) (string, error)

type Handlers struct {
	Invite InviteFunc
	Report ReportFunc
}

// Bot routes inbound room messages to the invite handlers and replies with
// their report text. Each command runs as an independent unit of work against
// the config snapshot current at the time it arrived.
type Bot struct {
	store    *config.Store
	handlers Handlers
	client   *mautrix.Client
	log      zerolog.Logger
}

func NewBot(client *mautrix.Client, store *config.Store, handlers Handlers, log zerolog.Logger) *Bot {
	b := &Bot{store: store, handlers: handlers, client: client, log: log}

	syncer := client.Syncer.(*mautrix.DefaultSyncer)
	syncer.OnEventType(event.EventMessage, b.onMessage)
	syncer.OnSync(client.DontProcessOldEvents)

	return b
}

// Run blocks on the sync loop until ctx is canceled.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info().
		Str("homeserver", b.client.HomeserverURL.String()).
		Str("user_id", string(b.client.UserID)).
		Msg("starting matrix sync")
	return b.client.SyncWithContext(ctx)
}

func (b *Bot) onMessage(_ context.Context, evt *event.Event) {
	if evt.Sender == b.client.UserID {
		return
	}
	content := evt.Content.AsMessage()
	if content == nil || content.MsgType != event.MsgText {
		return
	}

	cfg := b.store.Current()
	cmd, ok := parseCommand(content.Body, cfg.Bot.CommandPrefix)
	if !ok {
		return
	}
	if !NewAllowlist(cfg.Bot.AllowUsers, cfg.Bot.AllowRooms).MessageAllowed(string(evt.Sender), string(evt.RoomID)) {
		return
	}

	switch cmd.verb {
	case verbInvite, verbConfig:
		go b.handleCommand(evt, cmd)
	default:
		// Unknown verbs are ignored; other bots in the room may own them.
	}
}

func (b *Bot) handleCommand(evt *event.Event, cmd command) {
	ctx := context.Background()
	logger := b.log.With().
		Str("request_id", uuid.NewString()).
		Str("sender", string(evt.Sender)).
		Str("room_id", string(evt.RoomID)).
		Str("verb", cmd.verb).
		Logger()

	var reply string
	var err error
	switch {
	case cmd.verb == verbInvite && b.handlers.Invite != nil:
		reply, err = b.handlers.Invite(ctx, string(evt.Sender), cmd.arg)
	case cmd.verb == verbConfig && b.handlers.Report != nil:
		reply, err = b.handlers.Report(ctx, string(evt.Sender))
	default:
		logger.Warn().Msg("no handler configured for verb")
		return
	}

	switch {
	case errors.Is(err, invite.ErrNotAdmin):
		logger.Warn().Msg("config report requested by non-admin")
		reply = unauthorizedReply
	case err != nil:
		logger.Error().Err(err).Msg("command failed")
		reply = failureReply
	default:
		logger.Info().Msg("command handled")
	}

	if _, err := b.client.SendText(ctx, evt.RoomID, reply); err != nil {
		logger.Error().Err(err).Msg("send reply")
	}
}
