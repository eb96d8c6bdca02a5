package invite

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"invitebot/internal/config"
)

const noInvitesMessage = "No invites available.\n"

// Dispatcher handles invite requests: it matches the presented token against
// the configured groups and issues invites for the rooms they grant.
type Dispatcher struct {
	store  *config.Store
	oracle MembershipOracle
	log    zerolog.Logger
}

func NewDispatcher(store *config.Store, oracle MembershipOracle, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{store: store, oracle: oracle, log: log}
}

// RequestInvite processes one invite request for principal presenting token
// and returns the report text to send back.
//
// Groups are walked in config order, rooms within a group in document order,
// strictly sequentially; the report line order is part of the contract. Rooms
// the bot has not joined are skipped without a line. Matching groups are not
// deduplicated: a room granted by two matching groups produces two lines and,
// when eligible, two invite calls.
//
// The first oracle failure aborts the remaining rooms and is returned as an
// error; invites already issued stand.
func (d *Dispatcher) RequestInvite(ctx context.Context, principal, token string) (string, error) {
	cfg := d.store.Current()

	joined, err := d.oracle.JoinedRooms(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch joined rooms: %w", err)
	}

	var report strings.Builder
	outcome := false
	for _, group := range cfg.InviteGroups {
		if !group.HasToken(token) {
			continue
		}
		for _, roomID := range group.RoomIDs {
			members, err := d.oracle.JoinedMembers(ctx, roomID)
			if err != nil {
				return "", fmt.Errorf("fetch members of %s: %w", roomID, err)
			}
			name, err := d.oracle.RoomName(ctx, roomID)
			if err != nil {
				return "", fmt.Errorf("fetch name of %s: %w", roomID, err)
			}

			if _, ok := members[principal]; ok {
				report.WriteString("You are already a member of " + name + ".\n\n")
				outcome = true
				continue
			}
			if _, ok := joined[roomID]; !ok {
				// The bot cannot invite into a room it has not joined.
				// Skipped silently; the config report carries the warning.
				d.log.Debug().Str("room_id", roomID).Msg("skipping room the bot has not joined")
				continue
			}
			if err := d.oracle.InviteUser(ctx, roomID, principal); err != nil {
				return "", fmt.Errorf("invite %s to %s: %w", principal, roomID, err)
			}
			d.log.Info().Str("room_id", roomID).Str("principal", principal).Msg("invite issued")
			report.WriteString("You have been invited to " + name + ".\n\n")
			outcome = true
		}
	}

	if !outcome {
		return noInvitesMessage, nil
	}
	return report.String(), nil
}
