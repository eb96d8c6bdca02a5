package invite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"invitebot/internal/config"
)

// ErrNotAdmin rejects a config report request from a non-admin. It carries no
// configuration data.
var ErrNotAdmin = errors.New("principal is not an admin")

// Reporter renders the current authorization configuration for admins,
// including live join-status warnings. Raw tokens are listed in plaintext;
// the admin list gates who sees them.
type Reporter struct {
	store  *config.Store
	oracle MembershipOracle
	log    zerolog.Logger
}

func NewReporter(store *config.Store, oracle MembershipOracle, log zerolog.Logger) *Reporter {
	return &Reporter{store: store, oracle: oracle, log: log}
}

// GenerateReport returns the configuration summary for principal, or
// ErrNotAdmin when principal is not in the admin list.
func (r *Reporter) GenerateReport(ctx context.Context, principal string) (string, error) {
	cfg := r.store.Current()
	if !cfg.IsAdmin(principal) {
		return "", ErrNotAdmin
	}

	var report strings.Builder
	report.WriteString("Admins:\n")
	for _, admin := range cfg.AdminUsers {
		report.WriteString("- " + admin + "\n")
	}
	report.WriteString("\nInvite groups:\n")

	joined, err := r.oracle.JoinedRooms(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch joined rooms: %w", err)
	}

	for _, group := range cfg.InviteGroups {
		report.WriteString("- Room IDs:\n\n")
		for _, roomID := range group.RoomIDs {
			name, err := r.oracle.RoomName(ctx, roomID)
			if err != nil {
				return "", fmt.Errorf("fetch name of %s: %w", roomID, err)
			}
			report.WriteString("  - " + roomID + " (" + name + ")\n")
			if _, ok := joined[roomID]; !ok {
				report.WriteString("    - WARNING: invite bot not a member and cannot issue invites.\n")
			}
		}
		report.WriteString("- Auth tokens:\n\n")
		for _, token := range group.AuthTokens {
			report.WriteString("  - " + token + "\n")
		}
		report.WriteString("---\n")
	}

	return report.String(), nil
}
