package invite

import (
	"context"

	"github.com/rs/zerolog"

	"invitebot/internal/config"
)

type inviteCall struct {
	roomID string
	userID string
}

// fakeOracle is a deterministic in-memory oracle that records invite calls
// and member lookups in order.
type fakeOracle struct {
	joined  map[string]struct{}
	members map[string][]string
	names   map[string]string

	joinedErr  error
	membersErr map[string]error
	nameErr    map[string]error
	inviteErr  map[string]error

	invites       []inviteCall
	memberLookups []string
}

func (f *fakeOracle) JoinedRooms(ctx context.Context) (map[string]struct{}, error) {
	if f.joinedErr != nil {
		return nil, f.joinedErr
	}
	out := make(map[string]struct{}, len(f.joined))
	for r := range f.joined {
		out[r] = struct{}{}
	}
	return out, nil
}

func (f *fakeOracle) JoinedMembers(ctx context.Context, roomID string) (map[string]struct{}, error) {
	f.memberLookups = append(f.memberLookups, roomID)
	if err := f.membersErr[roomID]; err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(f.members[roomID]))
	for _, u := range f.members[roomID] {
		out[u] = struct{}{}
	}
	return out, nil
}

func (f *fakeOracle) RoomName(ctx context.Context, roomID string) (string, error) {
	if err := f.nameErr[roomID]; err != nil {
		return "", err
	}
	return f.names[roomID], nil
}

func (f *fakeOracle) InviteUser(ctx context.Context, roomID, userID string) error {
	if err := f.inviteErr[roomID]; err != nil {
		return err
	}
	f.invites = append(f.invites, inviteCall{roomID: roomID, userID: userID})
	return nil
}

func testStore(groups []config.InviteGroup, admins []string) *config.Store {
	return config.NewStore(&config.Config{InviteGroups: groups, AdminUsers: admins})
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
