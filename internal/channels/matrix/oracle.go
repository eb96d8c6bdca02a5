package matrix

import (
	"context"
	"fmt"

	"maunium.net/go/mautrix"
	"maunium.net/go/mautrix/event"
	"maunium.net/go/mautrix/id"

	"invitebot/internal/invite"
)

// Oracle adapts the Matrix client-server API to the membership oracle the
// invite core consumes. Every method is a single remote call with no retry.
type Oracle struct {
	client *mautrix.Client
}

var _ invite.MembershipOracle = (*Oracle)(nil)

func NewOracle(client *mautrix.Client) *Oracle {
	return &Oracle{client: client}
}

func (o *Oracle) JoinedRooms(ctx context.Context) (map[string]struct{}, error) {
	resp, err := o.client.JoinedRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("matrix: joined rooms: %w", err)
	}
	rooms := make(map[string]struct{}, len(resp.JoinedRooms))
	for _, roomID := range resp.JoinedRooms {
		rooms[string(roomID)] = struct{}{}
	}
	return rooms, nil
}

func (o *Oracle) JoinedMembers(ctx context.Context, roomID string) (map[string]struct{}, error) {
	resp, err := o.client.JoinedMembers(ctx, id.RoomID(roomID))
	if err != nil {
		return nil, fmt.Errorf("matrix: joined members of %s: %w", roomID, err)
	}
	members := make(map[string]struct{}, len(resp.Joined))
	for userID := range resp.Joined {
		members[string(userID)] = struct{}{}
	}
	return members, nil
}

func (o *Oracle) RoomName(ctx context.Context, roomID string) (string, error) {
	var content event.RoomNameEventContent
	if err := o.client.StateEvent(ctx, id.RoomID(roomID), event.StateRoomName, "", &content); err != nil {
		return "", fmt.Errorf("matrix: room name of %s: %w", roomID, err)
	}
	return content.Name, nil
}

func (o *Oracle) InviteUser(ctx context.Context, roomID, userID string) error {
	_, err := o.client.InviteUser(ctx, id.RoomID(roomID), &mautrix.ReqInviteUser{UserID: id.UserID(userID)})
	if err != nil {
		return fmt.Errorf("matrix: invite %s to %s: %w", userID, roomID, err)
	}
	return nil
}
