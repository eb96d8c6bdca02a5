// Package invite holds the invite-authorization core: matching a presented
// token against configured groups, checking live membership, and issuing
// invites through the membership oracle.
package invite

import "context"

// MembershipOracle answers membership and join-status questions against the
// chat service and issues invites. Calls are remote I/O; implementations
// honor ctx cancellation and return errors instead of retrying.
type MembershipOracle interface {
	// JoinedRooms reports the set of rooms the bot itself occupies.
	JoinedRooms(ctx context.Context) (map[string]struct{}, error)
	// JoinedMembers reports the settled members of a room. Pending invites
	// are not included.
	JoinedMembers(ctx context.Context, roomID string) (map[string]struct{}, error)
	// RoomName returns the room's display name for report lines.
	RoomName(ctx context.Context, roomID string) (string, error)
	InviteUser(ctx context.Context, roomID, userID string) error
}
