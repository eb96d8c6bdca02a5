package matrix

import "strings"

// Allowlist gates which users and rooms may issue commands at all. Empty
// lists allow everyone; the invite authorization itself stays token-based.
type Allowlist struct {
	users map[string]struct{}
	rooms map[string]struct{}
}

func NewAllowlist(userIDs, roomIDs []string) *Allowlist {
	return &Allowlist{
		users: toSet(userIDs),
		rooms: toSet(roomIDs),
	}
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

func (a *Allowlist) UserAllowed(userID string) bool {
	if len(a.users) == 0 {
		return true
	}
	_, ok := a.users[userID]
	return ok
}

func (a *Allowlist) RoomAllowed(roomID string) bool {
	if len(a.rooms) == 0 {
		return true
	}
	_, ok := a.rooms[roomID]
	return ok
}

func (a *Allowlist) MessageAllowed(userID, roomID string) bool {
	return a.UserAllowed(userID) && a.RoomAllowed(roomID)
}
