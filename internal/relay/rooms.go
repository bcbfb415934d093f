package relay

import "sync"

// RoomTable tracks which live connections are currently in which
// conversation. It exists purely so the relay knows who to notify of
// ephemeral presence events; message broadcasts are scoped by the
// transport's own rooms and do not consult it. Nothing here is
// authoritative: the table starts empty on every process start and
// clients rejoin after reconnecting.
//
// The table is owned by a single Relay instance and injected where
// needed, never package-level state.
type RoomTable struct {
	mu    sync.Mutex
	rooms map[string]map[string]struct{} // conversationID -> set of connIDs
	conns map[string]map[string]struct{} // connID -> set of conversationIDs
}

func NewRoomTable() *RoomTable {
	return &RoomTable{
		rooms: make(map[string]map[string]struct{}),
		conns: make(map[string]map[string]struct{}),
	}
}

// Join adds the connection to the conversation's room. Idempotent;
// joining twice is not an error and leaves the set unchanged.
func (t *RoomTable) Join(conversationID, connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	room := t.rooms[conversationID]
	if room == nil {
		room = make(map[string]struct{})
		t.rooms[conversationID] = room
	}
	room[connID] = struct{}{}

	memberships := t.conns[connID]
	if memberships == nil {
		memberships = make(map[string]struct{})
		t.conns[connID] = memberships
	}
	memberships[conversationID] = struct{}{}
}

// Leave removes the connection from the room. Empty rooms are dropped
// entirely to bound memory.
func (t *RoomTable) Leave(conversationID, connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.leaveLocked(conversationID, connID)
}

// DropConn removes the connection from every room it had joined and
// returns the affected conversation ids, so callers can emit user-left
// notices. Same empty-room cleanup as Leave.
func (t *RoomTable) DropConn(connID string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	memberships := t.conns[connID]
	if len(memberships) == 0 {
		delete(t.conns, connID)
		return nil
	}

	affected := make([]string, 0, len(memberships))
	for conversationID := range memberships {
		affected = append(affected, conversationID)
	}
	for _, conversationID := range affected {
		t.leaveLocked(conversationID, connID)
	}
	return affected
}

// Members returns the connection ids currently in the conversation.
func (t *RoomTable) Members(conversationID string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	room := t.rooms[conversationID]
	members := make([]string, 0, len(room))
	for connID := range room {
		members = append(members, connID)
	}
	return members
}

// Size returns the member count of a conversation's room.
func (t *RoomTable) Size(conversationID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rooms[conversationID])
}

func (t *RoomTable) leaveLocked(conversationID, connID string) {
	room := t.rooms[conversationID]
	if room == nil {
		return
	}
	delete(room, connID)
	if len(room) == 0 {
		delete(t.rooms, conversationID)
	}

	memberships := t.conns[connID]
	if memberships != nil {
		delete(memberships, conversationID)
		if len(memberships) == 0 {
			delete(t.conns, connID)
		}
	}
}
