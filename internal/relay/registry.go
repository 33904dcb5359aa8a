// Package relay implements the room-scoped broadcast relay: a registry
// that maps room ids to sets of live connections and fans every inbound
// frame out to the other occupants of the sender's room. The relay never
// inspects frame contents; text and binary messages are forwarded
// verbatim.
package relay

import (
	"log/slog"
	"sync"
)

// Frame is one relayed WebSocket message: Type is the gorilla message
// type (text or binary) and Data the raw payload.
type Frame struct {
	Type int
	Data []byte
}

// Member is the registry's view of a room occupant. Deliver must not
// block; it reports false when the member can no longer accept frames
// (full queue or closed connection). Identity is pointer equality.
type Member interface {
	// Deliver enqueues a frame for the member's connection.
	Deliver(Frame) bool

	// Close tears the member's connection down.
	Close()
}

// Registry tracks which members belong to which room and owns the
// broadcast fan-out. All methods are safe for concurrent use; frames
// broadcast by one member are delivered to each recipient in send
// order, because every sender broadcasts from a single read loop and
// each recipient drains its own queue in FIFO order.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*room

	// membership records each member's room so Leave and Broadcast
	// need only the member. A member is in at most one room.
	membership map[Member]*room

	logger *slog.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		rooms:      make(map[string]*room),
		membership: make(map[Member]*room),
		logger:     logger,
	}
}

// Join adds a member to a room, creating the room on first join. Room
// ids are opaque, case-sensitive strings; anyone who knows the id may
// join.
func (r *Registry) Join(roomID string, m Member) {
	r.mu.Lock()
	rm, ok := r.rooms[roomID]
	if !ok {
		rm = newRoom(roomID)
		r.rooms[roomID] = rm
	}
	rm.add(m)
	r.membership[m] = rm
	occupancy := rm.size()
	r.mu.Unlock()

	r.logger.Info("member joined room", "room", roomID, "occupancy", occupancy)
}

// Leave removes a member from its room. The last member out deletes the
// room entry entirely, so an id whose occupancy returns to zero is
// indistinguishable from one never used. Leaving twice, or leaving
// without having joined, is a no-op.
func (r *Registry) Leave(m Member) {
	r.mu.Lock()
	rm, ok := r.membership[m]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.membership, m)
	rm.remove(m)
	occupancy := rm.size()
	if occupancy == 0 {
		delete(r.rooms, rm.id)
	}
	r.mu.Unlock()

	if occupancy == 0 {
		r.logger.Info("room emptied", "room", rm.id)
	} else {
		r.logger.Info("member left room", "room", rm.id, "occupancy", occupancy)
	}
}

// Broadcast delivers a frame verbatim to every member of the sender's
// room except the sender itself. A room with no other occupants makes
// this a no-op. A member that cannot accept the frame is treated as
// already disconnected: it is removed from the room and closed, and
// delivery continues to the rest.
func (r *Registry) Broadcast(sender Member, f Frame) {
	r.mu.RLock()
	rm, ok := r.membership[sender]
	if !ok {
		r.mu.RUnlock()
		return
	}
	recipients := rm.others(sender)
	roomID := rm.id
	r.mu.RUnlock()

	var failed []Member
	for _, m := range recipients {
		if !m.Deliver(f) {
			failed = append(failed, m)
		}
	}

	for _, m := range failed {
		r.logger.Warn("dropping unresponsive member", "room", roomID)
		r.Leave(m)
		m.Close()
	}
}

// Occupancy reports how many members are currently in a room. Absent
// rooms report zero.
func (r *Registry) Occupancy(roomID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rm, ok := r.rooms[roomID]; ok {
		return rm.size()
	}
	return 0
}

// RoomCount reports the number of live rooms.
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
