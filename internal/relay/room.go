package relay

// room is one broadcast domain: an id and the set of members currently
// joined to it. Rooms are created implicitly on first join and deleted
// by the registry when the member set empties; the set cardinality is
// the room's reference count. All access is serialized by the
// registry's lock.
type room struct {
	id      string
	members map[Member]struct{}
}

func newRoom(id string) *room {
	return &room{id: id, members: make(map[Member]struct{})}
}

func (r *room) add(m Member) {
	r.members[m] = struct{}{}
}

func (r *room) remove(m Member) {
	delete(r.members, m)
}

func (r *room) size() int {
	return len(r.members)
}

// others returns a snapshot of every member except the given one, so
// the broadcast loop can run without holding the registry lock.
func (r *room) others(except Member) []Member {
	out := make([]Member, 0, len(r.members))
	for m := range r.members {
		if m != except {
			out = append(out, m)
		}
	}
	return out
}
