package transfer

import (
	"github.com/shreyansh0727/datasync/internal/protocol"
)

// Session is the receiver-side bookkeeping for one in-flight file,
// keyed by its sender-assigned file id. It holds an ordered slot per
// expected chunk; the transfer is complete when every slot has been
// filled once.
type Session struct {
	Meta   protocol.FileMeta
	slots  [][]byte
	filled int
}

func newSession(meta protocol.FileMeta) *Session {
	return &Session{
		Meta:  meta,
		slots: make([][]byte, meta.TotalChunks),
	}
}

// store records a chunk's bytes at its slot. Out-of-range indices are
// rejected; in-order transport delivery is what guarantees each index
// arrives exactly once, the session does not re-verify it.
func (s *Session) store(index int, data []byte) bool {
	if index < 0 || index >= len(s.slots) {
		return false
	}
	s.slots[index] = data
	s.filled++
	return true
}

func (s *Session) complete() bool {
	return s.filled >= s.Meta.TotalChunks
}

// Progress reports filled chunks over expected chunks, in [0, 1].
func (s *Session) Progress() float64 {
	if s.Meta.TotalChunks == 0 {
		return 0
	}
	return float64(s.filled) / float64(s.Meta.TotalChunks)
}

// assemble concatenates the slots in index order into the final
// byte-exact payload.
func (s *Session) assemble() []byte {
	out := make([]byte, 0, s.Meta.Size)
	for _, chunk := range s.slots {
		out = append(out, chunk...)
	}
	return out
}
