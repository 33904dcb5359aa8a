package transfer

import (
	"log/slog"

	"github.com/shreyansh0727/datasync/internal/protocol"
)

// Artifact is a fully reassembled incoming file, surfaced to the caller
// once its last chunk lands.
type Artifact struct {
	Name   string
	Mime   string
	Sender string
	Data   []byte
}

// Receiver is the per-connection state machine for incoming transfers.
// It tracks any number of announced files by id, but holds at most one
// pending header at a time: a binary frame always belongs to the most
// recently received file-header on the connection. That single-slot
// register relies on the transport's in-order delivery and on senders
// never interleaving another frame between a header and its chunk; a
// second header arriving early silently re-aims the register, which is
// an accepted protocol risk rather than an error.
//
// A Receiver is driven by one connection's read loop and is not safe
// for concurrent use.
type Receiver struct {
	sessions map[string]*Session
	pending  *protocol.FileHeader
	logger   *slog.Logger

	onFile     func(Artifact)
	onMeta     func(protocol.FileMeta)
	onProgress func(fileID string, progress float64)
}

// NewReceiver returns a receiver that hands each completed file to
// onFile.
func NewReceiver(onFile func(Artifact), logger *slog.Logger) *Receiver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Receiver{
		sessions: make(map[string]*Session),
		logger:   logger,
		onFile:   onFile,
	}
}

// OnMeta registers a callback invoked when a new transfer is announced.
func (r *Receiver) OnMeta(fn func(protocol.FileMeta)) { r.onMeta = fn }

// OnProgress registers a callback invoked after each stored chunk with
// the transfer's fill ratio in [0, 1].
func (r *Receiver) OnProgress(fn func(fileID string, progress float64)) { r.onProgress = fn }

// HandleControl feeds one classified control frame into the state
// machine. Chat frames are ignored here; they belong to the caller.
func (r *Receiver) HandleControl(frame protocol.ControlFrame) {
	switch f := frame.(type) {
	case protocol.FileMeta:
		// A colliding file id is caller error; the fresh announcement
		// simply replaces the stale session.
		r.sessions[f.FileID] = newSession(f)
		r.logger.Debug("transfer announced",
			"fileId", f.FileID, "name", f.Name, "size", f.Size, "chunks", f.TotalChunks)
		if r.onMeta != nil {
			r.onMeta(f)
		}
		if r.onProgress != nil {
			r.onProgress(f.FileID, 0)
		}

	case protocol.FileHeader:
		r.pending = &f
	}
}

// HandleBinary consumes one binary frame. With no pending header, or a
// header naming an unannounced transfer, the bytes are discarded: the
// relay has no retransmission, so there is nothing useful to do with a
// desynchronized chunk and no error to surface.
func (r *Receiver) HandleBinary(data []byte) {
	header := r.pending
	if header == nil {
		r.logger.Debug("discarding binary frame without header", "bytes", len(data))
		return
	}
	r.pending = nil

	session, ok := r.sessions[header.FileID]
	if !ok {
		r.logger.Debug("discarding chunk for unknown transfer", "fileId", header.FileID)
		return
	}
	if !session.store(header.Index, data) {
		r.logger.Debug("discarding chunk with out-of-range index",
			"fileId", header.FileID, "idx", header.Index)
		return
	}

	if r.onProgress != nil {
		r.onProgress(header.FileID, session.Progress())
	}

	if session.complete() {
		delete(r.sessions, header.FileID)
		r.logger.Debug("transfer complete", "fileId", header.FileID, "name", session.Meta.Name)
		if r.onFile != nil {
			r.onFile(Artifact{
				Name:   session.Meta.Name,
				Mime:   session.Meta.Mime,
				Sender: session.Meta.Sender,
				Data:   session.assemble(),
			})
		}
	}
}

// InFlight reports how many announced transfers have not yet completed.
// Abandoned sessions count until the connection (and with it this
// receiver) is discarded; no timeout reaps them earlier.
func (r *Receiver) InFlight() int {
	return len(r.sessions)
}
