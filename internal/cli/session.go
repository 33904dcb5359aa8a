package cli

import (
	"log/slog"

	"github.com/shreyansh0727/datasync/internal/client"
	"github.com/shreyansh0727/datasync/internal/config"
	"github.com/shreyansh0727/datasync/internal/files"
	"github.com/shreyansh0727/datasync/internal/protocol"
	"github.com/shreyansh0727/datasync/internal/transfer"
	"github.com/shreyansh0727/datasync/internal/ui"

	"github.com/gorilla/websocket"
)

// roomSession dispatches a connection's inbound frames: chat lines to
// the terminal, transfer frames to the receiver, reassembled files to
// disk.
type roomSession struct {
	conn     *client.Conn
	cfg      *config.Config
	receiver *transfer.Receiver
	showChat bool

	// received counts completed files; stopAfter > 0 ends the session
	// once that many arrived.
	received  int
	stopAfter int
}

func newRoomSession(conn *client.Conn, cfg *config.Config, showChat bool, stopAfter int) *roomSession {
	s := &roomSession{
		conn:      conn,
		cfg:       cfg,
		showChat:  showChat,
		stopAfter: stopAfter,
	}

	s.receiver = transfer.NewReceiver(s.saveArtifact, slog.Default())
	s.receiver.OnMeta(func(meta protocol.FileMeta) {
		ui.PrintInfof("%s is sending %s (%s, %d chunks)",
			meta.Sender, meta.Name, ui.FormatBytes(meta.Size), meta.TotalChunks)
	})

	return s
}

func (s *roomSession) saveArtifact(a transfer.Artifact) {
	path, err := files.WriteArtifact(s.cfg.OutputDir, a.Name, a.Data)
	if err != nil {
		ui.PrintErrorf("failed to save %s: %v", a.Name, err)
		return
	}
	s.received++
	ui.PrintSuccessf("received %s from %s -> %s", a.Name, a.Sender, path)
}

// run consumes frames until the connection drops or enough files
// arrived. Unparseable or unknown control frames are logged and
// skipped; the connection stays open.
func (s *roomSession) run() {
	for f := range s.conn.Incoming() {
		switch f.Type {
		case websocket.BinaryMessage:
			s.receiver.HandleBinary(f.Data)

		case websocket.TextMessage:
			frame, err := protocol.Decode(f.Data)
			if err != nil {
				slog.Debug("ignoring malformed frame", "err", err)
				continue
			}
			if chat, ok := frame.(protocol.Chat); ok {
				if s.showChat {
					ui.PrintChat(chat.Sender, chat.Text)
				}
				continue
			}
			s.receiver.HandleControl(frame)
		}

		if s.stopAfter > 0 && s.received >= s.stopAfter {
			return
		}
	}
}
