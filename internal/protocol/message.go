// Package protocol defines the wire vocabulary shared by the relay
// server and its clients: typed JSON control frames carried as WebSocket
// text messages, and opaque binary frames carrying file chunk bytes.
//
// A binary frame has no self-describing identifier; its meaning is fixed
// by the most recent FileHeader received on the same connection.
package protocol

// Control frame type tags as they appear on the wire.
const (
	TypeChat       = "msg"
	TypeFileMeta   = "file-meta"
	TypeFileHeader = "file-header"
)

// ControlFrame is implemented by every typed text frame.
type ControlFrame interface {
	// ControlType returns the frame's wire type tag.
	ControlType() string
}

// Chat is a plain text message from one room member to the others.
type Chat struct {
	Type   string `json:"type"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// FileMeta announces an incoming file transfer. It is sent once, before
// any chunk of the transfer, and carries everything the receiver needs
// to allocate a session: the sender-generated FileID, the final file
// name and MIME type, the total byte size, and the exact chunk count.
type FileMeta struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	Mime        string `json:"mime"`
	TotalChunks int    `json:"totalChunks"`
	FileID      string `json:"fileId"`
	Sender      string `json:"sender"`
}

// FileHeader describes exactly one binary frame: the very next binary
// message on the same connection carries Size bytes of chunk Index of
// the transfer identified by FileID.
type FileHeader struct {
	Type   string `json:"type"`
	FileID string `json:"fileId"`
	Index  int    `json:"idx"`
	Total  int    `json:"total"`
	Size   int    `json:"size"`
}

func (Chat) ControlType() string       { return TypeChat }
func (FileMeta) ControlType() string   { return TypeFileMeta }
func (FileHeader) ControlType() string { return TypeFileHeader }

// NewChat builds a chat frame with the type tag filled in.
func NewChat(sender, text string) Chat {
	return Chat{Type: TypeChat, Sender: sender, Text: text}
}

// NewFileMeta builds a file-meta frame with the type tag filled in.
func NewFileMeta(fileID, name, mime string, size int64, totalChunks int, sender string) FileMeta {
	return FileMeta{
		Type:        TypeFileMeta,
		Name:        name,
		Size:        size,
		Mime:        mime,
		TotalChunks: totalChunks,
		FileID:      fileID,
		Sender:      sender,
	}
}

// NewFileHeader builds a file-header frame with the type tag filled in.
func NewFileHeader(fileID string, index, total, size int) FileHeader {
	return FileHeader{Type: TypeFileHeader, FileID: fileID, Index: index, Total: total, Size: size}
}
