package transfer

import (
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/shreyansh0727/datasync/internal/protocol"
)

// Conn is the sender's view of a room connection. SendControl and
// SendBinary must preserve call order on the wire; the chunk protocol
// has no sequence numbers and depends on each header being immediately
// followed by its payload.
type Conn interface {
	SendControl(protocol.ControlFrame) error
	SendBinary([]byte) error
}

// FileSender streams files into a room as meta/header/chunk frame
// sequences.
type FileSender struct {
	conn      Conn
	sender    string
	chunkSize int
}

// NewFileSender returns a sender that labels its transfers with the
// given sender name. A non-positive chunkSize selects DefaultChunkSize.
func NewFileSender(conn Conn, sender string, chunkSize int) *FileSender {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &FileSender{conn: conn, sender: sender, chunkSize: chunkSize}
}

// SendFile opens the file at path and streams it. onProgress, if not
// nil, is called after each chunk with the cumulative bytes sent; the
// values are non-decreasing and end at the file size. It returns the
// transfer's generated file id.
func (s *FileSender) SendFile(path string, onProgress func(sent int64)) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", NewFileError("open", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return "", NewFileError("stat", path, err)
	}

	meta := FileMetaFor(stat.Name(), stat.Size())
	return s.Send(file, meta.Name, meta.Mime, meta.Size, onProgress)
}

// Send streams size bytes from r as one transfer. The frame sequence is
// one file-meta, then for each chunk in index order a file-header
// immediately followed by the chunk's binary frame, with nothing else
// interleaved from this sender. There is no resume: if the connection
// fails mid-transfer the caller restarts from chunk zero under a new
// file id.
func (s *FileSender) Send(r io.Reader, name, mime string, size int64, onProgress func(sent int64)) (string, error) {
	if size <= 0 {
		return "", NewFileError("send", name, ErrInvalidFile)
	}

	chunkSize := int64(s.chunkSize)
	totalChunks := int((size + chunkSize - 1) / chunkSize)
	fileID := uuid.NewString()

	meta := protocol.NewFileMeta(fileID, name, mime, size, totalChunks, s.sender)
	if err := s.conn.SendControl(meta); err != nil {
		return fileID, NewFileError("announce", name, err)
	}

	var sent int64
	for idx := 0; idx < totalChunks; idx++ {
		n := chunkSize
		if remaining := size - sent; remaining < n {
			n = remaining
		}

		// A fresh slice per chunk: the connection queues frames, so
		// the bytes must stay untouched until written out.
		chunk := make([]byte, n)
		if _, err := io.ReadFull(r, chunk); err != nil {
			return fileID, NewFileError("read chunk", name, ErrShortRead)
		}

		header := protocol.NewFileHeader(fileID, idx, totalChunks, len(chunk))
		if err := s.conn.SendControl(header); err != nil {
			return fileID, NewFileError("send header", name, err)
		}
		if err := s.conn.SendBinary(chunk); err != nil {
			return fileID, NewFileError("send chunk", name, err)
		}

		sent += n
		if onProgress != nil {
			onProgress(sent)
		}
	}

	return fileID, nil
}

// ChunkCount returns how many chunks a file of the given size splits
// into at the given chunk size.
func ChunkCount(size int64, chunkSize int) int {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return int((size + int64(chunkSize) - 1) / int64(chunkSize))
}
