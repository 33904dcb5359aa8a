package protocol

import (
	"encoding/json"
	"errors"
	"testing"
)

// TestDecodeChat verifies that a chat frame decodes into its typed form
// with all fields intact.
func TestDecodeChat(t *testing.T) {
	frame, err := Decode([]byte(`{"type":"msg","sender":"alice","text":"hi"}`))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	chat, ok := frame.(Chat)
	if !ok {
		t.Fatalf("Decode() returned %T, want Chat", frame)
	}
	if chat.Sender != "alice" || chat.Text != "hi" {
		t.Errorf("Decode() = %+v, want sender=alice text=hi", chat)
	}
}

// TestDecodeFileMeta verifies the file-meta wire fields map onto the
// typed frame.
func TestDecodeFileMeta(t *testing.T) {
	raw := `{"type":"file-meta","name":"report.pdf","size":600000,"mime":"application/pdf","totalChunks":3,"fileId":"f-1","sender":"alice"}`
	frame, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	meta, ok := frame.(FileMeta)
	if !ok {
		t.Fatalf("Decode() returned %T, want FileMeta", frame)
	}
	if meta.Name != "report.pdf" || meta.Size != 600000 || meta.TotalChunks != 3 {
		t.Errorf("Decode() = %+v", meta)
	}
	if meta.FileID != "f-1" || meta.Mime != "application/pdf" || meta.Sender != "alice" {
		t.Errorf("Decode() = %+v", meta)
	}
}

// TestDecodeFileHeader verifies the file-header wire fields map onto
// the typed frame.
func TestDecodeFileHeader(t *testing.T) {
	frame, err := Decode([]byte(`{"type":"file-header","fileId":"f-1","idx":2,"total":3,"size":75712}`))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	header, ok := frame.(FileHeader)
	if !ok {
		t.Fatalf("Decode() returned %T, want FileHeader", frame)
	}
	if header.FileID != "f-1" || header.Index != 2 || header.Total != 3 || header.Size != 75712 {
		t.Errorf("Decode() = %+v", header)
	}
}

// TestDecodeUnknownType verifies that a valid JSON frame with an
// unrecognized type tag fails with ErrUnknownType so callers can drop
// it without killing the connection.
func TestDecodeUnknownType(t *testing.T) {
	_, err := Decode([]byte(`{"type":"presence","who":"bob"}`))
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("Decode() error = %v, want ErrUnknownType", err)
	}
}

// TestDecodeMalformed verifies that non-JSON input errors rather than
// panicking or silently succeeding.
func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Error("Decode() accepted malformed input")
	}
}

// TestEncodeRoundTrip verifies Encode output decodes back to an equal
// frame for each frame kind.
func TestEncodeRoundTrip(t *testing.T) {
	frames := []ControlFrame{
		NewChat("alice", "hello"),
		NewFileMeta("f-9", "a.bin", "application/octet-stream", 42, 1, "bob"),
		NewFileHeader("f-9", 0, 1, 42),
	}

	for _, in := range frames {
		data, err := Encode(in)
		if err != nil {
			t.Fatalf("Encode(%T) error: %v", in, err)
		}
		out, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode(%T) error: %v", in, err)
		}
		if out != in {
			t.Errorf("round trip %T: got %+v, want %+v", in, out, in)
		}
	}
}

// TestConstructorsSetTypeTags verifies the wire type tags the
// constructors fill in, since receivers dispatch on them.
func TestConstructorsSetTypeTags(t *testing.T) {
	data, err := Encode(NewChat("a", "b"))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if tag.Type != TypeChat {
		t.Errorf("chat frame tag = %q, want %q", tag.Type, TypeChat)
	}
}
