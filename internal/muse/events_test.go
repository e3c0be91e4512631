package muse

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"

	"github.com/diamondburned/kotone/internal/muse/albumart"
)

func TestReadMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.mp3")

	tag := id3v23(
		id3Frame("TIT2", append([]byte{0}, "Aozora Jumping Heart"...)),
		id3Frame("TALB", append([]byte{0}, "Aozora Jumping Heart"...)),
		id3Frame("TPE1", append([]byte{0}, "Aqours"...)),
		id3Frame("APIC", append([]byte("\x00image/png\x00\x03\x00"), "pngdata"...)),
	)

	if err := os.WriteFile(path, tag, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "cover.jpg"), []byte("jpegdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	expect := Metadata{
		Title:  "Aozora Jumping Heart",
		Album:  "Aozora Jumping Heart",
		Artist: "Aqours",
		CoverArt: albumart.Image{
			Data:      []byte("pngdata"),
			Extension: "png",
			Source:    albumart.FromCoverArt,
		},
		Thumbnail: albumart.Image{
			Data:      []byte("jpegdata"),
			Extension: "jpeg",
			Source:    albumart.FromThumbnail,
		},
	}

	if ineqs := deep.Equal(ReadMetadata(path), expect); ineqs != nil {
		t.Error("metadata mismatch:", ineqs)
	}
}

func TestReadMetadataUntagged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.mp3")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	if ineqs := deep.Equal(ReadMetadata(path), Metadata{}); ineqs != nil {
		t.Error("expected empty metadata:", ineqs)
	}
}

// id3v23 builds an ID3v2.3 tag out of the given frames, followed by padding.
func id3v23(frames ...[]byte) []byte {
	body := bytes.Join(frames, nil)
	size := len(body) + 10

	var buf bytes.Buffer
	buf.WriteString("ID3")
	buf.Write([]byte{3, 0, 0})
	// Synchsafe integer: 7 bits per byte.
	buf.Write([]byte{
		byte(size>>21&0x7f),
		byte(size>>14&0x7f),
		byte(size>>7&0x7f),
		byte(size&0x7f),
	})
	buf.Write(body)
	buf.Write(make([]byte, 10))
	return buf.Bytes()
}

func id3Frame(id string, data []byte) []byte {
	frame := make([]byte, 10, 10+len(data))
	copy(frame, id)
	binary.BigEndian.PutUint32(frame[4:], uint32(len(data)))
	return append(frame, data...)
}
