package albumart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"
)

func TestChoose(t *testing.T) {
	cover := Image{Data: []byte("cover"), Extension: "png"}
	thumb := Image{Data: []byte("thumb"), Extension: "jpeg"}

	tests := []struct {
		name   string
		cover  Image
		thumb  Image
		expect Image
	}{
		{
			name:   "cover wins",
			cover:  cover,
			thumb:  thumb,
			expect: Image{Data: []byte("cover"), Extension: "png", Source: FromCoverArt},
		},
		{
			name:   "thumbnail fallback",
			thumb:  thumb,
			expect: Image{Data: []byte("thumb"), Extension: "jpeg", Source: FromThumbnail},
		},
		{
			name:   "default",
			expect: Default,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Choose(test.cover, test.thumb)
			if ineqs := deep.Equal(got, test.expect); ineqs != nil {
				t.Error("image mismatch:", ineqs)
			}
		})
	}

	if !Default.IsValid() {
		t.Error("default cover is empty")
	}
}

func TestFolderImage(t *testing.T) {
	dir := t.TempDir()
	track := filepath.Join(dir, "track.flac")

	if img := FolderImage(track); img.IsValid() {
		t.Fatal("found an image in an empty directory")
	}

	if err := os.WriteFile(filepath.Join(dir, "cover.jpg"), []byte("jpeg data"), 0o644); err != nil {
		t.Fatal(err)
	}

	img := FolderImage(track)
	if string(img.Data) != "jpeg data" || img.Extension != "jpeg" {
		t.Errorf("unexpected image %q (%s)", img.Data, img.Extension)
	}
}

func TestReadTagsUntagged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.mp3")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadTags(path); err == nil {
		t.Error("expected an error reading tags from garbage")
	}
}
