package albumart

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/pkg/errors"
)

// Source tells where an image came from.
type Source uint8

const (
	FromDefault Source = iota
	FromCoverArt
	FromThumbnail
)

func (s Source) String() string {
	switch s {
	case FromCoverArt:
		return "cover art"
	case FromThumbnail:
		return "thumbnail"
	default:
		return "default"
	}
}

// Image is an encoded image held in memory.
type Image struct {
	Data      []byte
	Extension string // jpeg, png, ...
	Source    Source
}

// IsValid returns true if the image has any data.
func (img Image) IsValid() bool {
	return len(img.Data) > 0
}

//go:embed default.svg
var defaultCover []byte

// Default is the built-in cover shown when a track has no art.
var Default = Image{
	Data:      defaultCover,
	Extension: "svg",
	Source:    FromDefault,
}

// Choose picks the cover art if there is one, else the thumbnail, else the
// built-in default.
func Choose(coverArt, thumbnail Image) Image {
	switch {
	case coverArt.IsValid():
		coverArt.Source = FromCoverArt
		return coverArt
	case thumbnail.IsValid():
		thumbnail.Source = FromThumbnail
		return thumbnail
	default:
		return Default
	}
}

// Stolen from: mpv/blob/master/player/external_files.c#L45, which was
// stolen from: vlc/blob/master/modules/meta_engine/folder.c#L40.
// Sorted by priority.
var coverFiles = []string{
	"AlbumArt.jpg",
	"Album.jpg",
	"cover.jpg",
	"cover.png",
	"front.jpg",
	"front.png",
	"Cover.jpg",

	"AlbumArtSmall.jpg",
	"Folder.jpg",
	"Folder.png",
	".folder.png",
	"thumb.jpg",

	"front.bmp",
	"front.gif",
	"cover.gif",
}

// FolderImage looks for a cover image file next to the given track. An invalid
// Image is returned if there is none.
func FolderImage(path string) Image {
	dir := filepath.Dir(path)

	for _, coverFile := range coverFiles {
		b, err := os.ReadFile(filepath.Join(dir, coverFile))
		if err != nil {
			continue
		}

		return Image{
			Data:      b,
			Extension: normalizeExt(filepath.Ext(coverFile)),
			Source:    FromThumbnail,
		}
	}

	return Image{}
}

// Tags holds the metadata read from a file's tags.
type Tags struct {
	Title  string
	Album  string
	Artist string
	// Cover is the embedded picture. It is invalid if the tags have none.
	Cover Image
}

// ReadTags reads the title, album, artist and embedded picture of the track in
// a single pass over the file.
func ReadTags(path string) (Tags, error) {
	m, err := readTags(path)
	if err != nil {
		return Tags{}, err
	}

	tags := Tags{
		Title:  m.Title(),
		Album:  m.Album(),
		Artist: m.Artist(),
	}

	if pic := m.Picture(); pic != nil {
		tags.Cover = Image{
			Data:      pic.Data,
			Extension: normalizeExt(pic.Ext),
			Source:    FromCoverArt,
		}
	}

	return tags, nil
}

func readTags(path string) (tag.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer f.Close()

	// Use a 1 minute timeout.
	f.SetDeadline(time.Now().Add(time.Minute))

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read tag")
	}

	return m, nil
}

func normalizeExt(ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	ext = strings.ToLower(ext)

	if ext == "jpg" {
		ext = "jpeg"
	}

	return ext
}
