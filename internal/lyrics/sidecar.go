package lyrics

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrIO is wrapped by errors from reading an existing sidecar file.
var ErrIO = errors.New("failed to read lyrics")

var audioExtensions = []string{".mp3", ".wav", ".flac"}

// SidecarPath returns the path of the LRC file belonging to the given audio
// file: the same path with the audio extension replaced by .lrc. Paths without
// a known audio extension get .lrc appended.
func SidecarPath(audioPath string) string {
	ext := filepath.Ext(audioPath)

	for _, audioExt := range audioExtensions {
		if strings.EqualFold(ext, audioExt) {
			return strings.TrimSuffix(audioPath, ext) + ".lrc"
		}
	}

	return audioPath + ".lrc"
}

// Load loads the sidecar lyrics of the given audio file. A missing sidecar is
// not an error and yields the empty timeline. A sidecar that exists but cannot
// be read also yields the empty timeline, alongside an error wrapping ErrIO.
func Load(audioPath string) (*Timeline, error) {
	path := SidecarPath(audioPath)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Empty, nil
		}
		return Empty, errors.Wrapf(ErrIO, "%s: %v", path, err)
	}
	defer f.Close()

	t, err := parse(f)
	if err != nil {
		return Empty, errors.Wrapf(ErrIO, "%s: %v", path, err)
	}

	return t, nil
}
