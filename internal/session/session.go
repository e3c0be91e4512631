// Package session persists the last browsed directory and the last played
// track index across restarts.
package session

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Session is the persisted playback location.
type Session struct {
	Dir   string
	Index int
}

// Default is the session of a fresh install.
var Default = Session{Dir: "", Index: -1}

// Store reads and writes the session file: a plain UTF-8 text file whose first
// line is the directory and whose second line is the decimal index.
type Store struct {
	Path string
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the session. Default is returned if the file is absent or
// malformed.
func (s *Store) Load() Session {
	session, err := s.load()
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			log.Println("ignoring session file:", err)
		}
		return Default
	}
	return session
}

func (s *Store) load() (Session, error) {
	if s.Path == "" {
		return Default, errors.New("no session file configured")
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return Default, err
	}
	defer f.Close()

	var lines []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() && len(lines) < 2 {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return Default, errors.Wrap(err, "failed to read session")
	}

	if len(lines) < 2 {
		return Default, errors.Errorf("expected 2 lines, got %d", len(lines))
	}

	index, err := strconv.Atoi(strings.TrimSpace(lines[1]))
	if err != nil {
		return Default, errors.Wrap(err, "invalid index")
	}

	if index < -1 {
		return Default, errors.Errorf("invalid index %d", index)
	}

	return Session{
		Dir:   strings.TrimSuffix(lines[0], "\r"),
		Index: index,
	}, nil
}

// Save writes the session. Failing to save is not fatal, so errors are only
// logged.
func (s *Store) Save(session Session) {
	if err := s.save(session); err != nil {
		log.Println("failed to save session:", err)
	}
}

func (s *Store) save(session Session) error {
	if s.Path == "" {
		return nil
	}

	// The directory takes up exactly one line.
	if strings.Contains(session.Dir, "\n") || strings.HasSuffix(session.Dir, "\r") {
		return errors.Errorf("directory %q cannot be stored in a session file", session.Dir)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), os.ModePerm); err != nil {
		return errors.Wrap(err, "failed to make session directory")
	}

	// Replaced through a rename so the old session is never left truncated.
	tmp := s.Path + ".tmp"
	data := fmt.Sprintf("%s\n%d\n", session.Dir, session.Index)

	if err := os.WriteFile(tmp, []byte(data), 0o644); err != nil {
		return errors.Wrap(err, "failed to write session")
	}

	if err := os.Rename(tmp, s.Path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "failed to commit session")
	}

	return nil
}
