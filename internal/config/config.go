// Package config loads the player's settings from the environment and an
// optional .env file.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

// Config holds the player's settings.
type Config struct {
	MusicDir    string // directory opened when there is no session
	SessionFile string // where the last session is kept
	MPV         string // mpv executable
	Volume      int    // initial volume in [0, 100]
	MPRIS       bool   // export the player over DBus
	Watch       bool   // reload the directory when it changes
}

const (
	musicDir = "Music"
	mpv      = "mpv"
	volume   = 50
)

// Load reads the configuration from the environment, after loading the given
// .env files. With no files, .env in the working directory is tried. Variables
// already set in the environment take precedence over the files.
func Load(files ...string) *Config {
	if err := godotenv.Load(files...); err != nil && (len(files) > 0 || !os.IsNotExist(err)) {
		log.Println("failed to load .env:", err)
	}

	cfg := &Config{
		MusicDir:    os.Getenv("KOTONE_MUSIC_DIR"),
		SessionFile: os.Getenv("KOTONE_SESSION_FILE"),
		MPV:         os.Getenv("KOTONE_MPV"),
		Volume:      parseIntOrDefault("KOTONE_VOLUME", volume),
		MPRIS:       parseBoolOrDefault("KOTONE_MPRIS", true),
		Watch:       parseBoolOrDefault("KOTONE_WATCH", false),
	}

	if cfg.MusicDir == "" {
		cfg.MusicDir = musicDir
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = defaultSessionFile()
	}
	if cfg.MPV == "" {
		cfg.MPV = mpv
	}

	cfg.Volume = lo.Clamp(cfg.Volume, 0, 100)

	return cfg
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		log.Println("failed to find config directory, using the working directory:", err)
		dir = "."
	}

	return filepath.Join(dir, "kotone", "session.txt")
}

func parseIntOrDefault(env string, defaultValue int) int {
	s := os.Getenv(env)
	if s == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Warning: Could not parse %s=%q, using default %d.", env, s, defaultValue)
		return defaultValue
	}

	return i
}

func parseBoolOrDefault(env string, defaultValue bool) bool {
	s := os.Getenv(env)
	if s == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Printf("Warning: Could not parse %s=%q, using default %v.", env, s, defaultValue)
		return defaultValue
	}

	return b
}
