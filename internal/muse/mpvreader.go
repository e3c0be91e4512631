package muse

import (
	"bufio"
	"io"
	"log"
	"strings"
)

// mpvReader relays mpv's stderr into the log, one line at a time.
type mpvReader struct {
	wp  *io.PipeWriter
	rp  *io.PipeReader
	log *log.Logger
}

func newMpvReader(output io.Writer) *mpvReader {
	rp, wp := io.Pipe()
	return &mpvReader{
		wp,
		rp,
		log.New(output, "[mpv] ", log.LstdFlags),
	}
}

func (r *mpvReader) Start() {
	go func() {
		var scanner = bufio.NewScanner(r.rp)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			r.log.Println(line)
		}
	}()
}

func (r *mpvReader) Write(b []byte) (int, error) {
	return r.wp.Write(b)
}

func (r *mpvReader) Close() error {
	r.wp.Close()
	r.rp.Close()
	return nil
}
