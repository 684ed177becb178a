// Package storage keeps an append-only transcript of relayed messages.
// The transcript is write-only from the relay's point of view: the store
// never reloads it, so a restart still begins with empty queues.
package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"agent-bridge/internal/relay"
)

// maxLine bounds a single transcript record.
const maxLine = 16 * 1024 * 1024

// Transcript is what a reader recovered from a transcript file.
type Transcript struct {
	Messages []relay.Message `json:"messages"`

	// Skipped counts lines that were not valid message records.
	Skipped int `json:"skipped"`
}

// ReadTranscript loads the file written by a FileRecorder. Unlike
// NewFileRecorder it never creates the file.
func ReadTranscript(path string) (Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return Transcript{}, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()
	return decodeTranscript(f)
}

func decodeTranscript(r io.Reader) (Transcript, error) {
	var t Transcript
	lines := bufio.NewScanner(r)
	lines.Buffer(nil, maxLine)
	for lines.Scan() {
		line := bytes.TrimSpace(lines.Bytes())
		if len(line) == 0 {
			continue
		}
		var m relay.Message
		if json.Unmarshal(line, &m) != nil || m.ID == 0 {
			t.Skipped++
			continue
		}
		t.Messages = append(t.Messages, m)
	}
	if err := lines.Err(); err != nil {
		return Transcript{}, fmt.Errorf("read transcript: %w", err)
	}
	return t, nil
}
