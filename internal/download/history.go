package download

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// History is the append-only download log kept at
// <downloads>/download_log.txt.
//
// Each line records one status change:
//
//	2026-08-29 14:03:11 - Channel 123456 - Message 789: 789_photo_42.jpg - Finished
//
// On load the "Finished" entries for the current channel become a
// skip set, so media that was fully downloaded in an earlier run is
// never transferred again even if the file was moved away. Malformed
// lines are ignored.
//
// A nil *History is valid and disables both recording and skipping.
type History struct {
	mu        sync.Mutex
	file      *os.File
	channelID int64
	finished  map[int]struct{}
}

// LoadHistory opens (creating if needed) the log at path and parses the
// finished-message set for channelID.
func LoadHistory(path string, channelID int64) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}

	h := &History{
		file:      file,
		channelID: channelID,
		finished:  make(map[int]struct{}),
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		cid, msgID, status, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if status == "Finished" && cid == channelID {
			h.finished[msgID] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		file.Close()
		return nil, err
	}

	return h, nil
}

// IsFinished reports whether msgID was recorded as Finished for this
// channel in a previous run or earlier in this one.
func (h *History) IsFinished(msgID int) bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.finished[msgID]
	return ok
}

// Append writes one status line. Write errors are swallowed: a broken
// history log must not fail a download that already happened.
func (h *History) Append(msgID int, filename, status string) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	line := fmt.Sprintf("%s - Channel %d - Message %d: %s - %s\n",
		time.Now().Format("2006-01-02 15:04:05"), h.channelID, msgID, filename, status)
	_, _ = h.file.WriteString(line)

	if status == "Finished" {
		h.finished[msgID] = struct{}{}
	}
}

// Close releases the underlying log file.
func (h *History) Close() error {
	if h == nil {
		return nil
	}
	return h.file.Close()
}

// parseLine splits one log line into its channel ID, message ID and
// status. Lines that don't match the format report ok=false.
func parseLine(line string) (channelID int64, msgID int, status string, ok bool) {
	parts := strings.Split(strings.TrimSpace(line), " - ")
	if len(parts) != 4 {
		return 0, 0, "", false
	}

	cid, err := strconv.ParseInt(strings.TrimPrefix(parts[1], "Channel "), 10, 64)
	if err != nil {
		return 0, 0, "", false
	}

	msgPart, _, found := strings.Cut(parts[2], ": ")
	if !found {
		return 0, 0, "", false
	}
	mid, err := strconv.Atoi(strings.TrimPrefix(msgPart, "Message "))
	if err != nil {
		return 0, 0, "", false
	}

	return cid, mid, parts[3], true
}
