// Package archive keeps finished games on disk as CSA files, one directory
// per play date, so they can be opened directly by shogi GUIs.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mito-shogi/wars-kif-service/internal/timeutil"
)

const defaultRetentionDays = 30

// Writer persists CSA files and the manifest, pruning dates past retention.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time

	mu sync.Mutex
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// Has reports whether the game is already archived under date.
func (w *Writer) Has(date, gameID string) bool {
	if w == nil || w.basePath == "" || date == "" || gameID == "" {
		return false
	}
	_, err := os.Stat(GamePath(w.basePath, date, gameID))
	return err == nil
}

// WriteGame stores text for gameID under date (YYYY-MM-DD, JST) and prunes
// old dates. Rewriting identical content only refreshes the manifest.
func (w *Writer) WriteGame(date, gameID, text string) error {
	if w == nil {
		return errors.New("archive writer not configured")
	}
	if date == "" || gameID == "" {
		return errors.New("archive date and game id required")
	}
	if strings.ContainsAny(gameID, `/\`) || strings.Contains(gameID, "..") {
		return fmt.Errorf("archive: invalid game id %q", gameID)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	target := GamePath(w.basePath, date, gameID)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	data := []byte(text)
	if existing, err := os.ReadFile(target); err != nil || !bytes.Equal(existing, data) {
		if err := writeAtomic(target, data); err != nil {
			return err
		}
	}
	return w.updateManifest()
}

func (w *Writer) updateManifest() error {
	m, _ := readManifest(filepath.Join(w.basePath, manifestName), w.retentionDays)

	dates, err := w.listDates()
	if err != nil {
		return err
	}
	kept, err := w.prune(dates)
	if err != nil {
		return err
	}
	count := 0
	for _, d := range kept {
		entries, err := os.ReadDir(filepath.Join(w.basePath, "games", d))
		if err != nil {
			return err
		}
		for _, e := range entries {
			if !e.IsDir() && filepath.Ext(e.Name()) == ".csa" {
				count++
			}
		}
	}

	m.Games.Dates = kept
	m.Games.Count = count
	m.Games.LastWritten = w.now().UTC()
	m.Retention.Days = w.retentionDays
	return writeManifest(w.basePath, m)
}

func (w *Writer) listDates() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(w.basePath, "games"))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var dates []string
	for _, e := range entries {
		if e.IsDir() {
			dates = append(dates, e.Name())
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (w *Writer) prune(dates []string) ([]string, error) {
	now := w.now().In(timeutil.JST)
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, timeutil.JST).AddDate(0, 0, -w.retentionDays)
	keep := []string{}
	for _, d := range dates {
		parsed, err := timeutil.ParseJST(time.DateOnly, d)
		if err != nil {
			keep = append(keep, d)
			continue
		}
		if parsed.Before(cutoff) {
			if err := os.RemoveAll(filepath.Join(w.basePath, "games", d)); err != nil {
				return nil, err
			}
			continue
		}
		keep = append(keep, d)
	}
	return keep, nil
}
