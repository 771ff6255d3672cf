// Package picker acquires image paths: an in-terminal directory browser
// with fuzzy filtering, and a native OS file dialog.
package picker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// imageExtensions mirrors the formats the analysis server accepts, plus
// webp which previews locally.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// Entry is one image file offered by the browser.
type Entry struct {
	Name string
	Path string
	Size int64
}

type Action int

const (
	ActionNone Action = iota
	ActionMoved
	ActionSelected
	ActionCancelled
)

type Result struct {
	Action Action
	Entry  Entry
}

// Browser is the in-terminal file list with a fuzzy query. Methods are
// nil-safe so callers can hold a *Browser that is only set while the
// modal is open.
type Browser struct {
	dir      string
	entries  []Entry
	filtered []Entry
	query    string
	cursor   int
}

// NewBrowser lists image files directly under dir, sorted by name.
func NewBrowser(dir string) (*Browser, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	b := &Browser{dir: dir}
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		if !imageExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		var size int64
		if info, err := de.Info(); err == nil {
			size = info.Size()
		}
		b.entries = append(b.entries, Entry{
			Name: name,
			Path: filepath.Join(dir, name),
			Size: size,
		})
	}
	sort.Slice(b.entries, func(i, j int) bool { return b.entries[i].Name < b.entries[j].Name })
	b.rebuildFiltered()
	return b, nil
}

func (b *Browser) Dir() string {
	if b == nil {
		return ""
	}
	return b.dir
}

func (b *Browser) Query() string {
	if b == nil {
		return ""
	}
	return b.query
}

func (b *Browser) Cursor() int {
	if b == nil {
		return 0
	}
	return b.cursor
}

// Entries returns the filtered view, best match first.
func (b *Browser) Entries() []Entry {
	if b == nil {
		return nil
	}
	return append([]Entry(nil), b.filtered...)
}

// SetQuery re-ranks the list and clamps the cursor.
func (b *Browser) SetQuery(q string) {
	if b == nil {
		return
	}
	b.query = q
	b.rebuildFiltered()
}

// Current returns the entry under the cursor.
func (b *Browser) Current() (Entry, bool) {
	if b == nil || len(b.filtered) == 0 {
		return Entry{}, false
	}
	idx := b.cursor
	if idx >= len(b.filtered) {
		idx = len(b.filtered) - 1
	}
	return b.filtered[idx], true
}

// HandleKey drives the browser from raw key names the way the rest of the
// update loop does.
func (b *Browser) HandleKey(keyName string) Result {
	if b == nil {
		return Result{Action: ActionNone}
	}
	switch keyName {
	case "up", "ctrl+p":
		if b.cursor > 0 {
			b.cursor--
			return Result{Action: ActionMoved}
		}
		return Result{Action: ActionNone}
	case "down", "ctrl+n":
		if b.cursor < len(b.filtered)-1 {
			b.cursor++
			return Result{Action: ActionMoved}
		}
		return Result{Action: ActionNone}
	case "enter":
		entry, ok := b.Current()
		if !ok {
			return Result{Action: ActionNone}
		}
		return Result{Action: ActionSelected, Entry: entry}
	case "esc":
		return Result{Action: ActionCancelled}
	case "backspace":
		if b.query != "" {
			b.SetQuery(b.query[:len(b.query)-1])
			return Result{Action: ActionMoved}
		}
		return Result{Action: ActionNone}
	default:
		if len([]rune(keyName)) == 1 {
			b.SetQuery(b.query + keyName)
			return Result{Action: ActionMoved}
		}
		return Result{Action: ActionNone}
	}
}

func (b *Browser) rebuildFiltered() {
	q := strings.ToLower(strings.TrimSpace(b.query))
	if q == "" {
		b.filtered = append([]Entry(nil), b.entries...)
	} else {
		type scored struct {
			entry Entry
			score int
		}
		var ranked []scored
		for _, e := range b.entries {
			s, ok := matchScore(q, strings.ToLower(e.Name))
			if !ok {
				continue
			}
			ranked = append(ranked, scored{entry: e, score: s})
		}
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score < ranked[j].score })
		b.filtered = b.filtered[:0]
		for _, r := range ranked {
			b.filtered = append(b.filtered, r.entry)
		}
	}
	if b.cursor >= len(b.filtered) {
		b.cursor = 0
	}
}

// matchScore ranks substring hits above near misses. Prefix matches win,
// then any substring, then names within a small edit distance of the query.
func matchScore(query, name string) (int, bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	switch {
	case strings.HasPrefix(base, query):
		return 0, true
	case strings.Contains(name, query):
		return 1, true
	}
	dist := levenshtein.ComputeDistance(query, base)
	if dist <= len(query)/2 {
		return 2 + dist, true
	}
	return 0, false
}
