package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"domainhc/internal/heartbeat"
)

// SyncHeader introduces entries appended by Sync.
const SyncHeader = "# --- Checks Added by Sync Command ---"

// ClearedHeader replaces the file content after RemoveAll.
const ClearedHeader = "# Domain file cleared by remove-all command"

// IsSubdomain reports whether name has more than one dot. Multi-label public
// suffixes such as co.uk are misclassified.
func IsSubdomain(name string) bool {
	return strings.Count(name, ".") > 1
}

// Entry is one domain line: `<domain> [s:<id>] [e:<id>]`.
type Entry struct {
	Name     string
	StatusID string
	ExpiryID string
}

// ID returns the check id of the given kind.
func (e Entry) ID(kind heartbeat.Kind) string {
	if kind == heartbeat.KindExpiry {
		return e.ExpiryID
	}
	return e.StatusID
}

// SetID records the check id of the given kind.
func (e *Entry) SetID(kind heartbeat.Kind, id string) {
	if kind == heartbeat.KindExpiry {
		e.ExpiryID = id
	} else {
		e.StatusID = id
	}
}

// HasIDs reports whether at least one check id is present.
func (e Entry) HasIDs() bool {
	return e.StatusID != "" || e.ExpiryID != ""
}

func (e Entry) String() string {
	parts := []string{e.Name}
	if e.StatusID != "" {
		parts = append(parts, "s:"+e.StatusID)
	}
	if e.ExpiryID != "" {
		parts = append(parts, "e:"+e.ExpiryID)
	}
	return strings.Join(parts, " ")
}

type line struct {
	text  string
	entry *Entry
	dirty bool
}

// Document is a parsed registry file. Comment and blank lines are kept as
// read, minus trailing whitespace; untouched domain lines render unchanged.
type Document struct {
	lines []*line
}

// Parse reads registry file content.
func Parse(content string) *Document {
	doc := &Document{}
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return doc
	}
	for _, raw := range strings.Split(content, "\n") {
		text := strings.TrimRight(raw, " \t\r")
		l := &line{text: text}
		trimmed := strings.TrimSpace(text)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			l.entry = parseEntry(trimmed)
		}
		doc.lines = append(doc.lines, l)
	}
	return doc
}

func parseEntry(s string) *Entry {
	fields := strings.Fields(s)
	e := &Entry{Name: fields[0]}
	for _, f := range fields[1:] {
		switch {
		case strings.HasPrefix(f, "s:"):
			e.StatusID = f[2:]
		case strings.HasPrefix(f, "e:"):
			e.ExpiryID = f[2:]
		}
	}
	return e
}

// Load reads and parses path. A missing file yields an empty document and an
// error matching fs.ErrNotExist.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Document{}, fmt.Errorf("domain file %s: %w", path, err)
		}
		return nil, fmt.Errorf("read domain file %s: %w", path, err)
	}
	return Parse(string(raw)), nil
}

// Save writes the document to path, replacing it.
func (d *Document) Save(path string) ([]Entry, error) {
	out, dropped := d.Render()
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return dropped, fmt.Errorf("write domain file %s: %w", path, err)
	}
	return dropped, nil
}

// Render returns the file content. Entries without any id are left out and
// returned as dropped.
func (d *Document) Render() (string, []Entry) {
	var b strings.Builder
	var dropped []Entry
	for _, l := range d.lines {
		switch {
		case l.entry == nil:
			b.WriteString(l.text)
		case !l.entry.HasIDs():
			dropped = append(dropped, *l.entry)
			continue
		case l.dirty:
			b.WriteString(l.entry.String())
		default:
			b.WriteString(l.text)
		}
		b.WriteByte('\n')
	}
	return b.String(), dropped
}

// Entries returns copies of every domain line in file order.
func (d *Document) Entries() []Entry {
	var out []Entry
	for _, l := range d.lines {
		if l.entry != nil {
			out = append(out, *l.entry)
		}
	}
	return out
}

// Valid returns the entries with at least one id, and the names of domain
// lines skipped for having none.
func (d *Document) Valid() (valid []Entry, skipped []string) {
	for _, e := range d.Entries() {
		if e.HasIDs() {
			valid = append(valid, e)
		} else {
			skipped = append(skipped, e.Name)
		}
	}
	return valid, skipped
}

// Duplicates returns names that appear on more than one domain line.
func (d *Document) Duplicates() []string {
	seen := map[string]int{}
	var dups []string
	for _, e := range d.Entries() {
		seen[e.Name]++
		if seen[e.Name] == 2 {
			dups = append(dups, e.Name)
		}
	}
	return dups
}

// Has reports whether a domain line for name exists.
func (d *Document) Has(name string) bool {
	for _, l := range d.lines {
		if l.entry != nil && l.entry.Name == name {
			return true
		}
	}
	return false
}

// Update calls fn on every entry; entries for which fn returns true are
// rendered from their fields on the next Render.
func (d *Document) Update(fn func(e *Entry) bool) bool {
	changed := false
	for _, l := range d.lines {
		if l.entry != nil && fn(l.entry) {
			l.dirty = true
			changed = true
		}
	}
	return changed
}

// Append adds an entry at the end of the document.
func (d *Document) Append(e Entry) {
	d.lines = append(d.lines, &line{entry: &e, dirty: true})
}

// AppendSection adds a blank line, a comment header and the entries.
func (d *Document) AppendSection(header string, entries []Entry) {
	if len(entries) == 0 {
		return
	}
	d.lines = append(d.lines, &line{}, &line{text: header})
	for _, e := range entries {
		d.Append(e)
	}
}

// Remove deletes every domain line for name and returns how many were removed.
func (d *Document) Remove(name string) int {
	kept := d.lines[:0]
	removed := 0
	for _, l := range d.lines {
		if l.entry != nil && l.entry.Name == name {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	d.lines = kept
	return removed
}

// ReferencedIDs returns every check id present in the document.
func (d *Document) ReferencedIDs() map[string]struct{} {
	ids := map[string]struct{}{}
	for _, e := range d.Entries() {
		for _, kind := range heartbeat.Kinds {
			if id := e.ID(kind); id != "" {
				ids[id] = struct{}{}
			}
		}
	}
	return ids
}
