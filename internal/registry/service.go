// Package registry reconciles the local domain file with the remote check inventory.
package registry

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"domainhc/internal/heartbeat"
	"domainhc/pkg/platform/sentinel"
)

// ConfirmToken is the answer that authorizes a destructive removal.
const ConfirmToken = "YES"

// CheckAPI is the subset of the heartbeat client used for reconciliation.
type CheckAPI interface {
	CreateCheck(ctx context.Context, name string, kind heartbeat.Kind) (heartbeat.Check, error)
	DeleteCheck(ctx context.Context, id string) error
	ListChecks(ctx context.Context) ([]heartbeat.Check, error)
}

// Prompter asks the operator a question and returns the typed answer.
type Prompter interface {
	Prompt(question string) (string, error)
}

// Mode restricts which check kinds create operations may add.
type Mode int

const (
	ModeBoth Mode = iota
	ModeStatusOnly
	ModeExpiryOnly
)

func (m Mode) wants(kind heartbeat.Kind, name string) bool {
	switch kind {
	case heartbeat.KindStatus:
		return m != ModeExpiryOnly
	case heartbeat.KindExpiry:
		return m != ModeStatusOnly && !IsSubdomain(name)
	}
	return false
}

// Summary counts the outcome of a batch operation.
type Summary struct {
	Created   int
	Deleted   int
	Failed    int
	Added     int
	Dropped   int
	Rewritten bool
}

// Service owns the domain file at path.
type Service struct {
	path     string
	api      CheckAPI
	prompter Prompter
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithPrompter sets the confirmation prompter.
func WithPrompter(p Prompter) Option {
	return func(s *Service) {
		s.prompter = p
	}
}

// New creates a Service.
func New(path string, api CheckAPI, opts ...Option) (*Service, error) {
	if path == "" {
		return nil, errors.New("domain file path is required")
	}
	if api == nil {
		return nil, errors.New("check api is required")
	}
	s := &Service{
		path:   path,
		api:    api,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path is the domain file location.
func (s *Service) Path() string { return s.path }

// Load reads the domain file and logs duplicate domain lines. A missing file
// is logged and treated as empty.
func (s *Service) Load(ctx context.Context) (*Document, error) {
	doc, err := Load(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.WarnContext(ctx, "domain file not found", "path", s.path)
		return doc, nil
	}
	if err != nil {
		return nil, err
	}
	for _, name := range doc.Duplicates() {
		s.logger.WarnContext(ctx, "duplicate domain line, first entry wins", "domain", name)
	}
	return doc, nil
}

func (s *Service) save(ctx context.Context, doc *Document, sum *Summary) error {
	dropped, err := doc.Save(s.path)
	for _, e := range dropped {
		s.logger.WarnContext(ctx, "dropping domain line without check ids", "domain", e.Name)
	}
	sum.Dropped += len(dropped)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to rewrite domain file", "path", s.path, "error", err)
		return err
	}
	sum.Rewritten = true
	s.logger.InfoContext(ctx, "domain file rewritten", "path", s.path)
	return nil
}

// ensure creates the missing checks of e permitted by mode.
func (s *Service) ensure(ctx context.Context, e *Entry, mode Mode, sum *Summary) bool {
	changed := false
	for _, kind := range heartbeat.Kinds {
		if e.ID(kind) != "" || !mode.wants(kind, e.Name) {
			continue
		}
		check, err := s.api.CreateCheck(ctx, e.Name, kind)
		if err != nil {
			sum.Failed++
			s.logger.ErrorContext(ctx, "failed to create check", "domain", e.Name, "kind", string(kind), "error", err)
			continue
		}
		e.SetID(kind, check.ID)
		sum.Created++
		changed = true
		s.logger.InfoContext(ctx, "check created",
			"event", "check_created",
			"domain", e.Name,
			"kind", string(kind),
			"check_id", check.ID,
		)
	}
	return changed
}

// CreateFromFile creates the missing checks for every domain line and
// rewrites the file when at least one id was added.
func (s *Service) CreateFromFile(ctx context.Context, mode Mode) (Summary, error) {
	var sum Summary
	doc, err := s.Load(ctx)
	if err != nil {
		return sum, err
	}
	if len(doc.Entries()) == 0 {
		s.logger.InfoContext(ctx, "domain file is empty, nothing to create")
		return sum, nil
	}

	seen := map[string]bool{}
	changed := doc.Update(func(e *Entry) bool {
		if seen[e.Name] {
			return false
		}
		seen[e.Name] = true
		return s.ensure(ctx, e, mode, &sum)
	})
	if !changed {
		s.logger.InfoContext(ctx, "no new check ids needed, domain file unchanged")
		return sum, nil
	}
	return sum, s.save(ctx, doc, &sum)
}

// CreateDomain ensures the checks for a single domain, appending it to the
// file when absent.
func (s *Service) CreateDomain(ctx context.Context, name string, mode Mode) (Summary, error) {
	var sum Summary
	doc, err := s.Load(ctx)
	if err != nil {
		return sum, err
	}

	var changed bool
	if doc.Has(name) {
		done := false
		changed = doc.Update(func(e *Entry) bool {
			if done || e.Name != name {
				return false
			}
			done = true
			return s.ensure(ctx, e, mode, &sum)
		})
	} else {
		e := Entry{Name: name}
		if s.ensure(ctx, &e, mode, &sum) {
			doc.Append(e)
			changed = true
		} else {
			s.logger.ErrorContext(ctx, "failed to create any checks for new domain", "domain", name)
		}
	}

	if !changed {
		s.logger.InfoContext(ctx, "no updates needed, domain file unchanged", "domain", name)
		return sum, nil
	}
	return sum, s.save(ctx, doc, &sum)
}

// kindFromTags classifies a remote check by tag substring; ok is false when
// neither kind matched.
func kindFromTags(c heartbeat.Check) (heartbeat.Kind, bool) {
	raw := heartbeat.JoinTags(c.Tags)
	switch {
	case strings.Contains(raw, string(heartbeat.KindStatus)):
		return heartbeat.KindStatus, true
	case strings.Contains(raw, string(heartbeat.KindExpiry)):
		return heartbeat.KindExpiry, true
	}
	return heartbeat.KindStatus, false
}

// Sync drops ids the service no longer knows and records remote checks the
// file does not reference.
func (s *Service) Sync(ctx context.Context) (Summary, error) {
	var sum Summary
	checks, err := s.api.ListChecks(ctx)
	if err != nil {
		return sum, fmt.Errorf("list checks: %w", err)
	}
	remote := make(map[string]heartbeat.Check, len(checks))
	for _, c := range checks {
		remote[c.ID] = c
	}
	s.logger.InfoContext(ctx, "remote checks fetched", "count", len(remote))

	doc, err := s.Load(ctx)
	if err != nil {
		return sum, err
	}

	used := map[string]struct{}{}
	changed := doc.Update(func(e *Entry) bool {
		dirty := false
		for _, kind := range heartbeat.Kinds {
			id := e.ID(kind)
			if id == "" {
				continue
			}
			if _, ok := remote[id]; !ok {
				s.logger.WarnContext(ctx, "check id not found remotely, removing", "domain", e.Name, "kind", string(kind), "check_id", id)
				e.SetID(kind, "")
				dirty = true
				continue
			}
			used[id] = struct{}{}
		}
		return dirty
	})

	grouped := map[string]*Entry{}
	for _, c := range checks {
		if _, ok := used[c.ID]; ok || c.Name == "" {
			continue
		}
		kind, ok := kindFromTags(c)
		if !ok {
			s.logger.WarnContext(ctx, "remote check has no kind tag, assuming status", "name", c.Name, "check_id", c.ID)
		}

		if doc.Has(c.Name) {
			filled := false
			if doc.Update(func(e *Entry) bool {
				if filled || e.Name != c.Name || e.ID(kind) != "" {
					return false
				}
				e.SetID(kind, c.ID)
				filled = true
				return true
			}) {
				changed = true
				sum.Added++
				continue
			}
			s.logger.WarnContext(ctx, "remote check duplicates an existing slot, skipping", "name", c.Name, "kind", string(kind), "check_id", c.ID)
			continue
		}

		e, ok := grouped[c.Name]
		if !ok {
			e = &Entry{Name: c.Name}
			grouped[c.Name] = e
		}
		if e.ID(kind) != "" {
			s.logger.WarnContext(ctx, "several unreferenced checks share a slot, keeping the first", "name", c.Name, "kind", string(kind), "check_id", c.ID)
			continue
		}
		e.SetID(kind, c.ID)
	}

	if len(grouped) > 0 {
		names := make([]string, 0, len(grouped))
		for name := range grouped {
			names = append(names, name)
		}
		slices.Sort(names)
		added := make([]Entry, 0, len(names))
		for _, name := range names {
			added = append(added, *grouped[name])
		}
		doc.AppendSection(SyncHeader, added)
		sum.Added += len(added)
		changed = true
		s.logger.InfoContext(ctx, "remote checks missing from domain file added", "count", len(added))
	}

	if !changed {
		s.logger.InfoContext(ctx, "domain file already in sync")
		return sum, nil
	}
	return sum, s.save(ctx, doc, &sum)
}

func (s *Service) confirm(question string) error {
	if s.prompter == nil {
		return fmt.Errorf("%w: no prompter configured", sentinel.ErrCancelled)
	}
	answer, err := s.prompter.Prompt(question)
	if err != nil {
		return fmt.Errorf("read confirmation: %w", err)
	}
	if strings.TrimSpace(answer) != ConfirmToken {
		return sentinel.ErrCancelled
	}
	return nil
}

func (s *Service) deleteAll(ctx context.Context, checks []heartbeat.Check, sum *Summary) {
	for _, c := range checks {
		if err := s.api.DeleteCheck(ctx, c.ID); err != nil {
			sum.Failed++
			s.logger.ErrorContext(ctx, "failed to delete check", "check_id", c.ID, "name", c.Name, "error", err)
			continue
		}
		sum.Deleted++
		s.logger.InfoContext(ctx, "check deleted", "event", "check_deleted", "check_id", c.ID, "name", c.Name)
	}
}

// RemoveDomain deletes every remote check named name and its file lines.
// Without force the operator must confirm with ConfirmToken.
func (s *Service) RemoveDomain(ctx context.Context, name string, force bool) (Summary, error) {
	var sum Summary
	checks, err := s.api.ListChecks(ctx)
	if err != nil {
		return sum, fmt.Errorf("list checks: %w", err)
	}

	var targets []heartbeat.Check
	for _, c := range checks {
		if c.Name == name {
			targets = append(targets, c)
		}
	}

	if len(targets) > 0 {
		s.logger.InfoContext(ctx, "remote checks found for domain", "domain", name, "count", len(targets))
		if !force {
			if err := s.confirm(fmt.Sprintf("Delete %d checks for %s from the API? Type '%s' to confirm: ", len(targets), name, ConfirmToken)); err != nil {
				return sum, err
			}
		}
		s.deleteAll(ctx, targets, &sum)
	} else {
		s.logger.InfoContext(ctx, "no remote checks with this name", "domain", name)
	}

	doc, err := s.Load(ctx)
	if err != nil {
		return sum, err
	}
	if doc.Remove(name) == 0 {
		s.logger.InfoContext(ctx, "domain not in file, no changes made", "domain", name)
		return sum, nil
	}
	return sum, s.save(ctx, doc, &sum)
}

// RemoveAll deletes every remote check and clears the domain file.
func (s *Service) RemoveAll(ctx context.Context, force bool) (Summary, error) {
	var sum Summary
	if !force {
		if err := s.confirm(fmt.Sprintf("DANGER: this deletes ALL checks from the API and clears the domain file. Type '%s' to confirm: ", ConfirmToken)); err != nil {
			return sum, err
		}
	}

	checks, err := s.api.ListChecks(ctx)
	if err != nil {
		return sum, fmt.Errorf("list checks: %w", err)
	}
	if len(checks) == 0 {
		s.logger.InfoContext(ctx, "no checks found to delete")
	}
	s.deleteAll(ctx, checks, &sum)

	doc := Parse(ClearedHeader)
	return sum, s.save(ctx, doc, &sum)
}

// RemoveUnused deletes remote checks that no file entry references.
func (s *Service) RemoveUnused(ctx context.Context) (Summary, error) {
	var sum Summary
	checks, err := s.api.ListChecks(ctx)
	if err != nil {
		return sum, fmt.Errorf("list checks: %w", err)
	}
	if len(checks) == 0 {
		s.logger.InfoContext(ctx, "no checks on account, nothing to remove")
		return sum, nil
	}

	doc, err := s.Load(ctx)
	if err != nil {
		return sum, err
	}
	used := doc.ReferencedIDs()

	var unused []heartbeat.Check
	for _, c := range checks {
		if _, ok := used[c.ID]; !ok {
			unused = append(unused, c)
		}
	}
	if len(unused) == 0 {
		s.logger.InfoContext(ctx, "no unused checks found")
		return sum, nil
	}
	s.logger.InfoContext(ctx, "unused checks found", "count", len(unused))
	s.deleteAll(ctx, unused, &sum)
	return sum, nil
}

// ListChecks returns the remote checks sorted by case-insensitive name.
func (s *Service) ListChecks(ctx context.Context) ([]heartbeat.Check, error) {
	checks, err := s.api.ListChecks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list checks: %w", err)
	}
	slices.SortStableFunc(checks, func(a, b heartbeat.Check) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return checks, nil
}

// ReaderPrompter writes the question to w and reads one line from r.
type ReaderPrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewReaderPrompter creates a prompter over r and w.
func NewReaderPrompter(r io.Reader, w io.Writer) *ReaderPrompter {
	return &ReaderPrompter{r: bufio.NewReader(r), w: w}
}

func (p *ReaderPrompter) Prompt(question string) (string, error) {
	if _, err := io.WriteString(p.w, question); err != nil {
		return "", err
	}
	answer, err := p.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(answer, "\r\n"), nil
}
