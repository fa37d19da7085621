package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/letterforge/docgen-service/internal/core/domain"
	"github.com/letterforge/docgen-service/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func cloneCandidate(c *domain.Candidate) *domain.Candidate {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Documents = append([]domain.DocumentRef(nil), c.Documents...)
	return &clone
}

func cloneTemplate(t *domain.Template) *domain.Template {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

// fakeID produces 24-hex-char ids like the real store does.
func fakeID(seq int) string {
	return fmt.Sprintf("%024x", seq)
}

type stubUserRepo struct {
	byID map[string]*domain.User
	seq  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := cloneUser(user)
	clone.ID = fakeID(r.seq)
	r.byID[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(r.byID))
	r.byID = make(map[string]*domain.User)
	return n, nil
}

type stubCandidateRepo struct {
	byID      map[string]*domain.Candidate
	order     []string
	seq       int
	insertErr error
	// lastQuery records what Search actually received, so tests can check
	// the role-based visibility rules.
	lastQuery string
}

func newStubCandidateRepo() *stubCandidateRepo {
	return &stubCandidateRepo{byID: make(map[string]*domain.Candidate)}
}

func (r *stubCandidateRepo) Insert(_ context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	r.seq++
	clone := cloneCandidate(c)
	clone.ID = fakeID(r.seq)
	r.byID[clone.ID] = cloneCandidate(clone)
	r.order = append(r.order, clone.ID)
	return clone, nil
}

func (r *stubCandidateRepo) FindByID(_ context.Context, id string) (*domain.Candidate, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCandidateNotFound
	}
	return cloneCandidate(c), nil
}

func (r *stubCandidateRepo) Search(_ context.Context, query string) ([]*domain.Candidate, error) {
	r.lastQuery = query
	var out []*domain.Candidate
	q := strings.ToLower(query)
	for _, id := range r.order {
		c := r.byID[id]
		if q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, cloneCandidate(c))
		}
	}
	return out, nil
}

func (r *stubCandidateRepo) AppendDocument(_ context.Context, id string, doc domain.DocumentRef) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrCandidateNotFound
	}
	c.Documents = append(c.Documents, doc)
	return nil
}

func (r *stubCandidateRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCandidateNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubCandidateRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(r.byID))
	r.byID = make(map[string]*domain.Candidate)
	r.order = nil
	return n, nil
}

type stubTemplateRepo struct {
	byID  map[string]*domain.Template
	order []string
	seq   int
}

func newStubTemplateRepo() *stubTemplateRepo {
	return &stubTemplateRepo{byID: make(map[string]*domain.Template)}
}

func (r *stubTemplateRepo) Insert(_ context.Context, t *domain.Template) (*domain.Template, error) {
	r.seq++
	clone := cloneTemplate(t)
	clone.ID = fakeID(r.seq + 1000)
	r.byID[clone.ID] = cloneTemplate(clone)
	r.order = append(r.order, clone.ID)
	return clone, nil
}

func (r *stubTemplateRepo) FindByID(_ context.Context, id string) (*domain.Template, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	return cloneTemplate(t), nil
}

func (r *stubTemplateRepo) List(_ context.Context) ([]*domain.Template, error) {
	out := make([]*domain.Template, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneTemplate(r.byID[id]))
	}
	return out, nil
}

func (r *stubTemplateRepo) Update(_ context.Context, id string, name string, ttype domain.TemplateType, content string) error {
	t, ok := r.byID[id]
	if !ok {
		return domain.ErrTemplateNotFound
	}
	t.Name = name
	t.Type = ttype
	t.Content = content
	return nil
}

func (r *stubTemplateRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTemplateNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type stubAuditRepo struct {
	entries   []*domain.AuditEntry
	appendErr error
}

func (r *stubAuditRepo) Append(_ context.Context, entry *domain.AuditEntry) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	clone := *entry
	clone.ID = fakeID(len(r.entries) + 2000)
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubAuditRepo) Recent(_ context.Context, limit int64) ([]*domain.AuditEntry, error) {
	var out []*domain.AuditEntry
	for i := len(r.entries) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		clone := *r.entries[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubAuditRepo) Clear(_ context.Context) (int64, error) {
	n := int64(len(r.entries))
	r.entries = nil
	return n, nil
}

// ---------------------------------------------------------------------------
// Engine, store and mailer stubs
// ---------------------------------------------------------------------------

type stubPDFEngine struct {
	lastHTML string
	err      error
	calls    int
	// failOn makes the n-th render (1-based) and all following ones fail.
	failOn int
}

func (e *stubPDFEngine) Render(_ context.Context, html string) ([]byte, error) {
	e.calls++
	e.lastHTML = html
	if e.err != nil {
		return nil, e.err
	}
	if e.failOn > 0 && e.calls >= e.failOn {
		return nil, fmt.Errorf("render call %d failed", e.calls)
	}
	return []byte("%PDF-stub"), nil
}

type stubDocxEngine struct {
	lastSkeleton string
	lastFields   map[string]string
	lastFallback string
}

func (e *stubDocxEngine) Produce(_ context.Context, skeleton string, fields map[string]string, fallbackText string) ([]byte, error) {
	e.lastSkeleton = skeleton
	e.lastFields = fields
	e.lastFallback = fallbackText
	return []byte("PK-docx-stub"), nil
}

type stubFileStore struct {
	files     map[string][]byte
	uploads   map[string][]byte
	writeErr  error
	uploadErr error
	archived  []ports.ArchiveEntry
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{
		files:   make(map[string][]byte),
		uploads: make(map[string][]byte),
	}
}

func (s *stubFileStore) WriteDocument(name string, data []byte) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.files[name] = append([]byte(nil), data...)
	return nil
}

func (s *stubFileStore) ReadDocument(name string) ([]byte, error) {
	data, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("no such document %q", name)
	}
	return append([]byte(nil), data...), nil
}

func (s *stubFileStore) DocumentExists(name string) bool {
	_, ok := s.files[name]
	return ok
}

func (s *stubFileStore) DocumentPath(name string) (string, error) {
	if !s.DocumentExists(name) {
		return "", fmt.Errorf("no such document %q", name)
	}
	return "/stub/" + name, nil
}

func (s *stubFileStore) SaveUpload(name string, r io.Reader) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.uploads[name] = data
	return "/stub/uploads/" + name, nil
}

// Archive mimics the real store: entries without a stored file are skipped.
func (s *stubFileStore) Archive(w io.Writer, entries []ports.ArchiveEntry) error {
	for _, entry := range entries {
		if _, ok := s.files[entry.File]; !ok {
			continue
		}
		s.archived = append(s.archived, entry)
		fmt.Fprintf(w, "%s\n", entry.Name)
	}
	return nil
}

type stubAssets struct {
	css  string
	logo string
}

func (a *stubAssets) CSS() string        { return a.css }
func (a *stubAssets) LogoBase64() string { return a.logo }

type stubMailer struct {
	sent []ports.MailMessage
	err  error
}

func (m *stubMailer) Send(_ context.Context, msg ports.MailMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}
