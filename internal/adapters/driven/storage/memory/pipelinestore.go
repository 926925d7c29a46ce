package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
	"github.com/nsventures/dealflow-cli/internal/core/ports/driven"
)

// Ensure PipelineStore implements the interface.
var _ driven.PipelineStore = (*PipelineStore)(nil)

// CategoryLink records one category junction row for test assertions.
type CategoryLink struct {
	Kind       domain.CategoryKind
	PipelineID string
	CategoryID string
}

// UserLink records one user junction row.
type UserLink struct {
	PipelineID string
	UserID     string
}

// AttachmentRow records one attachment insert.
type AttachmentRow struct {
	PipelineID string
	Attachment domain.Attachment
}

// PipelineStore is an in-memory implementation of driven.PipelineStore
// that retains every insert for inspection in tests.
type PipelineStore struct {
	mu            sync.RWMutex
	seq           int
	entries       map[string]*domain.PipelineEntry
	createdBy     map[string]string
	categoryLinks []CategoryLink
	assignees     []UserLink
	passComms     []UserLink
	attachments   []AttachmentRow
}

// NewPipelineStore creates a new in-memory pipeline store.
func NewPipelineStore() *PipelineStore {
	return &PipelineStore{
		entries:   make(map[string]*domain.PipelineEntry),
		createdBy: make(map[string]string),
	}
}

// InsertPipeline stores the primary row and returns its generated id.
func (s *PipelineStore) InsertPipeline(_ context.Context, entry *domain.PipelineEntry, createdBy string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := fmt.Sprintf("pipeline-%d", s.seq)
	s.entries[id] = entry
	s.createdBy[id] = createdBy
	return id, nil
}

// LinkCategory associates a pipeline row with a category.
func (s *PipelineStore) LinkCategory(_ context.Context, kind domain.CategoryKind, pipelineID, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryLinks = append(s.categoryLinks, CategoryLink{Kind: kind, PipelineID: pipelineID, CategoryID: categoryID})
	return nil
}

// LinkAssignee associates a pipeline row with an assignee.
func (s *PipelineStore) LinkAssignee(_ context.Context, pipelineID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignees = append(s.assignees, UserLink{PipelineID: pipelineID, UserID: userID})
	return nil
}

// LinkPassCommunicator records the pass communicator.
func (s *PipelineStore) LinkPassCommunicator(_ context.Context, pipelineID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passComms = append(s.passComms, UserLink{PipelineID: pipelineID, UserID: userID})
	return nil
}

// InsertAttachment stores one attachment row.
func (s *PipelineStore) InsertAttachment(_ context.Context, pipelineID string, att domain.Attachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachments = append(s.attachments, AttachmentRow{PipelineID: pipelineID, Attachment: att})
	return nil
}

// Entries returns the stored primary rows keyed by generated id.
func (s *PipelineStore) Entries() map[string]*domain.PipelineEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*domain.PipelineEntry, len(s.entries))
	for id, e := range s.entries {
		out[id] = e
	}
	return out
}

// CreatedBy returns the creator id stored for a pipeline row.
func (s *PipelineStore) CreatedBy(pipelineID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.createdBy[pipelineID]
}

// CategoryLinks returns every category junction row.
func (s *PipelineStore) CategoryLinks() []CategoryLink {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CategoryLink, len(s.categoryLinks))
	copy(out, s.categoryLinks)
	return out
}

// Assignees returns every assignee junction row.
func (s *PipelineStore) Assignees() []UserLink {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]UserLink, len(s.assignees))
	copy(out, s.assignees)
	return out
}

// PassCommunicators returns every pass communicator row.
func (s *PipelineStore) PassCommunicators() []UserLink {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]UserLink, len(s.passComms))
	copy(out, s.passComms)
	return out
}

// Attachments returns every attachment row.
func (s *PipelineStore) Attachments() []AttachmentRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]AttachmentRow, len(s.attachments))
	copy(out, s.attachments)
	return out
}
