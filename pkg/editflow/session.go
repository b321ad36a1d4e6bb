package editflow

import (
	"context"
	"sync"
)

// Committer persists the full replacement content for a document.
type Committer interface {
	Save(ctx context.Context, token, fileID, content string) error
}

// Assistant produces a candidate edit for a document. An empty proposal means
// the assistant answered conversationally only.
type Assistant interface {
	RequestEdit(ctx context.Context, token, fileID, committed, instruction string) (reply string, proposal string, err error)
}

// Session holds the editing state for one open document: the committed
// content mirroring the backend, and at most one outstanding proposal.
// Requesting a new edit while a proposal is pending replaces it outright.
type Session struct {
	mu        sync.Mutex
	fileID    string
	committed string
	proposal  string
	pending   bool
}

func NewSession(fileID, committed string) *Session {
	return &Session{
		fileID:    fileID,
		committed: committed,
	}
}

func (s *Session) FileID() string {
	return s.fileID
}

func (s *Session) Committed() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

func (s *Session) Proposal() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proposal, s.pending
}

// Preview stages a proposal without touching committed content.
// Last-write-wins: any prior proposal is replaced.
func (s *Session) Preview(proposed string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposal = proposed
	s.pending = true
}

// Discard drops the proposal locally; the backend is not contacted.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposal = ""
	s.pending = false
}

// RequestEdit asks the assistant for an edit against the committed text and
// stages the result as the proposal when one is produced.
func (s *Session) RequestEdit(ctx context.Context, assistant Assistant, token, instruction string) (string, bool, error) {
	s.mu.Lock()
	committed := s.committed
	s.mu.Unlock()

	reply, proposal, err := assistant.RequestEdit(ctx, token, s.fileID, committed, instruction)
	if err != nil {
		return "", false, err
	}
	if proposal == "" {
		return reply, false, nil
	}

	s.Preview(proposal)
	return reply, true, nil
}

// Accept writes the full proposed text through the committer. Only on success
// does the proposal become the committed content; on failure it is retained
// so the user can retry, and no local-only success is ever reported.
func (s *Session) Accept(ctx context.Context, committer Committer, token string) error {
	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return ErrNoProposal
	}
	proposal := s.proposal
	s.mu.Unlock()

	if err := committer.Save(ctx, token, s.fileID, proposal); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed = proposal
	s.proposal = ""
	s.pending = false
	return nil
}

// Diff renders the display diff between committed content and the pending
// proposal. Nil when no proposal is pending.
func (s *Session) Diff() []Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pending {
		return nil
	}
	return Diff(s.committed, s.proposal)
}
