package editflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommitter struct {
	err   error
	saved []string
}

func (c *fakeCommitter) Save(ctx context.Context, token, fileID, content string) error {
	if c.err != nil {
		return c.err
	}
	c.saved = append(c.saved, content)
	return nil
}

type fakeAssistant struct {
	reply    string
	proposal string
	err      error
	gotBase  string
}

func (a *fakeAssistant) RequestEdit(ctx context.Context, token, fileID, committed, instruction string) (string, string, error) {
	a.gotBase = committed
	return a.reply, a.proposal, a.err
}

func TestAcceptCommitsAndClearsProposal(t *testing.T) {
	session := NewSession("doc-1", "hello world")
	session.Preview("hello there, world")

	committer := &fakeCommitter{}
	require.NoError(t, session.Accept(context.Background(), committer, "tok"))

	assert.Equal(t, []string{"hello there, world"}, committer.saved, "the full replacement text is written, not a patch")
	assert.Equal(t, "hello there, world", session.Committed())
	_, pending := session.Proposal()
	assert.False(t, pending)
	assert.Nil(t, session.Diff())
}

func TestAcceptFailureRetainsProposal(t *testing.T) {
	session := NewSession("doc-1", "hello world")
	session.Preview("hello there, world")

	committer := &fakeCommitter{err: errors.New("upstream unavailable")}
	err := session.Accept(context.Background(), committer, "tok")
	require.Error(t, err)

	assert.Equal(t, "hello world", session.Committed(), "committed content never moves on a failed save")
	proposal, pending := session.Proposal()
	assert.True(t, pending, "proposal is retained so the user can retry")
	assert.Equal(t, "hello there, world", proposal)
}

func TestAcceptWithoutProposal(t *testing.T) {
	session := NewSession("doc-1", "hello world")
	err := session.Accept(context.Background(), &fakeCommitter{}, "tok")
	assert.ErrorIs(t, err, ErrNoProposal)
}

func TestDiscardLeavesCommittedUntouched(t *testing.T) {
	session := NewSession("doc-1", "hello world")
	session.Preview("goodbye world")
	session.Discard()

	assert.Equal(t, "hello world", session.Committed())
	_, pending := session.Proposal()
	assert.False(t, pending)
}

func TestPreviewLastWriteWins(t *testing.T) {
	session := NewSession("doc-1", "base")
	session.Preview("first proposal")
	session.Preview("second proposal")

	proposal, pending := session.Proposal()
	require.True(t, pending)
	assert.Equal(t, "second proposal", proposal)
}

func TestRequestEditStagesProposal(t *testing.T) {
	session := NewSession("doc-1", "the original text")
	assistant := &fakeAssistant{reply: "Tightened the intro.", proposal: "the revised text"}

	reply, hasProposal, err := session.RequestEdit(context.Background(), assistant, "tok", "tighten the intro")
	require.NoError(t, err)
	assert.True(t, hasProposal)
	assert.Equal(t, "Tightened the intro.", reply)
	assert.Equal(t, "the original text", assistant.gotBase, "the edit is requested against committed content, not a prior proposal")

	proposal, pending := session.Proposal()
	require.True(t, pending)
	assert.Equal(t, "the revised text", proposal)
}

func TestRequestEditConversationalReply(t *testing.T) {
	session := NewSession("doc-1", "base")
	assistant := &fakeAssistant{reply: "That section is already concise."}

	reply, hasProposal, err := session.RequestEdit(context.Background(), assistant, "tok", "shorten it")
	require.NoError(t, err)
	assert.False(t, hasProposal)
	assert.Equal(t, "That section is already concise.", reply)

	_, pending := session.Proposal()
	assert.False(t, pending, "a reply without a proposal stages nothing")
}

func TestSessionDiff(t *testing.T) {
	session := NewSession("doc-1", "the quick brown fox")
	session.Preview("the slow brown fox")

	segments := session.Diff()
	require.NotEmpty(t, segments)

	var committed, proposed string
	for _, seg := range segments {
		switch seg.Op {
		case OpEqual:
			committed += seg.Text
			proposed += seg.Text
		case OpDelete:
			committed += seg.Text
		case OpInsert:
			proposed += seg.Text
		}
	}
	assert.Equal(t, "the quick brown fox", committed, "replaying equal+delete segments reconstructs the committed text")
	assert.Equal(t, "the slow brown fox", proposed, "replaying equal+insert segments reconstructs the proposal")
}
