package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcenhub/internal/assistant"
	apperrors "lcenhub/internal/errors"
	"lcenhub/internal/model"
	"lcenhub/internal/repository"
	"lcenhub/internal/store"
)

// stubAssistant returns a canned reply or error.
type stubAssistant struct {
	reply *assistant.Reply
	err   error
}

func (s *stubAssistant) Ask(ctx context.Context, prompt string) (*assistant.Reply, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.reply, nil
}

func newChatService(t *testing.T, client assistant.Client) ChatService {
	t.Helper()
	kv := store.NewMemKV()
	require.NoError(t, kv.Put(store.KeyChatSessions, []byte("[]")))
	repo, err := repository.NewChatRepository(kv)
	require.NoError(t, err)
	return NewChatService(repo, client)
}

func TestChatService_SaveAndGet(t *testing.T) {
	service := newChatService(t, &stubAssistant{})
	juan := memberSession("farmer_juan")
	maria := memberSession("maria_santos")

	created, err := service.Save(context.Background(), juan, SaveChatInput{
		Title: "Feeding schedule",
		Messages: []model.ChatMessage{
			{Role: model.ChatRoleUser, Text: "How often should I feed RIR pullets?"},
		},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	t.Run("saving with an existing ID replaces the conversation", func(t *testing.T) {
		updated, err := service.Save(context.Background(), juan, SaveChatInput{
			ID:    &created.ID,
			Title: "Feeding schedule",
			Messages: []model.ChatMessage{
				{Role: model.ChatRoleUser, Text: "How often should I feed RIR pullets?"},
				{Role: model.ChatRoleAssistant, Text: "Twice daily."},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)

		all, err := service.List(context.Background(), juan)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Len(t, all[0].Messages, 2)
	})

	t.Run("saving under another owner's ID forks a fresh conversation", func(t *testing.T) {
		forked, err := service.Save(context.Background(), maria, SaveChatInput{
			ID:    &created.ID,
			Title: "Hijack attempt",
			Messages: []model.ChatMessage{
				{Role: model.ChatRoleUser, Text: "mine now"},
			},
		})
		require.NoError(t, err)
		assert.NotEqual(t, created.ID, forked.ID)

		original, err := service.Get(context.Background(), juan, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Feeding schedule", original.Title)

		all, err := service.List(context.Background(), maria)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, forked.ID, all[0].ID)

		require.NoError(t, service.Delete(context.Background(), maria, forked.ID))
	})

	t.Run("other owners cannot read the conversation", func(t *testing.T) {
		_, err := service.Get(context.Background(), maria, created.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		got, err := service.Get(context.Background(), juan, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Feeding schedule", got.Title)
	})

	t.Run("other owners cannot delete the conversation", func(t *testing.T) {
		require.NoError(t, service.Delete(context.Background(), maria, created.ID))

		_, err := service.Get(context.Background(), juan, created.ID)
		assert.NoError(t, err)

		require.NoError(t, service.Delete(context.Background(), juan, created.ID))
		_, err = service.Get(context.Background(), juan, created.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestChatService_Ask(t *testing.T) {
	juan := memberSession("farmer_juan")

	t.Run("returns the assistant reply with sources", func(t *testing.T) {
		service := newChatService(t, &stubAssistant{reply: &assistant.Reply{
			Text: "Layers need 16% protein feed.",
			Sources: []model.Source{
				{URI: "https://example.com/poultry-feed", Title: "Poultry feed basics"},
			},
		}})

		reply, err := service.Ask(context.Background(), juan, "What feed do layers need?")
		require.NoError(t, err)
		assert.Equal(t, "Layers need 16% protein feed.", reply.Text)
		require.Len(t, reply.Sources, 1)
		assert.Equal(t, "Poultry feed basics", reply.Sources[0].Title)
	})

	t.Run("propagates a missing configuration", func(t *testing.T) {
		service := newChatService(t, &stubAssistant{err: apperrors.ErrAssistantNotConfigured})

		_, err := service.Ask(context.Background(), juan, "hello")
		assert.ErrorIs(t, err, apperrors.ErrAssistantNotConfigured)
	})

	t.Run("requires a session", func(t *testing.T) {
		service := newChatService(t, &stubAssistant{})

		_, err := service.Ask(context.Background(), nil, "hello")
		assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	})
}
