package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/flashly/flashly/internal/client/client"
	"github.com/flashly/flashly/internal/client/editor"
	"github.com/flashly/flashly/internal/client/models"
	"github.com/flashly/flashly/internal/client/repositories/studysets"
	"github.com/flashly/flashly/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStudySets(t *testing.T, fc *fakeClient) (StudySetService, studysets.Repository) {
	t.Helper()
	cache := studysets.NewSQLiteRepository(setupDB(t))
	return NewStudySetService(fc, cache, nil), cache
}

var offline = fmt.Errorf("dial tcp: %w", client.ErrTransport)

func geography() models.StudySetDetail {
	return models.StudySetDetail{
		StudySet:   models.StudySet{ID: "3", Title: "Geography", CardCount: 1},
		Flashcards: []models.Flashcard{persisted("5", "Capital of France?", "Paris")},
	}
}

func TestList_OnlineRefreshesCache(t *testing.T) {
	fc := &fakeClient{
		ListFn: func() ([]models.StudySet, error) {
			return []models.StudySet{{ID: "3", Title: "Geography"}}, nil
		},
		GetFn: func(models.ServerID) (models.StudySetDetail, error) { return geography(), nil },
	}
	svc, cache := newStudySets(t, fc)
	ctx := context.Background()

	_, err := svc.Get(ctx, "3")
	require.NoError(t, err)

	res, err := svc.List(ctx)
	require.NoError(t, err)
	assert.False(t, res.Offline)
	require.Len(t, res.Sets, 1)
	assert.Equal(t, 1, res.Sets[0].CardCount, "count comes from the cached detail")

	cached, err := cache.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestList_OnlineSortsNewestFirst(t *testing.T) {
	day := func(d int) timex.Time { return timex.Time{Time: time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)} }
	fc := &fakeClient{ListFn: func() ([]models.StudySet, error) {
		return []models.StudySet{
			{ID: "1", Title: "Oldest", CreatedAt: day(1)},
			{ID: "3", Title: "Newest", CreatedAt: day(9)},
			{ID: "2", Title: "Middle", CreatedAt: day(5)},
		}, nil
	}}
	svc, _ := newStudySets(t, fc)

	res, err := svc.List(context.Background())
	require.NoError(t, err)
	var ids []models.ServerID
	for _, s := range res.Sets {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []models.ServerID{"3", "2", "1"}, ids)
}

func TestList_OfflineFallsBackToCache(t *testing.T) {
	fc := &fakeClient{}
	svc, cache := newStudySets(t, fc)
	ctx := context.Background()
	require.NoError(t, cache.Save(ctx, geography()))

	fc.ListFn = func() ([]models.StudySet, error) { return nil, offline }

	res, err := svc.List(ctx)
	require.NoError(t, err)
	assert.True(t, res.Offline)
	require.Len(t, res.Sets, 1)
	assert.Equal(t, "Geography", res.Sets[0].Title)
}

func TestList_RemoteErrorIsNotMaskedByCache(t *testing.T) {
	fc := &fakeClient{ListFn: func() ([]models.StudySet, error) {
		return nil, &client.RemoteError{Status: 401, Message: "Missing Authorization Header"}
	}}
	svc, _ := newStudySets(t, fc)

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestGet_Offline(t *testing.T) {
	fc := &fakeClient{GetFn: func(models.ServerID) (models.StudySetDetail, error) { return models.StudySetDetail{}, offline }}
	svc, cache := newStudySets(t, fc)
	ctx := context.Background()

	_, err := svc.Get(ctx, "3")
	require.ErrorIs(t, err, ErrNotCached)
	require.ErrorIs(t, err, client.ErrTransport)

	require.NoError(t, cache.Save(ctx, geography()))
	view, err := svc.Get(ctx, "3")
	require.NoError(t, err)
	assert.True(t, view.Offline)
	assert.Equal(t, geography().Flashcards, view.Detail.Flashcards)
}

func TestGet_NotFoundDropsCache(t *testing.T) {
	fc := &fakeClient{}
	svc, cache := newStudySets(t, fc)
	ctx := context.Background()
	require.NoError(t, cache.Save(ctx, geography()))

	_, err := svc.Get(ctx, "3")
	require.ErrorIs(t, err, client.ErrNotFound)

	_, err = cache.Get(ctx, "3")
	assert.Error(t, err)
}

func TestCreate_ValidatesBeforeNetwork(t *testing.T) {
	fc := &fakeClient{CreateFn: func(models.StudySetDraft) (models.StudySet, error) {
		t.Fatal("invalid draft must not reach the server")
		return models.StudySet{}, nil
	}}
	svc, _ := newStudySets(t, fc)

	_, err := svc.Create(context.Background(), models.StudySetDraft{Title: "  "})
	require.ErrorIs(t, err, models.ErrTitleRequired)
}

func TestCreateUpdateDelete(t *testing.T) {
	var sent models.StudySetDraft
	fc := &fakeClient{
		CreateFn: func(d models.StudySetDraft) (models.StudySet, error) {
			sent = d
			return models.StudySet{ID: "7", Title: d.Title, Description: d.Description}, nil
		},
		UpdateFn: func(id models.ServerID, d models.StudySetDraft) (models.StudySet, error) {
			return models.StudySet{ID: id, Title: d.Title}, nil
		},
	}
	svc, cache := newStudySets(t, fc)
	ctx := context.Background()

	set, err := svc.Create(ctx, models.StudySetDraft{Title: " Biology ", Description: " cells "})
	require.NoError(t, err)
	assert.Equal(t, models.StudySetDraft{Title: "Biology", Description: "cells"}, sent)

	_, err = svc.Update(ctx, set.ID, models.StudySetDraft{Title: "Zoology"})
	require.NoError(t, err)
	cached, err := cache.Get(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "Zoology", cached.StudySet.Title)

	require.NoError(t, svc.Delete(ctx, "7"))
	_, err = cache.Get(ctx, "7")
	assert.Error(t, err)
}

func TestDelete_FailureKeepsCache(t *testing.T) {
	fc := &fakeClient{DeleteFn: func(models.ServerID) error { return offline }}
	svc, cache := newStudySets(t, fc)
	ctx := context.Background()
	require.NoError(t, cache.Save(ctx, geography()))

	require.ErrorIs(t, svc.Delete(ctx, "3"), client.ErrTransport)
	_, err := cache.Get(ctx, "3")
	assert.NoError(t, err)
}

func TestOpenEditorAndSave(t *testing.T) {
	fc := &fakeClient{
		GetFn: func(models.ServerID) (models.StudySetDetail, error) { return geography(), nil },
		SyncFn: func(id models.ServerID, cs models.ChangeSet) ([]models.Flashcard, error) {
			return []models.Flashcard{
				persisted("5", "Capital of France?", "Paris, France"),
				persisted("6", "2+2?", "4"),
			}, nil
		},
	}
	svc, cache := newStudySets(t, fc)
	ctx := context.Background()

	sess, view, err := svc.OpenEditor(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Geography", view.Detail.StudySet.Title)
	require.Equal(t, 1, sess.Len())

	sess.SetField(0, models.FieldAnswer, "Paris, France")
	pos, err := sess.AddEntry()
	require.NoError(t, err)
	sess.SetField(pos, models.FieldQuestion, "2+2?")
	sess.SetField(pos, models.FieldAnswer, "4")

	saved, err := svc.SaveFlashcards(ctx, sess)
	require.NoError(t, err)
	assert.Len(t, saved, 2)
	assert.Equal(t, 1, fc.SyncCalls)

	cached, err := cache.Get(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, saved, cached.Flashcards)
	assert.Equal(t, 2, cached.StudySet.CardCount)
}

func TestSave_FailureLeavesCacheAlone(t *testing.T) {
	fc := &fakeClient{
		GetFn: func(models.ServerID) (models.StudySetDetail, error) { return geography(), nil },
		SyncFn: func(models.ServerID, models.ChangeSet) ([]models.Flashcard, error) {
			return nil, offline
		},
	}
	svc, cache := newStudySets(t, fc)
	ctx := context.Background()

	sess, _, err := svc.OpenEditor(ctx, "3")
	require.NoError(t, err)
	sess.SetField(0, models.FieldAnswer, "Lyon")

	_, err = svc.SaveFlashcards(ctx, sess)
	require.ErrorIs(t, err, editor.ErrTransportFailure)

	cached, err := cache.Get(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Paris", cached.Flashcards[0].Answer, "working edits never reach the cache")
	assert.Equal(t, "Lyon", sess.Working()[0].Answer)
}

func TestAddFlashcards(t *testing.T) {
	var sent []models.FlashcardDraft
	fc := &fakeClient{
		CreateCardsFn: func(id models.ServerID, d []models.FlashcardDraft) ([]models.Flashcard, error) {
			sent = d
			return []models.Flashcard{persisted("8", "2+2?", "4")}, nil
		},
	}
	svc, cache := newStudySets(t, fc)
	ctx := context.Background()
	require.NoError(t, cache.Save(ctx, geography()))

	_, err := svc.AddFlashcards(ctx, "3", nil)
	require.ErrorIs(t, err, models.ErrNoFlashcardsToWrite)

	_, err = svc.AddFlashcards(ctx, "3", []models.FlashcardDraft{{Question: "q", Answer: " "}})
	require.ErrorIs(t, err, editor.ErrValidationFailed)
	var se *editor.SyncError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Fields, models.FieldKey{Position: 0, Field: models.FieldAnswer})

	created, err := svc.AddFlashcards(ctx, "3", []models.FlashcardDraft{{Question: " 2+2? ", Answer: "4 "}})
	require.NoError(t, err)
	assert.Len(t, created, 1)
	assert.Equal(t, []models.FlashcardDraft{{Question: "2+2?", Answer: "4"}}, sent)

	cached, err := cache.Get(ctx, "3")
	require.NoError(t, err)
	assert.Len(t, cached.Flashcards, 2)
}
