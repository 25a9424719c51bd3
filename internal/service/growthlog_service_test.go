package service

import (
	"context"
	"testing"

	"pethealth/internal/config"
	"pethealth/internal/models"
	"pethealth/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGrowthTestService(t *testing.T, growthRepo *growthRepoStub, petOwner uint) (*GrowthLogService, *PhotoService) {
	t.Helper()
	photoRepo := testutil.NewPhotoRepoStub()
	photos := NewPhotoService(photoRepo, &config.Config{UploadDir: t.TempDir(), MaxUploadSizeMB: 1})
	return NewGrowthLogService(growthRepo, photos, NewPetService(ownedPetStub(petOwner))), photos
}

func TestGrowthLogService_CreateLog(t *testing.T) {
	t.Run("requires description or photo", func(t *testing.T) {
		svc, _ := newGrowthTestService(t, &growthRepoStub{}, 1)
		_, err := svc.CreateLog(context.Background(), CreateGrowthLogInput{
			UserID: 1, PetID: 2, Date: "2026-08-20",
		})
		assertValidationError(t, err)
	})

	t.Run("description only", func(t *testing.T) {
		var saved *models.GrowthLog
		repo := &growthRepoStub{createFn: func(_ context.Context, log *models.GrowthLog) error {
			saved = log
			return nil
		}}
		svc, _ := newGrowthTestService(t, repo, 1)

		log, err := svc.CreateLog(context.Background(), CreateGrowthLogInput{
			UserID: 1, PetID: 2, Date: "2026-08-20", Description: "First grooming",
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "First grooming", log.Description)
		assert.Empty(t, log.PhotoHash)
	})

	t.Run("with uploaded photo", func(t *testing.T) {
		repo := &growthRepoStub{createFn: func(_ context.Context, _ *models.GrowthLog) error { return nil }}
		svc, photos := newGrowthTestService(t, repo, 1)

		photo, err := photos.Upload(context.Background(), UploadPhotoInput{
			UserID:      1,
			Filename:    "rex.png",
			ContentType: "image/png",
			Content:     testutil.TinyPNG(t, 300, 200),
		})
		require.NoError(t, err)

		log, err := svc.CreateLog(context.Background(), CreateGrowthLogInput{
			UserID: 1, PetID: 2, Date: "2026-08-20", PhotoHash: photo.Hash,
		})
		require.NoError(t, err)
		assert.Equal(t, photo.Hash, log.PhotoHash)
	})

	t.Run("another users photo looks missing", func(t *testing.T) {
		repo := &growthRepoStub{}
		svc, photos := newGrowthTestService(t, repo, 1)

		photo, err := photos.Upload(context.Background(), UploadPhotoInput{
			UserID:      99,
			Filename:    "stranger.png",
			ContentType: "image/png",
			Content:     testutil.TinyPNG(t, 300, 200),
		})
		require.NoError(t, err)

		_, err = svc.CreateLog(context.Background(), CreateGrowthLogInput{
			UserID: 1, PetID: 2, Date: "2026-08-20", PhotoHash: photo.Hash,
		})
		assertNotFoundError(t, err)
	})
}

func TestGrowthLogService_DeleteLog_Ownership(t *testing.T) {
	deleted := false
	repo := &growthRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.GrowthLog, error) {
			return &models.GrowthLog{ID: id, PetID: 2}, nil
		},
		deleteFn: func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		},
	}

	// Owner can delete.
	svc, _ := newGrowthTestService(t, repo, 1)
	require.NoError(t, svc.DeleteLog(context.Background(), 5, 1))
	assert.True(t, deleted)

	// A different user gets not-found.
	deleted = false
	other, _ := newGrowthTestService(t, repo, 7)
	err := other.DeleteLog(context.Background(), 5, 1)
	assertNotFoundError(t, err)
	assert.False(t, deleted)
}
