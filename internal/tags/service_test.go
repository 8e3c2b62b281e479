package tags_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mulnori/internal/shared/apperror"
	"mulnori/internal/tags"
)

// fakeRepo is an in-memory Repository. InTx runs the callback against the
// fake itself; transaction semantics are not simulated, only the data
// operations the workflows perform.
type fakeRepo struct {
	siteTags  map[uint]string
	additions []*tags.TagAdditionRequest
	deletions map[string]*tags.TagDeletionRequest
	nextID    uint
}

var _ tags.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		siteTags:  make(map[uint]string),
		deletions: make(map[string]*tags.TagDeletionRequest),
		nextID:    1,
	}
}

func deletionKey(siteID uint, tagName string) string {
	return fmt.Sprintf("%d:%s", siteID, tagName)
}

func (f *fakeRepo) InTx(fn func(tx tags.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) SiteTagsForUpdate(siteID uint) (string, bool, error) {
	field, ok := f.siteTags[siteID]
	return field, ok, nil
}

func (f *fakeRepo) UpdateSiteTags(siteID uint, tagField string) error {
	f.siteTags[siteID] = tagField
	return nil
}

func (f *fakeRepo) HasPendingAddition(siteID uint, tagName string) (bool, error) {
	for _, req := range f.additions {
		if req.SiteID == siteID && req.TagName == tagName && req.Status == tags.ApprovalPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateAddition(req *tags.TagAdditionRequest) error {
	req.ID = f.nextID
	f.nextID++
	f.additions = append(f.additions, req)
	return nil
}

func (f *fakeRepo) FindDeletion(siteID uint, tagName string) (*tags.TagDeletionRequest, error) {
	return f.deletions[deletionKey(siteID, tagName)], nil
}

func (f *fakeRepo) SaveDeletion(req *tags.TagDeletionRequest) error {
	if req.ID == 0 {
		req.ID = f.nextID
		f.nextID++
	}
	f.deletions[deletionKey(req.SiteID, req.TagName)] = req
	return nil
}

func (f *fakeRepo) ListHidden() ([]tags.HiddenDeletionRequest, error) {
	var out []tags.HiddenDeletionRequest
	for _, req := range f.deletions {
		if req.Hidden {
			out = append(out, tags.HiddenDeletionRequest{
				ID:           req.ID,
				SiteID:       req.SiteID,
				TagName:      req.TagName,
				RequestCount: req.RequestCount,
			})
		}
	}
	return out, nil
}

func (f *fakeRepo) FindDeletionByID(id uint) (*tags.TagDeletionRequest, error) {
	for _, req := range f.deletions {
		if req.ID == id {
			return req, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) DeleteDeletion(req *tags.TagDeletionRequest) error {
	delete(f.deletions, deletionKey(req.SiteID, req.TagName))
	return nil
}

func TestRequestAddition(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending request without touching the site", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = "샤워장"
		svc := tags.NewService(repo, 5, 50)

		outcome, err := svc.RequestAddition(ctx, 1, "주차장")
		require.NoError(t, err)
		assert.Equal(t, "pending", outcome.Status)
		assert.Equal(t, "주차장", outcome.TagName)
		assert.NotZero(t, outcome.RequestID)

		assert.Equal(t, "샤워장", repo.siteTags[1], "tag column must stay unchanged until moderation")
		require.Len(t, repo.additions, 1)
		assert.Equal(t, tags.ApprovalPending, repo.additions[0].Status)
	})

	t.Run("unknown site is not found", func(t *testing.T) {
		svc := tags.NewService(newFakeRepo(), 5, 50)
		_, err := svc.RequestAddition(ctx, 42, "바다")
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("existing tag is a conflict and creates no request", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = "샤워장,주차장"
		svc := tags.NewService(repo, 5, 50)

		_, err := svc.RequestAddition(ctx, 1, "주차장")
		require.Error(t, err)
		assert.True(t, apperror.IsConflict(err))
		assert.Empty(t, repo.additions)
	})

	t.Run("duplicate pending request is a conflict", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = ""
		svc := tags.NewService(repo, 5, 50)

		_, err := svc.RequestAddition(ctx, 1, "바다")
		require.NoError(t, err)

		_, err = svc.RequestAddition(ctx, 1, "바다")
		require.Error(t, err)
		assert.True(t, apperror.IsConflict(err))
		assert.Len(t, repo.additions, 1)
	})

	t.Run("rejects blank and oversized tag names", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = ""
		svc := tags.NewService(repo, 5, 4)

		_, err := svc.RequestAddition(ctx, 1, "   ")
		assert.True(t, apperror.IsValidation(err))

		_, err = svc.RequestAddition(ctx, 1, "12345")
		assert.True(t, apperror.IsValidation(err))

		// Length counts characters, not bytes.
		_, err = svc.RequestAddition(ctx, 1, "샤워장넓")
		assert.NoError(t, err)
	})
}

func TestRequestDeletion(t *testing.T) {
	ctx := context.Background()

	t.Run("counts up to the threshold then hides", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = "샤워장,주차장"
		svc := tags.NewService(repo, 5, 50)

		for i := 1; i <= 4; i++ {
			outcome, err := svc.RequestDeletion(ctx, 1, "주차장")
			require.NoError(t, err)
			assert.Equal(t, i, outcome.RequestCount)
			assert.False(t, outcome.Hidden)
		}
		assert.Equal(t, "샤워장,주차장", repo.siteTags[1], "tag must stay visible below the threshold")

		outcome, err := svc.RequestDeletion(ctx, 1, "주차장")
		require.NoError(t, err)
		assert.Equal(t, 5, outcome.RequestCount)
		assert.True(t, outcome.Hidden)
		assert.Equal(t, "샤워장", repo.siteTags[1], "crossing the threshold removes the tag")
	})

	t.Run("requests past the threshold keep counting", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = "주차장"
		svc := tags.NewService(repo, 2, 50)

		_, err := svc.RequestDeletion(ctx, 1, "주차장")
		require.NoError(t, err)
		outcome, err := svc.RequestDeletion(ctx, 1, "주차장")
		require.NoError(t, err)
		assert.True(t, outcome.Hidden)

		// The tag is gone from the site, but the hidden record keeps
		// the request from erroring.
		outcome, err = svc.RequestDeletion(ctx, 1, "주차장")
		require.NoError(t, err)
		assert.Equal(t, 3, outcome.RequestCount)
		assert.True(t, outcome.Hidden)
	})

	t.Run("absent tag with no hidden record is not found", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = "샤워장"
		svc := tags.NewService(repo, 5, 50)

		_, err := svc.RequestDeletion(ctx, 1, "바다")
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("unknown site is not found", func(t *testing.T) {
		svc := tags.NewService(newFakeRepo(), 5, 50)
		_, err := svc.RequestDeletion(ctx, 9, "바다")
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("independent counters per site and tag", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = "샤워장,주차장"
		repo.siteTags[2] = "주차장"
		svc := tags.NewService(repo, 5, 50)

		_, err := svc.RequestDeletion(ctx, 1, "주차장")
		require.NoError(t, err)
		_, err = svc.RequestDeletion(ctx, 1, "주차장")
		require.NoError(t, err)

		outcome, err := svc.RequestDeletion(ctx, 2, "주차장")
		require.NoError(t, err)
		assert.Equal(t, 1, outcome.RequestCount)

		outcome, err = svc.RequestDeletion(ctx, 1, "샤워장")
		require.NoError(t, err)
		assert.Equal(t, 1, outcome.RequestCount)
	})

	t.Run("tag removed by hand invalidates the open counter", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = "주차장"
		svc := tags.NewService(repo, 2, 50)

		_, err := svc.RequestDeletion(ctx, 1, "주차장")
		require.NoError(t, err)

		// Moderator removes the tag between requests. With the tag gone
		// and the counter not yet hidden, further requests reference a
		// tag that no longer exists on the site.
		repo.siteTags[1] = ""

		_, err = svc.RequestDeletion(ctx, 1, "주차장")
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))

		// The counter did not advance.
		req, err := repo.FindDeletion(1, "주차장")
		require.NoError(t, err)
		require.NotNil(t, req)
		assert.Equal(t, 1, req.RequestCount)
		assert.False(t, req.Hidden)
	})
}

func TestHiddenRequestAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("lists only hidden requests", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = "주차장,샤워장"
		svc := tags.NewService(repo, 2, 50)

		_, err := svc.RequestDeletion(ctx, 1, "샤워장")
		require.NoError(t, err)
		_, err = svc.RequestDeletion(ctx, 1, "주차장")
		require.NoError(t, err)
		_, err = svc.RequestDeletion(ctx, 1, "주차장")
		require.NoError(t, err)

		hidden, err := svc.ListHiddenRequests(ctx)
		require.NoError(t, err)
		require.Len(t, hidden, 1)
		assert.Equal(t, "주차장", hidden[0].TagName)
		assert.Equal(t, 2, hidden[0].RequestCount)
	})

	t.Run("empty listing is a slice, not nil", func(t *testing.T) {
		svc := tags.NewService(newFakeRepo(), 5, 50)
		hidden, err := svc.ListHiddenRequests(ctx)
		require.NoError(t, err)
		assert.NotNil(t, hidden)
		assert.Empty(t, hidden)
	})

	t.Run("purge removes a hidden request", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = "주차장"
		svc := tags.NewService(repo, 1, 50)

		_, err := svc.RequestDeletion(ctx, 1, "주차장")
		require.NoError(t, err)

		hidden, err := svc.ListHiddenRequests(ctx)
		require.NoError(t, err)
		require.Len(t, hidden, 1)

		require.NoError(t, svc.PurgeHiddenRequest(ctx, hidden[0].ID))

		hidden, err = svc.ListHiddenRequests(ctx)
		require.NoError(t, err)
		assert.Empty(t, hidden)
	})

	t.Run("purging a visible counter is not found", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = "주차장"
		svc := tags.NewService(repo, 5, 50)

		_, err := svc.RequestDeletion(ctx, 1, "주차장")
		require.NoError(t, err)

		req, err := repo.FindDeletion(1, "주차장")
		require.NoError(t, err)
		require.NotNil(t, req)

		err = svc.PurgeHiddenRequest(ctx, req.ID)
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("purging an unknown id is not found", func(t *testing.T) {
		svc := tags.NewService(newFakeRepo(), 5, 50)
		err := svc.PurgeHiddenRequest(ctx, 404)
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})
}
