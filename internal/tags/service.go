package tags

import (
	"context"
	"fmt"
	"strings"

	"mulnori/internal/notify"
	"mulnori/internal/shared/apperror"
	"mulnori/internal/shared/constants"
	"mulnori/pkg/cache"
	"mulnori/pkg/logger"
)

type Service interface {
	// Dependency injection, wired by the router.
	SetPublisher(p notify.Publisher)
	SetCacheService(c cache.Service)

	// Crowd-facing workflow operations.
	RequestAddition(ctx context.Context, siteID uint, tagName string) (*AdditionOutcome, error)
	RequestDeletion(ctx context.Context, siteID uint, tagName string) (*DeletionOutcome, error)

	// Admin surface of the deletion workflow.
	ListHiddenRequests(ctx context.Context) ([]HiddenDeletionRequest, error)
	PurgeHiddenRequest(ctx context.Context, requestID uint) error
}

// AdditionOutcome reports an accepted tag addition request. The tag is not
// visible yet; moderation applies it later.
type AdditionOutcome struct {
	RequestID uint   `json:"request_id"`
	SiteID    uint   `json:"site_id"`
	TagName   string `json:"tag_name"`
	Status    string `json:"status"`
}

// DeletionOutcome reports an accepted deletion request. Hidden is true for
// every call at or past the threshold; HiddenNow only for the call that
// crossed it.
type DeletionOutcome struct {
	SiteID       uint   `json:"site_id"`
	TagName      string `json:"tag_name"`
	RequestCount int    `json:"request_count"`
	Hidden       bool   `json:"hidden"`
	HiddenNow    bool   `json:"-"`
}

type service struct {
	repo         Repository
	threshold    int
	maxTagLength int
	publisher    notify.Publisher
	cacheService cache.Service
}

func NewService(repo Repository, threshold, maxTagLength int) Service {
	if threshold <= 0 {
		threshold = 5
	}
	if maxTagLength <= 0 {
		maxTagLength = 50
	}
	return &service{
		repo:         repo,
		threshold:    threshold,
		maxTagLength: maxTagLength,
	}
}

// SetPublisher injects the governance-event publisher.
func (s *service) SetPublisher(p notify.Publisher) {
	s.publisher = p
}

// SetCacheService injects the cache used for public-listing invalidation.
func (s *service) SetCacheService(c cache.Service) {
	s.cacheService = c
}

func (s *service) validateTagName(tagName string) error {
	if strings.TrimSpace(tagName) == "" {
		return apperror.Validation("tag name is required")
	}
	if len([]rune(tagName)) > s.maxTagLength {
		return apperror.Validationf("tag name must be at most %d characters", s.maxTagLength)
	}
	return nil
}

// RequestAddition files a pending tag addition request. The site row stays
// untouched; duplicate tags and duplicate pending requests are conflicts.
func (s *service) RequestAddition(ctx context.Context, siteID uint, tagName string) (*AdditionOutcome, error) {
	if err := s.validateTagName(tagName); err != nil {
		return nil, err
	}

	var created *TagAdditionRequest
	err := s.repo.InTx(func(tx Repository) error {
		tagField, found, err := tx.SiteTagsForUpdate(siteID)
		if err != nil {
			return apperror.Storage("failed to load site", err)
		}
		if !found {
			return apperror.NotFound("site not found")
		}

		if Contains(Parse(tagField), tagName) {
			return apperror.Conflict("tag already exists on this site")
		}

		pending, err := tx.HasPendingAddition(siteID, tagName)
		if err != nil {
			return apperror.Storage("failed to check pending requests", err)
		}
		if pending {
			return apperror.Conflict("a pending request for this tag already exists")
		}

		created = &TagAdditionRequest{
			SiteID:  siteID,
			TagName: tagName,
			Status:  ApprovalPending,
		}
		if err := tx.CreateAddition(created); err != nil {
			return apperror.Storage("failed to create addition request", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.GetDefault().LogTagAdditionRequested(ctx, siteID, tagName)

	return &AdditionOutcome{
		RequestID: created.ID,
		SiteID:    siteID,
		TagName:   tagName,
		Status:    string(created.Status),
	}, nil
}

// RequestDeletion records one removal request for (siteID, tagName) and
// hides the tag when the counter reaches the threshold. The whole
// read-decide-write sequence commits as one transaction: the counter, the
// hidden flag, and the site's tag list never diverge.
func (s *service) RequestDeletion(ctx context.Context, siteID uint, tagName string) (*DeletionOutcome, error) {
	if err := s.validateTagName(tagName); err != nil {
		return nil, err
	}

	outcome := &DeletionOutcome{SiteID: siteID, TagName: tagName}
	err := s.repo.InTx(func(tx Repository) error {
		tagField, found, err := tx.SiteTagsForUpdate(siteID)
		if err != nil {
			return apperror.Storage("failed to load site", err)
		}
		if !found {
			return apperror.NotFound("site not found")
		}

		set := Parse(tagField)
		req, err := tx.FindDeletion(siteID, tagName)
		if err != nil {
			return apperror.Storage("failed to load deletion request", err)
		}

		// A tag can only be requested for deletion while it is visible,
		// unless it was already hidden by this very workflow: repeated
		// requests past the threshold keep counting instead of erroring.
		if !Contains(set, tagName) && (req == nil || !req.Hidden) {
			return apperror.NotFound("tag not present on this site")
		}

		if req == nil {
			req = &TagDeletionRequest{
				SiteID:       siteID,
				TagName:      tagName,
				RequestCount: 1,
			}
		} else {
			req.RequestCount++
		}

		if req.RequestCount >= s.threshold && !req.Hidden {
			req.Hidden = true
			outcome.HiddenNow = true

			// The guard above admits a non-hidden counter only while the
			// tag is still on the site, so the removal cannot miss.
			remaining, err := Remove(set, tagName)
			if err != nil {
				return err
			}
			if err := tx.UpdateSiteTags(siteID, Serialize(remaining)); err != nil {
				return apperror.Storage("failed to update site tags", err)
			}
		}

		if err := tx.SaveDeletion(req); err != nil {
			return apperror.Storage("failed to save deletion request", err)
		}

		outcome.RequestCount = req.RequestCount
		outcome.Hidden = req.Hidden
		return nil
	})
	if err != nil {
		return nil, err
	}

	if outcome.HiddenNow {
		logger.GetDefault().LogTagHidden(ctx, siteID, tagName, outcome.RequestCount)
		s.invalidateSiteCaches(ctx, siteID)
		if s.publisher != nil {
			_ = s.publisher.Publish(ctx, &notify.GovernanceEvent{
				Type:    notify.EventTagHidden,
				SiteID:  siteID,
				TagName: tagName,
			})
		}
	}

	return outcome, nil
}

func (s *service) ListHiddenRequests(ctx context.Context) ([]HiddenDeletionRequest, error) {
	hidden, err := s.repo.ListHidden()
	if err != nil {
		return nil, apperror.Storage("failed to list hidden deletion requests", err)
	}
	if hidden == nil {
		hidden = []HiddenDeletionRequest{}
	}
	return hidden, nil
}

// PurgeHiddenRequest permanently removes a deletion request that already
// crossed the threshold. Visible (non-hidden) counters cannot be purged.
func (s *service) PurgeHiddenRequest(ctx context.Context, requestID uint) error {
	req, err := s.repo.FindDeletionByID(requestID)
	if err != nil {
		return apperror.Storage("failed to load deletion request", err)
	}
	if req == nil || !req.Hidden {
		return apperror.NotFound(fmt.Sprintf("no hidden deletion request with id %d", requestID))
	}

	if err := s.repo.DeleteDeletion(req); err != nil {
		return apperror.Storage("failed to purge deletion request", err)
	}
	return nil
}

func (s *service) invalidateSiteCaches(ctx context.Context, siteID uint) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, constants.KEY_PUBLIC_SITES, constants.SiteDetailKey(siteID))
}
