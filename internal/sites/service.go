package sites

import (
	"context"
	"strings"

	"mulnori/internal/notify"
	"mulnori/internal/shared/apperror"
	"mulnori/internal/shared/constants"
	"mulnori/internal/tags"
	"mulnori/pkg/cache"
	"mulnori/pkg/logger"
)

type Service interface {
	// Dependency injection, wired by the router.
	SetPublisher(p notify.Publisher)
	SetCacheService(c cache.Service)

	Register(ctx context.Context, req RegisterSiteRequest) (*SiteResponse, error)
	GetByID(ctx context.Context, id uint) (*SiteResponse, error)
	List(ctx context.Context, statusFilter string) ([]SiteResponse, error)
	ListPublic(ctx context.Context) ([]SiteResponse, error)
	SetStatus(ctx context.Context, id uint, status string) (*SiteResponse, error)
}

type service struct {
	repo         Repository
	publisher    notify.Publisher
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetPublisher(p notify.Publisher) {
	s.publisher = p
}

func (s *service) SetCacheService(c cache.Service) {
	s.cacheService = c
}

// Register proposes a new dive site. It always enters the registry as
// PENDING; approval is a separate transition.
func (s *service) Register(ctx context.Context, req RegisterSiteRequest) (*SiteResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("site name is required")
	}
	if req.Lat == nil || req.Lon == nil {
		return nil, apperror.Validation("latitude and longitude are required")
	}
	if *req.Lat < -90 || *req.Lat > 90 {
		return nil, apperror.Validation("latitude must be between -90 and 90")
	}
	if *req.Lon < -180 || *req.Lon > 180 {
		return nil, apperror.Validation("longitude must be between -180 and 180")
	}

	site := &Site{
		Name:   name,
		Lat:    *req.Lat,
		Lon:    *req.Lon,
		Tags:   tags.Normalize(req.Tags),
		Status: StatusPending,
	}

	if err := s.repo.Create(site); err != nil {
		return nil, apperror.Storage("failed to create site", err)
	}

	logger.GetDefault().LogSiteRegistered(ctx, site.ID, site.Name)

	s.invalidateListings(ctx, site.ID)
	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, &notify.GovernanceEvent{
			Type:     notify.EventSiteRegistered,
			SiteID:   site.ID,
			SiteName: site.Name,
			Status:   string(site.Status),
		})
	}

	resp := site.ToResponse()
	return &resp, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*SiteResponse, error) {
	fetch := func() (interface{}, error) {
		site, err := s.repo.GetByID(id)
		if err != nil {
			return nil, apperror.Storage("failed to load site", err)
		}
		if site == nil {
			return nil, apperror.NotFound("site not found")
		}
		resp := site.ToResponse()
		return &resp, nil
	}

	if s.cacheService == nil {
		out, err := fetch()
		if err != nil {
			return nil, err
		}
		return out.(*SiteResponse), nil
	}

	var out SiteResponse
	if err := s.cacheService.GetOrSet(ctx, constants.SiteDetailKey(id), constants.TTL_SITE_DETAIL, fetch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns sites, optionally restricted to one status. An empty filter
// returns the whole registry regardless of status.
func (s *service) List(ctx context.Context, statusFilter string) ([]SiteResponse, error) {
	var filter *SiteStatus
	if statusFilter != "" {
		status, ok := ParseStatus(statusFilter)
		if !ok {
			return nil, apperror.Validationf("unknown status %q", statusFilter)
		}
		filter = &status
	}

	sites, err := s.repo.List(filter)
	if err != nil {
		return nil, apperror.Storage("failed to list sites", err)
	}

	return toResponses(sites), nil
}

// ListPublic is the map-facing listing: approved sites only, served
// cache-aside because every map load hits it.
func (s *service) ListPublic(ctx context.Context) ([]SiteResponse, error) {
	fetch := func() (interface{}, error) {
		status := StatusApproved
		sites, err := s.repo.List(&status)
		if err != nil {
			return nil, apperror.Storage("failed to list sites", err)
		}
		return toResponses(sites), nil
	}

	if s.cacheService == nil {
		out, err := fetch()
		if err != nil {
			return nil, err
		}
		return out.([]SiteResponse), nil
	}

	var out []SiteResponse
	if err := s.cacheService.GetOrSet(ctx, constants.KEY_PUBLIC_SITES, constants.TTL_PUBLIC_SITES, fetch, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus moves a site through the approval workflow. Setting the
// current status again succeeds and changes nothing; any known status can
// follow any other.
func (s *service) SetStatus(ctx context.Context, id uint, status string) (*SiteResponse, error) {
	parsed, ok := ParseStatus(status)
	if !ok {
		return nil, apperror.Validationf("unknown status %q", status)
	}

	site, err := s.repo.UpdateStatus(id, parsed)
	if err != nil {
		return nil, apperror.Storage("failed to update site status", err)
	}
	if site == nil {
		return nil, apperror.NotFound("site not found")
	}

	logger.GetDefault().LogSiteStatusChanged(ctx, site.ID, string(parsed))

	s.invalidateListings(ctx, site.ID)
	if parsed == StatusApproved && s.publisher != nil {
		_ = s.publisher.Publish(ctx, &notify.GovernanceEvent{
			Type:     notify.EventSiteApproved,
			SiteID:   site.ID,
			SiteName: site.Name,
			Status:   string(parsed),
		})
	}

	resp := site.ToResponse()
	return &resp, nil
}

func (s *service) invalidateListings(ctx context.Context, siteID uint) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, constants.KEY_PUBLIC_SITES, constants.SiteDetailKey(siteID))
}

func toResponses(sites []Site) []SiteResponse {
	out := make([]SiteResponse, len(sites))
	for i := range sites {
		out[i] = sites[i].ToResponse()
	}
	return out
}
