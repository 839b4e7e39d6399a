package scholarship

import "context"

type (
	Repository interface {
		QueryAllScholarships(ctx context.Context) ([]Scholarship, error)
		// FilterScholarships applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Scholarship.Name or Scholarship.Eligibility.
		FilterScholarships(ctx context.Context, filter QueryFilter) ([]Scholarship, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Scholarship, error) {
	return svc.repo.QueryAllScholarships(ctx)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Scholarship, error) {
	filter.Clean()
	if filter.IsEmpty() {
		return svc.repo.QueryAllScholarships(ctx)
	}
	return svc.repo.FilterScholarships(ctx, filter)
}
