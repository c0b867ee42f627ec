package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/klasique2/Bellak-voting/internal/model"
	"github.com/klasique2/Bellak-voting/internal/upstream"
)

// CatalogService provides typed reads over the external voting API:
// categories, nominees, and per-category results. Every call hits upstream
// fresh — the data is dynamic and never cached.
type CatalogService struct {
	api *upstream.Client
}

func NewCatalogService(api *upstream.Client) *CatalogService {
	return &CatalogService{api: api}
}

// getJSON is the shared fetch helper: GET path and decode into v. Transport
// failures and undecodable bodies surface as status-0 "Network Error"
// APIErrors; non-2xx responses surface as APIErrors carrying the upstream
// status and status text.
func (s *CatalogService) getJSON(ctx context.Context, path string, v any) error {
	resp, err := s.api.Get(ctx, path)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return &upstream.APIError{
			Status:     resp.Status,
			StatusText: resp.StatusText,
			Message:    fmt.Sprintf("API request failed: %s", resp.StatusText),
		}
	}
	if err := resp.Decode(v); err != nil {
		return upstream.NetworkError(err)
	}
	return nil
}

// GetCategories returns the full category list.
func (s *CatalogService) GetCategories(ctx context.Context) (*model.Page[model.Category], error) {
	var page model.Page[model.Category]
	if err := s.getJSON(ctx, upstream.CategoriesPath, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetCategoryDetails returns a single category with its voting window.
func (s *CatalogService) GetCategoryDetails(ctx context.Context, id int) (*model.CategoryDetails, error) {
	var details model.CategoryDetails
	if err := s.getJSON(ctx, upstream.CategoryPath(id), &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// GetNomineesByCategory returns the nominees of one category.
func (s *CatalogService) GetNomineesByCategory(ctx context.Context, categoryID int) (*model.Page[model.Nominee], error) {
	var page model.Page[model.Nominee]
	if err := s.getJSON(ctx, upstream.CategoryNomineesPath(categoryID), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetVotingResults returns the ranked results for one category.
func (s *CatalogService) GetVotingResults(ctx context.Context, categoryID int) (*model.VotingResults, error) {
	var results model.VotingResults
	if err := s.getJSON(ctx, upstream.CategoryResultsPath(categoryID), &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// GetAllNominees lists every category, fetches each category's nominees
// concurrently, and flattens the results in category order. A single failed
// fetch fails the whole call — there is no partial-result tolerance.
func (s *CatalogService) GetAllNominees(ctx context.Context) ([]model.Nominee, error) {
	categories, err := s.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	pages := make([]*model.Page[model.Nominee], len(categories.Results))
	for i, cat := range categories.Results {
		g.Go(func() error {
			page, err := s.GetNomineesByCategory(gctx, cat.ID)
			if err != nil {
				return err
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.Nominee
	for _, page := range pages {
		all = append(all, page.Results...)
	}
	return all, nil
}

// GetCategoryWithNominees fetches category details and the nominee list
// concurrently and merges them into one view.
func (s *CatalogService) GetCategoryWithNominees(ctx context.Context, id int) (*model.CategoryDetails, error) {
	var (
		details  *model.CategoryDetails
		nominees *model.Page[model.Nominee]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		details, err = s.GetCategoryDetails(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		nominees, err = s.GetNomineesByCategory(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	details.Nominees = nominees.Results
	return details, nil
}
