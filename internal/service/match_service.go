package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/csab-tools/csab-match-api/internal/models"
	appErrors "github.com/csab-tools/csab-match-api/pkg/errors"
)

type cutoffRepository interface {
	List(ctx context.Context, filter models.CutoffFilter) ([]models.Cutoff, error)
	Count(ctx context.Context, filter models.CutoffFilter) (int, error)
}

// MatchRequest is the caller's filter selection. SeatType is the only
// mandatory field; rank activates the admissibility window and relevance
// ordering unless a specific institute is pinned.
type MatchRequest struct {
	Rank      *int   `json:"rank" validate:"omitempty,gte=1"`
	SeatType  string `json:"seat_type" validate:"required"`
	Year      *int   `json:"year" validate:"omitempty,gte=1"`
	Round     *int   `json:"round" validate:"omitempty,gte=1"`
	Quota     string `json:"quota"`
	Gender    string `json:"gender"`
	Institute string `json:"institute"`
	Program   string `json:"program"`
	Page      int    `json:"page" validate:"omitempty,gte=1"`
	Limit     int    `json:"limit" validate:"omitempty,gte=1"`
	FetchAll  bool   `json:"fetch_all"`
}

// MatchService is the admission-matching and ranking engine.
type MatchService struct {
	repo            cutoffRepository
	validator       *validator.Validate
	logger          *zap.Logger
	defaultPageSize int
	maxPageSize     int
}

// NewMatchService constructs the match service.
func NewMatchService(repo cutoffRepository, validate *validator.Validate, logger *zap.Logger, defaultPageSize, maxPageSize int) *MatchService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultPageSize < 1 {
		defaultPageSize = 25
	}
	if maxPageSize < defaultPageSize {
		maxPageSize = defaultPageSize
	}
	return &MatchService{
		repo:            repo,
		validator:       validate,
		logger:          logger,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// Match returns the admission records attainable under the request,
// ordered by relevance to the caller's rank.
func (s *MatchService) Match(ctx context.Context, req MatchRequest) (*models.MatchPage, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid match request")
	}

	filter := s.buildFilter(req)

	cutoffs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list cutoffs")
	}

	// A pinned institute means "show everything for this institute"; the
	// rank then plays no part in filtering or ordering.
	if filter.UserRank > 0 && len(cutoffs) > 0 {
		rankByRelevance(cutoffs, filter.UserRank)
	}

	results := make([]models.MatchResult, 0, len(cutoffs))
	for _, c := range cutoffs {
		results = append(results, models.NewMatchResult(c))
	}

	if filter.FetchAll {
		return &models.MatchPage{
			Results: results,
			Pagination: models.Pagination{
				Page:       1,
				PageSize:   len(results),
				TotalCount: len(results),
				TotalPages: 1,
			},
		}, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count cutoffs")
	}

	totalPages := total / filter.PageSize
	if total%filter.PageSize != 0 {
		totalPages++
	}

	return &models.MatchPage{
		Results: results,
		Pagination: models.Pagination{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalCount: total,
			TotalPages: totalPages,
		},
	}, nil
}

// Margin exposes the reach-down margin for a rank.
func (s *MatchService) Margin(rank int) int {
	return LowerMargin(rank)
}

func (s *MatchService) buildFilter(req MatchRequest) models.CutoffFilter {
	filter := models.CutoffFilter{
		SeatType:      req.SeatType,
		Quota:         req.Quota,
		Gender:        req.Gender,
		Institute:     req.Institute,
		ProgramSearch: req.Program,
		FetchAll:      req.FetchAll,
	}
	if req.Year != nil {
		filter.Year = *req.Year
	}
	if req.Round != nil {
		filter.Round = *req.Round
	}

	if req.Rank != nil && req.Institute == "" {
		filter.UserRank = *req.Rank
		filter.MinClosingRank = MinAllowedRank(*req.Rank)
	}

	filter.Page = req.Page
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.PageSize = req.Limit
	if filter.PageSize < 1 {
		filter.PageSize = s.defaultPageSize
	}
	if filter.PageSize > s.maxPageSize {
		filter.PageSize = s.maxPageSize
	}

	return filter
}
