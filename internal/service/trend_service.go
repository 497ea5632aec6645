package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/csab-tools/csab-match-api/internal/models"
	appErrors "github.com/csab-tools/csab-match-api/pkg/errors"
)

type trendRepository interface {
	Trends(ctx context.Context, filter models.TrendFilter) ([]models.Cutoff, error)
}

// TrendRequest identifies one offer whose history should be returned.
type TrendRequest struct {
	Institute string `json:"institute" validate:"required"`
	Program   string `json:"program" validate:"required"`
	SeatType  string `json:"seat_type" validate:"required"`
	Quota     string `json:"quota"`
	Gender    string `json:"gender"`
}

// TrendService returns the round-by-round cutoff history of an offer.
// Plain equality retrieval; no ranking applies here.
type TrendService struct {
	repo      trendRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTrendService constructs a trend service.
func NewTrendService(repo trendRepository, validate *validator.Validate, logger *zap.Logger) *TrendService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrendService{repo: repo, validator: validate, logger: logger}
}

// History returns matching cutoffs ordered oldest year and round first.
func (s *TrendService) History(ctx context.Context, req TrendRequest) ([]models.MatchResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid trend request")
	}

	cutoffs, err := s.repo.Trends(ctx, models.TrendFilter{
		Institute: req.Institute,
		Program:   req.Program,
		SeatType:  req.SeatType,
		Quota:     req.Quota,
		Gender:    req.Gender,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cutoff trends")
	}

	results := make([]models.MatchResult, 0, len(cutoffs))
	for _, c := range cutoffs {
		results = append(results, models.NewMatchResult(c))
	}
	return results, nil
}
