package rest

import (
	"context"
	"errors"
	"net/http"

	"ecoVoyage/business/evaluation"
	"ecoVoyage/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate   *validator.Validate
		recService RecommendationService
	}

	RecommendationService interface {
		Recommend(ctx context.Context, userID uint, limit int, excludeVisited bool) ([]domain.Candidate, error)
		ExplainSustainabilityWeight(ctx context.Context, userID uint, destID uint64, targetWeight float64) (domain.CounterfactualResult, error)
		ExplainDestinationFeature(ctx context.Context, userID uint, destID uint64, feature string, targetValue float64) (domain.CounterfactualResult, error)
		ExplainUserFeature(ctx context.Context, userID uint, destID uint64, feature string, targetValue float64) (domain.CounterfactualResult, error)
		SetSustainabilityWeight(ctx context.Context, weight float64) error
		SetWeightingScheme(ctx context.Context, name string, threshold float64) error
		RerankerConfig() (weight float64, scheme string)
		Evaluate(ctx context.Context, k int) ([]evaluation.Metrics, error)
	}

	RecommendQuery struct {
		N              int  `query:"n"`
		IncludeVisited bool `query:"include_visited"`
	}

	ExplainRequest struct {
		DestinationID uint64  `json:"destination_id" validate:"required"`
		Factor        string  `json:"factor" validate:"required,oneof=sustainability_weight destination_feature user_feature"`
		Attribute     string  `json:"attribute"`
		TargetValue   float64 `json:"target_value"`
	}

	RerankerConfigRequest struct {
		Weight    *float64 `json:"weight" validate:"omitempty,gte=0,lte=1"`
		Scheme    string   `json:"scheme" validate:"omitempty,oneof=linear quadratic sigmoid threshold"`
		Threshold float64  `json:"threshold" validate:"omitempty,gt=0,lte=1"`
	}

	EvaluationQuery struct {
		K int `query:"k"`
	}
)

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:   validator.New(),
		recService: svc,
	}
}

// GET /api/v1/recommendations?n=10&include_visited=false
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if q.N <= 0 {
		q.N = 10
	}

	recs, err := h.recService.Recommend(c.Request().Context(), userID, q.N, !q.IncludeVisited)
	if err != nil {
		return c.JSON(statusForDomainError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// POST /api/v1/recommendations/explain
func (h *RecommendationHandler) Explain(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req ExplainRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if req.Factor != domain.FactorSustainabilityWeight && req.Attribute == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "attribute is required for feature factors"})
	}

	ctx := c.Request().Context()

	var (
		res domain.CounterfactualResult
		err error
	)

	switch req.Factor {
	case domain.FactorSustainabilityWeight:
		res, err = h.recService.ExplainSustainabilityWeight(ctx, userID, req.DestinationID, req.TargetValue)
	case domain.FactorDestinationFeature:
		res, err = h.recService.ExplainDestinationFeature(ctx, userID, req.DestinationID, req.Attribute, req.TargetValue)
	case domain.FactorUserFeature:
		res, err = h.recService.ExplainUserFeature(ctx, userID, req.DestinationID, req.Attribute, req.TargetValue)
	}

	if err != nil {
		return c.JSON(statusForDomainError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(res))
}

// GET /api/v1/admin/reranker
func (h *RecommendationHandler) GetRerankerConfig(c echo.Context) error {
	weight, scheme := h.recService.RerankerConfig()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"weight": weight,
		"scheme": scheme,
	}))
}

// PUT /api/v1/admin/reranker
func (h *RecommendationHandler) UpdateRerankerConfig(c echo.Context) error {
	var req RerankerConfigRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if req.Weight == nil && req.Scheme == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "weight or scheme is required"})
	}

	ctx := c.Request().Context()

	if req.Scheme != "" {
		if err := h.recService.SetWeightingScheme(ctx, req.Scheme, req.Threshold); err != nil {
			return c.JSON(statusForDomainError(err), ResponseError{Message: err.Error()})
		}
	}

	if req.Weight != nil {
		if err := h.recService.SetSustainabilityWeight(ctx, *req.Weight); err != nil {
			return c.JSON(statusForDomainError(err), ResponseError{Message: err.Error()})
		}
	}

	weight, scheme := h.recService.RerankerConfig()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"weight": weight,
		"scheme": scheme,
	}))
}

// GET /api/v1/admin/evaluation?k=5
func (h *RecommendationHandler) Evaluate(c echo.Context) error {
	var q EvaluationQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.K <= 0 {
		q.K = 5
	}

	results, err := h.recService.Evaluate(c.Request().Context(), q.K)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(results))
}

// statusForDomainError maps typed recommendation errors onto HTTP codes.
func statusForDomainError(err error) int {
	var (
		unknownUser  domain.UnknownUserError
		unknownDest  domain.UnknownDestinationError
		notInWindow  domain.TargetNotInWindowError
		featMissing  domain.FeatureNotFoundError
		badWeight    domain.InvalidWeightError
		noRecommends domain.NoRecommendersConfiguredError
	)

	switch {
	case errors.As(err, &unknownUser), errors.As(err, &unknownDest), errors.As(err, &featMissing):
		return http.StatusNotFound
	case errors.As(err, &notInWindow), errors.As(err, &badWeight):
		return http.StatusUnprocessableEntity
	case errors.As(err, &noRecommends):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
