package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ecoVoyage/domain"
	"ecoVoyage/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	DestinationService interface {
		GetAllDestinations(ctx context.Context) ([]domain.Destination, error)
		GetDestinationByID(ctx context.Context, id uint64) (*domain.Destination, error)
		CreateDestination(ctx context.Context, dest *domain.Destination) (*domain.Destination, error)
		UpdateDestination(ctx context.Context, dest *domain.Destination) (*domain.Destination, error)
		DeleteDestination(ctx context.Context, id uint64) error
	}

	SustainabilityService interface {
		SustainabilityBreakdown(ctx context.Context, destID uint64) (map[string]float64, error)
	}

	DestinationHandler struct {
		destService DestinationService
		sustService SustainabilityService
		validate    *validator.Validate
		timeout     time.Duration
	}

	DestinationRequest struct {
		Name                     string   `json:"name" validate:"required"`
		Country                  string   `json:"country"`
		LandscapeType            string   `json:"landscape_type"`
		PopularActivities        []string `json:"popular_activities,omitempty"`
		CarbonFootprintScore     float64  `json:"carbon_footprint_score" validate:"gte=0,lte=10"`
		WaterConsumptionScore    float64  `json:"water_consumption_score" validate:"gte=0,lte=10"`
		WasteManagementScore     float64  `json:"waste_management_score" validate:"gte=0,lte=10"`
		BiodiversityImpactScore  float64  `json:"biodiversity_impact_score" validate:"gte=0,lte=10"`
		LocalEconomySupportScore float64  `json:"local_economy_support_score" validate:"gte=0,lte=10"`
	}
)

func NewDestinationHandler(destService DestinationService, sustService SustainabilityService) *DestinationHandler {
	return &DestinationHandler{
		destService: destService,
		sustService: sustService,
		validate:    validator.New(),
		timeout:     10 * time.Second,
	}
}

func destIDParam(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func (r DestinationRequest) toDomain() domain.Destination {
	var activities []byte
	if r.PopularActivities != nil {
		activities, _ = json.Marshal(r.PopularActivities)
	}

	return domain.Destination{
		Name:                     r.Name,
		Country:                  r.Country,
		LandscapeType:            r.LandscapeType,
		PopularActivities:        activities,
		CarbonFootprintScore:     r.CarbonFootprintScore,
		WaterConsumptionScore:    r.WaterConsumptionScore,
		WasteManagementScore:     r.WasteManagementScore,
		BiodiversityImpactScore:  r.BiodiversityImpactScore,
		LocalEconomySupportScore: r.LocalEconomySupportScore,
	}
}

func (h *DestinationHandler) GetAllDestinations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	destinations, err := h.destService.GetAllDestinations(ctx)
	if err != nil {
		logger.Error("Failed to get all destinations", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(destinations))
}

func (h *DestinationHandler) GetDestinationByID(c echo.Context) error {
	id, ok := destIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid destination ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	dest, err := h.destService.GetDestinationByID(ctx, id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(dest))
}

// GET /api/v1/destinations/:id/sustainability
func (h *DestinationHandler) GetSustainabilityBreakdown(c echo.Context) error {
	id, ok := destIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid destination ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	breakdown, err := h.sustService.SustainabilityBreakdown(ctx, id)
	if err != nil {
		return c.JSON(statusForDomainError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(breakdown))
}

func (h *DestinationHandler) CreateDestination(c echo.Context) error {
	var req DestinationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	dest := req.toDomain()
	created, err := h.destService.CreateDestination(ctx, &dest)
	if err != nil {
		logger.Error("Failed to create destination", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *DestinationHandler) UpdateDestination(c echo.Context) error {
	id, ok := destIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid destination ID"})
	}

	var req DestinationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	dest := req.toDomain()
	dest.ID = id

	updated, err := h.destService.UpdateDestination(ctx, &dest)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *DestinationHandler) DeleteDestination(c echo.Context) error {
	id, ok := destIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid destination ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.destService.DeleteDestination(ctx, id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Destination deleted successfully",
	})
}
