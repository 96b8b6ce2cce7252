package rest

import (
	"context"
	"net/http"

	"ecoVoyage/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	VisitService interface {
		LogVisit(ctx context.Context, userID uint, destID uint64) (*domain.Visit, error)
	}

	VisitHistory interface {
		FindByUser(ctx context.Context, userID uint) ([]domain.Visit, error)
	}

	VisitHandler struct {
		validate     *validator.Validate
		visitService VisitService
		visitHistory VisitHistory
	}

	VisitRequest struct {
		DestinationID uint64 `json:"destination_id" validate:"required"`
	}
)

func NewVisitHandler(visitService VisitService, visitHistory VisitHistory) *VisitHandler {
	return &VisitHandler{
		validate:     validator.New(),
		visitService: visitService,
		visitHistory: visitHistory,
	}
}

// POST /api/v1/visits
func (h *VisitHandler) LogVisit(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req VisitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	visit, err := h.visitService.LogVisit(c.Request().Context(), userID, req.DestinationID)
	if err != nil {
		return c.JSON(statusForDomainError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(visit))
}

// GET /api/v1/visits
func (h *VisitHandler) MyVisits(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	visits, err := h.visitHistory.FindByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(visits))
}
