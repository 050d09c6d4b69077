package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-platform/campus-timetable/internal/dto"
	appErrors "github.com/edu-platform/campus-timetable/pkg/errors"
	"github.com/edu-platform/campus-timetable/pkg/response"
)

type timetableSolver interface {
	Solve(ctx context.Context, req dto.SolveRequest) (*dto.SolveReport, error)
}

// TimetableHandler exposes the timetable constraint solver over HTTP
// (spec.md §6).
type TimetableHandler struct {
	service timetableSolver
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc timetableSolver) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// Solve godoc
// @Summary Solve and materialize a conflict-free weekly timetable
// @Description Runs the constraint solver (CP-SAT with greedy fallback) for a career/term and persists the result.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.SolveRequest true "Solve request"
// @Success 200 {object} response.Envelope
// @Router /timetable/solve [post]
func (h *TimetableHandler) Solve(c *gin.Context) {
	var req dto.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid solve payload"))
		return
	}
	report, err := h.service.Solve(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}
