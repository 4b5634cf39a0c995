package handler

import (
	"errors"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/ranking"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// responseLimit caps how many ranked candidates the API returns. The audit
// trail keeps more; callers only see the head of the ranking.
const responseLimit = 10

type MatchHandler struct {
	uc       usecase.MatchingUsecase
	validate *validator.Validate
}

type budgetRequest struct {
	Min      float64 `json:"min" validate:"gte=0"`
	Max      float64 `json:"max" validate:"gte=0"`
	Currency string  `json:"currency"`
}

type matchRequest struct {
	JobTitle       string        `json:"job_title" validate:"required"`
	JobDescription string        `json:"job_description"`
	Budget         budgetRequest `json:"budget"`
	RequiredSkills []string      `json:"required_skills" validate:"required,min=1,dive,required"`
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc, validate: validator.New()}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/match-candidates", h.MatchCandidates)
}

func (h *MatchHandler) MatchCandidates(c fiber.Ctx) error {
	var req matchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.uc.MatchCandidates(c.Context(), usecase.MatchInput{
		Title:          req.JobTitle,
		Description:    req.JobDescription,
		RequiredSkills: req.RequiredSkills,
		Budget: job.Budget{
			Min:      req.Budget.Min,
			Max:      req.Budget.Max,
			Currency: req.Budget.Currency,
		},
	})
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	top := out.Results
	if len(top) > responseLimit {
		top = top[:responseLimit]
	}

	resp := dto.MatchResponse{
		RequestID:     out.RequestID.String(),
		ExecutionTime: out.ExecutionTime.Seconds(),
		TopCandidates: make([]dto.RankedCandidateResponse, 0, len(top)),
	}
	for _, res := range top {
		resp.TopCandidates = append(resp.TopCandidates, dto.NewRankedCandidateResponse(res))
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, resp)
}

func mapMatchingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ranking.ErrEmptySkillProfile):
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
