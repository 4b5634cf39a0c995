package handler

import (
	"errors"

	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type CandidateHandler struct {
	uc       usecase.IngestUsecase
	validate *validator.Validate
}

type experienceRequest struct {
	Company   string `json:"company" validate:"required"`
	Role      string `json:"role" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"`
}

type educationRequest struct {
	Institution      string `json:"institution" validate:"required"`
	Degree           string `json:"degree" validate:"required"`
	YearOfGraduation int    `json:"year_of_graduation" validate:"required"`
}

type candidateRequest struct {
	FirstName   string              `json:"first_name" validate:"required"`
	LastName    string              `json:"last_name" validate:"required"`
	Email       string              `json:"email" validate:"required,email"`
	Phone       string              `json:"phone"`
	Address     string              `json:"address"`
	Skills      []string            `json:"skills" validate:"required,min=1,dive,required"`
	Experiences []experienceRequest `json:"experiences" validate:"dive"`
	Education   []educationRequest  `json:"education" validate:"dive"`
}

func NewCandidateHandler(uc usecase.IngestUsecase) *CandidateHandler {
	return &CandidateHandler{uc: uc, validate: validator.New()}
}

func (h *CandidateHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/candidates", h.AddCandidate)
}

func (h *CandidateHandler) AddCandidate(c fiber.Ctx) error {
	var req candidateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := usecase.IngestInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Skills:    req.Skills,
	}
	for _, exp := range req.Experiences {
		in.Experiences = append(in.Experiences, usecase.ExperienceInput{
			Company:   exp.Company,
			Role:      exp.Role,
			StartDate: exp.StartDate,
			EndDate:   exp.EndDate,
		})
	}
	for _, edu := range req.Education {
		in.Education = append(in.Education, usecase.EducationInput{
			Institution:      edu.Institution,
			Degree:           edu.Degree,
			YearOfGraduation: edu.YearOfGraduation,
		})
	}

	id, err := h.uc.AddCandidate(c.Context(), in)
	if err != nil {
		return mapIngestUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, map[string]any{
		"candidate_id": id,
	})
}

func mapIngestUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidCandidate):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid candidate profile", nil, err)
	case errors.Is(err, usecase.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
