package handler

import (
	"net/http"

	"go-appointment-scheduling/internal/delivery/dto"
	"go-appointment-scheduling/internal/usecase"
	"go-appointment-scheduling/pkg/response"
	"go-appointment-scheduling/pkg/validator"
)

type ProfessionalHandler struct {
	professionalUsecase usecase.ProfessionalUsecase
	validator           *validator.CustomValidator
}

func NewProfessionalHandler(professionalUsecase usecase.ProfessionalUsecase, validator *validator.CustomValidator) *ProfessionalHandler {
	return &ProfessionalHandler{
		professionalUsecase: professionalUsecase,
		validator:           validator,
	}
}

func (h *ProfessionalHandler) CreateProfessional(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProfessionalRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	professional, err := h.professionalUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create professional")
		return
	}

	response.Success(w, http.StatusCreated, "Professional created successfully", professional)
}

func (h *ProfessionalHandler) GetProfessional(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	professional, err := h.professionalUsecase.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get professional")
		return
	}

	response.Success(w, http.StatusOK, "Professional retrieved successfully", professional)
}

func (h *ProfessionalHandler) GetProfessionalByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	professional, err := h.professionalUsecase.GetByUserID(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get professional")
		return
	}

	response.Success(w, http.StatusOK, "Professional retrieved successfully", professional)
}

func (h *ProfessionalHandler) GetAllProfessionals(w http.ResponseWriter, r *http.Request) {
	professionals, err := h.professionalUsecase.GetAll(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get professionals")
		return
	}

	response.Success(w, http.StatusOK, "Professionals retrieved successfully", professionals)
}

func (h *ProfessionalHandler) GetActiveProfessionals(w http.ResponseWriter, r *http.Request) {
	professionals, err := h.professionalUsecase.GetActive(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get professionals")
		return
	}

	response.Success(w, http.StatusOK, "Professionals retrieved successfully", professionals)
}

func (h *ProfessionalHandler) SearchProfessionals(w http.ResponseWriter, r *http.Request) {
	professionals, err := h.professionalUsecase.SearchBySpecialty(r.Context(), r.URL.Query().Get("specialty"), queryActiveOnly(r))
	if err != nil {
		writeError(w, err, "Failed to search professionals")
		return
	}

	response.Success(w, http.StatusOK, "Professionals retrieved successfully", professionals)
}

func (h *ProfessionalHandler) UpdateProfessional(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateProfessionalRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	professional, err := h.professionalUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update professional")
		return
	}

	response.Success(w, http.StatusOK, "Professional updated successfully", professional)
}

func (h *ProfessionalHandler) DeactivateProfessional(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.professionalUsecase.Deactivate(r.Context(), id); err != nil {
		writeError(w, err, "Failed to deactivate professional")
		return
	}

	response.Success(w, http.StatusOK, "Professional deactivated successfully", nil)
}

func (h *ProfessionalHandler) DeleteProfessionalPermanently(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.professionalUsecase.DeletePermanently(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete professional")
		return
	}

	response.Success(w, http.StatusOK, "Professional deleted permanently", nil)
}
