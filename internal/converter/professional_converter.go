package converter

import (
	"go-appointment-scheduling/internal/delivery/dto"
	"go-appointment-scheduling/internal/domain/entity"
)

// ProfessionalToResponse flattens the backing user's name and email into the response.
func ProfessionalToResponse(professional *entity.Professional) *dto.ProfessionalResponse {
	if professional == nil {
		return nil
	}

	return &dto.ProfessionalResponse{
		ID:                professional.ID,
		Specialty:         professional.Specialty,
		AvailableSchedule: professional.AvailableSchedule,
		IsActive:          professional.IsActive,
		UserID:            professional.UserID,
		UserName:          professional.User.Name,
		UserEmail:         professional.User.Email,
	}
}

func ProfessionalsToResponses(professionals []entity.Professional) []dto.ProfessionalResponse {
	responses := make([]dto.ProfessionalResponse, len(professionals))
	for i := range professionals {
		responses[i] = *ProfessionalToResponse(&professionals[i])
	}
	return responses
}
