package converter

import (
	"go-appointment-scheduling/internal/delivery/dto"
	"go-appointment-scheduling/internal/domain/entity"
)

func ServiceToResponse(service *entity.Service) *dto.ServiceResponse {
	if service == nil {
		return nil
	}

	return &dto.ServiceResponse{
		ID:          service.ID,
		Name:        service.Name,
		Description: service.Description,
		Duration:    service.Duration,
		Price:       service.Price,
		IsActive:    service.IsActive,
	}
}

func ServicesToResponses(services []entity.Service) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, len(services))
	for i := range services {
		responses[i] = *ServiceToResponse(&services[i])
	}
	return responses
}
