package handler

import (
	"context"
	"net/http"

	"go-appointment-scheduling/internal/delivery/dto"
	"go-appointment-scheduling/internal/usecase"
	"go-appointment-scheduling/pkg/response"
	"go-appointment-scheduling/pkg/validator"
)

type ServiceHandler struct {
	serviceUsecase usecase.ServiceUsecase
	validator      *validator.CustomValidator
}

func NewServiceHandler(serviceUsecase usecase.ServiceUsecase, validator *validator.CustomValidator) *ServiceHandler {
	return &ServiceHandler{
		serviceUsecase: serviceUsecase,
		validator:      validator,
	}
}

func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req dto.ServiceRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	svc, err := h.serviceUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create service")
		return
	}

	response.Success(w, http.StatusCreated, "Service created successfully", svc)
}

func (h *ServiceHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	svc, err := h.serviceUsecase.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get service")
		return
	}

	response.Success(w, http.StatusOK, "Service retrieved successfully", svc)
}

func (h *ServiceHandler) GetAllServices(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, h.serviceUsecase.GetAll)
}

func (h *ServiceHandler) GetActiveServices(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, h.serviceUsecase.GetActive)
}

func (h *ServiceHandler) GetServicesOrderedByPrice(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, h.serviceUsecase.GetAllOrderedByPrice)
}

func (h *ServiceHandler) GetServicesOrderedByName(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, h.serviceUsecase.GetAllOrderedByName)
}

func (h *ServiceHandler) SearchServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.serviceUsecase.SearchByName(r.Context(), r.URL.Query().Get("name"), queryActiveOnly(r))
	if err != nil {
		writeError(w, err, "Failed to search services")
		return
	}

	response.Success(w, http.StatusOK, "Services retrieved successfully", services)
}

func (h *ServiceHandler) GetServicesByPriceRange(w http.ResponseWriter, r *http.Request) {
	minPrice, ok := queryDecimal(w, r, "min")
	if !ok {
		return
	}
	maxPrice, ok := queryDecimal(w, r, "max")
	if !ok {
		return
	}

	services, err := h.serviceUsecase.GetByPriceRange(r.Context(), minPrice, maxPrice)
	if err != nil {
		writeError(w, err, "Failed to get services")
		return
	}

	response.Success(w, http.StatusOK, "Services retrieved successfully", services)
}

func (h *ServiceHandler) GetServicesByMaxPrice(w http.ResponseWriter, r *http.Request) {
	maxPrice, ok := queryDecimal(w, r, "max")
	if !ok {
		return
	}

	services, err := h.serviceUsecase.GetByMaxPrice(r.Context(), maxPrice)
	if err != nil {
		writeError(w, err, "Failed to get services")
		return
	}

	response.Success(w, http.StatusOK, "Services retrieved successfully", services)
}

func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dto.ServiceRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	svc, err := h.serviceUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update service")
		return
	}

	response.Success(w, http.StatusOK, "Service updated successfully", svc)
}

func (h *ServiceHandler) DeactivateService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.serviceUsecase.Deactivate(r.Context(), id); err != nil {
		writeError(w, err, "Failed to deactivate service")
		return
	}

	response.Success(w, http.StatusOK, "Service deactivated successfully", nil)
}

func (h *ServiceHandler) DeleteServicePermanently(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.serviceUsecase.DeletePermanently(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete service")
		return
	}

	response.Success(w, http.StatusOK, "Service deleted permanently", nil)
}

func (h *ServiceHandler) writeList(w http.ResponseWriter, r *http.Request, list func(ctx context.Context) (*dto.ServiceListResponse, error)) {
	services, err := list(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get services")
		return
	}

	response.Success(w, http.StatusOK, "Services retrieved successfully", services)
}
