package handler

import (
	"net/http"

	"go-appointment-scheduling/internal/delivery/dto"
	"go-appointment-scheduling/internal/usecase"
	"go-appointment-scheduling/pkg/response"
	"go-appointment-scheduling/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetAll(r.Context())
	h.writeList(w, appointments, err)
}

func (h *AppointmentHandler) GetUpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetUpcoming(r.Context())
	h.writeList(w, appointments, err)
}

func (h *AppointmentHandler) GetPastAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetPast(r.Context())
	h.writeList(w, appointments, err)
}

func (h *AppointmentHandler) GetAppointmentsInRange(w http.ResponseWriter, r *http.Request) {
	start, ok := queryTime(w, r, "start")
	if !ok {
		return
	}
	end, ok := queryTime(w, r, "end")
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.GetInRange(r.Context(), start, end)
	h.writeList(w, appointments, err)
}

func (h *AppointmentHandler) GetAppointmentsByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.GetByUser(r.Context(), userID)
	h.writeList(w, appointments, err)
}

func (h *AppointmentHandler) GetAppointmentsByProfessional(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := pathUUID(w, r, "professionalId")
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.GetByProfessional(r.Context(), professionalID)
	h.writeList(w, appointments, err)
}

func (h *AppointmentHandler) GetProfessionalAgenda(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := pathUUID(w, r, "professionalId")
	if !ok {
		return
	}
	start, ok := queryTime(w, r, "start")
	if !ok {
		return
	}
	end, ok := queryTime(w, r, "end")
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.GetByProfessionalInRange(r.Context(), professionalID, start, end)
	h.writeList(w, appointments, err)
}

func (h *AppointmentHandler) GetAppointmentsByService(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := pathUUID(w, r, "serviceId")
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.GetByService(r.Context(), serviceID)
	h.writeList(w, appointments, err)
}

func (h *AppointmentHandler) GetAppointmentsByStatus(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetByStatus(r.Context(), mux.Vars(r)["status"])
	h.writeList(w, appointments, err)
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) ChangeAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dto.ChangeAppointmentStatusRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err, "Failed to change appointment status")
		return
	}

	response.Success(w, http.StatusOK, "Appointment status changed successfully", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

func (h *AppointmentHandler) writeList(w http.ResponseWriter, appointments *dto.AppointmentListResponse, err error) {
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}
