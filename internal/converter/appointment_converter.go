package converter

import (
	"errors"
	"fmt"

	"go-appointment-scheduling/internal/delivery/dto"
	"go-appointment-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrIncompleteAppointment is returned when a relation needed by the projection
// no longer resolves, e.g. after the referenced row was removed on its own.
var ErrIncompleteAppointment = errors.New("appointment references a missing record")

// AppointmentToResponse builds the projection from an appointment loaded with
// User, Service and Professional.User. It never emits a partial projection.
func AppointmentToResponse(appointment *entity.Appointment) (*dto.AppointmentResponse, error) {
	if appointment == nil {
		return nil, nil
	}

	switch {
	case appointment.User.ID == uuid.Nil:
		return nil, fmt.Errorf("%w: user %s", ErrIncompleteAppointment, appointment.UserID)
	case appointment.Service.ID == uuid.Nil:
		return nil, fmt.Errorf("%w: service %s", ErrIncompleteAppointment, appointment.ServiceID)
	case appointment.Professional.ID == uuid.Nil:
		return nil, fmt.Errorf("%w: professional %s", ErrIncompleteAppointment, appointment.ProfessionalID)
	case appointment.Professional.User.ID == uuid.Nil:
		return nil, fmt.Errorf("%w: user %s of professional %s", ErrIncompleteAppointment, appointment.Professional.UserID, appointment.ProfessionalID)
	}

	return &dto.AppointmentResponse{
		ID:                    appointment.ID,
		DateTime:              appointment.DateTime,
		Status:                appointment.Status,
		Notes:                 appointment.Notes,
		CreatedAt:             appointment.CreatedAt,
		UserID:                appointment.UserID,
		UserName:              appointment.User.Name,
		ServiceID:             appointment.ServiceID,
		ServiceName:           appointment.Service.Name,
		ServicePrice:          appointment.Service.Price,
		ProfessionalID:        appointment.ProfessionalID,
		ProfessionalName:      appointment.Professional.User.Name,
		ProfessionalSpecialty: appointment.Professional.Specialty,
	}, nil
}

// AppointmentsToResponses fails on the first appointment whose projection is incomplete.
func AppointmentsToResponses(appointments []entity.Appointment) ([]dto.AppointmentResponse, error) {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		resp, err := AppointmentToResponse(&appointments[i])
		if err != nil {
			return nil, err
		}
		responses[i] = *resp
	}
	return responses, nil
}
