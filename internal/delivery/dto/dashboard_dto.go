package dto

type DashboardResponse struct {
	TotalAppointments    int64            `json:"total_appointments"`
	ActiveServices       int64            `json:"active_services"`
	ActiveProfessionals  int64            `json:"active_professionals"`
	ActiveUsers          int64            `json:"active_users"`
	AppointmentsByStatus map[string]int64 `json:"appointments_by_status"`
}
