package handler

import (
	"net/http"

	"go-appointment-scheduling/internal/delivery/dto"
	"go-appointment-scheduling/internal/usecase"
	"go-appointment-scheduling/pkg/response"
	"go-appointment-scheduling/pkg/validator"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
	}
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	user, err := h.userUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create user")
		return
	}

	response.Success(w, http.StatusCreated, "User created successfully", user)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.userUsecase.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get user")
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}

func (h *UserHandler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.userUsecase.GetByEmail(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		writeError(w, err, "Failed to get user")
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}

func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.GetAll(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) GetActiveUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.GetActive(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.SearchByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, err, "Failed to search users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) GetUsersByRole(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.GetByRole(r.Context(), mux.Vars(r)["role"])
	if err != nil {
		writeError(w, err, "Failed to get users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	user, err := h.userUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update user")
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", user)
}

// DeactivateUser is the logical delete.
func (h *UserHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.userUsecase.Deactivate(r.Context(), id); err != nil {
		writeError(w, err, "Failed to deactivate user")
		return
	}

	response.Success(w, http.StatusOK, "User deactivated successfully", nil)
}

func (h *UserHandler) DeleteUserPermanently(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.userUsecase.DeletePermanently(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete user")
		return
	}

	response.Success(w, http.StatusOK, "User deleted permanently", nil)
}
