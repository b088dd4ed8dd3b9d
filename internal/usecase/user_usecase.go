package usecase

import (
	"context"
	"strings"
	"time"

	"go-appointment-scheduling/internal/converter"
	"go-appointment-scheduling/internal/delivery/dto"
	"go-appointment-scheduling/internal/domain/entity"
	"go-appointment-scheduling/internal/domain/repository"
	"go-appointment-scheduling/internal/infrastructure/cache"
	"go-appointment-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserUsecase interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	GetByEmail(ctx context.Context, email string) (*dto.UserResponse, error)
	GetAll(ctx context.Context) (*dto.UserListResponse, error)
	GetActive(ctx context.Context) (*dto.UserListResponse, error)
	SearchByName(ctx context.Context, name string) (*dto.UserListResponse, error)
	GetByRole(ctx context.Context, role string) (*dto.UserListResponse, error)
	CountActive(ctx context.Context) (int64, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	DeletePermanently(ctx context.Context, id uuid.UUID) error
}

type userUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	cache            *cache.Cache
	userRepo         repository.UserRepository
	professionalRepo repository.ProfessionalRepository
	appointmentRepo  repository.AppointmentRepository
	auditService     service.AuditService
	tokenService     service.TokenService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	dashboardCache *cache.Cache,
	userRepo repository.UserRepository,
	professionalRepo repository.ProfessionalRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	tokenService service.TokenService,
) UserUsecase {
	return &userUsecase{
		db:               db,
		log:              log,
		cache:            dashboardCache,
		userRepo:         userRepo,
		professionalRepo: professionalRepo,
		appointmentRepo:  appointmentRepo,
		auditService:     auditService,
		tokenService:     tokenService,
	}
}

func (u *userUsecase) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exists, err := u.userRepo.ExistsByEmail(tx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to check email: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = entity.DefaultRole
	}

	user := &entity.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hashedPassword),
		Phone:        req.Phone,
		RegisteredAt: time.Now().UTC(),
		Role:         role,
		IsActive:     true,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	resp := converter.UserToResponse(user)
	if err := u.auditService.LogCreate(ctx, tx, entity.AuditActionUserCreate, "user", user.ID.String(), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	invalidateDashboard(ctx, u.cache, u.log)

	u.log.Infof("User created: id=%s, role=%s", user.ID, user.Role)
	return resp, nil
}

func (u *userUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) GetByEmail(ctx context.Context, email string) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) GetAll(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all users: %+v", err)
		return nil, err
	}
	return userList(users), nil
}

func (u *userUsecase) GetActive(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find active users: %+v", err)
		return nil, err
	}
	return userList(users), nil
}

func (u *userUsecase) SearchByName(ctx context.Context, name string) (*dto.UserListResponse, error) {
	users, err := u.userRepo.SearchByName(u.db.WithContext(ctx), name)
	if err != nil {
		u.log.Warnf("Failed to search users by name: %+v", err)
		return nil, err
	}
	return userList(users), nil
}

func (u *userUsecase) GetByRole(ctx context.Context, role string) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindByRole(u.db.WithContext(ctx), role)
	if err != nil {
		u.log.Warnf("Failed to find users by role: %+v", err)
		return nil, err
	}
	return userList(users), nil
}

func (u *userUsecase) CountActive(ctx context.Context) (int64, error) {
	count, err := u.userRepo.CountActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to count active users: %+v", err)
		return 0, err
	}
	return count, nil
}

// Update overwrites name, email and phone. The email uniqueness check only runs
// when the email actually changes, and the password is re-hashed only when given.
func (u *userUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	oldValue := converter.UserToResponse(user)

	if req.Email != user.Email {
		exists, err := u.userRepo.ExistsByEmail(tx, req.Email)
		if err != nil {
			u.log.Warnf("Failed to check email: %+v", err)
			return nil, err
		}
		if exists {
			return nil, ErrEmailAlreadyExists
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Phone = req.Phone

	passwordChanged := req.Password != ""
	if passwordChanged {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		user.Password = string(hashedPassword)
	}

	if err := u.userRepo.Update(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user %s: %+v", id, err)
		return nil, err
	}

	resp := converter.UserToResponse(user)
	if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionUserUpdate, "user", id.String(), oldValue, resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	invalidateDashboard(ctx, u.cache, u.log)

	if passwordChanged {
		u.revokeTokens(ctx, id)
	}

	return resp, nil
}

// Deactivate is the logical delete: the row stays addressable by id.
func (u *userUsecase) Deactivate(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if _, err := u.userRepo.Deactivate(tx, id); err != nil {
		u.log.Warnf("Failed to deactivate user %s: %+v", id, err)
		return err
	}

	if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionUserDeactivate, "user", id.String(),
		map[string]bool{"is_active": user.IsActive}, map[string]bool{"is_active": false}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	invalidateDashboard(ctx, u.cache, u.log)

	u.revokeTokens(ctx, id)
	u.log.Infof("User deactivated: id=%s", id)
	return nil
}

// DeletePermanently removes the user together with the professional it backs,
// that professional's appointments and the user's own appointments.
func (u *userUsecase) DeletePermanently(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	professional, err := u.professionalRepo.FindByUserID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find professional of user %s: %+v", id, err)
		return err
	}

	var removedAppointments int64
	if professional != nil {
		n, err := u.appointmentRepo.DeleteByProfessionalID(tx, professional.ID)
		if err != nil {
			u.log.Warnf("Failed to delete appointments of professional %s: %+v", professional.ID, err)
			return err
		}
		removedAppointments += n

		if _, err := u.professionalRepo.Delete(tx, professional.ID); err != nil {
			u.log.Warnf("Failed to delete professional %s: %+v", professional.ID, err)
			return err
		}
	}

	n, err := u.appointmentRepo.DeleteByUserID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointments of user %s: %+v", id, err)
		return err
	}
	removedAppointments += n

	if _, err := u.userRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete user %s: %+v", id, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, entity.AuditActionUserDelete, "user", id.String(), converter.UserToResponse(user)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	invalidateDashboard(ctx, u.cache, u.log)

	u.revokeTokens(ctx, id)
	u.log.Warnf("User permanently deleted: id=%s, professional=%t, appointments=%d", id, professional != nil, removedAppointments)
	return nil
}

func (u *userUsecase) revokeTokens(ctx context.Context, userID uuid.UUID) {
	if u.tokenService == nil {
		return
	}
	if err := u.tokenService.RevokeAll(ctx, userID); err != nil {
		u.log.Warnf("Failed to revoke tokens of user %s (non-fatal): %+v", userID, err)
	}
}

func userList(users []entity.User) *dto.UserListResponse {
	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}
}
