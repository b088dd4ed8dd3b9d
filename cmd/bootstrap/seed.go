package bootstrap

import (
	"context"
	"time"

	"go-appointment-scheduling/config"
	"go-appointment-scheduling/internal/domain/entity"
	"go-appointment-scheduling/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the configured SUPER_ADMIN account when no user exists yet.
func SeedAdmin(ctx context.Context, db *gorm.DB, log *logrus.Logger, cfg config.AdminConfig) error {
	userRepo := repository.NewUserRepository()
	tx := db.WithContext(ctx)

	count, err := userRepo.Count(tx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &entity.User{
		Name:         cfg.Name,
		Email:        cfg.Email,
		Password:     string(hashedPassword),
		Phone:        cfg.Phone,
		RegisteredAt: time.Now().UTC(),
		Role:         entity.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := userRepo.Create(tx, admin); err != nil {
		return err
	}

	log.Warnf("Seeded admin user %s, change its password", admin.Email)
	return nil
}
