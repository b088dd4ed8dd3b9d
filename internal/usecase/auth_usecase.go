package usecase

import (
	"context"
	"errors"

	"go-appointment-scheduling/internal/converter"
	"go-appointment-scheduling/internal/delivery/dto"
	"go-appointment-scheduling/internal/domain/entity"
	"go-appointment-scheduling/internal/domain/repository"
	"go-appointment-scheduling/internal/service"
	"go-appointment-scheduling/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserInactive       = errors.New("user account is inactive")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	userUsecase  UserUsecase
	jwtService   *jwt.JWTService
	tokenService service.TokenService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	userUsecase UserUsecase,
	jwtService *jwt.JWTService,
	tokenService service.TokenService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		userUsecase:  userUsecase,
		jwtService:   jwtService,
		tokenService: tokenService,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	return u.userUsecase.Create(ctx, &dto.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     entity.DefaultRole,
	})
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return u.issueTokens(ctx, user)
}

// Logout revokes the current access token and, when given, the refresh token
// paired with it. An unparsable refresh token is ignored.
func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshToken string) error {
	if err := u.tokenService.Revoke(ctx, userID, accessTokenID, jwt.AccessToken); err != nil {
		return err
	}

	if refreshToken == "" {
		return nil
	}

	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != jwt.RefreshToken || claims.UserID != userID {
		return nil
	}

	return u.tokenService.Revoke(ctx, userID, claims.TokenID, jwt.RefreshToken)
}

// RefreshToken rotates the pair: the presented refresh token is revoked and a
// new pair is issued with the user's current role.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	exists, err := u.tokenService.Exists(ctx, claims.UserID, claims.TokenID, jwt.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if err := u.tokenService.Revoke(ctx, claims.UserID, claims.TokenID, jwt.RefreshToken); err != nil {
		return nil, err
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokenService.Store(ctx, user.ID, accessTokenID, jwt.AccessToken, u.jwtService.GetAccessExpiry()); err != nil {
		return nil, err
	}
	if err := u.tokenService.Store(ctx, user.ID, refreshTokenID, jwt.RefreshToken, u.jwtService.GetRefreshExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}
