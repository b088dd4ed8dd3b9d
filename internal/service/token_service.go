package service

import (
	"context"
	"fmt"
	"time"

	"go-appointment-scheduling/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	RedisAccessTokenKeyPrefix  = "access_token:"
	RedisRefreshTokenKeyPrefix = "refresh_token:"
)

// TokenService is the registry of issued JWTs. A token is valid only while
// its key exists, so deleting the key revokes it before expiry.
type TokenService interface {
	Store(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType, ttl time.Duration) error
	Exists(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

type tokenService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewTokenService(redisClient *redis.Client, log *logrus.Logger) TokenService {
	return &tokenService{
		redisClient: redisClient,
		log:         log,
	}
}

func tokenKey(userID uuid.UUID, tokenID string, tokenType jwt.TokenType) string {
	prefix := RedisAccessTokenKeyPrefix
	if tokenType == jwt.RefreshToken {
		prefix = RedisRefreshTokenKeyPrefix
	}
	return fmt.Sprintf("%s%s:%s", prefix, userID.String(), tokenID)
}

func (s *tokenService) Store(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType, ttl time.Duration) error {
	if err := s.redisClient.Set(ctx, tokenKey(userID, tokenID, tokenType), "valid", ttl).Err(); err != nil {
		s.log.Warnf("Failed to store %s token in Redis: %+v", tokenType, err)
		return err
	}
	return nil
}

func (s *tokenService) Exists(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, tokenKey(userID, tokenID, tokenType)).Result()
	if err != nil {
		s.log.Warnf("Failed to check token validity: %+v", err)
		return false, err
	}
	return exists > 0, nil
}

func (s *tokenService) Revoke(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) error {
	if err := s.redisClient.Del(ctx, tokenKey(userID, tokenID, tokenType)).Err(); err != nil {
		s.log.Warnf("Failed to delete %s token: %+v", tokenType, err)
		return err
	}
	return nil
}

// RevokeAll drops every access and refresh token issued to the user. Used when
// the account is deactivated, removed or its password changes.
func (s *tokenService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	for _, prefix := range []string{RedisAccessTokenKeyPrefix, RedisRefreshTokenKeyPrefix} {
		pattern := fmt.Sprintf("%s%s:*", prefix, userID.String())

		var keys []string
		iter := s.redisClient.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			s.log.Warnf("Failed to scan token keys: %+v", err)
			return err
		}

		if len(keys) > 0 {
			if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
				s.log.Warnf("Failed to delete tokens: %+v", err)
				return err
			}
		}
	}
	return nil
}
