package service_test

import (
	"context"
	"testing"
	"time"

	"go-appointment-scheduling/internal/service"
	"go-appointment-scheduling/internal/testutil"
	"go-appointment-scheduling/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type TokenServiceTestSuite struct {
	suite.Suite
	mr  *miniredis.Miniredis
	svc service.TokenService
	ctx context.Context
}

func (s *TokenServiceTestSuite) SetupTest() {
	rdb, mr := testutil.NewRedis(s.T())
	s.mr = mr
	s.svc = service.NewTokenService(rdb, testutil.NewLogger())
	s.ctx = context.Background()
}

func (s *TokenServiceTestSuite) exists(userID uuid.UUID, tokenID string, tokenType jwt.TokenType) bool {
	ok, err := s.svc.Exists(s.ctx, userID, tokenID, tokenType)
	s.Require().NoError(err)
	return ok
}

func (s *TokenServiceTestSuite) TestStoreExistsRevoke() {
	userID := uuid.New()

	s.Require().NoError(s.svc.Store(s.ctx, userID, "t1", jwt.AccessToken, time.Minute))
	s.True(s.exists(userID, "t1", jwt.AccessToken))
	s.False(s.exists(userID, "t1", jwt.RefreshToken), "access and refresh tokens live under different keys")

	s.Require().NoError(s.svc.Revoke(s.ctx, userID, "t1", jwt.AccessToken))
	s.False(s.exists(userID, "t1", jwt.AccessToken))
}

func (s *TokenServiceTestSuite) TestTokensExpireWithTTL() {
	userID := uuid.New()

	s.Require().NoError(s.svc.Store(s.ctx, userID, "t2", jwt.AccessToken, time.Minute))
	s.mr.FastForward(2 * time.Minute)
	s.False(s.exists(userID, "t2", jwt.AccessToken))
}

func (s *TokenServiceTestSuite) TestRevokeAllOnlyTouchesOneUser() {
	alice, bob := uuid.New(), uuid.New()

	s.Require().NoError(s.svc.Store(s.ctx, alice, "a1", jwt.AccessToken, time.Minute))
	s.Require().NoError(s.svc.Store(s.ctx, alice, "a2", jwt.RefreshToken, time.Minute))
	s.Require().NoError(s.svc.Store(s.ctx, bob, "b1", jwt.AccessToken, time.Minute))

	s.Require().NoError(s.svc.RevokeAll(s.ctx, alice))

	s.False(s.exists(alice, "a1", jwt.AccessToken))
	s.False(s.exists(alice, "a2", jwt.RefreshToken))
	s.True(s.exists(bob, "b1", jwt.AccessToken))
}

func TestTokenService(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
