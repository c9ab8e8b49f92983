package service

import (
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"worldsmith/internal/account"
	dErrors "worldsmith/pkg/domain-errors"
)

func (s *ServiceSuite) TestRenewSession() {
	s.Run("empty refresh token is rejected", func() {
		_, err := s.service.RenewSession(s.ctx, "", nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("delegates to the session service", func() {
		attributes := map[string]string{"IpAddress": "203.0.113.7"}
		renewed := account.Session{ID: uuid.New(), RefreshToken: "RT.a.b"}
		s.mockSessions.EXPECT().Renew(gomock.Any(), "RT.old", attributes).Return(renewed, nil)

		session, err := s.service.RenewSession(s.ctx, "RT.old", attributes)
		s.Require().NoError(err)
		s.Equal(renewed.ID, session.ID)
	})
}

func (s *ServiceSuite) TestSignOut() {
	sessionID := uuid.New()

	s.Run("system caller is unauthorized", func() {
		err := s.service.SignOut(s.ctx, account.SystemCaller(), sessionID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("missing session id is rejected", func() {
		err := s.service.SignOut(s.ctx, account.UserCaller(uuid.New()), uuid.Nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("revokes the session", func() {
		s.mockSessions.EXPECT().Revoke(gomock.Any(), sessionID).Return(nil)
		err := s.service.SignOut(s.ctx, account.UserCaller(uuid.New()), sessionID)
		s.Require().NoError(err)
	})
}

func (s *ServiceSuite) TestSignOutEverywhere() {
	s.Run("system caller is unauthorized", func() {
		err := s.service.SignOutEverywhere(s.ctx, account.SystemCaller())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("revokes every session of the caller", func() {
		userID := uuid.New()
		s.mockSessions.EXPECT().RevokeByUser(gomock.Any(), userID).Return(nil)
		err := s.service.SignOutEverywhere(s.ctx, account.UserCaller(userID))
		s.Require().NoError(err)
	})
}
