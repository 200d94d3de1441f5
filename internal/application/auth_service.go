package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/pkg/helpers"
)

// AdminUserID is the subject of every admin token; the site has one admin.
const AdminUserID = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
)

// Admin identifies the signed-in site owner.
type Admin struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type AuthService struct {
	AdminEmail        string
	AdminPasswordHash string
	AdminName         string

	JWT      *helpers.JWTManager
	Sessions SessionStore
	Logger   *logrus.Logger
}

func NewAuthService(email, passwordHash, name string, jwt *helpers.JWTManager, sessions SessionStore, logger *logrus.Logger) *AuthService {
	return &AuthService{
		AdminEmail:        strings.ToLower(strings.TrimSpace(email)),
		AdminPasswordHash: passwordHash,
		AdminName:         name,
		JWT:               jwt,
		Sessions:          sessions,
		Logger:            logger,
	}
}

func (s *AuthService) admin() Admin {
	return Admin{UserID: AdminUserID, Email: s.AdminEmail, Name: s.AdminName}
}

// Login checks the configured admin credentials and opens a session. An
// unset password hash disables login.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Admin, TokenPair, error) {
	if s.AdminPasswordHash == "" || strings.ToLower(strings.TrimSpace(email)) != s.AdminEmail {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(s.AdminPasswordHash, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.issue(ctx)
	if err != nil {
		return nil, TokenPair{}, err
	}
	a := s.admin()
	return &a, pair, nil
}

// Refresh rotates the session: the presented refresh token's session is
// dropped and a new one is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	sess, err := s.Sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return TokenPair{}, err
	}
	if sess == nil || sess.UserID != claims.UserID {
		return TokenPair{}, ErrInvalidCredentials
	}
	if err := s.Sessions.Delete(ctx, claims.SessionID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("sid", claims.SessionID).Warn("drop rotated session failed")
	}
	return s.issue(ctx)
}

// Authorize resolves an access token to its live session.
func (s *AuthService) Authorize(ctx context.Context, accessToken string) (*Session, error) {
	claims, err := s.JWT.ParseAccessToken(accessToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	sess, err := s.Sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.UserID != claims.UserID {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, sessionID)
}

func (s *AuthService) Me() Admin {
	return s.admin()
}

func (s *AuthService) issue(ctx context.Context) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(AdminUserID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(AdminUserID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}
	sess := Session{ID: sid, UserID: AdminUserID, Email: s.AdminEmail, Name: s.AdminName, CreatedAt: time.Now().UTC()}
	if err := s.Sessions.Save(ctx, sess, time.Until(rexp)); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("sid", sid).Error("save session failed")
		}
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}
