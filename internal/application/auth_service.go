package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/timbr/config"
	"github.com/oksasatya/timbr/internal/domain/entity"
	repo "github.com/oksasatya/timbr/internal/domain/repository"
	"github.com/oksasatya/timbr/pkg/helpers"
	"github.com/oksasatya/timbr/pkg/mailer"
	mailtpl "github.com/oksasatya/timbr/pkg/mailer/templates"
)

const minPasswordLen = 6

type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Mail   JobPublisher // nil disables the welcome email
	Config *config.Config
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, mail JobPublisher, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Mail: mail, Config: cfg, Logger: orDiscard(logger)}
}

type SignupInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        entity.Role
	Phone       *string
}

// AuthResult is what signup and login hand back to the client.
type AuthResult struct {
	Token string
	User  *entity.User
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	if strings.TrimSpace(in.Email) == "" || len(in.Password) < minPasswordLen ||
		in.DisplayName == "" || !in.Role.Valid() {
		return nil, ErrInvalidInput
	}
	hash, err := helpers.HashPassword(in.Password)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return nil, ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:        in.Email,
		PasswordHash: hash,
		DisplayName:  in.DisplayName,
		Role:         in.Role,
		Phone:        in.Phone,
	}
	if _, err := s.Users.CreateAccount(ctx, u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	signups.Add(1)

	token, err := s.JWT.Generate(u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		return nil, err
	}
	s.enqueueWelcome(ctx, u)
	return &AuthResult{Token: token, User: u}, nil
}

// enqueueWelcome is best effort; a broker outage never fails the signup.
func (s *AuthService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Mail == nil || s.Config == nil || !s.Config.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(s.Config, u.DisplayName, u.Email, string(u.Role)),
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Mail.PublishJSON(c, job); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
		return
	}
	welcomeEnqueued.Add(1)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	token, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

// ResolveToken verifies a bearer token and loads its user. A bad token is
// ErrTokenInvalid; a valid token whose user is gone is ErrUserNotFound.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.JWT.Parse(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrMalformed) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
