package services

import (
	"context"
	"errors"
	"strings"

	"ecommerce-backend/models"
	"ecommerce-backend/repositories"
	"ecommerce-backend/utils"

	"github.com/rs/zerolog"
)

type AuthService struct {
	users  repositories.UserStore
	tokens TokenIssuer
	mailer WelcomeMailer
}

// NewAuthService accepts a nil mailer; registration then sends no e-mail.
func NewAuthService(users repositories.UserStore, tokens TokenIssuer, mailer WelcomeMailer) *AuthService {
	return &AuthService{users: users, tokens: tokens, mailer: mailer}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return models.AuthResponse{}, models.NewError(models.ErrEmailExists, "email %s is already registered", email)
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return models.AuthResponse{}, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return models.AuthResponse{}, err
	}

	user := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      models.RoleUser,
		Active:    true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return models.AuthResponse{}, err
	}

	log := zerolog.Ctx(ctx)
	log.Info().Int64("user_id", user.ID).Msg("user registered")

	if s.mailer != nil {
		if err := s.mailer.SendWelcomeEmail(user); err != nil {
			log.Warn().Err(err).Int64("user_id", user.ID).Msg("welcome email not sent")
		}
	}

	return s.authResponse(user)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, models.ErrUserNotFound) {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.AuthResponse{}, err
	}

	if !utils.VerifyPassword(user.Password, req.Password) {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}
	if !user.Active {
		return models.AuthResponse{}, models.ErrInactiveAccount
	}

	zerolog.Ctx(ctx).Info().Int64("user_id", user.ID).Msg("user logged in")
	return s.authResponse(user)
}

func (s *AuthService) GetProfile(ctx context.Context, userID int64) (models.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.UserResponse{}, err
	}
	return models.ToUserResponse(*user), nil
}

func (s *AuthService) authResponse(user *models.User) (models.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}, nil
}
