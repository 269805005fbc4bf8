package service

import (
	"context"
	"time"

	"notevault-be/internal/apperrors"
	"notevault-be/internal/dto"
	"notevault-be/internal/entity"
	"notevault-be/internal/pkg/logger"
	"notevault-be/internal/pkg/token"
	"notevault-be/internal/repository/specification"
	"notevault-be/internal/repository/unitofwork"
	"notevault-be/pkg/events"
	pktNats "notevault-be/pkg/nats"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	CurrentUser(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	tokenService   *token.Service
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	tokenService *token.Service,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		tokenService:   tokenService,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Reject duplicate identity: either column taken means conflict.
	existing, err := uow.UserRepository().FindOne(ctx, specification.UsernameOrEmail{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateIdentity
	}

	// 2. Hash password; the plaintext is never stored.
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	// 3. Issue token so the client is logged in immediately.
	signedToken, err := s.tokenService.Issue(user.Id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeUserRegistered, map[string]interface{}{
		"user_id":  user.Id,
		"username": user.Username,
	})

	return &dto.AuthResponse{
		Id:       user.Id,
		Username: user.Username,
		Email:    user.Email,
		Token:    signedToken,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Unknown email and wrong password both produce the same error so a
	// caller cannot probe which part was wrong.
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	signedToken, err := s.tokenService.Issue(user.Id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeUserLogin, map[string]interface{}{
		"user_id": user.Id,
	})

	return &dto.AuthResponse{
		Id:       user.Id,
		Username: user.Username,
		Email:    user.Email,
		Token:    signedToken,
	}, nil
}

func (s *authService) CurrentUser(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	return &dto.UserResponse{
		Id:        user.Id,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// publish sends an event best-effort; auth flows never fail because the bus
// is down.
func (s *authService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.New(eventType, data)); err != nil && s.log != nil {
		s.log.Warn("auth", "failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
