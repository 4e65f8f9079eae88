package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/customer"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const tokenContextKey contextKey = "customer"

// compared against when the email is unknown so both paths cost one bcrypt check
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// ErrInvalidToken is returned for tokens without a usable customer id.
var ErrInvalidToken = fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)

type Strategy interface {
	Login(ctx context.Context, email, password string) (*customer.Customer, error)
	GetCurrentCustomerID(ctx context.Context) (uuid.UUID, error)
	GenerateToken(ctx context.Context, c *customer.Customer) (string, error)
}

type Service struct {
	strategy Strategy
	logger   *slog.Logger
}

func New(strategy Strategy, logger *slog.Logger) *Service {
	return &Service{strategy: strategy, logger: logger.With("service", "auth")}
}

func NewWithBasic(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return New(NewBasicAuthStrategy(uow, logger), logger)
}

func NewWithJWT(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return New(NewJWTStrategy(uow, cfg, logger), logger)
}

// GetCurrentCustomerID reads the customer id from a validated token.
func (s *Service) GetCurrentCustomerID(token *jwt.Token) (uuid.UUID, error) {
	id, err := s.strategy.GetCurrentCustomerID(context.WithValue(context.Background(), tokenContextKey, token))
	if err != nil {
		s.logger.Warn("GetCurrentCustomerID failed", "error", err)
		return uuid.Nil, err
	}
	return id, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*customer.Customer, error) {
	c, err := s.strategy.Login(ctx, email, password)
	if err != nil {
		s.logger.Info("Login failed", "email", email, "error", err)
		return nil, err
	}
	s.logger.Info("Login successful", "customer_id", c.ID)
	return c, nil
}

func (s *Service) GenerateToken(ctx context.Context, c *customer.Customer) (string, error) {
	token, err := s.strategy.GenerateToken(ctx, c)
	if err != nil {
		s.logger.Error("GenerateToken failed", "customer_id", c.ID, "error", err)
		return "", err
	}
	return token, nil
}

// JWTStrategy authenticates customers against the store and issues HS256 tokens.
type JWTStrategy struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

func NewJWTStrategy(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *JWTStrategy {
	return &JWTStrategy{uow: uow, cfg: cfg, logger: logger}
}

func (s *JWTStrategy) Login(ctx context.Context, email, password string) (*customer.Customer, error) {
	return checkCredentials(ctx, s.uow, email, password)
}

func (s *JWTStrategy) GenerateToken(_ context.Context, c *customer.Customer) (string, error) {
	claims := jwt.MapClaims{
		"customer_id": c.ID.String(),
		"email":       c.Email,
		"exp":         time.Now().Add(s.cfg.Expiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}

func (s *JWTStrategy) GetCurrentCustomerID(ctx context.Context) (uuid.UUID, error) {
	token, ok := ctx.Value(tokenContextKey).(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	raw, ok := claims["customer_id"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

// BasicAuthStrategy implements Strategy for the CLI: password check, no token.
type BasicAuthStrategy struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func NewBasicAuthStrategy(uow repository.UnitOfWork, logger *slog.Logger) *BasicAuthStrategy {
	return &BasicAuthStrategy{uow: uow, logger: logger}
}

func (s *BasicAuthStrategy) Login(ctx context.Context, email, password string) (*customer.Customer, error) {
	return checkCredentials(ctx, s.uow, email, password)
}

func (s *BasicAuthStrategy) GetCurrentCustomerID(context.Context) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (s *BasicAuthStrategy) GenerateToken(context.Context, *customer.Customer) (string, error) {
	return "", nil
}

func checkCredentials(ctx context.Context, uow repository.UnitOfWork, email, password string) (*customer.Customer, error) {
	repo, err := uow.CustomerRepository()
	if err != nil {
		return nil, err
	}
	c, err := repo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrNotFound) {
		_ = customer.CheckPasswordHash(password, dummyHash)
		return nil, customer.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !c.CheckPassword(customer.LoginPassword, password) {
		return nil, customer.ErrInvalidCredentials
	}
	return c, nil
}
