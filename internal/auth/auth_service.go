package auth

import (
	"context"
	"os"
	"time"

	autherrors "github.com/HirziKhalis/hrms-system/internal/auth/errors"
	"github.com/HirziKhalis/hrms-system/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	GetMe(ctx context.Context, userID string) (UserResponse, error)

	// ResolveIdentity satisfies middleware.IdentityResolver.
	ResolveIdentity(ctx context.Context, userID string) (middleware.Identity, error)
}

// EmployeeDirectory is the narrow slice of the employee module the auth
// service needs: confirming that the linked employee record exists.
type EmployeeDirectory interface {
	Exists(ctx context.Context, employeeID string) (bool, error)
}

type service struct {
	repo      Repository
	directory EmployeeDirectory
	logger    *zap.Logger
}

func NewService(repo Repository, directory EmployeeDirectory, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, directory: directory, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (UserResponse, error) {
	taken, err := s.repo.UsernameExists(ctx, req.Username)
	if err != nil {
		s.logger.Error("register username check failed", zap.Error(err))
		return UserResponse{}, err
	}
	if taken {
		return UserResponse{}, autherrors.ErrUsernameTaken
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return UserResponse{}, autherrors.ErrEmployeeNotFound
	}
	exists, err := s.directory.Exists(ctx, employeeID.String())
	if err != nil {
		s.logger.Error("register employee lookup failed", zap.Error(err))
		return UserResponse{}, err
	}
	if !exists {
		return UserResponse{}, autherrors.ErrEmployeeNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	user := &User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(hashed),
		Role:         req.Role,
		EmployeeID:   &employeeID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("register create user failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return mapUserResponse(user), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	// Only identity goes into the token. Role and employee linkage are
	// re-read from the store on every request by the auth middleware.
	token, err := s.generateToken(user.ID.String(), time.Hour)
	if err != nil {
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return LoginResponse{
		Token: token,
		User:  mapUserResponse(user),
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return UserResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return UserResponse{}, autherrors.ErrUserNotFound
	}

	return mapUserResponse(user), nil
}

// ResolveIdentity implements middleware.IdentityResolver on top of the
// same repository the login path uses.
func (s *service) ResolveIdentity(ctx context.Context, userID string) (middleware.Identity, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return middleware.Identity{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return middleware.Identity{}, autherrors.ErrUserNotFound
	}

	identity := middleware.Identity{
		UserID: user.ID.String(),
		Role:   user.Role,
	}
	if user.EmployeeID != nil {
		identity.EmployeeID = user.EmployeeID.String()
	}
	return identity, nil
}

func (s *service) generateToken(userID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapUserResponse(u *User) UserResponse {
	resp := UserResponse{
		UserID:   u.ID.String(),
		Username: u.Username,
		Role:     u.Role,
	}
	if u.EmployeeID != nil {
		resp.EmployeeID = u.EmployeeID.String()
	}
	return resp
}
