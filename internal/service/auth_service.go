package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"backoffice-data/internal/domain"
	"backoffice-data/internal/repository"
	"backoffice-data/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenKeyPrefix 令牌在 KV 中的键前缀（token -> username）
const tokenKeyPrefix = "auth:token:"

// AuthService 认证授权服务接口
type AuthService interface {
	// 注册（调用方需已通过 admin 鉴权，见 RequireRole）
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)

	// 登录：校验口令并签发不透明 bearer 令牌
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// Identity 解析令牌 -> 账号身份；令牌无效或过期时返回 Auth 错误
	Identity(ctx context.Context, token string) (*Identity, error)

	// RequireRole 解析令牌并要求指定角色；角色不符时返回 Forbidden
	RequireRole(ctx context.Context, token string, role domain.UserRole) (*Identity, error)
}

// authService 实现
type authService struct {
	usersRepo repository.UsersRepository
	tokens    store.KV
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(usersRepo repository.UsersRepository, tokens store.KV, tokenTTL time.Duration, logger *zap.Logger) AuthService {
	return &authService{
		usersRepo: usersRepo,
		tokens:    tokens,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string
	Password string
	Role     string // "doctor" | "admin" | "staff"
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	UserID int64
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string
}

// Identity 已解析的请求身份
type Identity struct {
	Username string
	Role     domain.UserRole
}

// Register 注册账号
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	req.Username = strings.TrimSpace(req.Username)

	if req.Username == "" || req.Password == "" || req.Role == "" {
		return nil, domain.NewValidation("username, password and role are required")
	}
	if !domain.ValidUserRole(req.Role) {
		return nil, domain.NewValidation("invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewStorage(err, "hash password failed")
	}

	id, err := s.usersRepo.CreateUser(ctx, req.Username, string(hash), domain.UserRole(req.Role))
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("username", req.Username),
		zap.String("role", req.Role),
		zap.Int64("user_id", id),
	)
	return &RegisterResponse{UserID: id}, nil
}

// Login 登录
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	req.Username = strings.TrimSpace(req.Username)

	if req.Username == "" || req.Password == "" {
		return nil, domain.NewValidation("username and password required")
	}

	user, err := s.usersRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if domain.IsNotFound(err) {
			s.logger.Warn("Login failed: unknown username", zap.String("username", req.Username))
			return nil, domain.NewAuth("bad username or password")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.logger.Warn("Login failed: password mismatch", zap.String("username", req.Username))
		return nil, domain.NewAuth("bad username or password")
	}

	token := uuid.NewString()
	if err := s.tokens.Set(ctx, tokenKeyPrefix+token, user.Username, s.tokenTTL); err != nil {
		return nil, domain.NewStorage(err, "store token failed")
	}

	s.logger.Info("User logged in", zap.String("username", user.Username))
	return &LoginResponse{Token: token}, nil
}

// Identity 解析令牌
func (s *authService) Identity(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, domain.NewAuth("missing token")
	}

	username, err := s.tokens.Get(ctx, tokenKeyPrefix+token)
	if err != nil {
		if err == store.ErrMiss {
			return nil, domain.NewAuth("invalid or expired token")
		}
		return nil, domain.NewStorage(err, "resolve token failed")
	}

	user, err := s.usersRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			// 令牌还在但账号已消失：按无效令牌处理
			return nil, domain.NewAuth("invalid or expired token")
		}
		return nil, err
	}

	return &Identity{Username: user.Username, Role: user.Role}, nil
}

// RequireRole 显式授权守卫
func (s *authService) RequireRole(ctx context.Context, token string, role domain.UserRole) (*Identity, error) {
	ident, err := s.Identity(ctx, token)
	if err != nil {
		return nil, err
	}
	if ident.Role != role {
		return nil, domain.NewForbidden(fmt.Sprintf("%s privilege required", role))
	}
	return ident, nil
}
