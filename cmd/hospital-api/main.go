package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice-data/internal/config"
	"backoffice-data/internal/database"
	"backoffice-data/internal/domain"
	httpapi "backoffice-data/internal/http"
	appLogger "backoffice-data/internal/logger"
	"backoffice-data/internal/repository"
	"backoffice-data/internal/service"
	"backoffice-data/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()

	logger, err := appLogger.NewLogger(cfg.Log.Level, cfg.Log.Format, "hospital-api")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 令牌存储：Redis 不可达时退回内存 KV（仅限本地联测）
	var tokens store.KV
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err == nil {
		tokens = store.NewRedisKV(redisClient)
		logger.Info("Redis connected", zap.String("addr", cfg.Redis.Addr))
	} else {
		logger.Warn("Redis unavailable, falling back to in-memory token store", zap.Error(err))
		tokens = store.NewMemoryKV()
	}

	var (
		db              *sql.DB
		usersRepo       repository.UsersRepository
		departmentsRepo repository.DepartmentsRepository
		patientsRepo    repository.PatientsRepository
	)
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			logger.Info("DB enabled for hospital-api")
		} else {
			logger.Warn("DB enabled but connection failed, falling back to memory repositories", zap.Error(err))
		}
	}
	if db != nil {
		usersRepo = repository.NewPostgresUsersRepository(db)
		departmentsRepo = repository.NewPostgresDepartmentsRepository(db)
		patientsRepo = repository.NewPostgresPatientsRepository(db)
	} else {
		// DB 未就绪：使用内存 repo 支持联测
		usersRepo = repository.NewMemoryUsersRepository()
		memDepts := repository.NewMemoryDepartmentsRepository()
		departmentsRepo = memDepts
		patientsRepo = repository.NewMemoryPatientsRepository(memDepts)
	}

	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	authService := service.NewAuthService(usersRepo, tokens, tokenTTL, logger)
	hospitalService := service.NewHospitalService(departmentsRepo, patientsRepo, logger)

	// Dev bootstrap: 注册接口本身需要 admin 令牌，先补种默认 admin 账号
	if cfg.Auth.SeedAdmin {
		seedAdmin(usersRepo, logger)
	}

	router := httpapi.NewRouter(logger)
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(authService, logger))
	router.RegisterHospitalRoutes(httpapi.NewHospitalHandler(authService, hospitalService, logger))

	srv := service.NewServer(cfg.HTTP.Addr, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case <-errCh:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = redisClient.Close()
	if db != nil {
		_ = db.Close()
	}
}

// seedAdmin 补种默认 admin/1234 账号；已存在时跳过
func seedAdmin(usersRepo repository.UsersRepository, logger *zap.Logger) {
	ctx := context.Background()

	if _, err := usersRepo.GetUserByUsername(ctx, "admin"); err == nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.DefaultCost)
	if err != nil {
		logger.Warn("Seed admin: hash failed", zap.Error(err))
		return
	}
	if _, err := usersRepo.CreateUser(ctx, "admin", string(hash), domain.RoleAdmin); err != nil {
		if !domain.IsConflict(err) {
			logger.Warn("Seed admin failed", zap.Error(err))
		}
		return
	}
	logger.Info("Seeded default admin account", zap.String("username", "admin"))
}
