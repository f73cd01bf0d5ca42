package repository

import (
	"context"
	"database/sql"

	"backoffice-data/internal/domain"
)

// PostgresUsersRepository 账号Repository实现
type PostgresUsersRepository struct {
	db *sql.DB
}

// NewPostgresUsersRepository 创建账号Repository
func NewPostgresUsersRepository(db *sql.DB) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db}
}

// 确保实现了接口
var _ UsersRepository = (*PostgresUsersRepository)(nil)

// CreateUser 创建账号
// 存在性检查与插入在同一事务内完成；唯一索引兜底并发冲突
func (r *PostgresUsersRepository) CreateUser(ctx context.Context, username, passwordHash string, role domain.UserRole) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, mapSQLError(err, "create user")
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return 0, mapSQLError(err, "create user")
	}
	if exists {
		return 0, domain.NewConflict("username already exists")
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash, role)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		username, passwordHash, string(role),
	).Scan(&id)
	if err != nil {
		return 0, mapSQLError(err, "create user")
	}

	if err := tx.Commit(); err != nil {
		return 0, mapSQLError(err, "create user")
	}
	return id, nil
}

// GetUserByUsername 按用户名查询账号
func (r *PostgresUsersRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT
			id,
			username,
			password_hash,
			role,
			created_on
		FROM users
		WHERE username = $1
	`

	var user domain.User
	var role string
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&role,
		&user.CreatedOn,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewNotFound("user not found")
		}
		return nil, mapSQLError(err, "get user")
	}

	user.Role = domain.UserRole(role)
	return &user, nil
}
