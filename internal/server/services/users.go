package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/RaivoMihlenovs/capstone-project/internal/common"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/auth"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/repomanager"
)

// UserService handles registration, credential checks and token issuing.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	stats                 *StatsService
	secretKey             string
	tokenValidityDuration time.Duration
}

// AuthResult is what a successful register/login yields: the account and a
// signed token carrying its identity and role.
type AuthResult struct {
	User  *models.User
	Token string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, stats *StatsService,
	secretKey string, tokenValidityDuration time.Duration) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		stats:                 stats,
		secretKey:             secretKey,
		tokenValidityDuration: tokenValidityDuration,
	}
}

func (s *UserService) issueToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.ID, user.Email,
		auth.RoleFor(user.IsAdmin), []byte(s.secretKey), s.tokenValidityDuration)
}

// Register creates an account with a bcrypt-hashed password and returns it
// with a fresh token. A taken email surfaces as common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.stats.Refresh(ctx)

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies the credentials and returns the account with a fresh token.
// An unknown email and a wrong password both come back as
// common.ErrUnauthorized so the response does not reveal which one it was.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrUnauthorized
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// BecomeAdmin flips the caller's admin flag and re-issues a token carrying
// the new role, since the old token still says customer.
func (s *UserService) BecomeAdmin(ctx context.Context, userID int64) (*AuthResult, error) {
	users := s.repomanager.Users(s.db)

	if _, err := users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	user, err := users.SetAdmin(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.stats.Refresh(ctx)

	return &AuthResult{User: user, Token: token}, nil
}
