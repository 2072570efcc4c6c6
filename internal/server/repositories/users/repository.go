package users

import (
	"context"

	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	SetAdmin(ctx context.Context, id int64, isAdmin bool) (*models.User, error)
}
