package register

import (
	"context"

	"github.com/magabrotheeeer/financeiro/internal/models"
)

// Service регистрирует пользователя.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
}
