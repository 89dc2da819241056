package login

import (
	"context"

	"github.com/magabrotheeeer/financeiro/internal/models"
)

// Service проверяет учётные данные и выпускает токен.
type Service interface {
	Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error)
}
