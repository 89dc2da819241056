// Package goals управляет финансовыми целями пользователя и их прогрессом.
package goals

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/financeiro/internal/lib/tz"
	"github.com/magabrotheeeer/financeiro/internal/models"
	"github.com/magabrotheeeer/financeiro/internal/services"
)

// Repository определяет методы хранилища целей.
type Repository interface {
	CreateGoal(ctx context.Context, goal models.Goal) (int64, error)
	GetGoal(ctx context.Context, userUID string, id int64) (*models.Goal, error)
	ListGoals(ctx context.Context, userUID string, completed *bool) ([]*models.Goal, error)
	UpdateGoal(ctx context.Context, goal models.Goal) error
	DeleteGoal(ctx context.Context, userUID string, id int64) error
}

// Service реализует операции с целями.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log, now: tz.Now}
}

// List возвращает активные и выполненные цели с итогами по активным.
func (s *Service) List(ctx context.Context, userUID string) (*models.GoalsOverview, error) {
	const op = "goals.List"

	goals, err := s.repo.ListGoals(ctx, userUID, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	overview := &models.GoalsOverview{
		Active:       []models.GoalView{},
		Completed:    []models.GoalView{},
		TotalTarget:  decimal.Zero,
		TotalCurrent: decimal.Zero,
	}
	for _, g := range goals {
		if g.Completed() {
			overview.Completed = append(overview.Completed, g.View(now))
			continue
		}
		overview.Active = append(overview.Active, g.View(now))
		overview.TotalTarget = overview.TotalTarget.Add(g.TargetAmount)
		overview.TotalCurrent = overview.TotalCurrent.Add(g.CurrentAmount)
	}
	total := models.Goal{TargetAmount: overview.TotalTarget, CurrentAmount: overview.TotalCurrent}
	overview.OverallProgress = total.Progress()
	return overview, nil
}

// Create создает цель.
func (s *Service) Create(ctx context.Context, userUID string, req models.GoalRequest) (*models.GoalView, error) {
	const op = "goals.Create"

	goal := models.Goal{UserUID: userUID, CreatedAt: s.now().UTC()}
	if err := apply(&goal, req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	id, err := s.repo.CreateGoal(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	goal.ID = id

	s.log.Info("goal created", slog.String("user_uid", userUID), slog.Int64("id", id))
	return s.view(&goal), nil
}

// Update изменяет цель пользователя.
func (s *Service) Update(ctx context.Context, userUID string, id int64, req models.GoalRequest) (*models.GoalView, error) {
	const op = "goals.Update"

	goal, err := s.repo.GetGoal(ctx, userUID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := apply(goal, req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.UpdateGoal(ctx, *goal); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.view(goal), nil
}

// UpdateProgress задаёт текущую накопленную сумму.
func (s *Service) UpdateProgress(ctx context.Context, userUID string, id int64, amount decimal.Decimal) (*models.GoalView, error) {
	const op = "goals.UpdateProgress"

	if amount.IsNegative() {
		return nil, fmt.Errorf("%s: %w", op, services.ErrInvalidInput)
	}
	goal, err := s.repo.GetGoal(ctx, userUID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	goal.CurrentAmount = amount.Round(2)
	if err := s.repo.UpdateGoal(ctx, *goal); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.view(goal), nil
}

// Complete приравнивает текущую сумму к целевой.
func (s *Service) Complete(ctx context.Context, userUID string, id int64) (*models.GoalView, error) {
	const op = "goals.Complete"

	goal, err := s.repo.GetGoal(ctx, userUID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	goal.CurrentAmount = goal.TargetAmount
	if err := s.repo.UpdateGoal(ctx, *goal); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("goal completed", slog.String("user_uid", userUID), slog.Int64("id", id))
	return s.view(goal), nil
}

// Reactivate возвращает цель в список активных. Завершённость определяется
// суммами, поэтому цель с текущей суммой не меньше целевой остаётся завершённой:
// сначала нужно уменьшить накопленное или поднять целевую сумму.
func (s *Service) Reactivate(ctx context.Context, userUID string, id int64) (*models.GoalView, error) {
	const op = "goals.Reactivate"

	goal, err := s.repo.GetGoal(ctx, userUID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if goal.Completed() {
		return nil, fmt.Errorf("%s: %w", op, services.ErrGoalCompleted)
	}
	return s.view(goal), nil
}

// Delete удаляет цель пользователя.
func (s *Service) Delete(ctx context.Context, userUID string, id int64) error {
	const op = "goals.Delete"

	if err := s.repo.DeleteGoal(ctx, userUID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) view(g *models.Goal) *models.GoalView {
	g.Sync()
	v := g.View(s.now())
	return &v
}

func apply(g *models.Goal, req models.GoalRequest) error {
	target, err := tz.ParseLocalDate(req.TargetDate)
	if err != nil {
		return services.ErrInvalidInput
	}
	targetAmount, currentAmount := req.TargetAmount.Round(2), req.CurrentAmount.Round(2)
	if !targetAmount.IsPositive() || currentAmount.IsNegative() {
		return services.ErrInvalidInput
	}
	g.Title = strings.TrimSpace(req.Title)
	g.Description = strings.TrimSpace(req.Description)
	g.TargetAmount = targetAmount
	g.CurrentAmount = currentAmount
	g.TargetDate = &target
	return nil
}
