// Package entitlement решает, может ли пользователь работать с продуктом и какие
// возможности даёт ему тарифный план. Все функции чистые: текущий момент передаётся явно.
package entitlement

import "errors"

// Plan — тарифный план.
type Plan string

const (
	PlanTrial        Plan = "trial"
	PlanMEI          Plan = "mei"
	PlanProfessional Plan = "professional"
	PlanEnterprise   Plan = "enterprise"
)

// Unlimited — значение лимита транзакций без ограничений.
const Unlimited = -1

var (
	// ErrInvalidPlan — план нельзя активировать (неизвестен или пробный).
	ErrInvalidPlan = errors.New("invalid plan")
	// ErrTransactionLimit — достигнут лимит транзакций плана.
	ErrTransactionLimit = errors.New("transaction limit reached")
	// ErrFeatureUnavailable — возможность не входит в план.
	ErrFeatureUnavailable = errors.New("feature not available in current plan")
	// ErrSubscriptionInactive — пробный период или подписка истекли.
	ErrSubscriptionInactive = errors.New("subscription inactive")
)

// Entitlements — набор возможностей и лимитов плана.
type Entitlements struct {
	Plan              Plan   `json:"plan"`
	Name              string `json:"name"`
	TransactionsLimit int    `json:"transactions_limit"`
	Reports           bool   `json:"reports"`
	Automation        bool   `json:"automation"`
	MultiUser         bool   `json:"multi_user"`
}

// Unlimited сообщает, снят ли лимит транзакций.
func (e Entitlements) Unlimited() bool {
	return e.TransactionsLimit == Unlimited
}

var table = map[Plan]Entitlements{
	PlanTrial:        {Plan: PlanTrial, Name: "Teste Grátis", TransactionsLimit: 10},
	PlanMEI:          {Plan: PlanMEI, Name: "Plano MEI", TransactionsLimit: 100, Reports: true},
	PlanProfessional: {Plan: PlanProfessional, Name: "Plano Profissional", TransactionsLimit: 500, Reports: true, Automation: true},
	PlanEnterprise:   {Plan: PlanEnterprise, Name: "Plano Empresarial", TransactionsLimit: Unlimited, Reports: true, Automation: true, MultiUser: true},
}

// Plans возвращает все планы в порядке возрастания.
func Plans() []Plan {
	return []Plan{PlanTrial, PlanMEI, PlanProfessional, PlanEnterprise}
}

// ParsePlan разбирает идентификатор плана. Второе значение false для неизвестных строк.
func ParsePlan(s string) (Plan, bool) {
	p := Plan(s)
	_, ok := table[p]
	return p, ok
}

// Paid сообщает, является ли план платным (может быть активирован).
func (p Plan) Paid() bool {
	return p == PlanMEI || p == PlanProfessional || p == PlanEnterprise
}

// For возвращает возможности плана. Неизвестный план получает возможности пробного периода.
func For(p Plan) Entitlements {
	if e, ok := table[p]; ok {
		return e
	}
	return table[PlanTrial]
}

// CheckTransactionCap проверяет, можно ли создать ещё одну транзакцию при текущем количестве count.
func CheckTransactionCap(e Entitlements, count int) error {
	if e.Unlimited() {
		return nil
	}
	if count >= e.TransactionsLimit {
		return ErrTransactionLimit
	}
	return nil
}

// Feature — платная возможность.
type Feature string

const (
	FeatureReports    Feature = "reports"
	FeatureAutomation Feature = "automation"
	FeatureMultiUser  Feature = "multi_user"
)

// Require возвращает ErrFeatureUnavailable, если возможность не входит в план.
func Require(e Entitlements, f Feature) error {
	var allowed bool
	switch f {
	case FeatureReports:
		allowed = e.Reports
	case FeatureAutomation:
		allowed = e.Automation
	case FeatureMultiUser:
		allowed = e.MultiUser
	}
	if !allowed {
		return ErrFeatureUnavailable
	}
	return nil
}
