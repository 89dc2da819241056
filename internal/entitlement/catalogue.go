package entitlement

import "github.com/shopspring/decimal"

// Offer — платный план в каталоге.
type Offer struct {
	ID          Plan            `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Features    []string        `json:"features"`
	Popular     bool            `json:"popular"`
}

var catalogue = []Offer{
	{
		ID:          PlanMEI,
		Name:        "Plano MEI",
		Price:       decimal.NewFromInt(49),
		Description: "Perfeito para Microempreendedores Individuais",
		Features: []string{
			"Até 100 transações/mês",
			"Relatórios básicos",
			"Controle de caixa",
			"Contas a pagar/receber",
			"Suporte por email",
		},
	},
	{
		ID:          PlanProfessional,
		Name:        "Plano Profissional",
		Price:       decimal.NewFromInt(99),
		Description: "Para pequenos negócios em crescimento",
		Features: []string{
			"Até 500 transações/mês",
			"Relatórios avançados",
			"Automações inteligentes",
			"Integração Mercado Pago",
			"Análise de impostos",
			"Suporte prioritário",
		},
		Popular: true,
	},
	{
		ID:          PlanEnterprise,
		Name:        "Plano Empresarial",
		Price:       decimal.NewFromInt(199),
		Description: "Para empresas que precisam de mais",
		Features: []string{
			"Transações ilimitadas",
			"Multiusuário",
			"Acesso para contador",
			"Relatórios personalizados",
			"API completa",
			"Suporte 24/7",
		},
	},
}

// Catalogue возвращает копию каталога платных планов.
func Catalogue() []Offer {
	out := make([]Offer, len(catalogue))
	for i, o := range catalogue {
		o.Features = append([]string(nil), o.Features...)
		out[i] = o
	}
	return out
}

// Lookup ищет предложение по плану.
func Lookup(p Plan) (Offer, bool) {
	for _, o := range Catalogue() {
		if o.ID == p {
			return o, true
		}
	}
	return Offer{}, false
}
