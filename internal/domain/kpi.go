package domain

import "time"

// KPISummary é o registro canônico de indicadores de um período. As visões
// (dashboard, DRE, legado) apenas selecionam e renomeiam estes campos.
type KPISummary struct {
	Period              DateRange `json:"period"`
	PeriodDays          int       `json:"period_days"`
	ProrationFactor     float64   `json:"proration_factor"`
	Revenue             float64   `json:"revenue"`
	CardRevenue         float64   `json:"card_revenue"`
	TransactionIncome   float64   `json:"transaction_income"`
	TransactionExpenses float64   `json:"transaction_expenses"`
	TrafficCosts        float64   `json:"traffic_costs"`
	FixedCost           float64   `json:"fixed_cost"`
	CommissionPaid      float64   `json:"commission_paid"`
	OperationalCost     float64   `json:"operational_cost"`
	TaxRate             float64   `json:"tax_rate"`
	TaxAmount           float64   `json:"tax_amount"`
	NetProfit           float64   `json:"net_profit"`
	Receivables         float64   `json:"receivables"`
	LegacyReceivables   float64   `json:"legacy_receivables"`
	ActiveProjects      int       `json:"active_projects"`
	TotalLeads          int       `json:"total_leads"`
	ConvertedCount      int       `json:"converted_count"`
	ConversionRate      float64   `json:"conversion_rate"`
	TrafficROI          float64   `json:"traffic_roi"`
}

// DashboardKPIs é a visão do hook de KPIs do dashboard
type DashboardKPIs struct {
	Period          DateRange `json:"period"`
	Revenue         float64   `json:"revenue"`
	NetProfit       float64   `json:"net_profit"`
	Receivables     float64   `json:"receivables"`
	ActiveProjects  int       `json:"active_projects"`
	OperationalCost float64   `json:"operational_cost"`
	TrafficROI      float64   `json:"traffic_roi"`
	TrafficCosts    float64   `json:"traffic_costs"`
	ConversionRate  float64   `json:"conversion_rate"`
	TaxRate         float64   `json:"tax_rate"`
}

// CategoryTotal soma lançamentos de uma categoria
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// DREReport é o demonstrativo de resultado do período
type DREReport struct {
	Period              DateRange       `json:"period"`
	GrossRevenue        float64         `json:"gross_revenue"`
	CardRevenue         float64         `json:"card_revenue"`
	OtherIncome         float64         `json:"other_income"`
	TaxRate             float64         `json:"tax_rate"`
	TaxAmount           float64         `json:"tax_amount"`
	NetRevenue          float64         `json:"net_revenue"`
	TransactionExpenses float64         `json:"transaction_expenses"`
	FixedCost           float64         `json:"fixed_cost"`
	CommissionPaid      float64         `json:"commission_paid"`
	OperationalCost     float64         `json:"operational_cost"`
	NetProfit           float64         `json:"net_profit"`
	NetMargin           float64         `json:"net_margin"`
	TrafficCosts        float64         `json:"traffic_costs"`
	TrafficROI          float64         `json:"traffic_roi"`
	RevenueTrafficROI   *float64        `json:"revenue_traffic_roi,omitempty"`
	ProrationFactor     float64         `json:"proration_factor"`
	ExpensesByCategory  []CategoryTotal `json:"expenses_by_category"`
}

// LegacyMetrics é a visão do contexto legado, que soma o saldo de projetos
// antigos aos recebíveis
type LegacyMetrics struct {
	Period            DateRange `json:"period"`
	Revenue           float64   `json:"revenue"`
	NetProfit         float64   `json:"net_profit"`
	Receivables       float64   `json:"receivables"`
	CardReceivables   float64   `json:"card_receivables"`
	LegacyReceivables float64   `json:"legacy_receivables"`
	ActiveProjects    int       `json:"active_projects"`
	OperationalCost   float64   `json:"operational_cost"`
	TaxAmount         float64   `json:"tax_amount"`
	CommissionPaid    float64   `json:"commission_paid"`
	FixedCost         float64   `json:"fixed_cost"`
	ConversionRate    float64   `json:"conversion_rate"`
}

// LegacySnapshot é o estado local enviado pelo cliente para cálculo das métricas legadas
type LegacySnapshot struct {
	Cards         []*FlowCard      `json:"cards"`
	Transactions  []*Transaction   `json:"transactions"`
	Collaborators []*Collaborator  `json:"collaborators"`
	Projects      []*LegacyProject `json:"projects"`
	Settings      *AppSettings     `json:"settings"`
	Range         *DateRange       `json:"range"`
}

// SellerKPIs é o painel do vendedor, calculado só com os próprios cards
type SellerKPIs struct {
	Period           DateRange          `json:"period"`
	CollaboratorID   string             `json:"collaborator_id,omitempty"`
	Sales            float64            `json:"sales"`
	CommissionEarned float64            `json:"commission_earned"`
	Receivables      float64            `json:"receivables"`
	ConversionRate   float64            `json:"conversion_rate"`
	CardsByStatus    map[CardStatus]int `json:"cards_by_status"`
}

// ProductionKPIs é o painel da produção
type ProductionKPIs struct {
	Period          DateRange `json:"period"`
	InProduction    int       `json:"in_production"`
	InReview        int       `json:"in_review"`
	AwaitingPayment int       `json:"awaiting_payment"`
	Completed       int       `json:"completed"`
}

// KPISnapshot é o fechamento mensal persistido
type KPISnapshot struct {
	Period    string     `json:"period"`
	Summary   KPISummary `json:"summary"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
