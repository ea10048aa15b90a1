package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/money"
)

var (
	// ErrInvalidRule возвращается при некорректном правиле
	ErrInvalidRule = errors.New("invalid commission rule")

	// ErrInvalidServiceLine возвращается при некорректной строке услуги
	ErrInvalidServiceLine = errors.New("invalid service line")
)

// Request модели

// ServiceLine услуга с фактической ценой
type ServiceLine struct {
	ServiceID    string          `json:"serviceId"`
	ServiceName  string          `json:"serviceName"`
	PriceCharged decimal.Decimal `json:"priceCharged"`
}

// RuleInput правило комиссии для услуги
type RuleInput struct {
	ServiceID string          `json:"serviceId"`
	Type      string          `json:"type"`  // percent | fixed
	Value     decimal.Decimal `json:"value"` // процент или сумма
}

// FeeScheduleInput расписание сборов, переданное явно
type FeeScheduleInput struct {
	CardFeesByInstallment map[int]decimal.Decimal `json:"cardFeesByInstallment"`
	AdminFeePercent       decimal.Decimal         `json:"adminFeePercent"`
}

// PreviewRequest запрос на предварительный расчет комиссии
// Если указан ProfessionalID, недостающие DefaultPercent и Rules берутся из профиля профессионала.
// Если FeeSchedule не указан, используется расписание салона.
type PreviewRequest struct {
	ProfessionalID *string           `json:"professionalId,omitempty"`
	DefaultPercent *decimal.Decimal  `json:"defaultPercent,omitempty"`
	Rules          []RuleInput       `json:"rules,omitempty"`
	Services       []ServiceLine     `json:"services"`
	PaymentMethod  string            `json:"paymentMethod"`
	Installments   int               `json:"installments"`
	FeeSchedule    *FeeScheduleInput `json:"feeSchedule,omitempty"`
}

// AppointmentCommissionRequest запрос комиссии по записи
// Без способа оплаты используется способ, зафиксированный при завершении записи
type AppointmentCommissionRequest struct {
	AppointmentID string
	PaymentMethod *string
	Installments  *int
}

// ReplaceRulesRequest полная замена правил профессионала
type ReplaceRulesRequest struct {
	Rules []RuleInput `json:"rules"`
}

// ReportRequest запрос сводки комиссий
type ReportRequest struct {
	ProfessionalID string
	From           *time.Time // дата начала, включительно
	To             *time.Time // дата конца, включительно
}

// ToDomainServices проверяет и конвертирует строки услуг
func ToDomainServices(lines []ServiceLine) ([]domain.AppointmentService, error) {
	services := make([]domain.AppointmentService, 0, len(lines))
	for i, line := range lines {
		if line.ServiceID == "" {
			return nil, fmt.Errorf("%w: services[%d]: serviceId is required", ErrInvalidServiceLine, i)
		}
		if line.PriceCharged.IsNegative() {
			return nil, fmt.Errorf("%w: services[%d]: priceCharged must not be negative", ErrInvalidServiceLine, i)
		}
		services = append(services, domain.AppointmentService{
			ServiceID:    line.ServiceID,
			ServiceName:  line.ServiceName,
			PriceCharged: line.PriceCharged,
		})
	}
	return services, nil
}

// ToDomainRules проверяет и конвертирует правила
// percent: 0-100, fixed: >= 0, serviceId уникален
func ToDomainRules(professionalID string, inputs []RuleInput) ([]domain.CommissionRule, error) {
	rules := make([]domain.CommissionRule, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))

	for i, in := range inputs {
		if in.ServiceID == "" {
			return nil, fmt.Errorf("%w: rules[%d]: serviceId is required", ErrInvalidRule, i)
		}
		if _, dup := seen[in.ServiceID]; dup {
			return nil, fmt.Errorf("%w: rules[%d]: duplicate serviceId %s", ErrInvalidRule, i, in.ServiceID)
		}
		seen[in.ServiceID] = struct{}{}

		ruleType := domain.CommissionRuleType(in.Type)
		if !ruleType.IsValid() {
			return nil, fmt.Errorf("%w: rules[%d]: unknown type %q", ErrInvalidRule, i, in.Type)
		}
		if in.Value.IsNegative() {
			return nil, fmt.Errorf("%w: rules[%d]: value must not be negative", ErrInvalidRule, i)
		}
		if ruleType == domain.CommissionRulePercent && in.Value.GreaterThan(domain.Percent100) {
			return nil, fmt.Errorf("%w: rules[%d]: percent must not exceed 100", ErrInvalidRule, i)
		}

		rules = append(rules, domain.CommissionRule{
			ProfessionalID: professionalID,
			ServiceID:      in.ServiceID,
			Type:           ruleType,
			Value:          in.Value,
		})
	}

	return rules, nil
}

// ToDomain проверяет и конвертирует расписание сборов
func (f *FeeScheduleInput) ToDomain() (domain.FeeSchedule, error) {
	fees := domain.FeeSchedule{
		CardFeesByInstallment: make(map[int]decimal.Decimal, len(f.CardFeesByInstallment)),
		AdminFeePercent:       f.AdminFeePercent,
	}
	for installments, fee := range f.CardFeesByInstallment {
		fees.CardFeesByInstallment[installments] = fee
	}

	if err := fees.Validate(); err != nil {
		return domain.FeeSchedule{}, err
	}
	return fees, nil
}

// Response модели

// Происхождение суммы комиссии в ответе
const (
	SourceCalculated = "calculated" // пересчитано по текущим правилам и сборам
	SourceRecorded   = "recorded"   // зафиксировано при завершении записи
)

// CommissionLineResponse комиссия по услуге
type CommissionLineResponse struct {
	ServiceID       string     `json:"serviceId"`
	ServiceName     string     `json:"serviceName"`
	Amount          money.View `json:"amount"`
	RuleDescription string     `json:"ruleDescription"`
}

// CommissionResponse результат расчета комиссии
type CommissionResponse struct {
	AppointmentID   *string                  `json:"appointmentId,omitempty"`
	ProfessionalID  *string                  `json:"professionalId,omitempty"`
	PaymentMethod   string                   `json:"paymentMethod"`
	Installments    int                      `json:"installments"`
	GrossCommission money.View               `json:"grossCommission"`
	CardFeePercent  string                   `json:"cardFeePercent"`
	CardFeeAmount   money.View               `json:"cardFeeAmount"`
	AdminFeePercent string                   `json:"adminFeePercent"`
	AdminFeeAmount  money.View               `json:"adminFeeAmount"`
	NetCommission   money.View               `json:"netCommission"`
	Breakdown       []CommissionLineResponse `json:"breakdown"`
	Source          string                   `json:"source"`
}

// RuleResponse правило комиссии
type RuleResponse struct {
	ServiceID string `json:"serviceId"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}

// RulesResponse правила профессионала
type RulesResponse struct {
	ProfessionalID string         `json:"professionalId"`
	DefaultPercent string         `json:"defaultPercent"`
	Rules          []RuleResponse `json:"rules"`
}

// EntryResponse движение комиссии
type EntryResponse struct {
	ID              int64      `json:"id"`
	AppointmentID   string     `json:"appointmentId"`
	PaymentMethod   string     `json:"paymentMethod"`
	Installments    int        `json:"installments"`
	ServicesTotal   money.View `json:"servicesTotal"`
	GrossCommission money.View `json:"grossCommission"`
	CardFeeAmount   money.View `json:"cardFeeAmount"`
	AdminFeeAmount  money.View `json:"adminFeeAmount"`
	NetCommission   money.View `json:"netCommission"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// ReportResponse сводка комиссий за период
type ReportResponse struct {
	ProfessionalID string          `json:"professionalId"`
	From           *string         `json:"from,omitempty"`
	To             *string         `json:"to,omitempty"`
	Entries        []EntryResponse `json:"entries"`
	ServicesTotal  money.View      `json:"servicesTotal"`
	GrossTotal     money.View      `json:"grossTotal"`
	CardFeeTotal   money.View      `json:"cardFeeTotal"`
	AdminFeeTotal  money.View      `json:"adminFeeTotal"`
	NetTotal       money.View      `json:"netTotal"`
}

// FromDomainResult конвертирует результат калькулятора
func FromDomainResult(res domain.CommissionResult, payment domain.PaymentSelection) *CommissionResponse {
	lines := make([]CommissionLineResponse, 0, len(res.Breakdown))
	for _, line := range res.Breakdown {
		lines = append(lines, CommissionLineResponse{
			ServiceID:       line.ServiceID,
			ServiceName:     line.ServiceName,
			Amount:          money.NewView(line.Amount),
			RuleDescription: line.RuleDescription,
		})
	}

	return &CommissionResponse{
		PaymentMethod:   string(payment.Method),
		Installments:    payment.Installments,
		GrossCommission: money.NewView(res.GrossCommission),
		CardFeePercent:  res.CardFeePercent.String(),
		CardFeeAmount:   money.NewView(res.CardFeeAmount),
		AdminFeePercent: res.AdminFeePercent.String(),
		AdminFeeAmount:  money.NewView(res.AdminFeeAmount),
		NetCommission:   money.NewView(res.NetCommission),
		Breakdown:       lines,
		Source:          SourceCalculated,
	}
}

// FromDomainEntry конвертирует зафиксированное движение
func FromDomainEntry(entry *domain.CommissionEntry) *CommissionResponse {
	resp := FromDomainResult(entry.Result(), entry.Payment())
	resp.AppointmentID = &entry.AppointmentID
	resp.ProfessionalID = &entry.ProfessionalID
	resp.Source = SourceRecorded
	return resp
}

// FromDomainRules конвертирует правила профессионала
func FromDomainRules(professional *domain.Professional, rules []domain.CommissionRule) *RulesResponse {
	resp := &RulesResponse{
		ProfessionalID: professional.ID,
		DefaultPercent: professional.CommissionPercentDefault.String(),
		Rules:          make([]RuleResponse, 0, len(rules)),
	}
	for _, rule := range rules {
		resp.Rules = append(resp.Rules, RuleResponse{
			ServiceID: rule.ServiceID,
			Type:      string(rule.Type),
			Value:     rule.Value.String(),
		})
	}
	return resp
}

// FromDomainReport конвертирует сводку
func FromDomainReport(report *domain.CommissionReport, from, to *time.Time) *ReportResponse {
	resp := &ReportResponse{
		ProfessionalID: report.ProfessionalID,
		Entries:        make([]EntryResponse, 0, len(report.Entries)),
		ServicesTotal:  money.NewView(report.ServicesTotal),
		GrossTotal:     money.NewView(report.GrossTotal),
		CardFeeTotal:   money.NewView(report.CardFeeTotal),
		AdminFeeTotal:  money.NewView(report.AdminFeeTotal),
		NetTotal:       money.NewView(report.NetTotal),
	}
	if from != nil {
		s := from.Format(domain.DateFormat)
		resp.From = &s
	}
	if to != nil {
		s := to.Format(domain.DateFormat)
		resp.To = &s
	}

	for _, e := range report.Entries {
		resp.Entries = append(resp.Entries, EntryResponse{
			ID:              e.ID,
			AppointmentID:   e.AppointmentID,
			PaymentMethod:   string(e.PaymentMethod),
			Installments:    e.Installments,
			ServicesTotal:   money.NewView(e.ServicesTotal),
			GrossCommission: money.NewView(e.GrossCommission),
			CardFeeAmount:   money.NewView(e.CardFeeAmount),
			AdminFeeAmount:  money.NewView(e.AdminFeeAmount),
			NetCommission:   money.NewView(e.NetCommission),
			CreatedAt:       e.CreatedAt,
		})
	}

	return resp
}
