// Package loans implements the loan-application simulator: amortized payment
// math, approval probability and the in-memory application registry behind
// the loan form.
package loans

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "github.com/findash/findash/internal/errors"
)

// CreditType selects the product and its monthly interest rate.
type CreditType string

const (
	CreditPersonal CreditType = "personal"
	CreditVehicle  CreditType = "vehicle"
	CreditHousing  CreditType = "housing"
)

// ApplicationStatus is the lifecycle state of a submitted application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// Probability buckets for the simulated approval outcome.
type Probability string

const (
	ProbabilityHigh   Probability = "high"
	ProbabilityMedium Probability = "medium"
	ProbabilityLow    Probability = "low"
)

const (
	minLoanAmount    = 500000
	minMonthlyIncome = 100000
)

// Request is the loan form payload.
type Request struct {
	CreditType    CreditType
	Amount        float64
	Term          int // months
	MonthlyIncome float64
	Terms         bool // terms and conditions accepted
}

// Application is a submitted loan request.
type Application struct {
	ID                      string            `json:"id"`
	CreditType              CreditType        `json:"creditType"`
	Amount                  float64           `json:"amount"`
	Term                    int               `json:"term"`
	MonthlyIncome           float64           `json:"monthlyIncome"`
	Terms                   bool              `json:"terms"`
	Status                  ApplicationStatus `json:"status"`
	CreatedAt               time.Time         `json:"createdAt"`
	EstimatedMonthlyPayment float64           `json:"estimatedMonthlyPayment"`
	InterestRate            float64           `json:"interestRate"`
}

// Simulation is the outcome of a what-if calculation.
type Simulation struct {
	EstimatedMonthlyPayment float64     `json:"estimatedMonthlyPayment"`
	InterestRate            float64     `json:"interestRate"`
	TotalAmount             float64     `json:"totalAmount"`
	ApprovalProbability     Probability `json:"approvalProbability"`
	Recommendations         []string    `json:"recommendations"`
}

// Service owns the submitted applications for the process lifetime.
type Service struct {
	log     zerolog.Logger
	nowTime func() time.Time

	mu           sync.RWMutex
	applications []Application
}

// Option defines a function type to modify the Service instance.
type Option func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Service) { s.nowTime = nowFunc }
}

// NewService initializes a loans Service.
func NewService(log zerolog.Logger, options ...Option) *Service {
	s := &Service{log: log, nowTime: time.Now}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// monthlyRate returns the monthly interest rate for a credit type.
func monthlyRate(creditType CreditType) float64 {
	switch creditType {
	case CreditVehicle:
		return 0.018
	case CreditHousing:
		return 0.012
	default:
		return 0.025
	}
}

// Submit validates the request and records a pending application.
func (s *Service) Submit(request Request) (Application, error) {
	if !request.Terms {
		return Application{}, apperrors.Validation("Debes aceptar los términos y condiciones")
	}
	if request.Amount < minLoanAmount {
		return Application{}, apperrors.Validation("El monto mínimo es $500,000")
	}
	if request.MonthlyIncome < minMonthlyIncome {
		return Application{}, apperrors.Validation("Los ingresos mínimos son $100,000")
	}

	application := Application{
		ID:                      s.generateID(),
		CreditType:              request.CreditType,
		Amount:                  request.Amount,
		Term:                    request.Term,
		MonthlyIncome:           request.MonthlyIncome,
		Terms:                   request.Terms,
		Status:                  StatusPending,
		CreatedAt:               s.nowTime(),
		EstimatedMonthlyPayment: monthlyPayment(request),
		InterestRate:            monthlyRate(request.CreditType),
	}

	s.mu.Lock()
	s.applications = append(s.applications, application)
	s.mu.Unlock()

	s.log.Info().Str("id", application.ID).Float64("amount", application.Amount).Msg("loan application submitted")
	return application, nil
}

// Simulate computes the payment plan and approval outlook for a request
// without recording anything.
func (s *Service) Simulate(request Request) (Simulation, error) {
	if request.Term <= 0 {
		return Simulation{}, apperrors.Validation("El plazo debe ser mayor a cero")
	}

	payment := monthlyPayment(request)
	ratio := debtToIncomeRatio(payment, request.MonthlyIncome)

	var probability Probability
	switch {
	case ratio <= 30:
		probability = ProbabilityHigh
	case ratio <= 50:
		probability = ProbabilityMedium
	default:
		probability = ProbabilityLow
	}

	return Simulation{
		EstimatedMonthlyPayment: payment,
		InterestRate:            monthlyRate(request.CreditType),
		TotalAmount:             payment * float64(request.Term),
		ApprovalProbability:     probability,
		Recommendations:         recommendations(request, ratio),
	}, nil
}

// UserApplications returns the applications submitted during this process.
func (s *Service) UserApplications() []Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Application(nil), s.applications...)
}

// ApplicationByID looks up a submitted application.
func (s *Service) ApplicationByID(id string) (Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, app := range s.applications {
		if app.ID == id {
			return app, nil
		}
	}
	return Application{}, apperrors.NotFound("Solicitud no encontrada")
}

// monthlyPayment computes the amortized monthly payment, rounded to the peso.
func monthlyPayment(request Request) float64 {
	rate := monthlyRate(request.CreditType)
	factor := math.Pow(1+rate, float64(request.Term))
	numerator := request.Amount * rate * factor
	denominator := factor - 1
	if denominator == 0 {
		return request.Amount
	}
	return math.Round(numerator / denominator)
}

func debtToIncomeRatio(payment, income float64) float64 {
	if income <= 0 {
		return math.Inf(1)
	}
	return payment / income * 100
}

func recommendations(request Request, ratio float64) []string {
	var recs []string
	if ratio > 40 {
		recs = append(recs, "Considera reducir el monto solicitado para mejorar tu capacidad de pago")
	}
	if request.Term > 60 {
		recs = append(recs, "Plazos largos pueden resultar en mayor costo total del crédito")
	}
	if request.CreditType == CreditPersonal && request.Amount > 50000000 {
		recs = append(recs, "Para montos altos, considera un crédito hipotecario o vehicular")
	}
	if len(recs) == 0 {
		recs = append(recs, "Tu solicitud cumple con los criterios básicos de evaluación")
	}
	return recs
}

func (s *Service) generateID() string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("LOAN-%d-%s", s.nowTime().UnixMilli(), suffix)
}
