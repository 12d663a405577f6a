package finance

import (
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/findash/findash/mockapi"
	"github.com/findash/findash/users"
)

// Eligibility thresholds, in COP. Demo heuristics, not underwriting.
const (
	eligibleCreditScore  = 700
	eligibleIncomeFloor  = 5000000
	maxLoanAmountCeiling = 50000000
	smallLoanCutoff      = 10000000
)

// Service exposes the dashboard's financial data: transactions, balances,
// summaries, loan applications and the eligibility pre-check.
type Service struct {
	backend *mockapi.API
	log     zerolog.Logger
	nowTime func() time.Time
}

// Option defines a function type to modify the Service instance.
type Option func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Service) { s.nowTime = nowFunc }
}

// NewService initializes a finance Service.
func NewService(backend *mockapi.API, log zerolog.Logger, options ...Option) (*Service, error) {
	if backend == nil {
		return nil, errors.New("[finance.NewService] backend is required")
	}
	s := &Service{backend: backend, log: log, nowTime: time.Now}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// UserTransactions lists a user's transactions, newest first, capped at limit
// (10 when limit is zero).
func (s *Service) UserTransactions(userID string, limit int) ([]Transaction, error) {
	q := url.Values{}
	q.Set("userId", userID)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	resp, err := s.backend.Get("/api/transactions", q)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.UserTransactions] backend.Get")
	}
	return mockapi.Data[[]Transaction](resp)
}

// AccountBalance fetches the user's balance snapshot.
func (s *Service) AccountBalance(userID string) (AccountBalance, error) {
	q := url.Values{}
	q.Set("userId", userID)
	resp, err := s.backend.Get("/api/account-balances", q)
	if err != nil {
		return AccountBalance{}, errors.Wrap(err, "[Service.AccountBalance] backend.Get")
	}
	return mockapi.Data[AccountBalance](resp)
}

// FinancialSummary aggregates the user's movements within the period:
// deposits count as income, withdrawals, payments and fees as expenses.
func (s *Service) FinancialSummary(userID string, startDate, endDate time.Time) (FinancialSummary, error) {
	resp, err := s.backend.Get("/api/transactions", nil)
	if err != nil {
		return FinancialSummary{}, errors.Wrap(err, "[Service.FinancialSummary] backend.Get")
	}
	all, err := mockapi.Data[[]Transaction](resp)
	if err != nil {
		return FinancialSummary{}, errors.Wrap(err, "[Service.FinancialSummary] envelope")
	}

	var totalIncome, totalExpenses float64
	for _, t := range all {
		if t.UserID != userID || t.TransactionDate.Before(startDate) || t.TransactionDate.After(endDate) {
			continue
		}
		switch t.Type {
		case TypeDeposit:
			totalIncome += t.Amount
		case TypeWithdrawal, TypePayment, TypeFee:
			totalExpenses += t.Amount
		}
	}

	netSavings := totalIncome - totalExpenses
	daysInPeriod := math.Ceil(endDate.Sub(startDate).Hours() / 24)
	var monthlyAverage float64
	if daysInPeriod > 0 {
		monthlyAverage = netSavings / daysInPeriod * 30
	}

	return FinancialSummary{
		UserID:         userID,
		TotalIncome:    totalIncome,
		TotalExpenses:  totalExpenses,
		NetSavings:     netSavings,
		MonthlyAverage: monthlyAverage,
		Period:         Period{StartDate: startDate, EndDate: endDate},
	}, nil
}

// UserLoanApplications lists the user's applications, newest first.
func (s *Service) UserLoanApplications(userID string) ([]LoanApplication, error) {
	q := url.Values{}
	q.Set("userId", userID)
	resp, err := s.backend.Get("/api/loan-applications", q)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.UserLoanApplications] backend.Get")
	}
	return mockapi.Data[[]LoanApplication](resp)
}

// CreateLoanApplication records a new application through the backend.
func (s *Service) CreateLoanApplication(draft mockapi.LoanApplicationDraft) (LoanApplication, error) {
	resp, err := s.backend.Post("/api/loan-applications", draft)
	if err != nil {
		return LoanApplication{}, errors.Wrap(err, "[Service.CreateLoanApplication] backend.Post")
	}
	return mockapi.Data[LoanApplication](resp)
}

// CheckLoanEligibility runs the demo pre-approval heuristic against the
// user's profile.
func (s *Service) CheckLoanEligibility(userID string, requestedAmount float64) (LoanEligibility, error) {
	q := url.Values{}
	q.Set("id", userID)
	resp, err := s.backend.Get("/api/users", q)
	if err != nil {
		return LoanEligibility{}, errors.Wrap(err, "[Service.CheckLoanEligibility] backend.Get")
	}
	user, err := mockapi.Data[users.User](resp)
	if err != nil {
		return LoanEligibility{}, errors.Wrap(err, "[Service.CheckLoanEligibility] envelope")
	}

	income := user.EmploymentInfo.MonthlyIncome
	isEligible := user.CreditScore >= eligibleCreditScore && income >= eligibleIncomeFloor
	maxLoanAmount := math.Min(income*3, maxLoanAmountCeiling)
	recommendedTerm := 36
	if requestedAmount <= smallLoanCutoff {
		recommendedTerm = 24
	}
	estimatedRate := 8.5
	if user.CreditScore >= 750 {
		estimatedRate = 6.5
	}
	paymentEstimate := amortizedPayment(requestedAmount, estimatedRate, recommendedTerm)

	incomeStability := 60.0
	if income >= eligibleIncomeFloor {
		incomeStability = 85.0
	}

	return LoanEligibility{
		UserID:                 userID,
		IsEligible:             isEligible,
		MaxLoanAmount:          maxLoanAmount,
		RecommendedTerm:        recommendedTerm,
		EstimatedInterestRate:  estimatedRate,
		MonthlyPaymentEstimate: paymentEstimate,
		Factors: EligibilityFactors{
			CreditScore:       user.CreditScore,
			IncomeStability:   incomeStability,
			DebtToIncomeRatio: paymentEstimate / income * 100,
			EmploymentHistory: s.employmentHistoryMonths(user.EmploymentInfo.EmploymentStartDate),
		},
	}, nil
}

// amortizedPayment computes the monthly payment for an annual percentage rate.
func amortizedPayment(principal, annualRate float64, termMonths int) float64 {
	monthlyRate := annualRate / 100 / 12
	if monthlyRate == 0 {
		return principal / float64(termMonths)
	}
	factor := math.Pow(1+monthlyRate, float64(termMonths))
	return principal * (monthlyRate * factor) / (factor - 1)
}

// employmentHistoryMonths scores tenure in months, capped at 60.
func (s *Service) employmentHistoryMonths(startDate time.Time) float64 {
	months := s.nowTime().Sub(startDate).Hours() / 24 / 30
	return math.Min(months, 60)
}
