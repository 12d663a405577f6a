// Package transactions provides the credit-transaction listing and the stats
// aggregation shown on the dashboard.
package transactions

import (
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/findash/findash/finance"
	apperrors "github.com/findash/findash/internal/errors"
	"github.com/findash/findash/mockapi"
)

const basePath = "/api/transactions"

// Filters narrows a credit-transaction listing.
type Filters struct {
	UserID    string
	Type      string
	Category  string
	Status    string
	Limit     int
	StartDate *time.Time
	EndDate   *time.Time
}

// Stats aggregates a user's credit transactions.
type Stats struct {
	TotalTransactions  int     `json:"totalTransactions"`
	TotalAmount        float64 `json:"totalAmount"`
	AverageAmount      float64 `json:"averageAmount"`
	MostCommonCategory string  `json:"mostCommonCategory"`
}

// Service queries the backend and applies the credit-specific filtering the
// transaction list view relies on.
type Service struct {
	backend *mockapi.API
	log     zerolog.Logger
}

// NewService initializes a transactions Service.
func NewService(backend *mockapi.API, log zerolog.Logger) (*Service, error) {
	if backend == nil {
		return nil, errors.New("[transactions.NewService] backend is required")
	}
	return &Service{backend: backend, log: log}, nil
}

// CreditTransactions lists transactions matching the filters, keeping only
// credit-related movements: payments and disbursements, plus anything in a
// credit category.
func (s *Service) CreditTransactions(filters Filters) ([]finance.Transaction, error) {
	resp, err := s.backend.Get(basePath, buildQuery(filters))
	if err != nil {
		return nil, errors.Wrap(err, "[Service.CreditTransactions] backend.Get")
	}
	list, err := mockapi.Data[[]finance.Transaction](resp)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.CreditTransactions] envelope")
	}
	return filterCredit(list, filters), nil
}

// CreditTransactionByID fetches a single transaction.
func (s *Service) CreditTransactionByID(id string) (finance.Transaction, error) {
	if id == "" {
		return finance.Transaction{}, apperrors.Validation("ID de transacción es requerido")
	}
	resp, err := s.backend.Get(basePath+"/"+id, nil)
	if err != nil {
		return finance.Transaction{}, errors.Wrap(err, "[Service.CreditTransactionByID] backend.Get")
	}
	return mockapi.Data[finance.Transaction](resp)
}

// CreditTransactionStats aggregates the user's credit transactions.
func (s *Service) CreditTransactionStats(userID string) (Stats, error) {
	if userID == "" {
		return Stats{}, apperrors.Validation("ID de usuario es requerido")
	}
	list, err := s.CreditTransactions(Filters{UserID: userID})
	if err != nil {
		return Stats{}, errors.Wrap(err, "[Service.CreditTransactionStats] listing")
	}
	return calculateStats(list), nil
}

func buildQuery(filters Filters) url.Values {
	q := url.Values{}
	if filters.UserID != "" {
		q.Set("userId", filters.UserID)
	}
	if filters.Type != "" {
		q.Set("type", filters.Type)
	}
	if filters.Category != "" {
		q.Set("category", filters.Category)
	}
	if filters.Status != "" {
		q.Set("status", filters.Status)
	}
	if filters.Limit > 0 {
		q.Set("limit", strconv.Itoa(filters.Limit))
	}
	return q
}

func filterCredit(list []finance.Transaction, filters Filters) []finance.Transaction {
	out := make([]finance.Transaction, 0, len(list))
	for _, t := range list {
		if filters.StartDate != nil && t.TransactionDate.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && t.TransactionDate.After(*filters.EndDate) {
			continue
		}
		if !isCredit(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func isCredit(t finance.Transaction) bool {
	if t.Type == finance.TypePayment || t.Type == finance.TypeDisbursement {
		return true
	}
	switch t.Category {
	case "CREDIT_CARD", "MORTGAGE", "PERSONAL_LOAN":
		return true
	}
	return false
}

func calculateStats(list []finance.Transaction) Stats {
	stats := Stats{TotalTransactions: len(list)}
	for _, t := range list {
		stats.TotalAmount += t.Amount
	}
	if stats.TotalTransactions > 0 {
		stats.AverageAmount = stats.TotalAmount / float64(stats.TotalTransactions)
	}

	// Count categories preserving first-seen order so ties resolve to the
	// category that reached the top count first.
	counts := make(map[string]int, len(list))
	order := make([]string, 0, len(list))
	for _, t := range list {
		if _, seen := counts[t.Category]; !seen {
			order = append(order, t.Category)
		}
		counts[t.Category]++
	}

	stats.MostCommonCategory = "Sin categoría"
	best := 0
	for _, category := range order {
		if counts[category] > best {
			best = counts[category]
			stats.MostCommonCategory = category
		}
	}
	return stats
}
