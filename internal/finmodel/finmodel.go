// Package finmodel holds the financial model types shared between the
// finance package and the mockapi backend. The finance package aliases
// these types, so finance.Transaction and finmodel.Transaction are
// identical; the split only exists to break the finance ↔ mockapi
// import cycle.
package finmodel

import "time"

// TransactionType classifies the direction and nature of a transaction.
type TransactionType string

const (
	TypeDeposit      TransactionType = "DEPOSIT"
	TypeWithdrawal   TransactionType = "WITHDRAWAL"
	TypeTransfer     TransactionType = "TRANSFER"
	TypePayment      TransactionType = "PAYMENT"
	TypeFee          TransactionType = "FEE"
	TypeDisbursement TransactionType = "DISBURSEMENT"
)

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// LoanStatus is the review state of a loan application.
type LoanStatus string

const (
	LoanDraft       LoanStatus = "DRAFT"
	LoanSubmitted   LoanStatus = "SUBMITTED"
	LoanUnderReview LoanStatus = "UNDER_REVIEW"
	LoanApproved    LoanStatus = "APPROVED"
	LoanRejected    LoanStatus = "REJECTED"
)

// Transaction is a single account movement. Amounts are in COP.
type Transaction struct {
	ID              string            `json:"id"`
	UserID          string            `json:"userId"`
	Type            TransactionType   `json:"type"`
	Amount          float64           `json:"amount"`
	Description     string            `json:"description"`
	Category        string            `json:"category"`
	Status          TransactionStatus `json:"status"`
	TransactionDate time.Time         `json:"transactionDate"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// AccountBalance is the per-user balance snapshot shown on the dashboard.
type AccountBalance struct {
	UserID              string    `json:"userId"`
	CurrentBalance      float64   `json:"currentBalance"`
	AvailableBalance    float64   `json:"availableBalance"`
	PendingTransactions float64   `json:"pendingTransactions"`
	LastUpdated         time.Time `json:"lastUpdated"`
}

// LoanApplication is a customer's credit request and its review state.
type LoanApplication struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	LoanAmount      float64    `json:"loanAmount"`
	Purpose         string     `json:"purpose"`
	TermInMonths    int        `json:"termInMonths"`
	MonthlyPayment  float64    `json:"monthlyPayment"`
	InterestRate    float64    `json:"interestRate"`
	Status          LoanStatus `json:"status"`
	Documents       []string   `json:"documents"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	ReviewedBy      string     `json:"reviewedBy,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
}
