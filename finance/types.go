// Package finance holds the financial domain model and the aggregate
// calculations backing the dashboard summary widgets.
package finance

import (
	"time"

	"github.com/findash/findash/internal/finmodel"
)

// The model types shared with the mockapi backend live in internal/finmodel
// to avoid an import cycle; the aliases below keep them part of this
// package's API, with identical type identity.

// TransactionType classifies the direction and nature of a transaction.
type TransactionType = finmodel.TransactionType

const (
	TypeDeposit      = finmodel.TypeDeposit
	TypeWithdrawal   = finmodel.TypeWithdrawal
	TypeTransfer     = finmodel.TypeTransfer
	TypePayment      = finmodel.TypePayment
	TypeFee          = finmodel.TypeFee
	TypeDisbursement = finmodel.TypeDisbursement
)

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus = finmodel.TransactionStatus

const (
	StatusPending   = finmodel.StatusPending
	StatusCompleted = finmodel.StatusCompleted
	StatusFailed    = finmodel.StatusFailed
	StatusCancelled = finmodel.StatusCancelled
)

// LoanStatus is the review state of a loan application.
type LoanStatus = finmodel.LoanStatus

const (
	LoanDraft       = finmodel.LoanDraft
	LoanSubmitted   = finmodel.LoanSubmitted
	LoanUnderReview = finmodel.LoanUnderReview
	LoanApproved    = finmodel.LoanApproved
	LoanRejected    = finmodel.LoanRejected
)

// Transaction is a single account movement. Amounts are in COP.
type Transaction = finmodel.Transaction

// AccountBalance is the per-user balance snapshot shown on the dashboard.
type AccountBalance = finmodel.AccountBalance

// LoanApplication is a customer's credit request and its review state.
type LoanApplication = finmodel.LoanApplication

// Period is a closed date interval.
type Period struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// FinancialSummary aggregates a user's movements over a period.
type FinancialSummary struct {
	UserID         string  `json:"userId"`
	TotalIncome    float64 `json:"totalIncome"`
	TotalExpenses  float64 `json:"totalExpenses"`
	NetSavings     float64 `json:"netSavings"`
	MonthlyAverage float64 `json:"monthlyAverage"`
	Period         Period  `json:"period"`
}

// EligibilityFactors breaks down the scoring behind a loan eligibility result.
type EligibilityFactors struct {
	CreditScore       int     `json:"creditScore"`
	IncomeStability   float64 `json:"incomeStability"`
	DebtToIncomeRatio float64 `json:"debtToIncomeRatio"`
	EmploymentHistory float64 `json:"employmentHistory"`
}

// LoanEligibility is the outcome of a pre-approval check.
type LoanEligibility struct {
	UserID                 string             `json:"userId"`
	IsEligible             bool               `json:"isEligible"`
	MaxLoanAmount          float64            `json:"maxLoanAmount"`
	RecommendedTerm        int                `json:"recommendedTerm"`
	EstimatedInterestRate  float64            `json:"estimatedInterestRate"`
	MonthlyPaymentEstimate float64            `json:"monthlyPaymentEstimate"`
	Factors                EligibilityFactors `json:"factors"`
}
