package mockapi

import "time"

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TransactionDraft is the create-transaction request body.
type TransactionDraft struct {
	UserID          string    `json:"userId"`
	Type            string    `json:"type"`
	Amount          float64   `json:"amount"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Status          string    `json:"status"`
	TransactionDate time.Time `json:"transactionDate"`
}

// LoanApplicationDraft is the create-loan-application request body.
type LoanApplicationDraft struct {
	UserID         string   `json:"userId"`
	LoanAmount     float64  `json:"loanAmount"`
	Purpose        string   `json:"purpose"`
	TermInMonths   int      `json:"termInMonths"`
	MonthlyPayment float64  `json:"monthlyPayment"`
	InterestRate   float64  `json:"interestRate"`
	Status         string   `json:"status"`
	Documents      []string `json:"documents"`
}

// asCredentials accepts the login body by value or pointer.
func asCredentials(body any) (Credentials, bool) {
	switch b := body.(type) {
	case Credentials:
		return b, b.Email != "" && b.Password != ""
	case *Credentials:
		if b == nil {
			return Credentials{}, false
		}
		return *b, b.Email != "" && b.Password != ""
	}
	return Credentials{}, false
}

func asTransactionDraft(body any) (TransactionDraft, bool) {
	var d TransactionDraft
	switch b := body.(type) {
	case TransactionDraft:
		d = b
	case *TransactionDraft:
		if b == nil {
			return TransactionDraft{}, false
		}
		d = *b
	default:
		return TransactionDraft{}, false
	}
	valid := d.UserID != "" && d.Type != "" && d.Description != "" &&
		d.Category != "" && d.Status != "" && !d.TransactionDate.IsZero()
	return d, valid
}

func asLoanApplicationDraft(body any) (LoanApplicationDraft, bool) {
	var d LoanApplicationDraft
	switch b := body.(type) {
	case LoanApplicationDraft:
		d = b
	case *LoanApplicationDraft:
		if b == nil {
			return LoanApplicationDraft{}, false
		}
		d = *b
	default:
		return LoanApplicationDraft{}, false
	}
	valid := d.UserID != "" && d.Purpose != "" && d.TermInMonths > 0 &&
		d.Status != "" && d.Documents != nil
	return d, valid
}
