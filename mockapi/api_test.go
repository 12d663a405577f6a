package mockapi_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/findash/findash/finance"
	apperrors "github.com/findash/findash/internal/errors"
	"github.com/findash/findash/mockapi"
	"github.com/findash/findash/users"
)

const testSecret = "test-secret"

func setupAPI(t *testing.T) *mockapi.API {
	t.Helper()
	api, err := mockapi.New(testSecret,
		mockapi.WithDelayFunc(func() time.Duration { return 0 }),
		mockapi.WithNowTime(func() time.Time {
			return time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC)
		}),
	)
	require.NoError(t, err)
	return api
}

func query(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := mockapi.New("")
	require.Error(t, err)
}

func TestGetUnknownEndpoint(t *testing.T) {
	api := setupAPI(t)

	_, err := api.Get("/api/nonsense", nil)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Equal(t, "Endpoint no encontrado: nonsense", err.Error())
}

func TestEndpointResolutionIgnoresHostAndPrefix(t *testing.T) {
	api := setupAPI(t)

	paths := []string{
		"/api/users/1",
		"api/users/1",
		"/users/1",
		"https://api.bank.example.com/api/users/1",
		"/api/users/1?expand=none",
	}
	for _, path := range paths {
		resp, err := api.Get(path, nil)
		require.NoError(t, err, path)

		u, err := mockapi.Data[users.User](resp)
		require.NoError(t, err)
		require.Equal(t, "1", u.ID)
	}
}

func TestGetUserByIDAndEmail(t *testing.T) {
	api := setupAPI(t)

	resp, err := api.Get("/api/users", query("email", "maria.gonzalez@email.com"))
	require.NoError(t, err)
	u, err := mockapi.Data[users.User](resp)
	require.NoError(t, err)
	require.Equal(t, "2", u.ID)
	require.Equal(t, "María", u.FirstName)

	_, err = api.Get("/api/users/99", nil)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetTransactionByID(t *testing.T) {
	api := setupAPI(t)

	resp, err := api.Get("/api/transactions/3", nil)
	require.NoError(t, err)
	require.Equal(t, 200, resp.Status)
	require.Equal(t, "Operación exitosa", resp.Message)

	tx, err := mockapi.Data[finance.Transaction](resp)
	require.NoError(t, err)
	require.Equal(t, "3", tx.ID)
	require.Equal(t, float64(1200000), tx.Amount)

	_, err = api.Get("/api/transactions/999", nil)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Equal(t, "Recurso no encontrado", err.Error())
}

func TestListTransactionsByUserSortedDescending(t *testing.T) {
	api := setupAPI(t)

	resp, err := api.Get("/api/transactions", query("userId", "1"))
	require.NoError(t, err)

	txs, err := mockapi.Data[[]finance.Transaction](resp)
	require.NoError(t, err)
	require.Len(t, txs, 5)
	for _, tx := range txs {
		require.Equal(t, "1", tx.UserID)
	}
	for i := 1; i < len(txs); i++ {
		require.False(t, txs[i].TransactionDate.After(txs[i-1].TransactionDate),
			"transactions must be ordered newest first")
	}
	require.Equal(t, "5", txs[0].ID)
}

func TestListTransactionsQueryFilters(t *testing.T) {
	api := setupAPI(t)

	resp, err := api.Get("/api/transactions", query("userId", "1", "type", "PAYMENT"))
	require.NoError(t, err)
	txs, err := mockapi.Data[[]finance.Transaction](resp)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	for _, tx := range txs {
		require.Equal(t, finance.TypePayment, tx.Type)
	}

	resp, err = api.Get("/api/transactions", query("userId", "1", "category", "RENT"))
	require.NoError(t, err)
	txs, err = mockapi.Data[[]finance.Transaction](resp)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, "5", txs[0].ID)

	resp, err = api.Get("/api/transactions", query("userId", "1", "status", "PENDING"))
	require.NoError(t, err)
	txs, err = mockapi.Data[[]finance.Transaction](resp)
	require.NoError(t, err)
	require.Len(t, txs, 1)

	// Unmatched filter yields an empty list, not an error.
	resp, err = api.Get("/api/transactions", query("userId", "1", "category", "NOPE"))
	require.NoError(t, err)
	txs, err = mockapi.Data[[]finance.Transaction](resp)
	require.NoError(t, err)
	require.Empty(t, txs)
}

func TestListTransactionsLimit(t *testing.T) {
	api := setupAPI(t)

	resp, err := api.Get("/api/transactions", query("userId", "1", "limit", "2"))
	require.NoError(t, err)
	txs, err := mockapi.Data[[]finance.Transaction](resp)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	require.Equal(t, "5", txs[0].ID)
	require.Equal(t, "1", txs[1].ID)
}

func TestGetAccountBalanceByUser(t *testing.T) {
	api := setupAPI(t)

	resp, err := api.Get("/api/account-balances", query("userId", "2"))
	require.NoError(t, err)
	balance, err := mockapi.Data[finance.AccountBalance](resp)
	require.NoError(t, err)
	require.Equal(t, float64(18000000), balance.CurrentBalance)

	_, err = api.Get("/api/account-balances", query("userId", "99"))
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListLoanApplicationsByUser(t *testing.T) {
	api := setupAPI(t)

	resp, err := api.Get("/api/loan-applications", query("userId", "1"))
	require.NoError(t, err)
	apps, err := mockapi.Data[[]finance.LoanApplication](resp)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.Equal(t, finance.LoanApproved, apps[0].Status)
	require.NotNil(t, apps[0].ReviewedAt)
	require.Equal(t, "asesor-001", apps[0].ReviewedBy)
}

func TestLoginSuccess(t *testing.T) {
	api := setupAPI(t)

	resp, err := api.Post("/api/auth/login", mockapi.Credentials{
		Email:    "carlos.rodriguez@email.com",
		Password: mockapi.DemoPassword,
	})
	require.NoError(t, err)
	require.Equal(t, 201, resp.Status)

	session, err := mockapi.Data[mockapi.LoginSession](resp)
	require.NoError(t, err)
	require.Equal(t, "1", session.User.ID)
	require.True(t, session.ExpiresAt.After(session.User.UpdatedAt))

	// The demo token is a real signed JWT carrying the user identity.
	parsed, err := jwt.Parse(session.Token, func(token *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time {
		return time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, err)
	claims, valid := parsed.Claims.(jwt.MapClaims)
	require.True(t, valid)
	require.Equal(t, "1", claims["sub"])
	require.Equal(t, "carlos.rodriguez@email.com", claims["email"])
}

func TestLoginDistinguishesUnknownUserFromBadPassword(t *testing.T) {
	api := setupAPI(t)

	_, err := api.Post("/api/auth/login", mockapi.Credentials{
		Email:    "ghost@email.com",
		Password: mockapi.DemoPassword,
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Equal(t, "Usuario no encontrado", err.Error())

	_, err = api.Post("/api/auth/login", mockapi.Credentials{
		Email:    "carlos.rodriguez@email.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, apperrors.ErrAuthentication)
	require.Equal(t, "Contraseña incorrecta", err.Error())
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	api := setupAPI(t)

	_, err := api.Post("/api/auth/login", mockapi.Credentials{Email: "carlos.rodriguez@email.com"})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = api.Post("/api/auth/login", "not a credentials body")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateTransaction(t *testing.T) {
	api := setupAPI(t)

	resp, err := api.Post("/api/transactions", mockapi.TransactionDraft{
		UserID:          "1",
		Type:            "PAYMENT",
		Amount:          800000,
		Description:     "Pago cuota hipoteca",
		Category:        "MORTGAGE",
		Status:          "COMPLETED",
		TransactionDate: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, 201, resp.Status)
	require.Equal(t, "Recurso creado exitosamente", resp.Message)

	tx, err := mockapi.Data[finance.Transaction](resp)
	require.NoError(t, err)
	require.Equal(t, "11", tx.ID, "ids keep incrementing past the seed set")
	require.False(t, tx.CreatedAt.IsZero())

	// The new record shows up first in the user's list: it has the most
	// recent transaction date.
	listResp, err := api.Get("/api/transactions", query("userId", "1"))
	require.NoError(t, err)
	txs, err := mockapi.Data[[]finance.Transaction](listResp)
	require.NoError(t, err)
	require.Len(t, txs, 6)
	require.Equal(t, "11", txs[0].ID)
}

func TestCreateTransactionRejectsIncompleteDraft(t *testing.T) {
	api := setupAPI(t)

	_, err := api.Post("/api/transactions", mockapi.TransactionDraft{
		UserID: "1",
		Type:   "PAYMENT",
		Amount: 800000,
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	require.Equal(t, "Datos de transacción inválidos", err.Error())
}

func TestCreateLoanApplication(t *testing.T) {
	api := setupAPI(t)

	resp, err := api.Post("/api/loan-applications", mockapi.LoanApplicationDraft{
		UserID:         "3",
		LoanAmount:     20000000,
		Purpose:        "Compra de motocicleta",
		TermInMonths:   36,
		MonthlyPayment: 700000,
		InterestRate:   15.0,
		Status:         "PENDING",
		Documents:      []string{"cedula.pdf"},
	})
	require.NoError(t, err)
	require.Equal(t, 201, resp.Status)

	app, err := mockapi.Data[finance.LoanApplication](resp)
	require.NoError(t, err)
	require.Equal(t, "4", app.ID)

	listResp, err := api.Get("/api/loan-applications", query("userId", "3"))
	require.NoError(t, err)
	apps, err := mockapi.Data[[]finance.LoanApplication](listResp)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	require.Equal(t, "4", apps[0].ID, "newest application listed first")
}

func TestPostUnknownEndpoint(t *testing.T) {
	api := setupAPI(t)

	_, err := api.Post("/api/widgets", mockapi.Credentials{Email: "a@b.com", Password: "x"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResetRestoresSeeds(t *testing.T) {
	api := setupAPI(t)

	_, err := api.Post("/api/transactions", mockapi.TransactionDraft{
		UserID:          "1",
		Type:            "FEE",
		Amount:          10000,
		Description:     "Cuota de manejo",
		Category:        "BANK_FEE",
		Status:          "COMPLETED",
		TransactionDate: time.Date(2024, time.February, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	api.Reset()

	resp, err := api.Get("/api/transactions", query("userId", "1"))
	require.NoError(t, err)
	txs, err := mockapi.Data[[]finance.Transaction](resp)
	require.NoError(t, err)
	require.Len(t, txs, 5)

	// Login still works after a reset: the seeded password hash survives.
	_, err = api.Post("/api/auth/login", mockapi.Credentials{
		Email:    "carlos.rodriguez@email.com",
		Password: mockapi.DemoPassword,
	})
	require.NoError(t, err)
}
