package mockapi

import (
	"time"

	"github.com/findash/findash/internal/finmodel"
	"github.com/findash/findash/users"
)

// DemoPassword is the fixed password accepted for every seed user.
const DemoPassword = "password123"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedUsers() []users.User {
	return []users.User{
		{
			ID:          "1",
			Email:       "carlos.rodriguez@email.com",
			FirstName:   "Carlos",
			LastName:    "Rodríguez",
			DateOfBirth: date(1990, time.May, 15),
			PhoneNumber: "+57-300-123-4567",
			Address: users.Address{
				Street:  "Calle 123 # 45-67",
				City:    "Bogotá",
				State:   "Cundinamarca",
				ZipCode: "110111",
				Country: "Colombia",
			},
			EmploymentInfo: users.EmploymentInfo{
				Employer:            "Bancolombia S.A.",
				Position:            "Ingeniero de Software Senior",
				MonthlyIncome:       8500000,
				EmploymentStartDate: date(2020, time.March, 1),
			},
			CreditScore:    750,
			AccountBalance: 25000000,
			IsActive:       true,
			CreatedAt:      date(2020, time.January, 15),
			UpdatedAt:      date(2024, time.January, 15),
		},
		{
			ID:          "2",
			Email:       "maria.gonzalez@email.com",
			FirstName:   "María",
			LastName:    "González",
			DateOfBirth: date(1985, time.August, 22),
			PhoneNumber: "+57-310-987-6543",
			Address: users.Address{
				Street:  "Carrera 78 # 90-12",
				City:    "Medellín",
				State:   "Antioquia",
				ZipCode: "050001",
				Country: "Colombia",
			},
			EmploymentInfo: users.EmploymentInfo{
				Employer:            "Grupo Sura",
				Position:            "Analista Financiera",
				MonthlyIncome:       7200000,
				EmploymentStartDate: date(2019, time.July, 15),
			},
			CreditScore:    780,
			AccountBalance: 18000000,
			IsActive:       true,
			CreatedAt:      date(2019, time.June, 10),
			UpdatedAt:      date(2024, time.January, 10),
		},
		{
			ID:          "3",
			Email:       "juan.perez@email.com",
			FirstName:   "Juan",
			LastName:    "Pérez",
			DateOfBirth: date(1988, time.December, 3),
			PhoneNumber: "+57-315-456-7890",
			Address: users.Address{
				Street:  "Avenida 4 Norte # 6-78",
				City:    "Cali",
				State:   "Valle del Cauca",
				ZipCode: "760001",
				Country: "Colombia",
			},
			EmploymentInfo: users.EmploymentInfo{
				Employer:            "Carvajal S.A.",
				Position:            "Contador Público",
				MonthlyIncome:       6500000,
				EmploymentStartDate: date(2021, time.January, 10),
			},
			CreditScore:    720,
			AccountBalance: 12000000,
			IsActive:       true,
			CreatedAt:      date(2021, time.January, 10),
			UpdatedAt:      date(2024, time.January, 12),
		},
	}
}

func seedTransactions() []finmodel.Transaction {
	return []finmodel.Transaction{
		{
			ID: "1", UserID: "1", Type: finmodel.TypeDeposit, Amount: 8500000,
			Description: "Depósito de nómina - Bancolombia", Category: "SALARY",
			Status:          finmodel.StatusCompleted,
			TransactionDate: date(2024, time.January, 15),
			CreatedAt:       date(2024, time.January, 15), UpdatedAt: date(2024, time.January, 15),
		},
		{
			ID: "2", UserID: "1", Type: finmodel.TypeWithdrawal, Amount: 500000,
			Description: "Retiro en cajero Bancolombia - Centro Comercial Andino", Category: "CASH_WITHDRAWAL",
			Status:          finmodel.StatusCompleted,
			TransactionDate: date(2024, time.January, 14),
			CreatedAt:       date(2024, time.January, 14), UpdatedAt: date(2024, time.January, 14),
		},
		{
			ID: "3", UserID: "1", Type: finmodel.TypePayment, Amount: 1200000,
			Description: "Pago tarjeta de crédito Bancolombia", Category: "CREDIT_CARD_PAYMENT",
			Status:          finmodel.StatusCompleted,
			TransactionDate: date(2024, time.January, 13),
			CreatedAt:       date(2024, time.January, 13), UpdatedAt: date(2024, time.January, 13),
		},
		{
			ID: "4", UserID: "1", Type: finmodel.TypeTransfer, Amount: 3000000,
			Description: "Transferencia a cuenta de ahorros", Category: "SAVINGS_TRANSFER",
			Status:          finmodel.StatusCompleted,
			TransactionDate: date(2024, time.January, 12),
			CreatedAt:       date(2024, time.January, 12), UpdatedAt: date(2024, time.January, 12),
		},
		{
			ID: "5", UserID: "1", Type: finmodel.TypePayment, Amount: 2500000,
			Description: "Pago arriendo - Apartamento Chapinero", Category: "RENT",
			Status:          finmodel.StatusPending,
			TransactionDate: date(2024, time.January, 16),
			CreatedAt:       date(2024, time.January, 16), UpdatedAt: date(2024, time.January, 16),
		},
		{
			ID: "6", UserID: "2", Type: finmodel.TypeDeposit, Amount: 7200000,
			Description: "Depósito de nómina - Grupo Sura", Category: "SALARY",
			Status:          finmodel.StatusCompleted,
			TransactionDate: date(2024, time.January, 15),
			CreatedAt:       date(2024, time.January, 15), UpdatedAt: date(2024, time.January, 15),
		},
		{
			ID: "7", UserID: "2", Type: finmodel.TypePayment, Amount: 3500000,
			Description: "Pago hipoteca - Banco de Bogotá", Category: "MORTGAGE",
			Status:          finmodel.StatusCompleted,
			TransactionDate: date(2024, time.January, 14),
			CreatedAt:       date(2024, time.January, 14), UpdatedAt: date(2024, time.January, 14),
		},
		{
			ID: "8", UserID: "2", Type: finmodel.TypePayment, Amount: 450000,
			Description: "Pago servicios públicos - EPM", Category: "UTILITIES",
			Status:          finmodel.StatusCompleted,
			TransactionDate: date(2024, time.January, 13),
			CreatedAt:       date(2024, time.January, 13), UpdatedAt: date(2024, time.January, 13),
		},
		{
			ID: "9", UserID: "3", Type: finmodel.TypeDeposit, Amount: 6500000,
			Description: "Depósito de nómina - Carvajal S.A.", Category: "SALARY",
			Status:          finmodel.StatusCompleted,
			TransactionDate: date(2024, time.January, 15),
			CreatedAt:       date(2024, time.January, 15), UpdatedAt: date(2024, time.January, 15),
		},
		{
			ID: "10", UserID: "3", Type: finmodel.TypePayment, Amount: 800000,
			Description: "Pago préstamo de estudio - ICETEX", Category: "EDUCATION_LOAN",
			Status:          finmodel.StatusCompleted,
			TransactionDate: date(2024, time.January, 14),
			CreatedAt:       date(2024, time.January, 14), UpdatedAt: date(2024, time.January, 14),
		},
	}
}

func seedAccountBalances() []finmodel.AccountBalance {
	return []finmodel.AccountBalance{
		{
			UserID:         "1",
			CurrentBalance: 25000000, AvailableBalance: 24800000, PendingTransactions: 200000,
			LastUpdated: time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			UserID:         "2",
			CurrentBalance: 18000000, AvailableBalance: 17950000, PendingTransactions: 50000,
			LastUpdated: time.Date(2024, time.January, 15, 9, 15, 0, 0, time.UTC),
		},
		{
			UserID:         "3",
			CurrentBalance: 12000000, AvailableBalance: 11980000, PendingTransactions: 200000,
			LastUpdated: time.Date(2024, time.January, 15, 11, 45, 0, 0, time.UTC),
		},
	}
}

func seedLoanApplications() []finmodel.LoanApplication {
	reviewed := date(2024, time.January, 12)
	return []finmodel.LoanApplication{
		{
			ID: "1", UserID: "1", LoanAmount: 50000000,
			Purpose:      "Renovación de apartamento en Chapinero",
			TermInMonths: 36, MonthlyPayment: 1800000, InterestRate: 18.5,
			Status:    finmodel.LoanApproved,
			Documents: []string{"cedula.pdf", "certificado_laboral.pdf", "declaracion_renta.pdf"},
			CreatedAt: date(2024, time.January, 10), UpdatedAt: date(2024, time.January, 12),
			ReviewedAt: &reviewed, ReviewedBy: "asesor-001",
		},
		{
			ID: "2", UserID: "2", LoanAmount: 35000000,
			Purpose:      "Compra de automóvil - Toyota Corolla",
			TermInMonths: 60, MonthlyPayment: 1200000, InterestRate: 16.8,
			Status:    finmodel.LoanUnderReview,
			Documents: []string{"cedula.pdf", "certificado_laboral.pdf", "cotizacion_vehiculo.pdf"},
			CreatedAt: date(2024, time.January, 14), UpdatedAt: date(2024, time.January, 14),
		},
		{
			ID: "3", UserID: "3", LoanAmount: 15000000,
			Purpose:      "Maestría en Administración - Universidad de los Andes",
			TermInMonths: 24, MonthlyPayment: 750000, InterestRate: 12.5,
			Status:    finmodel.LoanDraft,
			Documents: []string{"cedula.pdf", "certificado_laboral.pdf"},
			CreatedAt: date(2024, time.January, 16), UpdatedAt: date(2024, time.January, 16),
		},
	}
}
