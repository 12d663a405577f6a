// Package users holds the customer profile model shared by the session layer
// and the simulated backend.
package users

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Address is the customer's registered home address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// EmploymentInfo captures the employment data used by the loan eligibility checks.
type EmploymentInfo struct {
	Employer            string    `json:"employer"`
	Position            string    `json:"position"`
	MonthlyIncome       float64   `json:"monthlyIncome"`
	EmploymentStartDate time.Time `json:"employmentStartDate"`
}

// User is a dashboard customer. Monetary amounts are in COP.
type User struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	DateOfBirth    time.Time      `json:"dateOfBirth"`
	PhoneNumber    string         `json:"phoneNumber"`
	Address        Address        `json:"address"`
	EmploymentInfo EmploymentInfo `json:"employmentInfo"`
	CreditScore    int            `json:"creditScore"`
	AccountBalance float64        `json:"accountBalance"`
	IsActive       bool           `json:"isActive"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`

	PasswordHash string `json:"-"` // never serialized
}

// FullName returns the customer's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
