// Package mockapi simulates a REST-like banking backend over in-memory
// fixtures so the rest of the system can be written against a normal
// request/response contract. Each call incurs an injected latency before
// resolving; validation failures are reported before any latency so callers
// get immediate feedback on malformed input.
package mockapi

import (
	"math/rand"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	apperrors "github.com/findash/findash/internal/errors"
	"github.com/findash/findash/internal/finmodel"
	"github.com/findash/findash/users"
)

const (
	defaultListLimit = 10
	loginSessionTTL  = 24 * time.Hour
)

// DelayFunc produces the simulated network latency for a single call.
type DelayFunc func() time.Duration

// LoginSession is the envelope payload returned by the login endpoint.
type LoginSession struct {
	User      users.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

type dataset struct {
	users            []users.User
	transactions     []finmodel.Transaction
	accountBalances  []finmodel.AccountBalance
	loanApplications []finmodel.LoanApplication
}

// API routes method+path pairs to fixture sets. Fixture slices are append-only
// during the process lifetime except for an explicit Reset.
type API struct {
	secret  []byte
	delay   DelayFunc
	nowTime func() time.Time
	log     zerolog.Logger

	mu   sync.RWMutex
	data dataset
}

// Option configures the API.
type Option func(*API)

// WithDelayFunc replaces the randomized latency. Tests set it to zero.
func WithDelayFunc(fn DelayFunc) Option {
	return func(a *API) { a.delay = fn }
}

// WithLatencyBounds sets a uniform random latency in [min, max].
func WithLatencyBounds(min, max time.Duration) Option {
	return func(a *API) {
		a.delay = func() time.Duration {
			if max <= min {
				return min
			}
			return min + time.Duration(rand.Int63n(int64(max-min)))
		}
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(a *API) { a.nowTime = nowFunc }
}

// WithLogger sets the API logger.
func WithLogger(log zerolog.Logger) Option {
	return func(a *API) { a.log = log }
}

// New builds an API seeded with the demo fixtures. tokenSecret signs the demo
// session tokens handed out by the login endpoint.
func New(tokenSecret string, options ...Option) (*API, error) {
	if tokenSecret == "" {
		return nil, errors.New("[mockapi.New] token secret is required")
	}

	hash, err := users.HashPassword(DemoPassword)
	if err != nil {
		return nil, errors.Wrap(err, "[mockapi.New] hashing demo password")
	}

	a := &API{
		secret:  []byte(tokenSecret),
		nowTime: time.Now,
		log:     zerolog.Nop(),
	}
	WithLatencyBounds(200*time.Millisecond, 1200*time.Millisecond)(a)

	for _, opt := range options {
		opt(a)
	}

	a.data = freshDataset(hash)
	return a, nil
}

func freshDataset(passwordHash string) dataset {
	us := seedUsers()
	for i := range us {
		us[i].PasswordHash = passwordHash
	}
	return dataset{
		users:            us,
		transactions:     seedTransactions(),
		accountBalances:  seedAccountBalances(),
		loanApplications: seedLoanApplications(),
	}
}

// Reset restores all entity sets to their original seed fixtures, discarding
// records appended by POST handlers.
func (a *API) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	var hash string
	if len(a.data.users) > 0 {
		hash = a.data.users[0].PasswordHash
	}
	a.data = freshDataset(hash)
}

func (a *API) sleep() {
	if d := a.delay(); d > 0 {
		time.Sleep(d)
	}
}

// resolveEndpoint strips scheme, host, surrounding slashes and the api prefix,
// returning the endpoint name and an optional trailing record id.
func resolveEndpoint(rawPath string) (endpoint, id string) {
	p := rawPath
	if i := strings.Index(p, "://"); i >= 0 {
		p = p[i+3:]
		if j := strings.Index(p, "/"); j >= 0 {
			p = p[j:]
		} else {
			p = ""
		}
	}
	if i := strings.Index(p, "?"); i >= 0 {
		p = p[:i]
	}
	p = strings.Trim(p, "/")
	p = strings.TrimPrefix(p, "api/")

	parts := strings.Split(p, "/")
	if parts[0] == "auth" && len(parts) > 1 {
		return parts[0] + "/" + parts[1], ""
	}
	if len(parts) > 1 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

// Get resolves an endpoint from path, applies the optional query filters and
// returns the matching record or record set. Unknown endpoints and singular
// lookup misses fail with a not-found error after the simulated latency.
func (a *API) Get(path string, query url.Values) (*Response, error) {
	endpoint, id := resolveEndpoint(path)

	a.sleep()

	a.mu.RLock()
	defer a.mu.RUnlock()

	switch endpoint {
	case "users":
		return a.getUsers(id, query)
	case "transactions":
		return a.getTransactions(id, query)
	case "account-balances":
		return a.getAccountBalances(query)
	case "loan-applications":
		return a.getLoanApplications(query)
	default:
		return nil, apperrors.NotFound("Endpoint no encontrado: " + endpoint)
	}
}

func (a *API) getUsers(id string, query url.Values) (*Response, error) {
	if id == "" {
		id = query.Get("id")
	}
	if id != "" {
		for _, u := range a.data.users {
			if u.ID == id {
				return ok(u), nil
			}
		}
		return nil, apperrors.NotFound("Recurso no encontrado")
	}
	if email := query.Get("email"); email != "" {
		for _, u := range a.data.users {
			if u.Email == email {
				return ok(u), nil
			}
		}
		return nil, apperrors.NotFound("Recurso no encontrado")
	}
	return ok(append([]users.User(nil), a.data.users...)), nil
}

func (a *API) getTransactions(id string, query url.Values) (*Response, error) {
	if id != "" {
		for _, t := range a.data.transactions {
			if t.ID == id {
				return ok(t), nil
			}
		}
		return nil, apperrors.NotFound("Recurso no encontrado")
	}

	if userID := query.Get("userId"); userID != "" {
		limit := defaultListLimit
		if raw := query.Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}

		matched := make([]finmodel.Transaction, 0, len(a.data.transactions))
		for _, t := range a.data.transactions {
			if t.UserID != userID {
				continue
			}
			if v := query.Get("type"); v != "" && string(t.Type) != v {
				continue
			}
			if v := query.Get("category"); v != "" && t.Category != v {
				continue
			}
			if v := query.Get("status"); v != "" && string(t.Status) != v {
				continue
			}
			matched = append(matched, t)
		}
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].TransactionDate.After(matched[j].TransactionDate)
		})
		if len(matched) > limit {
			matched = matched[:limit]
		}
		return ok(matched), nil
	}

	return ok(append([]finmodel.Transaction(nil), a.data.transactions...)), nil
}

func (a *API) getAccountBalances(query url.Values) (*Response, error) {
	if userID := query.Get("userId"); userID != "" {
		for _, b := range a.data.accountBalances {
			if b.UserID == userID {
				return ok(b), nil
			}
		}
		return nil, apperrors.NotFound("Recurso no encontrado")
	}
	return ok(append([]finmodel.AccountBalance(nil), a.data.accountBalances...)), nil
}

func (a *API) getLoanApplications(query url.Values) (*Response, error) {
	if userID := query.Get("userId"); userID != "" {
		matched := make([]finmodel.LoanApplication, 0, len(a.data.loanApplications))
		for _, la := range a.data.loanApplications {
			if la.UserID == userID {
				matched = append(matched, la)
			}
		}
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
		return ok(matched), nil
	}
	return ok(append([]finmodel.LoanApplication(nil), a.data.loanApplications...)), nil
}

// Post validates body shape against the target entity's required-field
// contract and appends a new record. Shape mismatches fail before the
// simulated latency; everything else resolves after it.
func (a *API) Post(path string, body any) (*Response, error) {
	endpoint, _ := resolveEndpoint(path)

	switch endpoint {
	case "auth/login":
		creds, valid := asCredentials(body)
		if !valid {
			return nil, apperrors.Validation("Datos de login inválidos")
		}
		return a.login(creds)

	case "transactions":
		draft, valid := asTransactionDraft(body)
		if !valid {
			return nil, apperrors.Validation("Datos de transacción inválidos")
		}
		return a.createTransaction(draft)

	case "loan-applications":
		draft, valid := asLoanApplicationDraft(body)
		if !valid {
			return nil, apperrors.Validation("Datos de solicitud de préstamo inválidos")
		}
		return a.createLoanApplication(draft)

	default:
		a.sleep()
		return nil, apperrors.NotFound("Endpoint no encontrado: " + endpoint)
	}
}

func (a *API) login(creds Credentials) (*Response, error) {
	a.sleep()

	a.mu.RLock()
	defer a.mu.RUnlock()

	var user *users.User
	for i := range a.data.users {
		if a.data.users[i].Email == creds.Email {
			user = &a.data.users[i]
			break
		}
	}
	if user == nil {
		return nil, apperrors.NotFound("Usuario no encontrado")
	}
	if !users.CheckPasswordHash(creds.Password, user.PasswordHash) {
		return nil, apperrors.Authentication("Contraseña incorrecta")
	}

	now := a.nowTime()
	expiresAt := now.Add(loginSessionTTL)
	token, err := a.issueToken(*user, now, expiresAt)
	if err != nil {
		return nil, errors.Wrap(err, "[API.login] issueToken")
	}

	a.log.Debug().Str("email", creds.Email).Msg("mock login succeeded")
	return created(LoginSession{User: *user, Token: token, ExpiresAt: expiresAt}), nil
}

func (a *API) createTransaction(draft TransactionDraft) (*Response, error) {
	a.sleep()

	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.nowTime()
	record := finmodel.Transaction{
		ID:              strconv.Itoa(len(a.data.transactions) + 1),
		UserID:          draft.UserID,
		Type:            finmodel.TransactionType(draft.Type),
		Amount:          draft.Amount,
		Description:     draft.Description,
		Category:        draft.Category,
		Status:          finmodel.TransactionStatus(draft.Status),
		TransactionDate: draft.TransactionDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	a.data.transactions = append(a.data.transactions, record)
	return created(record), nil
}

func (a *API) createLoanApplication(draft LoanApplicationDraft) (*Response, error) {
	a.sleep()

	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.nowTime()
	record := finmodel.LoanApplication{
		ID:             strconv.Itoa(len(a.data.loanApplications) + 1),
		UserID:         draft.UserID,
		LoanAmount:     draft.LoanAmount,
		Purpose:        draft.Purpose,
		TermInMonths:   draft.TermInMonths,
		MonthlyPayment: draft.MonthlyPayment,
		InterestRate:   draft.InterestRate,
		Status:         finmodel.LoanStatus(draft.Status),
		Documents:      append([]string(nil), draft.Documents...),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	a.data.loanApplications = append(a.data.loanApplications, record)
	return created(record), nil
}

// issueToken mints a signed demo JWT for the authenticated user.
func (a *API) issueToken(u users.User, now, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
		"jti":   uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", errors.Wrap(err, "[API.issueToken] SignedString")
	}
	return signed, nil
}
