package server

const (
	routeLogin               = "POST /api/auth/login"
	routeListTransactions    = "GET /api/transactions"
	routeGetTransaction      = "GET /api/transactions/{id}"
	routeCreateTransaction   = "POST /api/transactions"
	routeListLoanApps        = "GET /api/loan-applications"
	routeCreateLoanApp       = "POST /api/loan-applications"
	routeListAccountBalances = "GET /api/account-balances"
	routeListUsers           = "GET /api/users"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc(routeLogin, s.LoginHandler())
	s.RegisterRouteFunc(routeListTransactions, s.GetHandler())
	s.RegisterRouteFunc(routeGetTransaction, s.GetHandler())
	s.RegisterRouteFunc(routeCreateTransaction, s.CreateTransactionHandler())
	s.RegisterRouteFunc(routeListLoanApps, s.GetHandler())
	s.RegisterRouteFunc(routeCreateLoanApp, s.CreateLoanApplicationHandler())
	s.RegisterRouteFunc(routeListAccountBalances, s.GetHandler())
	s.RegisterRouteFunc(routeListUsers, s.GetHandler())
}
