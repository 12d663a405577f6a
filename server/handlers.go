package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/findash/findash/internal/errors"
	"github.com/findash/findash/mockapi"
)

type errorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Warn().Err(err).Msg("writing response failed")
	}
}

// writeError maps the error taxonomy onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindAuthentication:
		status = http.StatusUnauthorized
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	}
	s.writeJSON(w, status, errorBody{Error: err.Error(), Status: status})
}

// GetHandler forwards a GET straight to the mock backend, query included.
func (s *Server) GetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := s.api.Get(r.URL.Path, r.URL.Query())
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, resp.Status, resp)
	}
}

// LoginHandler decodes the credentials body and posts it to the login endpoint.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds mockapi.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			s.writeError(w, apperrors.Validation("Datos de login inválidos"))
			return
		}
		resp, err := s.api.Post(r.URL.Path, creds)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, resp.Status, resp)
	}
}

// CreateTransactionHandler decodes a transaction draft and creates the record.
func (s *Server) CreateTransactionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft mockapi.TransactionDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			s.writeError(w, apperrors.Validation("Datos de transacción inválidos"))
			return
		}
		resp, err := s.api.Post(r.URL.Path, draft)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, resp.Status, resp)
	}
}

// CreateLoanApplicationHandler decodes a loan application draft and creates it.
func (s *Server) CreateLoanApplicationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft mockapi.LoanApplicationDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			s.writeError(w, apperrors.Validation("Datos de solicitud de préstamo inválidos"))
			return
		}
		resp, err := s.api.Post(r.URL.Path, draft)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, resp.Status, resp)
	}
}
