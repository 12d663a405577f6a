package auth

import apperrors "github.com/findash/findash/internal/errors"

var (
	ErrShortPassword     = apperrors.Validation("La contraseña debe tener al menos 6 caracteres")
	ErrNoSessionToExtend = apperrors.NoActiveSession("No hay sesión activa para extender")
)
