package entity

import "time"

// Credential es la credencial de login (email + hash bcrypt), separada del
// perfil: el perfil lleva el rol, la credencial solo autentica.
type Credential struct {
	UserID       string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// AuthSession es una sesión de refresh persistida. El refresh token es opaco
// y de un solo uso: cada refresh rota la fila.
type AuthSession struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired indica si la sesión ya venció.
func (s *AuthSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// TokenPair es el par que viaja en la cookie de sesión como JSON.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
