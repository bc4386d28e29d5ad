// Package session recupera una identidad verificada a partir del estado de
// sesión a nivel de transporte (la cookie con el par de tokens). La cadena de
// fallbacks existe para tolerar el desfase entre el sign-in del cliente y la
// primera carga servida: el contexto del request puede traer un access token
// todavía no instalado, ya vencido, o solo el refresh token.
package session

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
	"github.com/jhoicas/vacaciones-api/pkg/logger"
	"github.com/jhoicas/vacaciones-api/pkg/token"
)

// CredentialStore es el contrato mínimo que la cadena necesita del almacén
// de credenciales.
type CredentialStore interface {
	VerifyAccess(tokenString string) (*entity.Identity, error)
	Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, *entity.Identity, error)
	IdentityFromRefresh(ctx context.Context, refreshToken string) (*entity.Identity, error)
}

// State es el estado de sesión explícito de UN request. Sustituye cualquier
// estado ambiente compartido: cada request construye el suyo desde la cookie
// y lo descarta al terminar.
type State struct {
	pair *entity.TokenPair

	// Rotated queda poblado cuando la cadena refrescó el par; el middleware
	// lo reescribe en la cookie como best-effort.
	Rotated *entity.TokenPair
}

// NewState interpreta el payload crudo de la cookie. Un JSON malformado o
// ausente equivale a "sin cookie": nunca es fatal.
func NewState(rawCookie string) *State {
	st := &State{}
	if rawCookie == "" {
		return st
	}
	var pair entity.TokenPair
	if err := json.Unmarshal([]byte(rawCookie), &pair); err != nil {
		return st
	}
	if pair.AccessToken == "" && pair.RefreshToken == "" {
		return st
	}
	st.pair = &pair
	return st
}

// Pair devuelve el par transportado por la cookie, o nil.
func (s *State) Pair() *entity.TokenPair {
	return s.pair
}

// Strategy es un eslabón de la cadena: devuelve una identidad o nil.
type Strategy struct {
	Name string
	Fn   func(ctx context.Context, st *State) *entity.Identity
}

// Resolver compone las estrategias en orden y se detiene en el primer éxito.
type Resolver struct {
	strategies []Strategy
	log        *logger.Logger
}

// NewResolver arma la cadena estándar:
//  1. instalar el par de la cookie (validar el access token);
//  2. refrescar la sesión con el refresh token (rota el par);
//  3. identidad verificada desde el estado de sesión ambiente;
//  4. lectura de la sesión previa sin re-verificación.
func NewResolver(store CredentialStore, log *logger.Logger) *Resolver {
	return &Resolver{
		log: log,
		strategies: []Strategy{
			{Name: "cookie", Fn: func(_ context.Context, st *State) *entity.Identity {
				if st.pair == nil || st.pair.AccessToken == "" {
					return nil
				}
				ident, err := store.VerifyAccess(st.pair.AccessToken)
				if err != nil {
					return nil
				}
				return ident
			}},
			{Name: "refresh", Fn: func(ctx context.Context, st *State) *entity.Identity {
				if st.pair == nil || st.pair.RefreshToken == "" {
					return nil
				}
				pair, ident, err := store.Refresh(ctx, st.pair.RefreshToken)
				if err != nil {
					return nil
				}
				st.Rotated = pair
				return ident
			}},
			{Name: "ambient", Fn: func(ctx context.Context, st *State) *entity.Identity {
				if st.pair == nil || st.pair.RefreshToken == "" {
					return nil
				}
				ident, err := store.IdentityFromRefresh(ctx, st.pair.RefreshToken)
				if err != nil {
					return nil
				}
				return ident
			}},
			{Name: "stale", Fn: func(_ context.Context, st *State) *entity.Identity {
				// Sesión previamente establecida, sin re-verificar. Solo
				// sirve para identificar al usuario en vistas; las
				// mutaciones re-derivan identidad por su cuenta.
				if st.pair == nil || st.pair.AccessToken == "" {
					return nil
				}
				claims, err := token.ParseUnverified(st.pair.AccessToken)
				if err != nil || claims.UserID == "" {
					return nil
				}
				return &entity.Identity{ID: claims.UserID, Email: claims.Email, Role: claims.Role}
			}},
		},
	}
}

// Resolve recorre la cadena y devuelve la primera identidad, o nil si ningún
// eslabón resuelve. Nunca devuelve error: todo fallo intermedio se absorbe.
func (r *Resolver) Resolve(ctx context.Context, st *State) *entity.Identity {
	for _, s := range r.strategies {
		if ident := s.Fn(ctx, st); ident != nil {
			r.log.Debug().Str("strategy", s.Name).Str("user_id", ident.ID).Msg("sesión resuelta")
			return ident
		}
	}
	return nil
}
