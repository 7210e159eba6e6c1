package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated caller resolved by the session middleware.
// ProfileID is the tutor or tutee profile row matching Role; services receive
// it explicitly instead of looking the current user up themselves.
type Principal struct {
	UserID    uuid.UUID
	Role      string
	ProfileID uuid.UUID
}

func (p Principal) IsTutor() bool {
	return p.Role == "Tutor"
}

func (p Principal) IsTutee() bool {
	return p.Role == "Tutee"
}

func SetPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func GetPrincipal(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
