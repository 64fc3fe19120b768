package profiles

import "context"

// Repository: GetByUserID devuelve ErrNotFound si el usuario aún no tiene perfil.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	Upsert(ctx context.Context, p Profile) error
}
