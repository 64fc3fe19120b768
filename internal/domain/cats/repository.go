package cats

import "context"

// Repository: GetByID/Update/Delete devuelven ErrNotFound si no existe.
type Repository interface {
	Create(ctx context.Context, c Cat) error
	Update(ctx context.Context, c Cat) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Cat, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Cat, error)
}
