package cats

import "context"

// OwnerOf expone el ownerUserID de un gato (orders lo usa sin cargar el perfil completo).
func (s *Service) OwnerOf(ctx context.Context, catID string) (string, error) {
	c, err := s.GetByID(ctx, catID)
	if err != nil {
		return "", err
	}
	return c.OwnerUserID, nil
}

// GetOwned devuelve el gato solo si pertenece a userID.
func (s *Service) GetOwned(ctx context.Context, catID, userID string) (Cat, error) {
	c, err := s.GetByID(ctx, catID)
	if err != nil {
		return Cat{}, err
	}
	if c.OwnerUserID != userID {
		return Cat{}, ErrForbidden
	}
	return c, nil
}
