package postgres

import (
	"context"
	"fmt"
)

type OwnerRepository struct {
	uow *UnitOfWork
}

func (r *OwnerRepository) Exists(ctx context.Context, ownerID int64) (bool, error) {
	var exists bool
	err := r.uow.q().QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM owners WHERE id = $1)", ownerID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check owner %d existence: %w", ownerID, err)
	}
	return exists, nil
}
