package port

import "context"

type OwnerRepositoryPort interface {
	Exists(ctx context.Context, ownerID int64) (bool, error)
}
