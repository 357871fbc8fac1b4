package port

import "context"

// TxHandle - непрозрачный дескриптор открытой транзакции. Commit и
// Rollback принимают его обратно и сверяют с текущей транзакцией.
type TxHandle interface{}

// UnitOfWorkPort оборачивает одну реляционную транзакцию на один use case.
// Репозитории, полученные из экземпляра, неявно разделяют его
// транзакционную область: пока транзакция открыта, все записи идут
// через нее и становятся долговечными только после Commit.
//
// Begin возвращает domain.ErrTxAlreadyOpen при повторном открытии,
// Commit - domain.ErrTxMismatch при чужом дескрипторе, Rollback
// идемпотентен (no-op, если дескриптор не совпал или транзакции нет).
type UnitOfWorkPort interface {
	Owners() OwnerRepositoryPort
	Properties() PropertyRepositoryPort

	Begin(ctx context.Context) (TxHandle, error)
	Commit(ctx context.Context, tx TxHandle) error
	Rollback(ctx context.Context, tx TxHandle) error
}

// UnitOfWorkFactoryPort выдает свежий UnitOfWork на каждую операцию:
// экземпляр живет не дольше одного запроса.
type UnitOfWorkFactoryPort interface {
	New() UnitOfWorkPort
}
