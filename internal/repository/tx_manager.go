package repository

import "context"

// TxRepos exposes repositories bound to one open transaction.
type TxRepos interface {
	Users() UserRepository
	Items() ItemRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	AuditLogs() AuditLogRepository
}

// TransactionManager commits when fn returns nil and rolls back otherwise.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
