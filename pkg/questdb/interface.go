package questdb

import "context"

//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock

// QuestDBClient defines the interface for QuestDB operations.
type QuestDBClient interface {
	// Exec runs a statement that returns no rows, such as an INSERT.
	Exec(ctx context.Context, sql string, args ...any) error

	// Connection management
	Ping(ctx context.Context) error
	Close()
}
