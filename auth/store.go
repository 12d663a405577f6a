package auth

import "context"

// Store is the durable slot holding at most one serialized session.
// Load returns (nil, nil) when the slot is empty.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, payload []byte) error
	Clear(ctx context.Context) error
}
