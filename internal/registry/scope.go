package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
	"github.com/Gaurav-Gosain/floatdesk/internal/observe"
)

// ErrNoStore is returned by the scoped accessors when no live Store is bound
// to the context.
var ErrNoStore = errors.New("no window store in scope: wrap the caller with registry.WithStore")

type storeKey struct{}

// WithStore binds s to ctx for the scoped accessors.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext returns the store bound to ctx.
func FromContext(ctx context.Context) (*Store, error) {
	return storeFrom(ctx, "FromContext")
}

func storeFrom(ctx context.Context, accessor string) (*Store, error) {
	s, _ := ctx.Value(storeKey{}).(*Store)
	if s == nil {
		return nil, fmt.Errorf("registry.%s: %w", accessor, ErrNoStore)
	}
	if s.Unmounted() {
		return nil, fmt.Errorf("registry.%s: store unmounted: %w", accessor, ErrNoStore)
	}
	return s, nil
}

// Windows returns the window list slice of the scoped store.
func Windows(ctx context.Context) (observe.Readable[*List], error) {
	s, err := storeFrom(ctx, "Windows")
	if err != nil {
		return nil, err
	}
	return s.WindowsSlice(), nil
}

// Actions returns the dispatch handle of the scoped store.
func Actions(ctx context.Context) (Dispatch, error) {
	s, err := storeFrom(ctx, "Actions")
	if err != nil {
		return nil, err
	}
	return s.DispatchSlice().Get(), nil
}

// SnapPreview returns the snap preview slice of the scoped store.
func SnapPreview(ctx context.Context) (observe.Readable[geom.SnapSide], error) {
	s, err := storeFrom(ctx, "SnapPreview")
	if err != nil {
		return nil, err
	}
	return s.PreviewSlice(), nil
}
