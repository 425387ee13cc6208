package knowledge

import (
	"context"

	"github.com/infopoison/alchemist-workbench/engine/core"
)

// StoreResolver resolves component references directly against the
// in-process snapshot, skipping the HTTP round trip when the knowledge base
// is co-located. It reports misses the same way the HTTP client does.
type StoreResolver struct {
	store *Store
}

func NewStoreResolver(store *Store) *StoreResolver {
	return &StoreResolver{store: store}
}

func (r *StoreResolver) GetComponent(_ context.Context, component core.Component) (core.ComponentData, error) {
	data, ok := r.store.Get(Pluralize(component.Type), component.ID)
	if !ok {
		return nil, core.NewErrorf(core.CodeComponentNotFound,
			"the requested component '%s' of type '%s' does not exist",
			component.ID, component.Type)
	}
	return data, nil
}
