package repository

import (
	"context"

	"github.com/rjnotas/notas-api/internal/domain/entity"
	"github.com/rjnotas/notas-api/internal/domain/repository"
	"github.com/rjnotas/notas-api/internal/infrastructure/storage"
)

type settingsRepository struct {
	store storage.Store
}

// NewSettingsRepository creates a settings repository over the key-value store
func NewSettingsRepository(store storage.Store) repository.SettingsRepository {
	return &settingsRepository{store: store}
}

func (r *settingsRepository) CompanyName(ctx context.Context) string {
	name := entity.DefaultCompanyName
	r.store.Load(ctx, storage.KeyCompanyName, &name)
	if name == "" {
		return entity.DefaultCompanyName
	}
	return name
}

func (r *settingsRepository) SetCompanyName(ctx context.Context, name string) error {
	return r.store.Save(ctx, storage.KeyCompanyName, name)
}

func (r *settingsRepository) Logo(ctx context.Context) string {
	var logo string
	r.store.Load(ctx, storage.KeyLogo, &logo)
	return logo
}

func (r *settingsRepository) SetLogo(ctx context.Context, dataURL string) error {
	return r.store.Save(ctx, storage.KeyLogo, dataURL)
}

func (r *settingsRepository) ClearLogo(ctx context.Context) error {
	return r.store.Delete(ctx, storage.KeyLogo)
}
