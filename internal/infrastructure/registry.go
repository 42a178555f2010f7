package infrastructure

import (
	"context"
	"fmt"

	"github.com/JaimeStill/promptiverse/pkg/schema"
	"github.com/JaimeStill/promptiverse/pkg/storage"
	"github.com/JaimeStill/promptiverse/schemas"
)

// LoadRegistry compiles the style schema selected by cfg: a file on disk,
// a blob in store, or the embedded default.
func LoadRegistry(ctx context.Context, cfg *schema.Config, store storage.System) (*schema.Registry, error) {
	switch cfg.Source() {
	case "file":
		return schema.LoadFile(cfg.Path)
	case "blob":
		if store == nil {
			return nil, fmt.Errorf("%w: blob %s: %w", schema.ErrLoad, cfg.BlobKey, storage.ErrDisabled)
		}

		body, err := store.Download(ctx, cfg.BlobKey)
		if err != nil {
			return nil, fmt.Errorf("%w: download %s: %w", schema.ErrLoad, cfg.BlobKey, err)
		}
		defer body.Close()

		return schema.Load(body, cfg.BlobKey)
	default:
		return schema.LoadFS(schemas.FS(), cfg.Name)
	}
}
