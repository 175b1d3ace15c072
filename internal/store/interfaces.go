package store

import (
	"context"

	"github.com/yangwenmai/minutes/internal/model"
)

// ExportArchiver records summary exports and lists them back, newest first.
type ExportArchiver interface {
	SaveExport(ctx context.Context, e model.Export) error
	ListExports(ctx context.Context) ([]model.Export, error)
}
