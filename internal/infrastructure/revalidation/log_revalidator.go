// Package revalidation publica los tags de invalidación de caché del storefront y el panel.
package revalidation

import (
	"context"

	"github.com/jhoicas/streetwear-admin-api/internal/application/ports"
	"github.com/jhoicas/streetwear-admin-api/pkg/logger"
)

var _ ports.Revalidator = (*LogRevalidator)(nil)

// LogRevalidator solo registra los tags; se usa cuando no hay broker configurado.
type LogRevalidator struct {
	log *logger.Logger
}

// NewLogRevalidator construye el revalidador de solo log.
func NewLogRevalidator(log *logger.Logger) *LogRevalidator {
	return &LogRevalidator{log: log.Named("revalidation")}
}

func (r *LogRevalidator) Revalidate(_ context.Context, tags ...string) error {
	r.log.Debug().Strs("tags", tags).Msg("revalidar tags")
	return nil
}
