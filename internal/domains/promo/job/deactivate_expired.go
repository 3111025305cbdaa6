package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"alupro-backend/internal/domains/promo/service"
)

// DeactivateExpiredHandler handles promo:deactivate_expired
type DeactivateExpiredHandler struct {
	service service.ServiceInterface
}

func NewDeactivateExpiredHandler(promoService service.ServiceInterface) *DeactivateExpiredHandler {
	return &DeactivateExpiredHandler{service: promoService}
}

func (h *DeactivateExpiredHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	count, err := h.service.DeactivateExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to deactivate expired promo codes")
		return fmt.Errorf("deactivate expired promos: %w", err)
	}

	log.Info().Int("count", count).Msg("Expired promo codes deactivated")
	return nil
}
