package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/omegapos/omega-sync-api/internal/application/dto"
	appsync "github.com/omegapos/omega-sync-api/internal/application/sync"
	"github.com/omegapos/omega-sync-api/internal/domain"
)

// SyncHandler maneja los endpoints de sincronización masiva por entidad.
//
// Contrato de error legado: los fallos de storage responden 500 con
// {"error": "..."} porque el cliente ERP existente solo parsea ese cuerpo.
type SyncHandler struct {
	uc *appsync.SyncUseCase
}

// NewSyncHandler construye el handler de sincronización.
func NewSyncHandler(uc *appsync.SyncUseCase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

// Clear godoc
// @Summary      Borrar las filas de una entidad (dentro de su alcance)
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Param        entity  path  string  true  "products | productbatches | masters | users"
// @Success      200  {object}  dto.ClearResponse
// @Failure      404  {object}  dto.LegacyErrorResponse
// @Failure      500  {object}  dto.LegacyErrorResponse
// @Router       /clear/{entity} [delete]
func (h *SyncHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.Clear(c.UserContext(), c.Params("entity"))
	if err != nil {
		return syncError(c, err)
	}
	return c.JSON(out)
}

// ChunkInsert godoc
// @Summary      Insertar un fragmento del dataset sin borrar (datasets grandes)
// @Tags         sync
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        entity  path  string      true  "products | productbatches | masters | users"
// @Param        body    body  []dto.Record  true  "arreglo JSON de registros"
// @Success      200  {object}  dto.SyncResponse
// @Failure      404  {object}  dto.LegacyErrorResponse
// @Failure      500  {object}  dto.LegacyErrorResponse
// @Router       /sync/{entity}/chunk [post]
func (h *SyncHandler) ChunkInsert(c *fiber.Ctx) error {
	records, err := parseRecords(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.LegacyErrorResponse{Error: "se espera un arreglo JSON de registros"})
	}
	out, err := h.uc.ChunkInsert(c.UserContext(), c.Params("entity"), records)
	if err != nil {
		return syncError(c, err)
	}
	return c.JSON(out)
}

// Replace godoc
// @Summary      Borrar e insertar el payload completo en una transacción
// @Tags         sync
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        entity  path  string      true  "products | productbatches | masters | users"
// @Param        body    body  []dto.Record  true  "arreglo JSON de registros"
// @Success      200  {object}  dto.SyncResponse
// @Failure      404  {object}  dto.LegacyErrorResponse
// @Failure      500  {object}  dto.LegacyErrorResponse
// @Router       /sync/{entity}/v2 [post]
func (h *SyncHandler) Replace(c *fiber.Ctx) error {
	records, err := parseRecords(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.LegacyErrorResponse{Error: "se espera un arreglo JSON de registros"})
	}
	out, err := h.uc.Replace(c.UserContext(), c.Params("entity"), records)
	if err != nil {
		return syncError(c, err)
	}
	return c.JSON(out)
}

func parseRecords(c *fiber.Ctx) ([]dto.Record, error) {
	var records []dto.Record
	if err := c.BodyParser(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func syncError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrUnknownEntity) {
		return c.Status(fiber.StatusNotFound).JSON(dto.LegacyErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.LegacyErrorResponse{Error: err.Error()})
}
