package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/pkg/errors"
	"github.com/geo-directory/internal/pkg/utils"
	"github.com/geo-directory/internal/usecase"
	"github.com/geo-directory/internal/usecase/dto"
)

// EntityHandler обслуживает CRUD, поиск и bulk-операции одной коллекции
type EntityHandler[T domain.Record[T]] struct {
	uc     *usecase.EntityUseCase[T]
	kind   domain.Kind
	logger *zap.Logger
}

// NewEntityHandler создает handler коллекции
func NewEntityHandler[T domain.Record[T]](uc *usecase.EntityUseCase[T], logger *zap.Logger) *EntityHandler[T] {
	kind := uc.Kind()
	return &EntityHandler[T]{
		uc:     uc,
		kind:   kind,
		logger: logger.With(zap.String("collection", kind.Plural)),
	}
}

// Register вешает маршруты коллекции на /<plural>.
// Статические пути (bulk, search, count) регистрируются раньше /:name.
func (h *EntityHandler[T]) Register(router fiber.Router) {
	g := router.Group("/" + h.kind.Plural)

	g.Get("", h.List)
	g.Post("", h.Create)

	g.Get("/search", h.Search)
	g.Get("/count", h.Count)
	g.Post("/bulk", h.BulkCreate)
	g.Put("/bulk", h.BulkUpdate)
	g.Delete("/bulk", h.BulkDelete)

	g.Get("/:name", h.Get)
	g.Put("/:name", h.Update)
	g.Delete("/:name", h.Delete)
}

// List godoc
// @Summary List records
// @Description Все записи коллекции. page/limit включают пагинацию и добавляют page, limit, total
// @Tags Collections
// @Produce json
// @Param collection path string true "Collection" Enums(cities, countries, states)
// @Param page query int false "Page number (from 1)"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Sort field"
// @Param order query string false "Sort order" Enums(asc, desc)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /{collection} [get]
func (h *EntityHandler[T]) List(c *fiber.Ctx) error {
	var req dto.ListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("page and limit must be integers"))
	}

	resp, err := h.uc.List(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "List", err)
	}
	return utils.SendSuccess(c, resp)
}

// Search godoc
// @Summary Search records
// @Description name и capital ищутся по подстроке без учёта регистра, коды - точным совпадением. Параметры объединяются через AND
// @Tags Collections
// @Produce json
// @Param collection path string true "Collection" Enums(cities, countries, states)
// @Param name query string false "Name substring"
// @Param state_code query string false "State code (cities, states)"
// @Param iso_code query string false "ISO code (countries)"
// @Param capital query string false "Capital substring (states)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /{collection}/search [get]
func (h *EntityHandler[T]) Search(c *fiber.Ctx) error {
	resp, err := h.uc.Search(c.UserContext(), c.Queries())
	if err != nil {
		return h.fail(c, "Search", err)
	}
	return utils.SendSuccess(c, resp)
}

// Get godoc
// @Summary Get record
// @Tags Collections
// @Produce json
// @Param collection path string true "Collection" Enums(cities, countries, states)
// @Param name path string true "Record name"
// @Param state_code query string false "State code, required for cities"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /{collection}/{name} [get]
func (h *EntityHandler[T]) Get(c *fiber.Ctx) error {
	record, err := h.uc.Get(c.UserContext(), h.key(c))
	if err != nil {
		return h.fail(c, "Get", err)
	}
	return utils.SendSuccess(c, record)
}

// Create godoc
// @Summary Create record
// @Tags Collections
// @Accept json
// @Produce json
// @Param collection path string true "Collection" Enums(cities, countries, states)
// @Param record body map[string]interface{} true "Record fields"
// @Success 201 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /{collection} [post]
func (h *EntityHandler[T]) Create(c *fiber.Ctx) error {
	record, err := h.uc.Create(c.UserContext(), c.Body())
	if err != nil {
		return h.fail(c, "Create", err)
	}

	name := record.Value(domain.FieldName)
	return utils.SendMessage(c, fiber.StatusCreated, name+" created successfully", record.Value(domain.FieldID))
}

// Update godoc
// @Summary Update record
// @Description Меняются только переданные поля
// @Tags Collections
// @Accept json
// @Produce json
// @Param collection path string true "Collection" Enums(cities, countries, states)
// @Param name path string true "Record name"
// @Param state_code query string false "State code, required for cities"
// @Param fields body map[string]interface{} true "Fields to update"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /{collection}/{name} [put]
func (h *EntityHandler[T]) Update(c *fiber.Ctx) error {
	key := h.key(c)
	if _, err := h.uc.Update(c.UserContext(), key, c.Body()); err != nil {
		return h.fail(c, "Update", err)
	}
	return utils.SendMessage(c, fiber.StatusOK, key.Name+" updated successfully", "")
}

// Delete godoc
// @Summary Delete record
// @Tags Collections
// @Produce json
// @Param collection path string true "Collection" Enums(cities, countries, states)
// @Param name path string true "Record name"
// @Param state_code query string false "State code, required for cities"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /{collection}/{name} [delete]
func (h *EntityHandler[T]) Delete(c *fiber.Ctx) error {
	key := h.key(c)
	if err := h.uc.Delete(c.UserContext(), key); err != nil {
		return h.fail(c, "Delete", err)
	}
	return utils.SendMessage(c, fiber.StatusOK, key.Name+" deleted successfully", "")
}

// Count godoc
// @Summary Count records
// @Tags Collections
// @Produce json
// @Param collection path string true "Collection" Enums(cities, countries, states)
// @Success 200 {object} dto.CountResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /{collection}/count [get]
func (h *EntityHandler[T]) Count(c *fiber.Ctx) error {
	n, err := h.uc.Count(c.UserContext())
	if err != nil {
		return h.fail(c, "Count", err)
	}
	return utils.SendSuccess(c, dto.CountResponse{Count: n})
}

// BulkCreate godoc
// @Summary Bulk create
// @Description Элементы обрабатываются независимо; при частичной ошибке ответ 207
// @Tags Bulk
// @Accept json
// @Produce json
// @Param collection path string true "Collection" Enums(cities, countries, states)
// @Param records body []map[string]interface{} true "Records"
// @Success 201 {object} dto.BulkResponse
// @Success 207 {object} dto.BulkResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /{collection}/bulk [post]
func (h *EntityHandler[T]) BulkCreate(c *fiber.Ctx) error {
	var items []json.RawMessage
	if err := json.Unmarshal(c.Body(), &items); err != nil {
		return utils.SendError(c, errArrayBody)
	}

	resp, err := h.uc.BulkCreate(c.UserContext(), items)
	if err != nil {
		return h.fail(c, "BulkCreate", err)
	}
	return utils.SendStatus(c, bulkStatus(resp, fiber.StatusCreated), resp)
}

// BulkUpdate godoc
// @Summary Bulk update
// @Description Элементы вида {"id": <key>, "fields": {...}}; для городов id - {"name", "state_code"}
// @Tags Bulk
// @Accept json
// @Produce json
// @Param collection path string true "Collection" Enums(cities, countries, states)
// @Param items body []dto.BulkUpdateItem true "Updates"
// @Success 200 {object} dto.BulkResponse
// @Success 207 {object} dto.BulkResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /{collection}/bulk [put]
func (h *EntityHandler[T]) BulkUpdate(c *fiber.Ctx) error {
	var items []dto.BulkUpdateItem
	if err := json.Unmarshal(c.Body(), &items); err != nil {
		return utils.SendError(c, errArrayBody)
	}

	resp, err := h.uc.BulkUpdate(c.UserContext(), items)
	if err != nil {
		return h.fail(c, "BulkUpdate", err)
	}
	return utils.SendStatus(c, bulkStatus(resp, fiber.StatusOK), resp)
}

// BulkDelete godoc
// @Summary Bulk delete
// @Description Ключи: строка с именем или {"name", "state_code"} для городов
// @Tags Bulk
// @Accept json
// @Produce json
// @Param collection path string true "Collection" Enums(cities, countries, states)
// @Param keys body []interface{} true "Keys"
// @Success 200 {object} dto.BulkResponse
// @Success 207 {object} dto.BulkResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /{collection}/bulk [delete]
func (h *EntityHandler[T]) BulkDelete(c *fiber.Ctx) error {
	var items []json.RawMessage
	if err := json.Unmarshal(c.Body(), &items); err != nil {
		return utils.SendError(c, errArrayBody)
	}

	resp, err := h.uc.BulkDelete(c.UserContext(), items)
	if err != nil {
		return h.fail(c, "BulkDelete", err)
	}
	return utils.SendStatus(c, bulkStatus(resp, fiber.StatusOK), resp)
}

var errArrayBody = errors.ErrInvalidBody.WithMessage("Request body must be a JSON array")

// key собирает ключ записи из пути и ?state_code=
func (h *EntityHandler[T]) key(c *fiber.Ctx) domain.Key {
	return domain.Key{
		Name:      c.Params("name"),
		StateCode: c.Query(domain.FieldStateCode),
	}.Normalize()
}

// fail логирует серверные ошибки; клиентские (4xx) уходят без записи в лог
func (h *EntityHandler[T]) fail(c *fiber.Ctx, op string, err error) error {
	if appErr, ok := errors.As(err); !ok || appErr.StatusCode >= fiber.StatusInternalServerError {
		h.logger.Error(op+" failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return utils.SendError(c, err)
}

func bulkStatus(resp *dto.BulkResponse, ok int) int {
	if resp.Failed > 0 {
		return fiber.StatusMultiStatus
	}
	return ok
}
