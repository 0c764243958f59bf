package handler

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/geo-directory/internal/pkg/utils"
	"github.com/geo-directory/internal/usecase"
)

const (
	randomMin = 1
	randomMax = 100
	diceCount = 2
	diceSides = 6
)

// SystemHandler - служебные эндпоинты: hello, время, случайные числа, список маршрутов, health
type SystemHandler struct {
	healthUC *usecase.HealthUseCase
}

func NewSystemHandler(healthUC *usecase.HealthUseCase) *SystemHandler {
	return &SystemHandler{healthUC: healthUC}
}

// Hello godoc
// @Summary Hello
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /hello [get]
func (h *SystemHandler) Hello(c *fiber.Ctx) error {
	return utils.SendSuccess(c, fiber.Map{"hello": "world"})
}

// Endpoints godoc
// @Summary List endpoints
// @Tags System
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /endpoints [get]
func (h *SystemHandler) Endpoints(c *fiber.Ctx) error {
	seen := make(map[string]struct{})
	paths := []string{}
	for _, r := range c.App().GetRoutes(true) {
		if _, ok := seen[r.Path]; ok {
			continue
		}
		seen[r.Path] = struct{}{}
		paths = append(paths, r.Path)
	}
	sort.Strings(paths)

	return utils.SendSuccess(c, fiber.Map{"Available endpoints": paths})
}

// Health godoc
// @Summary Health check
// @Description Пингует хранилище и кеш. Статус degraded, если зависимость недоступна
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.healthUC.Check(c.UserContext()))
}

// Timestamp godoc
// @Summary Server time
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /timestamp [get]
func (h *SystemHandler) Timestamp(c *fiber.Ctx) error {
	now := time.Now()
	return utils.SendSuccess(c, fiber.Map{
		"timestamp": now.Format(time.RFC3339Nano),
		"unix":      float64(now.UnixNano()) / float64(time.Second),
	})
}

// Random godoc
// @Summary Random integer in [1, 100]
// @Tags System
// @Produce json
// @Success 200 {object} map[string]int
// @Router /random [get]
func (h *SystemHandler) Random(c *fiber.Ctx) error {
	return utils.SendSuccess(c, fiber.Map{
		"random_number": randomMin + rand.IntN(randomMax-randomMin+1),
		"min":           randomMin,
		"max":           randomMax,
	})
}

// Dice godoc
// @Summary Roll two six-sided dice
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /dice [get]
func (h *SystemHandler) Dice(c *fiber.Ctx) error {
	rolls := make([]int, diceCount)
	total := 0
	for i := range rolls {
		rolls[i] = 1 + rand.IntN(diceSides)
		total += rolls[i]
	}
	return utils.SendSuccess(c, fiber.Map{
		"rolls":    rolls,
		"total":    total,
		"num_dice": diceCount,
		"sides":    diceSides,
	})
}
