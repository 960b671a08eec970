package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
)

// SettingsHandler CRUD de marcas, mercados y localizaciones.
// PUT exige el campo version vigente; una versión vieja responde 409 VERSION_CONFLICT.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// settingsRoutes operaciones de un tipo de configuración.
type settingsRoutes[Req any, Res any] struct {
	list   func(context.Context) (*dto.SettingsListResponse[Res], error)
	get    func(context.Context, string) (*Res, error)
	create func(context.Context, Req) (*Res, error)
	update func(context.Context, string, Req) (*Res, error)
	delete func(context.Context, string) error
}

// mount registra GET/POST en "/" y GET/PUT/DELETE en "/:id".
func (r settingsRoutes[Req, Res]) mount(g fiber.Router) {
	g.Get("/", func(c *fiber.Ctx) error {
		out, err := r.list(c.UserContext())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	})
	g.Post("/", func(c *fiber.Ctx) error {
		var in Req
		if err := parseBody(c, &in); err != nil {
			return writeError(c, err)
		}
		out, err := r.create(c.UserContext(), in)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	})
	g.Get("/:id", func(c *fiber.Ctx) error {
		out, err := r.get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	})
	g.Put("/:id", func(c *fiber.Ctx) error {
		var in Req
		if err := parseBody(c, &in); err != nil {
			return writeError(c, err)
		}
		out, err := r.update(c.UserContext(), c.Params("id"), in)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	})
	g.Delete("/:id", func(c *fiber.Ctx) error {
		if err := r.delete(c.UserContext(), c.Params("id")); err != nil {
			return writeError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// Mount registra /brands, /markets y /localizations bajo g.
//
// @Summary      Settings de la organización
// @Description  GET|POST /api/settings/{kind}, GET|PUT|DELETE /api/settings/{kind}/{id}; kind = brands | markets | localizations.
// @Tags         settings
// @Security     Bearer
// @Router       /api/settings [get]
func (h *SettingsHandler) Mount(g fiber.Router) {
	settingsRoutes[dto.BrandRequest, dto.BrandResponse]{
		list:   h.uc.ListBrands,
		get:    h.uc.GetBrand,
		create: h.uc.CreateBrand,
		update: h.uc.UpdateBrand,
		delete: h.uc.DeleteBrand,
	}.mount(g.Group("/brands"))

	settingsRoutes[dto.MarketRequest, dto.MarketResponse]{
		list:   h.uc.ListMarkets,
		get:    h.uc.GetMarket,
		create: h.uc.CreateMarket,
		update: h.uc.UpdateMarket,
		delete: h.uc.DeleteMarket,
	}.mount(g.Group("/markets"))

	settingsRoutes[dto.LocalizationRequest, dto.LocalizationResponse]{
		list:   h.uc.ListLocalizations,
		get:    h.uc.GetLocalization,
		create: h.uc.CreateLocalization,
		update: h.uc.UpdateLocalization,
		delete: h.uc.DeleteLocalization,
	}.mount(g.Group("/localizations"))
}
