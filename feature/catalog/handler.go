package catalog

import (
	"errors"

	"catalog-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/kinds", h.HandleListKinds)
	group.Get("/:kind/ddl", h.HandleTableDDL)
	group.Get("/:kind/diff", h.HandleDiffDDL)
	group.Post("/sync", h.HandleSyncAll)
	group.Post("/sync/:kind", h.HandleSyncOne)

	tables := app.Group("/tables")
	tables.Get("/:table/columns", h.HandleListColumns)
	tables.Get("/:table/columns/:column/unique", h.HandleUniqueColumn)
}

// HandleListKinds lists the entity kinds in sync order.
func (h *Handler) HandleListKinds(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"kinds": h.service.ListKinds()})
}

// HandleTableDDL renders the creation DDL for one kind.
func (h *Handler) HandleTableDDL(c *fiber.Ctx) error {
	kind := c.Params("kind")
	l := logger.WithRayID(h.service.logger, c)

	ddl, err := h.service.TableDDL(kind)
	if err != nil {
		return h.fail(c, l, "DDL rendering failed", err)
	}
	return c.JSON(fiber.Map{"kind": kind, "ddl": ddl})
}

// HandleDiffDDL renders the reconciliation statements for one kind.
func (h *Handler) HandleDiffDDL(c *fiber.Ctx) error {
	kind := c.Params("kind")
	l := logger.WithRayID(h.service.logger, c)

	diff, err := h.service.DiffDDL(kind)
	if err != nil {
		return h.fail(c, l, "Schema diff failed", err)
	}
	return c.JSON(fiber.Map{"kind": kind, "diff": diff})
}

// HandleSyncAll syncs every kind.
func (h *Handler) HandleSyncAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	results, err := h.service.SyncAll(c.Context())
	if err != nil {
		return h.fail(c, l, "Full sync failed", err)
	}

	rows := make(map[string]int, len(results))
	for kind, count := range results {
		rows[string(kind)] = count
	}
	return c.JSON(fiber.Map{"synced": rows})
}

// HandleSyncOne syncs a single kind.
func (h *Handler) HandleSyncOne(c *fiber.Ctx) error {
	kind := c.Params("kind")
	l := logger.WithRayID(h.service.logger, c)

	rows, err := h.service.SyncOne(c.Context(), kind)
	if err != nil {
		return h.fail(c, l, "Sync failed", err)
	}
	return c.JSON(fiber.Map{"kind": kind, "rows": rows})
}

// HandleListColumns returns the live column definitions of a table.
func (h *Handler) HandleListColumns(c *fiber.Ctx) error {
	table := c.Params("table")
	l := logger.WithRayID(h.service.logger, c)

	columns, err := h.service.ListColumns(table)
	if err != nil {
		return h.fail(c, l, "Column listing failed", err)
	}
	return c.JSON(fiber.Map{"table": table, "columns": columns})
}

// HandleUniqueColumn reports whether a column belongs to a unique index.
func (h *Handler) HandleUniqueColumn(c *fiber.Ctx) error {
	table := c.Params("table")
	column := c.Params("column")
	l := logger.WithRayID(h.service.logger, c)

	unique, err := h.service.IsUniqueColumn(table, column)
	if err != nil {
		return h.fail(c, l, "Unique index check failed", err)
	}
	return c.JSON(fiber.Map{"table": table, "column": column, "unique": unique})
}

// fail maps service errors to HTTP statuses. Unknown kinds and tables are
// client errors; everything else is a 500.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := fiber.StatusInternalServerError
	if errors.Is(err, ErrUnknownKind) || errors.Is(err, ErrTableNotFound) {
		status = fiber.StatusNotFound
	}
	l.Error(msg, zap.Error(err))
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
