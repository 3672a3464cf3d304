package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// resourceService is the slice of an entity service the generic CRUD
// handler needs. Services that shadow Store or Update still satisfy it with
// their specialized methods.
type resourceService[T any] interface {
	GetAll(ctx context.Context) ([]*T, error)
	GetByID(ctx context.Context, id uint, relations []string) (*T, error)
	Store(ctx context.Context, input *T) (*T, error)
	Update(ctx context.Context, input map[string]any, entity *T) (*T, error)
	Delete(ctx context.Context, entity *T) (bool, error)
}

// Resource exposes one entity service as a uniform REST surface.
type Resource[T any] struct {
	service resourceService[T]
}

func NewResource[T any](service resourceService[T]) *Resource[T] {
	return &Resource[T]{service: service}
}

// Register mounts the CRUD routes for this resource under the given group.
func (h *Resource[T]) Register(g *echo.Group, path string) {
	g.GET("/"+path, h.List)
	g.POST("/"+path, h.Create)
	g.GET("/"+path+"/:id", h.Get)
	g.PATCH("/"+path+"/:id", h.Update)
	g.DELETE("/"+path+"/:id", h.Delete)
}

func (h *Resource[T]) List(c echo.Context) error {
	entities, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, entities)
}

func (h *Resource[T]) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	entity, err := h.service.GetByID(c.Request().Context(), id, relationsParam(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, entity)
}

func (h *Resource[T]) Create(c echo.Context) error {
	var input T
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	entity, err := h.service.Store(c.Request().Context(), &input)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, entity)
}

func (h *Resource[T]) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var input map[string]any
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	entity, err := h.service.GetByID(ctx, id, []string{})
	if err != nil {
		return writeError(c, err)
	}

	updated, err := h.service.Update(ctx, input, entity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *Resource[T]) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	entity, err := h.service.GetByID(ctx, id, []string{})
	if err != nil {
		return writeError(c, err)
	}

	deleted, err := h.service.Delete(ctx, entity)
	if err != nil {
		return writeError(c, err)
	}
	if !deleted {
		return c.NoContent(http.StatusNotFound)
	}

	return c.NoContent(http.StatusNoContent)
}

func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// relationsParam distinguishes "no preference" (nil, service loads its
// defaults) from an explicit list.
func relationsParam(c echo.Context) []string {
	raw, ok := c.QueryParams()["with"]
	if !ok {
		return nil
	}

	relations := []string{}
	for _, chunk := range raw {
		for _, name := range strings.Split(chunk, ",") {
			if name = strings.TrimSpace(name); name != "" {
				relations = append(relations, name)
			}
		}
	}

	return relations
}
