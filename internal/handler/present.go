package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/wishlist/internal/config"
	"github.com/iliyamo/wishlist/internal/middleware"
	"github.com/iliyamo/wishlist/internal/repository"
)

// PresentHandler serves the catalog: public list/get plus the
// administrative create/update/delete paths.  Business rules live in the
// repository; this layer does structural validation and error
// translation only.  After every successful mutation the public response
// cache is purged so reads keep reflecting the store.
type PresentHandler struct {
	Presents *repository.PresentRepo
	CacheCfg config.CacheConfig
	Rdb      *redis.Client // may be nil; purging degrades to a no-op
}

// NewPresentHandler constructs a PresentHandler and panics on a nil
// repository.
func NewPresentHandler(presents *repository.PresentRepo, cacheCfg config.CacheConfig, rdb *redis.Client) *PresentHandler {
	if presents == nil {
		panic("nil repository passed to NewPresentHandler")
	}
	return &PresentHandler{Presents: presents, CacheCfg: cacheCfg, Rdb: rdb}
}

// presentReq is the body for create and update.  Price uses a pointer so
// a missing field is distinguishable from an explicit zero; IsReserved is
// optional on update and ignored on create.
type presentReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Images      []string `json:"images"`
	IsReserved  *bool    `json:"isReserved"`
}

// List handles GET /api/presents.  Optional min_price/max_price query
// parameters narrow the result; invalid numbers are rejected rather than
// ignored.
func (h *PresentHandler) List(c echo.Context) error {
	var filter repository.PriceFilter
	if raw := c.QueryParam("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_price"})
		}
		filter.Min = &v
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_price"})
		}
		filter.Max = &v
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	presents, err := h.Presents.List(ctx, filter)
	if err != nil {
		c.Logger().Errorf("list presents: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch presents"})
	}
	return c.JSON(http.StatusOK, presents)
}

// Get handles GET /api/presents/:id.
func (h *PresentHandler) Get(c echo.Context) error {
	id := c.Param("id")
	ctx, cancel := reqContext(c)
	defer cancel()

	p, err := h.Presents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPresentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "present not found"})
		}
		c.Logger().Errorf("get present %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch present"})
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /api/presents (admin only).
func (h *PresentHandler) Create(c echo.Context) error {
	var req presentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := validatePresent(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	p, err := h.Presents.Create(ctx, req.Name, req.Description, *req.Price, req.Images)
	if err != nil {
		c.Logger().Errorf("create present: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create present"})
	}
	h.purgeCache()
	return c.JSON(http.StatusOK, p)
}

// Update handles PUT /api/presents/:id (admin only).  This is the
// unguarded administrative overwrite: every mutable field is replaced,
// and an explicit isReserved value can reset the reservation flag.  When
// isReserved is omitted the current flag is kept.
func (h *PresentHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var req presentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := validatePresent(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	reserved := false
	if req.IsReserved != nil {
		reserved = *req.IsReserved
	} else {
		current, err := h.Presents.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrPresentNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "present not found"})
			}
			c.Logger().Errorf("update present %s: %v", id, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update present"})
		}
		reserved = current.IsReserved
	}

	p, err := h.Presents.Update(ctx, id, req.Name, req.Description, *req.Price, req.Images, reserved)
	if err != nil {
		if errors.Is(err, repository.ErrPresentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "present not found"})
		}
		c.Logger().Errorf("update present %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update present"})
	}
	h.purgeCache()
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /api/presents/:id (admin only).
func (h *PresentHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Presents.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPresentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "present not found"})
		}
		c.Logger().Errorf("delete present %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete present"})
	}
	h.purgeCache()
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// validatePresent enforces structural rules shared by create and update:
// required non-empty name and description, numeric non-negative price.
func validatePresent(req *presentReq) string {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" {
		return "name is required"
	}
	if req.Description == "" {
		return "description is required"
	}
	if req.Price == nil {
		return "price is required"
	}
	if *req.Price < 0 {
		return "price must be non-negative"
	}
	return ""
}

func (h *PresentHandler) purgeCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	middleware.PurgeCache(ctx, h.CacheCfg, h.Rdb)
}

// reqContext bounds database calls to the lifetime of the request plus a
// hard 5s ceiling, matching the store-access pattern used everywhere in
// this package.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
