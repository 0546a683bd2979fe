package handler

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/wishlist/internal/config"
	"github.com/iliyamo/wishlist/internal/middleware"
	"github.com/iliyamo/wishlist/internal/queue"
	"github.com/iliyamo/wishlist/internal/repository"
	queue_publisher "github.com/iliyamo/wishlist/internal/service"
)

// ReserveHandler implements the guarded reservation transition.  One
// shared code, configured process-wide, unlocks reservation of any
// present; the code check happens before the store is touched, and the
// flag transition itself is a single conditional update so concurrent
// attempts on the same present cannot both succeed.
type ReserveHandler struct {
	Cfg      config.Config
	Presents *repository.PresentRepo
	CacheCfg config.CacheConfig
	Rdb      *redis.Client // may be nil
}

// NewReserveHandler constructs a ReserveHandler and panics on a nil
// repository.
func NewReserveHandler(cfg config.Config, presents *repository.PresentRepo, cacheCfg config.CacheConfig, rdb *redis.Client) *ReserveHandler {
	if presents == nil {
		panic("nil repository passed to NewReserveHandler")
	}
	return &ReserveHandler{Cfg: cfg, Presents: presents, CacheCfg: cacheCfg, Rdb: rdb}
}

type reserveReq struct {
	Code string `json:"code"`
}

// Reserve handles POST /api/presents/:id/reserve.
//
// Order matters: the shared code is compared first and a mismatch never
// reaches the database.  The repository then performs the conditional
// update; of two concurrent attempts on the same unreserved present
// exactly one succeeds and the other receives "already reserved".  No
// attempt is retried or queued.
func (h *ReserveHandler) Reserve(c echo.Context) error {
	id := c.Param("id")
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if subtle.ConstantTimeCompare([]byte(req.Code), []byte(h.Cfg.ReservationCode)) != 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid code"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	p, err := h.Presents.Reserve(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPresentNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "present not found"})
		case errors.Is(err, repository.ErrAlreadyReserved):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "present is already reserved"})
		default:
			c.Logger().Errorf("reserve present %s: %v", id, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reserve present"})
		}
	}

	// Cached catalog reads must see the new flag immediately.
	ctxPurge, cancelPurge := context.WithTimeout(context.Background(), 2*time.Second)
	middleware.PurgeCache(ctxPurge, h.CacheCfg, h.Rdb)
	cancelPurge()

	// Fire-and-forget notification; a broker outage never fails the
	// reservation that already committed.
	ev := queue.PresentReservedEvent{
		PresentID:  p.ID,
		Name:       p.Name,
		Price:      p.Price,
		ReservedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishPresentReserved(pubCtx, ev)
	}()

	return c.JSON(http.StatusOK, p)
}
