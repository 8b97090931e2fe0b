package delivery

import (
	"net/http"

	"github.com/dmitrymomot/dispatch/handler"
	"github.com/dmitrymomot/dispatch/svc/queue"
)

type handlers struct {
	svc    queue.Service
	errors handler.ErrorHandler
}

type historyKeyRequest struct {
	SenderID int64 `query:"sender_id"`
}

type limitRequest struct {
	UID int64 `query:"uid"`
}

func (h *handlers) historyKey(ctx handler.Context, req historyKeyRequest) handler.Response {
	key, err := h.svc.HistoryKey(ctx, req.SenderID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(key)
}

func (h *handlers) limit(ctx handler.Context, req limitRequest) handler.Response {
	status, err := h.svc.RateLimitStatus(ctx, req.UID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(status)
}

func (h *handlers) enqueue(ctx handler.Context, req queue.EnqueueRequest) handler.Response {
	res, err := h.svc.Enqueue(ctx, req)
	if err != nil {
		return handler.Error(err)
	}
	if res.Scheduled {
		return handler.JSON(res, handler.WithStatus(http.StatusAccepted))
	}
	return handler.JSON(res)
}

func (h *handlers) track(ctx handler.Context, req queue.TrackRequest) handler.Response {
	res, err := h.svc.Track(ctx, req)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(res)
}
