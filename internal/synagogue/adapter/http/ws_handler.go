package http

import (
	"context"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"synagogue-manager/internal/shared/logger"
	"synagogue-manager/internal/synagogue/domain/repository"
	"synagogue-manager/internal/synagogue/usecase"
)

// WebSocketMessage is the envelope for every frame sent to a live query
// client.
type WebSocketMessage struct {
	Type       string      `json:"type"`
	Collection string      `json:"collection,omitempty"`
	Count      int         `json:"count,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// WSHandler streams live query snapshots over websocket. Each connection
// subscribes to one tenant collection and receives the full result set on
// connect and again after every mutation.
type WSHandler struct {
	log logger.Logger
}

// NewWSHandler creates the live query handler.
func NewWSHandler(log logger.Logger) *WSHandler {
	return &WSHandler{log: log.WithComponent("ws_handler")}
}

// RegisterRoutes mounts the live query endpoint on a tenant-scoped router.
func (h *WSHandler) RegisterRoutes(router fiber.Router) {
	router.Use("/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/live/:collection", websocket.New(h.handleLive))
}

// wsWriter serializes frames onto one connection. Live query deliveries
// arrive on mutator goroutines and must not interleave writes.
type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsWriter) send(msg WebSocketMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(msg)
}

func (h *WSHandler) handleLive(conn *websocket.Conn) {
	defer conn.Close()

	services, _ := conn.Locals(localsServicesKey).(*usecase.TenantServices)
	collection := conn.Params("collection")
	writer := &wsWriter{conn: conn}

	if services == nil {
		_ = writer.send(WebSocketMessage{Type: "error", Error: "tenant not resolved"})
		return
	}

	unsubscribe, err := h.subscribe(services, collection, writer)
	if err != nil {
		h.log.Warnf("Live query subscription failed for %s: %v", collection, err)
		_ = writer.send(WebSocketMessage{Type: "error", Collection: collection, Error: err.Error()})
		return
	}
	defer unsubscribe()

	h.log.Infof("Live query opened: synagogue=%s collection=%s", services.SynagogueID, collection)

	// drain the connection until the client goes away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugf("Live query closed: %v", err)
			return
		}
	}
}

func (h *WSHandler) subscribe(services *usecase.TenantServices, collection string, writer *wsWriter) (repository.Unsubscribe, error) {
	// the subscription lives as long as the connection, not the upgrade
	// request, so it carries its own context
	ctx := context.Background()

	switch collection {
	case usecase.CollectionPrayerTimes:
		return streamLive(ctx, services.PrayerTimes, collection, writer, h.log)
	case usecase.CollectionDonations:
		return streamLive(ctx, services.Donations, collection, writer, h.log)
	case usecase.CollectionToraLessons:
		return streamLive(ctx, services.ToraLessons, collection, writer, h.log)
	case usecase.CollectionFinancialReports:
		return streamLive(ctx, services.FinancialReports, collection, writer, h.log)
	case usecase.CollectionAnnouncements:
		return streamLive(ctx, services.Announcements, collection, writer, h.log)
	case usecase.CollectionMemberships:
		return streamLive(ctx, services.Memberships, collection, writer, h.log)
	case usecase.CollectionSettings:
		return streamLive(ctx, services.GabbaiBoard, collection, writer, h.log)
	case usecase.CollectionInvitations:
		return streamLive(ctx, services.Invitations, collection, writer, h.log)
	case usecase.CollectionFamilies:
		return streamLive(ctx, services.Families, collection, writer, h.log)
	default:
		return nil, fiber.NewError(fiber.StatusNotFound, "unknown collection: "+collection)
	}
}

// streamLive forwards every live query delivery of one typed service as a
// snapshot frame. A write failure is logged; the subscription is torn down
// by the read loop when the connection dies.
func streamLive[E any, D any](ctx context.Context, svc *usecase.GenericService[E, D], collection string, writer *wsWriter, log logger.Logger) (repository.Unsubscribe, error) {
	return svc.LiveQuery(ctx, func(items []E) {
		msg := WebSocketMessage{
			Type:       "snapshot",
			Collection: collection,
			Count:      len(items),
			Data:       items,
		}
		if err := writer.send(msg); err != nil {
			log.Debugf("Dropping snapshot for %s: %v", collection, err)
		}
	})
}
