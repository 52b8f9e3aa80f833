package http

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/comandapos/comanda-api/pkg/jwt"
	"github.com/comandapos/comanda-api/pkg/logger"
)

// OrderHub reparte los eventos de comandas (pg_notify) a los websockets suscritos,
// aislados por negocio. Es de mejor esfuerzo: un cliente lento se desconecta y relee
// por HTTP, nunca bloquea al resto.
type OrderHub struct {
	mu   sync.RWMutex
	subs map[string]map[*websocket.Conn]chan string // businessID -> conexiones
	log  *logger.Logger
}

// NewOrderHub construye el hub.
func NewOrderHub(log *logger.Logger) *OrderHub {
	return &OrderHub{
		subs: make(map[string]map[*websocket.Conn]chan string),
		log:  log,
	}
}

// Broadcast recibe el payload crudo del canal de pg_notify, extrae el negocio y lo
// reenvía a sus suscriptores.
func (h *OrderHub) Broadcast(payload string) {
	var event struct {
		BusinessID string `json:"business_id"`
	}
	if err := json.Unmarshal([]byte(payload), &event); err != nil || event.BusinessID == "" {
		h.log.Warn().Str("payload", payload).Msg("evento de comanda sin business_id, descartado")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[event.BusinessID] {
		select {
		case ch <- payload:
		default: // buffer lleno: el cliente va atrasado, se salta el evento
		}
	}
}

func (h *OrderHub) subscribe(businessID string, conn *websocket.Conn) chan string {
	ch := make(chan string, 16)
	h.mu.Lock()
	if h.subs[businessID] == nil {
		h.subs[businessID] = make(map[*websocket.Conn]chan string)
	}
	h.subs[businessID][conn] = ch
	h.mu.Unlock()
	return ch
}

func (h *OrderHub) unsubscribe(businessID string, conn *websocket.Conn) {
	h.mu.Lock()
	// El canal no se cierra: Broadcast podría estar enviando. Queda huérfano y lo recoge el GC.
	if conns := h.subs[businessID]; conns != nil {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.subs, businessID)
		}
	}
	h.mu.Unlock()
}

// OrdersFeedUpgrade exige que la petición sea un upgrade de websocket con un token
// válido (query param, los navegadores no mandan Authorization en websockets).
func OrdersFeedUpgrade(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		token := c.Query("token")
		if token == "" {
			return fiber.ErrUnauthorized
		}
		_, businessID, _, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		c.Locals(LocalBusinessID, businessID)
		return c.Next()
	}
}

// OrdersFeedHandler mantiene la conexión y empuja cada evento del negocio como un
// mensaje de texto JSON. El cierre del cliente termina el loop.
func OrdersFeedHandler(hub *OrderHub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		businessID, _ := conn.Locals(LocalBusinessID).(string)
		if businessID == "" {
			_ = conn.Close()
			return
		}
		ch := hub.subscribe(businessID, conn)
		defer hub.unsubscribe(businessID, conn)

		// Lector en segundo plano: detecta el cierre del cliente.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case payload := <-ch:
				if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}
