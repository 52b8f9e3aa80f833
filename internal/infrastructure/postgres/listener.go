package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/comandapos/comanda-api/pkg/logger"
)

// OrderListener escucha el canal de pg_notify de comandas y reenvía cada payload
// al handler (el hub de websockets). Los NOTIFY se emiten dentro de la transacción
// que escribe la comanda, así que un payload recibido siempre corresponde a un commit.
type OrderListener struct {
	pool    *pgxpool.Pool
	handler func(payload string)
	log     *logger.Logger
}

// NewOrderListener construye el listener.
func NewOrderListener(pool *pgxpool.Pool, handler func(payload string), log *logger.Logger) *OrderListener {
	return &OrderListener{pool: pool, handler: handler, log: log}
}

// Run mantiene una conexión dedicada en LISTEN hasta que el contexto se cancele.
// Ante cualquier error de conexión reintenta con una pausa corta; los eventos
// emitidos durante la caída se pierden (el feed es de mejor esfuerzo, los clientes
// siempre pueden releer por HTTP).
func (l *OrderListener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			l.log.Warn().Err(err).Msg("listener de comandas desconectado, reintentando")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(3 * time.Second):
		}
	}
}

func (l *OrderListener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+OrdersChannel); err != nil {
		return err
	}
	l.log.Info().Str("channel", OrdersChannel).Msg("escuchando eventos de comandas")

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.handler(notification.Payload)
	}
}
