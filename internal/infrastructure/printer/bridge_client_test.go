package printer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comandapos/comanda-api/internal/application/orders"
	"github.com/comandapos/comanda-api/pkg/config"
	"github.com/comandapos/comanda-api/pkg/logger"
)

func testTicket() *orders.Ticket {
	return &orders.Ticket{
		OrderID:       "ord-1",
		DailyNumber:   7,
		TableName:     "Mesa 2",
		WaiterName:    "Laura",
		Timestamp:     "29/08/2026 12:30",
		Total:         decimal.NewFromInt(15000),
		PaymentMethod: "efectivo",
		Items: []orders.TicketItem{
			{Quantity: 2, ProductName: "Café", UnitPrice: decimal.NewFromInt(3500)},
			{Quantity: 1, ProductName: "Arepa", UnitPrice: decimal.NewFromInt(8000), Note: "con queso"},
		},
		BusinessName: "La Esquina",
	}
}

func newTestClient(baseURL string) *BridgeClient {
	return NewBridgeClient(config.PrinterConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	}, logger.New("development", "error"))
}

func TestPrintTicket_PuenteConfirma(t *testing.T) {
	var received printRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/print", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(printResponse{Success: true})
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).PrintTicket(context.Background(), testTicket())
	require.NoError(t, err)

	// El payload lleva la comanda completa y la cabecera del negocio
	assert.Equal(t, "ord-1", received.Order.ID)
	assert.Equal(t, 7, received.Order.DailyNumber)
	assert.Len(t, received.Order.Items, 2)
	assert.Equal(t, "con queso", received.Order.Items[1].Note)
	assert.Equal(t, "La Esquina", received.Business.Name)
}

func TestPrintTicket_SuccessFalse_EsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// HTTP 200 pero la impresora no confirmó
		json.NewEncoder(w).Encode(printResponse{Success: false, Error: "sin papel"})
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).PrintTicket(context.Background(), testTicket())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sin papel")
}

func TestPrintTicket_StatusNo2xx_EsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).PrintTicket(context.Background(), testTicket())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestPrintTicket_PuenteInalcanzable_EsError(t *testing.T) {
	// Servidor cerrado de inmediato: connection refused
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := newTestClient(url).PrintTicket(context.Background(), testTicket())
	assert.Error(t, err)
}

func TestPrintTicket_RespetaElTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		json.NewEncoder(w).Encode(printResponse{Success: true})
	}))
	defer srv.Close()

	client := NewBridgeClient(config.PrinterConfig{
		BaseURL: srv.URL,
		Timeout: 50 * time.Millisecond,
	}, logger.New("development", "error"))

	start := time.Now()
	err := client.PrintTicket(context.Background(), testTicket())
	require.Error(t, err, "una impresora lenta no bloquea la venta")
	assert.Less(t, time.Since(start), 250*time.Millisecond)
}
