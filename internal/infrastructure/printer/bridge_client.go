package printer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/comandapos/comanda-api/internal/application/orders"
	"github.com/comandapos/comanda-api/pkg/config"
	"github.com/comandapos/comanda-api/pkg/logger"
)

var _ orders.TicketPrinter = (*BridgeClient)(nil)

// BridgeClient cliente HTTP del puente de impresión: un servicio local en la red
// del negocio que recibe el ticket en JSON y lo manda a la impresora térmica.
// El timeout es corto a propósito; una impresora caída jamás bloquea la venta.
type BridgeClient struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewBridgeClient construye el cliente con la configuración del puente.
func NewBridgeClient(cfg config.PrinterConfig, log *logger.Logger) *BridgeClient {
	return &BridgeClient{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

// Shape JSON del puente. Sin versión: cualquier cambio se coordina con el servicio de impresión.
type printRequest struct {
	Order    printOrder    `json:"order"`
	Business printBusiness `json:"business"`
}

type printOrder struct {
	ID              string          `json:"id"`
	DailyNumber     int             `json:"daily_number"`
	TableName       string          `json:"table_name"`
	WaiterName      string          `json:"waiter_name,omitempty"`
	CustomerName    string          `json:"customer_name,omitempty"`
	Timestamp       string          `json:"timestamp"`
	Items           []printItem     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	IsDelivery      bool            `json:"is_delivery"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	PaymentMethod   string          `json:"payment_method"`
	Note            string          `json:"note,omitempty"`
}

type printItem struct {
	Quantity    int             `json:"quantity"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Note        string          `json:"note,omitempty"`
}

type printBusiness struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

type printResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// PrintTicket envía el ticket al puente. Retorna error si el puente no responde,
// responde fuera de 2xx o responde success=false; el caller decide qué hacer con eso.
func (c *BridgeClient) PrintTicket(ctx context.Context, ticket *orders.Ticket) error {
	req := printRequest{
		Order: printOrder{
			ID:              ticket.OrderID,
			DailyNumber:     ticket.DailyNumber,
			TableName:       ticket.TableName,
			WaiterName:      ticket.WaiterName,
			CustomerName:    ticket.CustomerName,
			Timestamp:       ticket.Timestamp,
			Total:           ticket.Total,
			IsDelivery:      ticket.IsDelivery,
			DeliveryAddress: ticket.DeliveryAddress,
			DeliveryFee:     ticket.DeliveryFee,
			PaymentMethod:   ticket.PaymentMethod,
			Note:            ticket.Note,
		},
		Business: printBusiness{
			Name:    ticket.BusinessName,
			Address: ticket.BusinessAddress,
			Phone:   ticket.BusinessPhone,
		},
	}
	for _, it := range ticket.Items {
		req.Order.Items = append(req.Order.Items, printItem{
			Quantity:    it.Quantity,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Note:        it.Note,
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal ticket: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/print", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("crear request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("puente de impresión: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("puente de impresión: status %d", resp.StatusCode)
	}

	var out printResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decodificar respuesta del puente: %w", err)
	}
	if !out.Success {
		if out.Error != "" {
			return fmt.Errorf("puente de impresión: %s", out.Error)
		}
		return fmt.Errorf("puente de impresión: impresión no confirmada")
	}
	return nil
}
