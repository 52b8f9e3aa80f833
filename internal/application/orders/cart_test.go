package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comandapos/comanda-api/internal/application/dto"
)

func TestCart_FusionaDuplicadosYDescartaNoPositivos(t *testing.T) {
	cart := CartFromRequest([]dto.OrderItemRequest{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1, Note: "sin cebolla"},
		{ProductID: "p1", Quantity: 3},
		{ProductID: "p3", Quantity: 0},  // descartada
		{ProductID: "p4", Quantity: -5}, // descartada
		{ProductID: "", Quantity: 2},    // descartada
	})

	lines := cart.Lines()
	assert.Len(t, lines, 2, "duplicados fusionados, no positivos descartados")
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 5, lines[0].Quantity, "2 + 3 acumulados")
	assert.Equal(t, "p2", lines[1].ProductID)
	assert.Equal(t, "sin cebolla", lines[1].Note)
}

func TestCart_NotaMasRecienteReemplaza(t *testing.T) {
	cart := NewCart()
	cart.AddLine("p1", 1, "término medio")
	cart.AddLine("p1", 1, "bien cocido")

	assert.Equal(t, "bien cocido", cart.Lines()[0].Note)
}

func TestCart_NotaVaciaNoReemplaza(t *testing.T) {
	cart := NewCart()
	cart.AddLine("p1", 1, "sin sal")
	cart.AddLine("p1", 2, "")

	assert.Equal(t, "sin sal", cart.Lines()[0].Note)
	assert.Equal(t, 3, cart.Lines()[0].Quantity)
}

func TestCart_RemoveOrDecrement(t *testing.T) {
	cart := NewCart()
	cart.AddLine("p1", 3, "")
	cart.AddLine("p2", 1, "")
	cart.AddLine("p3", 2, "")

	// Decrementa sin llegar a cero: la línea queda
	cart.RemoveOrDecrement("p1", 2)
	assert.Equal(t, 1, cart.Lines()[0].Quantity)

	// Llega a cero: la línea desaparece y el índice se reacomoda
	cart.RemoveOrDecrement("p2", 1)
	lines := cart.Lines()
	assert.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, "p3", lines[1].ProductID)

	// Las líneas restantes siguen siendo direccionables tras el reindex
	cart.AddLine("p3", 1, "")
	assert.Equal(t, 3, cart.Lines()[1].Quantity)
}

func TestCart_RemoveInexistenteEsNoOp(t *testing.T) {
	cart := NewCart()
	cart.AddLine("p1", 1, "")
	cart.RemoveOrDecrement("px", 1)
	cart.RemoveOrDecrement("p1", 0)
	assert.Len(t, cart.Lines(), 1)
	assert.Equal(t, 1, cart.Lines()[0].Quantity)
}

func TestCart_VacioTrasDescartarTodo(t *testing.T) {
	cart := CartFromRequest([]dto.OrderItemRequest{
		{ProductID: "p1", Quantity: 0},
	})
	assert.True(t, cart.IsEmpty())
}
