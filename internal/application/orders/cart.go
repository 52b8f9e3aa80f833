package orders

import "github.com/comandapos/comanda-api/internal/application/dto"

// CartLine una línea del carrito, clave por producto.
type CartLine struct {
	ProductID string
	Quantity  int
	Note      string
}

// Cart carrito del mesero antes de enviar la comanda. Mantiene una línea por
// producto; las cantidades se acumulan y una cantidad que llega a cero elimina la línea.
type Cart struct {
	lines []CartLine
	index map[string]int // productID -> posición en lines
}

// NewCart construye un carrito vacío.
func NewCart() *Cart {
	return &Cart{index: make(map[string]int)}
}

// CartFromRequest arma un carrito desde las líneas del request, fusionando
// duplicados y descartando cantidades no positivas.
func CartFromRequest(items []dto.OrderItemRequest) *Cart {
	c := NewCart()
	for _, it := range items {
		c.AddLine(it.ProductID, it.Quantity, it.Note)
	}
	return c
}

// AddLine agrega o acumula una línea. Cantidad <= 0 o producto vacío se descartan.
// La nota más reciente no vacía reemplaza la anterior.
func (c *Cart) AddLine(productID string, quantity int, note string) {
	if productID == "" || quantity <= 0 {
		return
	}
	if pos, ok := c.index[productID]; ok {
		c.lines[pos].Quantity += quantity
		if note != "" {
			c.lines[pos].Note = note
		}
		return
	}
	c.index[productID] = len(c.lines)
	c.lines = append(c.lines, CartLine{ProductID: productID, Quantity: quantity, Note: note})
}

// RemoveOrDecrement resta delta a la cantidad de la línea; si llega a cero o menos,
// la línea se elimina del carrito.
func (c *Cart) RemoveOrDecrement(productID string, delta int) {
	pos, ok := c.index[productID]
	if !ok || delta <= 0 {
		return
	}
	c.lines[pos].Quantity -= delta
	if c.lines[pos].Quantity > 0 {
		return
	}
	c.lines = append(c.lines[:pos], c.lines[pos+1:]...)
	delete(c.index, productID)
	for i := pos; i < len(c.lines); i++ {
		c.index[c.lines[i].ProductID] = i
	}
}

// Lines devuelve las líneas en orden de inserción.
func (c *Cart) Lines() []CartLine { return c.lines }

// IsEmpty indica si el carrito no tiene líneas.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }
