package service

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"bakery-storefront/internal/models"
)

const orderIDSpace = 1_000_000

// IDGenerator produces order identifiers of the form ORD-NNNNNN.
type IDGenerator interface {
	NextID() string
}

// SequenceIDGenerator hands out ids from a counter that starts at a random
// offset and wraps after 999999. Ids never repeat within one process until
// the whole space is used.
type SequenceIDGenerator struct {
	mu   sync.Mutex
	next int
}

func NewSequenceIDGenerator() *SequenceIDGenerator {
	return &SequenceIDGenerator{next: rand.IntN(orderIDSpace)}
}

func (g *SequenceIDGenerator) NextID() string {
	g.mu.Lock()
	n := g.next
	g.next = (g.next + 1) % orderIDSpace
	g.mu.Unlock()

	return fmt.Sprintf("ORD-%06d", n)
}

// Assembler turns a cart snapshot and customer details into an Order.
// It never touches the cart itself.
type Assembler struct {
	ids IDGenerator
	now func() time.Time
}

func NewAssembler(ids IDGenerator) *Assembler {
	return &Assembler{ids: ids, now: time.Now}
}

// Submit builds the order. The snapshot is deep-copied so later cart
// changes cannot reach the order.
func (a *Assembler) Submit(snapshot []models.CartLine, details models.CustomerDetails, method models.PaymentMethod) models.Order {
	items := models.CopyLines(snapshot)
	for i := range items {
		items[i].CatalogItem = items[i].CatalogItem.Priced()
	}

	return models.Order{
		ID:            a.ids.NextID(),
		Items:         items,
		Total:         models.LinesTotal(items),
		Customer:      details,
		PaymentMethod: method,
		Timestamp:     a.now().UTC().Truncate(time.Millisecond),
	}
}
