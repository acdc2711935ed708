package service

import (
	"context"
	"errors"
	"log"
	"time"

	"restaurant-pos/internal/domain"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrNoTableSelected     = errors.New("no table selected")
	ErrInsufficientPayment = errors.New("amount paid is below the order total")
)

// DefaultQRISDelay is how long the simulated payment gateway takes to confirm.
const DefaultQRISDelay = 3 * time.Second

// Checkout commits one immutable order per completed payment. Nothing is
// written before the payment succeeds, so a rejected or cancelled payment
// needs no rollback.
type Checkout struct {
	orders    OrderRepository
	tables    TableRepository
	publisher EventPublisher
	qr        QRGenerator

	// Now and QRISDelay are injection points for tests.
	Now       func() time.Time
	QRISDelay time.Duration
}

var _ CheckoutInterface = (*Checkout)(nil)

func NewCheckout(orders OrderRepository, tables TableRepository, publisher EventPublisher, qr QRGenerator) *Checkout {
	return &Checkout{
		orders:    orders,
		tables:    tables,
		publisher: publisher,
		qr:        qr,
		Now:       time.Now,
		QRISDelay: DefaultQRISDelay,
	}
}

// PayCash completes a cash payment. An amount below the total is rejected
// before anything is written; change is amountPaid minus total.
func (c *Checkout) PayCash(ctx context.Context, session domain.Session, cart *Cart, table string, amountPaid int) (*domain.Bill, error) {
	if err := readyForPayment(cart, table); err != nil {
		return nil, err
	}
	total := cart.Total()
	if amountPaid < total {
		return nil, ErrInsufficientPayment
	}
	return c.commit(ctx, session, cart, table, domain.PaymentCash, amountPaid, amountPaid-total)
}

// PayQRIS completes a QRIS payment. The simulated gateway always confirms
// after a fixed delay; no failure branch is modeled. The wait is cancellable
// through ctx, but once confirmation arrives the commit runs to completion
// regardless of cancellation.
func (c *Checkout) PayQRIS(ctx context.Context, session domain.Session, cart *Cart, table string) (*domain.Bill, error) {
	if err := readyForPayment(cart, table); err != nil {
		return nil, err
	}

	timer := time.NewTimer(c.QRISDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	total := cart.Total()
	return c.commit(context.WithoutCancel(ctx), session, cart, table, domain.PaymentQRIS, total, 0)
}

// QRISCode renders the QR image shown to the customer before payment.
func (c *Checkout) QRISCode(table string, total int) ([]byte, error) {
	return c.qr.Generate(table, total)
}

func readyForPayment(cart *Cart, table string) error {
	if cart == nil || cart.Empty() {
		return ErrEmptyCart
	}
	if table == "" {
		return ErrNoTableSelected
	}
	return nil
}

func (c *Checkout) commit(ctx context.Context, session domain.Session, cart *Cart, table, method string, amountPaid, change int) (*domain.Bill, error) {
	now := c.Now()
	order := domain.Order{
		ID:            now.UnixMilli(),
		Table:         table,
		Items:         cart.ItemsSummary(),
		Subtotal:      cart.Subtotal(),
		TaxAndService: cart.TaxAndService(),
		Total:         cart.Total(),
		Status:        "completed",
		Time:          now.Format("3:04 PM"),
		Date:          now.Format("2006-01-02"),
		Cashier:       session.Username,
		PaymentMethod: method,
		AmountPaid:    amountPaid,
		Change:        change,
	}

	if err := c.orders.Append(ctx, order); err != nil {
		return nil, err
	}
	c.occupyTable(ctx, table)

	if c.publisher != nil {
		event := domain.OrderEvent{
			Type:          domain.EventOrderCompleted,
			OrderID:       order.ID,
			Table:         order.Table,
			Total:         order.Total,
			PaymentMethod: order.PaymentMethod,
			Cashier:       order.Cashier,
			Timestamp:     now,
		}
		if err := c.publisher.PublishOrderCompleted(ctx, event); err != nil {
			log.Printf("checkout: publishing order event for %d failed: %v", order.ID, err)
		}
	}

	bill := &domain.Bill{Order: order, OrderItems: cart.Lines(), CustomerCopy: true}
	cart.Clear()
	return bill, nil
}

// occupyTable marks the order's table occupied. Orders reference tables by
// name with no enforced existence check, so an unknown name is only logged.
func (c *Checkout) occupyTable(ctx context.Context, name string) {
	tables, err := c.tables.List(ctx)
	if err != nil {
		log.Printf("checkout: could not load tables to occupy %q: %v", name, err)
		return
	}
	for _, t := range tables {
		if t.Name == name {
			if err := c.tables.UpdateStatus(ctx, t.ID, domain.TableOccupied); err != nil {
				log.Printf("checkout: could not mark table %q occupied: %v", name, err)
			}
			return
		}
	}
	log.Printf("checkout: order committed against unknown table %q", name)
}
