package domain

import "time"

// Table statuses.
const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableReserved  = "reserved"
	TableCleaning  = "cleaning"
)

// Payment methods.
const (
	PaymentCash = "Cash"
	PaymentQRIS = "QRIS"
)

func ValidTableStatus(s string) bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved, TableCleaning:
		return true
	}
	return false
}

// Order is one completed sale. It is immutable once written; daily closing is
// the only operation that removes it again.
type Order struct {
	ID            int64    `json:"id"`
	Table         string   `json:"table"`
	Items         []string `json:"items"`
	Subtotal      int      `json:"subtotal"`
	TaxAndService int      `json:"taxAndService"`
	Total         int      `json:"total"`
	Status        string   `json:"status"`
	Time          string   `json:"time"`
	Date          string   `json:"date"`
	Cashier       string   `json:"cashier"`
	PaymentMethod string   `json:"paymentMethod"`
	AmountPaid    int      `json:"amountPaid,omitempty"`
	Change        int      `json:"change,omitempty"`
}

type Table struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Capacity int    `json:"capacity"`
	// CurrentOrder is informational only; the checkout path does not maintain it.
	CurrentOrder int64 `json:"currentOrder,omitempty"`
}

type MenuItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
}

// CartLine is one menu item plus quantity inside an uncommitted cart.
type CartLine struct {
	MenuItem
	Quantity int `json:"quantity"`
}

// Bill is the receipt value object produced on payment completion.
type Bill struct {
	Order
	OrderItems   []CartLine `json:"orderItems"`
	CustomerCopy bool       `json:"customerCopy"`
}

type ItemCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DailyStats struct {
	Date          string      `json:"date"`
	Orders        []Order     `json:"orders"`
	TotalRevenue  int         `json:"totalRevenue"`
	TotalOrders   int         `json:"totalOrders"`
	AvgOrderValue float64     `json:"avgOrderValue"`
	CashOrders    int         `json:"cashOrders"`
	QRISOrders    int         `json:"qrisOrders"`
	CashTotal     int         `json:"cashTotal"`
	QRISTotal     int         `json:"qrisTotal"`
	TopItems      []ItemCount `json:"topItems"`
}

// ClosedDay is the archive record returned by daily closing. It lives only in
// the caller's memory; closing removes the day's orders from the shared store.
type ClosedDay struct {
	Date         string  `json:"date"`
	Orders       []Order `json:"orders"`
	TotalRevenue int     `json:"totalRevenue"`
	TotalOrders  int     `json:"totalOrders"`
}

// Session identifies the operator; it is passed explicitly into the checkout
// workflow instead of being read from ambient state.
type Session struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// OrderEvent is the message published to the order feed after a checkout commit.
type OrderEvent struct {
	Type          string    `json:"type"`
	OrderID       int64     `json:"order_id"`
	Table         string    `json:"table"`
	Total         int       `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	Cashier       string    `json:"cashier"`
	Timestamp     time.Time `json:"timestamp"`
}

const EventOrderCompleted = "order_completed"

// DefaultMenu is the demo menu offered to the cashier screen.
var DefaultMenu = []MenuItem{
	{ID: 1, Name: "Burger", Price: 45000, Category: "Main", Stock: 25},
	{ID: 2, Name: "Pizza", Price: 85000, Category: "Main", Stock: 15},
	{ID: 3, Name: "Salad", Price: 35000, Category: "Appetizer", Stock: 30},
	{ID: 4, Name: "Coffee", Price: 15000, Category: "Beverage", Stock: 50},
	{ID: 5, Name: "Cake", Price: 25000, Category: "Dessert", Stock: 12},
	{ID: 6, Name: "Sandwich", Price: 40000, Category: "Main", Stock: 20},
	{ID: 7, Name: "Juice", Price: 20000, Category: "Beverage", Stock: 35},
}
