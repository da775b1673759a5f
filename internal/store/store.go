// Package store holds the local mock store data: a mutable product catalog
// plus read-only order and analytics fixtures. This is deliberately a
// separate read model from the remote Shopify catalog, which is queried live
// through the agent and never cached locally.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ProductStatus is the lifecycle state of a local product.
type ProductStatus string

const (
	StatusActive     ProductStatus = "active"
	StatusOutOfStock ProductStatus = "out_of_stock"
	StatusArchived   ProductStatus = "archived"
)

// Product is a local mock catalog entry.
type Product struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Price       float64       `json:"price"`
	Inventory   int           `json:"inventory"`
	Status      ProductStatus `json:"status"`
	Sales       int           `json:"sales"`
	Image       string        `json:"image"` // emoji, URL or data URI
	SKU         string        `json:"sku"`
	Category    string        `json:"category"`
	Description string        `json:"description,omitempty"`
}

// OrderStatus is the lifecycle state of a mock order.
type OrderStatus string

const (
	OrderFulfilled  OrderStatus = "fulfilled"
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCancelled  OrderStatus = "cancelled"
)

// Order is a read-only mock order.
type Order struct {
	ID       string      `json:"id"`
	Customer string      `json:"customer"`
	Total    float64     `json:"total"`
	Status   OrderStatus `json:"status"`
	Date     string      `json:"date"`
	Items    []string    `json:"items"`
}

// MonthlySales is one month's sales figure for the dashboard chart.
type MonthlySales struct {
	Name  string  `json:"name"`
	Sales float64 `json:"sales"`
}

// CategoryShare is one slice of the category distribution chart.
type CategoryShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Analytics is the read-only dashboard snapshot.
type Analytics struct {
	TodaySales           float64         `json:"todaySales"`
	TodayOrders          int             `json:"todayOrders"`
	ConversionRate       float64         `json:"conversionRate"`
	TopProduct           string          `json:"topProduct"`
	MonthlySalesData     []MonthlySales  `json:"monthlySalesData,omitempty"`
	CategoryDistribution []CategoryShare `json:"categoryDistribution,omitempty"`
}

// lowStockThreshold marks a product as needing attention.
const lowStockThreshold = 10

// Store is the in-memory mock store. Products may be appended through the
// conversational add-product flow; orders and analytics never change after
// seeding.
type Store struct {
	mu        sync.Mutex
	products  []Product
	orders    []Order
	analytics Analytics
}

// New creates a store seeded with the demo fixture.
func New() *Store {
	return &Store{
		products:  seedProducts(),
		orders:    seedOrders(),
		analytics: seedAnalytics(),
	}
}

// Products returns a snapshot of the current product catalog.
func (s *Store) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// Orders returns the order fixture.
func (s *Store) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Analytics returns the dashboard snapshot.
func (s *Store) Analytics() Analytics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analytics
}

// ProductCount returns the number of products in the catalog.
func (s *Store) ProductCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

// NewProduct describes a product to add. ID and SKU are allocated by the
// store.
type NewProduct struct {
	Name        string
	Price       float64
	Inventory   int
	Status      ProductStatus
	Image       string
	Category    string
	Description string
}

// AddProduct appends a product to the catalog, allocating the next id
// (max existing id + 1, or 1 when the catalog is empty) and a time-derived
// SKU. Returns the stored product.
func (s *Store) AddProduct(p NewProduct) Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := 0
	for _, existing := range s.products {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}

	product := Product{
		ID:          maxID + 1,
		Name:        p.Name,
		Price:       p.Price,
		Inventory:   p.Inventory,
		Status:      p.Status,
		Sales:       0,
		Image:       p.Image,
		SKU:         generateSKU(),
		Category:    p.Category,
		Description: p.Description,
	}
	s.products = append(s.products, product)
	log.Info().Int("id", product.ID).Str("name", product.Name).Msg("product added to mock catalog")
	return product
}

// LowStockProducts returns active products below the low-stock threshold.
func (s *Store) LowStockProducts() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Product
	for _, p := range s.products {
		if p.Inventory < lowStockThreshold && p.Status == StatusActive {
			out = append(out, p)
		}
	}
	return out
}

// PendingOrders returns orders still awaiting fulfilment.
func (s *Store) PendingOrders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Order
	for _, o := range s.orders {
		if o.Status == OrderPending || o.Status == OrderProcessing {
			out = append(out, o)
		}
	}
	return out
}

// StatusSummary composes the free-text store status used as input to the
// next-steps suggestion flow.
func (s *Store) StatusSummary() string {
	s.mu.Lock()
	lowStock := 0
	for _, p := range s.products {
		if p.Inventory < lowStockThreshold {
			lowStock++
		}
	}
	a := s.analytics
	s.mu.Unlock()

	return fmt.Sprintf("Sales: $%.2f, Orders: %d, Conversion: %.1f%%. Top product: %s. %d products low on stock.",
		a.TodaySales, a.TodayOrders, a.ConversionRate, a.TopProduct, lowStock)
}

func generateSKU() string {
	ms := fmt.Sprintf("%d", time.Now().UnixMilli())
	return "SKU-" + ms[len(ms)-5:]
}
