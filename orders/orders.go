// Package orders wraps the backend's order management endpoints.
package orders

import (
	"context"
	"encoding/json"

	"github.com/vendaro/admin-console/api"
)

// OrderItem is a single line of an order. ProductSnapshot preserves the
// product as it was at purchase time; Product is the live record when it
// still exists.
type OrderItem struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"productId"`
	Quantity        int             `json:"quantity"`
	UnitPrice       float64         `json:"unitPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	ProductSnapshot json.RawMessage `json:"productSnapshot,omitempty"`
	Product         *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"product,omitempty"`
}

type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	UserID          string          `json:"userId"`
	VendorID        string          `json:"vendorId"`
	Status          string          `json:"status"`
	TotalAmount     float64         `json:"totalAmount"`
	FinalAmount     float64         `json:"finalAmount"`
	ShippingAddress json.RawMessage `json:"shippingAddress,omitempty"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
	User            struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	Vendor struct {
		ID           string `json:"id"`
		BusinessName string `json:"businessName"`
		Name         string `json:"name"`
	} `json:"vendor"`
	Items []OrderItem `json:"items"`
}

// Page is one page of an order listing.
type Page struct {
	Orders     []Order        `json:"orders"`
	Pagination api.Pagination `json:"pagination"`
}

// Client calls the order management endpoints.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// List fetches orders with pagination.
func (c *Client) List(ctx context.Context, page, limit int) (*Page, error) {
	var out Page
	if err := c.api.Get(ctx, "/orders", api.PageQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByStatus fetches orders filtered by status.
func (c *Client) ByStatus(ctx context.Context, status string, page, limit int) (*Page, error) {
	params := api.PageQuery(page, limit)
	params.Set("status", status)
	var out Page
	if err := c.api.Get(ctx, "/orders", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Order fetches a single order by ID.
func (c *Client) Order(ctx context.Context, orderID string) (*Order, error) {
	var out Order
	if err := c.api.Get(ctx, "/orders/"+orderID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus moves an order to a new status.
func (c *Client) UpdateStatus(ctx context.Context, orderID, status string) (*Order, error) {
	var out Order
	body := map[string]string{"status": status}
	if err := c.api.Put(ctx, "/orders/"+orderID+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel cancels an order.
func (c *Client) Cancel(ctx context.Context, orderID string) (*Order, error) {
	var out Order
	if err := c.api.Put(ctx, "/orders/"+orderID+"/cancel", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByVendor fetches a vendor's orders.
func (c *Client) ByVendor(ctx context.Context, vendorID string, page, limit int) (*Page, error) {
	var out Page
	if err := c.api.Get(ctx, "/vendors/"+vendorID+"/orders", api.PageQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByUser fetches a customer's orders.
func (c *Client) ByUser(ctx context.Context, userID string, page, limit int) (*Page, error) {
	var out Page
	if err := c.api.Get(ctx, "/users/"+userID+"/orders", api.PageQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
