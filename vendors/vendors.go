// Package vendors wraps the backend's vendor management endpoints:
// approval workflow, listings, and per-vendor products and orders.
package vendors

import (
	"context"

	"github.com/vendaro/admin-console/api"
)

// Category describes a vendor category.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// Vendor is a vendor account as seen by the approval and management views.
type Vendor struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	BusinessName        string   `json:"businessName"`
	BusinessDescription string   `json:"businessDescription,omitempty"`
	Address             string   `json:"address,omitempty"`
	Phone               string   `json:"phone,omitempty"`
	AvatarURL           string   `json:"avatarUrl,omitempty"`
	IsApproved          bool     `json:"isApproved"`
	IsVerified          bool     `json:"isVerified"`
	Rating              float64  `json:"rating"`
	TotalSales          float64  `json:"totalSales"`
	CreatedAt           string   `json:"createdAt"`
	UpdatedAt           string   `json:"updatedAt"`
	VendorCategory      Category `json:"vendorCategory"`
	Count               struct {
		Products int `json:"products"`
		Orders   int `json:"orders"`
	} `json:"_count"`
}

// ApprovalResult is the trimmed vendor record returned by the approve and
// reject endpoints.
type ApprovalResult struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	BusinessName string `json:"businessName"`
	IsApproved   bool   `json:"isApproved"`
	UpdatedAt    string `json:"updatedAt"`
}

// Page is one page of a vendor listing.
type Page struct {
	Vendors    []Vendor       `json:"vendors"`
	Pagination api.Pagination `json:"pagination"`
}

// Product is a product row in a vendor's catalogue.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	SalesCount    int      `json:"salesCount"`
	StockQuantity int      `json:"stockQuantity"`
	IsActive      bool     `json:"isActive"`
	CreatedAt     string   `json:"createdAt"`
	Category      Category `json:"category"`
}

// ProductsPage is one page of a vendor's products.
type ProductsPage struct {
	Products   []Product      `json:"products"`
	Pagination api.Pagination `json:"pagination"`
}

// Client calls the vendor management endpoints.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// List fetches vendors with pagination.
func (c *Client) List(ctx context.Context, page, limit int) (*Page, error) {
	var out Page
	if err := c.api.Get(ctx, "/vendors", api.PageQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Unapproved fetches vendors awaiting approval.
func (c *Client) Unapproved(ctx context.Context, page, limit int) (*Page, error) {
	var out Page
	if err := c.api.Get(ctx, "/vendors/unapproved", api.PageQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Vendor fetches a vendor record for review.
func (c *Client) Vendor(ctx context.Context, vendorID string) (*Vendor, error) {
	var out Vendor
	if err := c.api.Get(ctx, "/vendors/"+vendorID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Approve approves a vendor.
func (c *Client) Approve(ctx context.Context, vendorID string) (*ApprovalResult, error) {
	var out ApprovalResult
	if err := c.api.Put(ctx, "/vendors/"+vendorID+"/approve", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reject rejects a vendor's application.
func (c *Client) Reject(ctx context.Context, vendorID string) (*ApprovalResult, error) {
	var out ApprovalResult
	if err := c.api.Put(ctx, "/vendors/"+vendorID+"/reject", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus sets a vendor's approval flag directly.
func (c *Client) UpdateStatus(ctx context.Context, vendorID string, approved bool) (*Vendor, error) {
	var out Vendor
	body := map[string]bool{"isApproved": approved}
	if err := c.api.Put(ctx, "/vendors/"+vendorID, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Products fetches a vendor's product catalogue.
func (c *Client) Products(ctx context.Context, vendorID string, page, limit int) (*ProductsPage, error) {
	var out ProductsPage
	if err := c.api.Get(ctx, "/vendors/"+vendorID+"/products", api.PageQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Categories fetches all vendor categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.api.Get(ctx, "/vendor-categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
