// Package analytics wraps the backend's /admin-analytics endpoints: the
// aggregated dashboard plus the individual sales, product, vendor, and
// order breakdowns it is built from.
package analytics

import (
	"context"
	"net/url"
	"strconv"

	"github.com/vendaro/admin-console/api"
)

// Client calls the admin analytics endpoints.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// GlobalSales fetches revenue and order counts for today, this month, this
// year, and all time.
func (c *Client) GlobalSales(ctx context.Context) (*GlobalSales, error) {
	var out GlobalSales
	if err := c.api.Get(ctx, "/admin-analytics/global-sales", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MostSoldProducts fetches the top products by sales count.
func (c *Client) MostSoldProducts(ctx context.Context, limit int) ([]MostSoldProduct, error) {
	var out []MostSoldProduct
	if err := c.api.Get(ctx, "/admin-analytics/most-sold-products", limitQuery(limit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SalesByCategory fetches sales totals grouped by product category.
func (c *Client) SalesByCategory(ctx context.Context) ([]CategorySales, error) {
	var out []CategorySales
	if err := c.api.Get(ctx, "/admin-analytics/sales-by-category", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SalesByVendorCategory fetches sales totals grouped by vendor category.
func (c *Client) SalesByVendorCategory(ctx context.Context) ([]VendorCategorySales, error) {
	var out []VendorCategorySales
	if err := c.api.Get(ctx, "/admin-analytics/sales-by-vendor-category", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TopVendors fetches the best performing vendors by total sales.
func (c *Client) TopVendors(ctx context.Context, limit int) ([]TopVendor, error) {
	var out []TopVendor
	if err := c.api.Get(ctx, "/admin-analytics/top-vendors", limitQuery(limit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecentOrders fetches the most recent orders across all vendors.
func (c *Client) RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error) {
	var out []RecentOrder
	if err := c.api.Get(ctx, "/admin-analytics/recent-orders", limitQuery(limit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Dashboard fetches the complete aggregated dashboard in one call.
func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	var out Dashboard
	if err := c.api.Get(ctx, "/admin-analytics/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Vendors fetches the vendor listing the analytics backend maintains.
func (c *Client) Vendors(ctx context.Context, page, limit int) (*VendorsPage, error) {
	var out VendorsPage
	if err := c.api.Get(ctx, "/admin-analytics/vendors", api.PageQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VendorProfile fetches a vendor's detailed analytics profile.
func (c *Client) VendorProfile(ctx context.Context, vendorID string) (*VendorProfile, error) {
	var out VendorProfile
	if err := c.api.Get(ctx, "/admin-analytics/vendors/"+vendorID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func limitQuery(limit int) url.Values {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	return params
}
