package analytics

import "github.com/vendaro/admin-console/api"

// PeriodSales is revenue plus order count over one reporting window.
type PeriodSales struct {
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// GlobalSales breaks marketplace-wide sales down by reporting window.
type GlobalSales struct {
	Today     PeriodSales `json:"today"`
	ThisMonth PeriodSales `json:"thisMonth"`
	ThisYear  PeriodSales `json:"thisYear"`
	Total     PeriodSales `json:"total"`
}

// CategoryRef identifies a product or vendor category.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VendorRef identifies the vendor an order or product belongs to.
type VendorRef struct {
	ID           string `json:"id"`
	BusinessName string `json:"businessName"`
	Name         string `json:"name"`
}

// UserRef identifies the customer that placed an order.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type MostSoldProduct struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Price         float64     `json:"price"`
	SalesCount    int         `json:"salesCount"`
	StockQuantity int         `json:"stockQuantity"`
	IsActive      bool        `json:"isActive"`
	CreatedAt     string      `json:"createdAt"`
	Vendor        VendorRef   `json:"vendor"`
	Category      CategoryRef `json:"category"`
}

type CategorySales struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	TotalSales   float64 `json:"totalSales"`
	ProductCount int     `json:"productCount"`
}

type VendorCategorySales struct {
	CategoryID    string  `json:"categoryId"`
	CategoryName  string  `json:"categoryName"`
	TotalSales    float64 `json:"totalSales"`
	VendorCount   int     `json:"vendorCount"`
	TotalProducts int     `json:"totalProducts"`
	TotalOrders   int     `json:"totalOrders"`
}

type TopVendor struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	BusinessName   string      `json:"businessName"`
	Email          string      `json:"email"`
	IsApproved     bool        `json:"isApproved"`
	Rating         float64     `json:"rating"`
	TotalSales     float64     `json:"totalSales"`
	CreatedAt      string      `json:"createdAt"`
	VendorCategory CategoryRef `json:"vendorCategory"`
	Count          struct {
		Products int `json:"products"`
		Orders   int `json:"orders"`
	} `json:"_count"`
}

type RecentOrderItem struct {
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"totalPrice"`
	Product    struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"product"`
}

type RecentOrder struct {
	ID          string            `json:"id"`
	OrderNumber string            `json:"orderNumber"`
	Status      string            `json:"status"`
	FinalAmount float64           `json:"finalAmount"`
	CreatedAt   string            `json:"createdAt"`
	User        UserRef           `json:"user"`
	Vendor      VendorRef         `json:"vendor"`
	Items       []RecentOrderItem `json:"items"`
}

// Totals is the headline entity counts shown on the dashboard cards.
type Totals struct {
	Users    int `json:"users"`
	Vendors  int `json:"vendors"`
	Products int `json:"products"`
	Orders   int `json:"orders"`
}

// Dashboard is the complete aggregated dashboard payload.
type Dashboard struct {
	GlobalSales           GlobalSales           `json:"globalSales"`
	MostSoldProducts      []MostSoldProduct     `json:"mostSoldProducts"`
	SalesByCategory       []CategorySales       `json:"salesByCategory"`
	SalesByVendorCategory []VendorCategorySales `json:"salesByVendorCategory"`
	TopVendors            []TopVendor           `json:"topVendors"`
	RecentOrders          []RecentOrder         `json:"recentOrders"`
	Totals                Totals                `json:"totals"`
	LastUpdated           string                `json:"lastUpdated"`
}

// VendorsPage is one page of the analytics vendor listing.
type VendorsPage struct {
	Vendors    []TopVendor    `json:"vendors"`
	Pagination api.Pagination `json:"pagination"`
}

// VendorProfileProduct is a product row in a vendor's analytics profile.
type VendorProfileProduct struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Price         float64     `json:"price"`
	SalesCount    int         `json:"salesCount"`
	StockQuantity int         `json:"stockQuantity"`
	IsActive      bool        `json:"isActive"`
	CreatedAt     string      `json:"createdAt"`
	Category      CategoryRef `json:"category"`
}

// VendorProfile is the detailed per-vendor analytics view: the vendor
// record plus its products and orders.
type VendorProfile struct {
	TopVendor
	BusinessDescription string                 `json:"businessDescription,omitempty"`
	Address             string                 `json:"address,omitempty"`
	Phone               string                 `json:"phone,omitempty"`
	IsVerified          bool                   `json:"isVerified"`
	UpdatedAt           string                 `json:"updatedAt"`
	Products            []VendorProfileProduct `json:"products"`
	Orders              []RecentOrder          `json:"orders"`
}
