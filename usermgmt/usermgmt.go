// Package usermgmt wraps the backend's user moderation endpoints:
// listing, suspension, and blocking of customer accounts.
package usermgmt

import (
	"context"
	"net/url"
	"time"

	"github.com/vendaro/admin-console/api"
	"github.com/vendaro/admin-console/internal/utils"
)

// User is a customer account as seen by moderation.
type User struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone,omitempty"`
	AvatarURL        *string `json:"avatarUrl,omitempty"`
	IsVerified       bool    `json:"isVerified"`
	IsBlocked        bool    `json:"isBlocked"`
	IsSuspended      bool    `json:"isSuspended"`
	SuspendedUntil   *string `json:"suspendedUntil,omitempty"`
	SuspensionReason *string `json:"suspensionReason,omitempty"`
	BlockedAt        *string `json:"blockedAt,omitempty"`
	BlockReason      *string `json:"blockReason,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
	LastLogin        *string `json:"lastLogin,omitempty"`
	Count            struct {
		Orders    int `json:"orders"`
		Addresses int `json:"addresses"`
	} `json:"_count"`
}

// UserDetails extends User with the account's addresses and order history.
type UserDetails struct {
	User
	Addresses []struct {
		ID       string `json:"id"`
		City     string `json:"city"`
		Street   string `json:"street"`
		Building string `json:"building"`
		Landmark string `json:"landmark"`
	} `json:"addresses"`
	Orders []struct {
		ID          string  `json:"id"`
		OrderNumber string  `json:"orderNumber"`
		Status      string  `json:"status"`
		TotalAmount float64 `json:"totalAmount"`
		CreatedAt   string  `json:"createdAt"`
	} `json:"orders"`
}

// Page is one page of the user listing.
type Page struct {
	Users      []User         `json:"users"`
	Pagination api.Pagination `json:"pagination"`
}

// ListQuery filters the user listing. Zero values are omitted from the
// request.
type ListQuery struct {
	Page        string
	Limit       string
	IsBlocked   string
	IsSuspended string
	Search      string
}

func (q ListQuery) values() url.Values {
	params := url.Values{}
	set := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}
	set("page", q.Page)
	set("limit", q.Limit)
	set("isBlocked", q.IsBlocked)
	set("isSuspended", q.IsSuspended)
	set("search", q.Search)
	return params
}

// SuspendRequest carries the suspension parameters: a duration tag the
// backend understands (e.g. "7d") and a reason shown to the user.
type SuspendRequest struct {
	Duration string `json:"duration"`
	Reason   string `json:"reason"`
}

// CheckSuspensionsResult reports how many expired suspensions were lifted.
type CheckSuspensionsResult struct {
	Message          string `json:"message"`
	UnsuspendedUsers int    `json:"unsuspendedUsers"`
}

// Client calls the user moderation endpoints.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// Users fetches customer accounts matching the query.
func (c *Client) Users(ctx context.Context, query ListQuery) (*Page, error) {
	var out Page
	if err := c.api.Get(ctx, "/users/admin/all", query.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// User fetches a customer's full moderation record.
func (c *Client) User(ctx context.Context, userID string) (*UserDetails, error) {
	var out UserDetails
	if err := c.api.Get(ctx, "/users/admin/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Suspend suspends a customer account for a duration.
func (c *Client) Suspend(ctx context.Context, userID string, req SuspendRequest) (*User, error) {
	var out User
	if err := c.api.Put(ctx, "/users/admin/"+userID+"/suspend", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Unsuspend lifts a suspension.
func (c *Client) Unsuspend(ctx context.Context, userID string) (*User, error) {
	var out User
	if err := c.api.Put(ctx, "/users/admin/"+userID+"/unsuspend", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Block blocks a customer account.
func (c *Client) Block(ctx context.Context, userID, reason string) (*User, error) {
	var out User
	body := map[string]string{"reason": reason}
	if err := c.api.Put(ctx, "/users/admin/"+userID+"/block", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Unblock unblocks a customer account. The reason is optional.
func (c *Client) Unblock(ctx context.Context, userID, reason string) (*User, error) {
	body := map[string]string{}
	if reason != "" {
		body["reason"] = reason
	}
	var out User
	if err := c.api.Put(ctx, "/users/admin/"+userID+"/unblock", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckSuspensions asks the backend to lift any expired suspensions.
func (c *Client) CheckSuspensions(ctx context.Context) (*CheckSuspensionsResult, error) {
	var out CheckSuspensionsResult
	if err := c.api.Post(ctx, "/users/admin/check-suspensions", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Status summarises an account's moderation state for display.
func Status(u User) string {
	switch {
	case u.IsBlocked:
		return "Blocked"
	case u.IsSuspended:
		return "Suspended"
	case u.IsVerified:
		return "Verified"
	default:
		return "Unverified"
	}
}

// SuspensionExpired reports whether a suspension has run out but not yet
// been lifted by the backend.
func SuspensionExpired(u User, now time.Time) bool {
	if !u.IsSuspended || u.SuspendedUntil == nil {
		return false
	}
	until, err := time.Parse(time.RFC3339, utils.Value(u.SuspendedUntil))
	if err != nil {
		return false
	}
	return !until.After(now)
}
