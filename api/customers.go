package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Customer mirrors the backend's customer record.
type Customer struct {
	CustomerCode       string  `json:"customer_code"`
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	Email              *string `json:"email,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	DateOfBirth        *string `json:"date_of_birth,omitempty"`
	LicenseNumber      *string `json:"license_number,omitempty"`
	CountryOfResidence *string `json:"country_of_residence,omitempty"`
	IsLoyaltyMember    bool    `json:"is_loyalty_member"`
}

// FullName joins first and last name for display.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CustomerUpdate is a partial customer edit; nil fields are left unchanged.
type CustomerUpdate struct {
	FirstName          *string `json:"first_name,omitempty"`
	LastName           *string `json:"last_name,omitempty"`
	Email              *string `json:"email,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	DateOfBirth        *string `json:"date_of_birth,omitempty"`
	LicenseNumber      *string `json:"license_number,omitempty"`
	CountryOfResidence *string `json:"country_of_residence,omitempty"`
	IsLoyaltyMember    *bool   `json:"is_loyalty_member,omitempty"`
}

// Customers lists all customers.
func (c *Client) Customers(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	if err := c.do(ctx, http.MethodGet, "/customers/", nil, nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// CreateCustomer registers a new customer. The backend assigns the customer
// code when none is provided.
func (c *Client) CreateCustomer(ctx context.Context, customer Customer) (*Customer, error) {
	var created Customer
	if err := c.do(ctx, http.MethodPost, "/customers/", nil, customer, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCustomer applies a partial edit to the customer with the given code.
func (c *Client) UpdateCustomer(ctx context.Context, code string, update CustomerUpdate) (*Customer, error) {
	var updated Customer
	path := fmt.Sprintf("/customers/%s", url.PathEscape(code))
	if err := c.do(ctx, http.MethodPut, path, nil, update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCustomer removes the customer with the given code.
func (c *Client) DeleteCustomer(ctx context.Context, code string) error {
	path := fmt.Sprintf("/customers/%s", url.PathEscape(code))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
