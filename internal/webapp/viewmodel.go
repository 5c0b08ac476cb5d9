// Package webapp is the server-rendered front end. It never touches the
// database: every page is built from API responses fetched with the
// visitor's own bearer token.
package webapp

import (
	"fmt"
	"strings"

	"github.com/example/ecommerce/internal/dto"
)

// ProductVM is a product row shaped for templates.
type ProductVM struct {
	ID           string
	Name         string
	Description  string
	Price        float64
	CategoryID   string
	CategoryName string
	CountryIDs   []string
	CountryNames string
	ImageURL     string
}

func NewProductVM(p dto.Product) ProductVM {
	vm := ProductVM{
		ID:           p.ID.String(),
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		CategoryID:   p.CategoryID.String(),
		CategoryName: p.CategoryName,
		CountryNames: strings.Join(p.CountryNames, ", "),
	}

	for _, id := range p.CountryIDs {
		vm.CountryIDs = append(vm.CountryIDs, id.String())
	}

	// The front end proxies image bytes so the browser never needs the API
	// origin.
	if len(p.ImageIDs) > 0 {
		vm.ImageURL = "/images/" + p.ImageIDs[0].String()
	}

	return vm
}

func NewProductVMs(products []dto.Product) []ProductVM {
	out := make([]ProductVM, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductVM(p))
	}
	return out
}

// HasCountry reports whether the product ships from the given country.
// Used by the edit form to pre-select options.
func (vm ProductVM) HasCountry(id string) bool {
	for _, c := range vm.CountryIDs {
		if c == id {
			return true
		}
	}
	return false
}

// ProductListVM is the paged browse/manage page.
type ProductListVM struct {
	Products   []ProductVM
	Categories []CategoryVM
	Search     string
	CategoryID string
	Page       int
	TotalPages int
	PrevPage   int
	NextPage   int
}

func (vm ProductListVM) HasPrev() bool { return vm.Page > 1 }
func (vm ProductListVM) HasNext() bool { return vm.Page < vm.TotalPages }

// NewProductListVM computes page bounds from the unpaged total reported by
// the API's X-Total-Count header.
func NewProductListVM(products []dto.Product, total, page, pageSize int) ProductListVM {
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	return ProductListVM{
		Products:   NewProductVMs(products),
		Page:       page,
		TotalPages: totalPages,
		PrevPage:   page - 1,
		NextPage:   page + 1,
	}
}

type CategoryVM struct {
	ID   string
	Name string
}

func NewCategoryVMs(categories []dto.Category) []CategoryVM {
	out := make([]CategoryVM, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryVM{ID: c.ID.String(), Name: c.Name})
	}
	return out
}

type CountryVM struct {
	ID   string
	Name string
}

func NewCountryVMs(countries []dto.Country) []CountryVM {
	out := make([]CountryVM, 0, len(countries))
	for _, c := range countries {
		out = append(out, CountryVM{ID: c.ID.String(), Name: c.Name})
	}
	return out
}

// OrderVM is an order row on the "my orders" and customer pages.
type OrderVM struct {
	ProductName   string
	OrderedAt     string
	PaymentMethod string
	Notes         string
}

func NewOrderVM(o dto.Order) OrderVM {
	return OrderVM{
		ProductName:   o.ProductName,
		OrderedAt:     o.OrderedAt.Format("02 Jan 2006 15:04"),
		PaymentMethod: o.PaymentMethod,
		Notes:         o.Notes,
	}
}

func NewOrderVMs(orders []dto.Order) []OrderVM {
	out := make([]OrderVM, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderVM(o))
	}
	return out
}

// CustomerVM is one user with their order history on the admin page.
type CustomerVM struct {
	Username   string
	FullName   string
	Role       string
	OrderCount int
	Orders     []OrderVM
}

func NewCustomerVM(u dto.UserWithOrders) CustomerVM {
	fullName := strings.TrimSpace(fmt.Sprintf("%s %s", u.Name, u.Surname))
	return CustomerVM{
		Username:   u.Username,
		FullName:   fullName,
		Role:       u.Role,
		OrderCount: len(u.Orders),
		Orders:     NewOrderVMs(u.Orders),
	}
}

func NewCustomerVMs(users []dto.UserWithOrders) []CustomerVM {
	out := make([]CustomerVM, 0, len(users))
	for _, u := range users {
		out = append(out, NewCustomerVM(u))
	}
	return out
}

// ProfileVM is the account page.
type ProfileVM struct {
	Username string
	Email    string
	Name     string
	Surname  string
	Phone    string
	Role     string
}

func NewProfileVM(u dto.User) ProfileVM {
	return ProfileVM{
		Username: u.Username,
		Email:    u.Email,
		Name:     u.Name,
		Surname:  u.Surname,
		Phone:    u.Phone,
		Role:     u.Role,
	}
}
