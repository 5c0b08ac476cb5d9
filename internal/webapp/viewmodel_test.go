package webapp

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/example/ecommerce/internal/dto"
)

func TestProductVMImageURL(t *testing.T) {
	imageID := uuid.New()
	vm := NewProductVM(dto.Product{
		ID:           uuid.New(),
		Name:         "Colombian Roast",
		CountryNames: []string{"Colombia", "Brazil"},
		ImageIDs:     []uuid.UUID{imageID},
	})

	assert.Equal(t, "/images/"+imageID.String(), vm.ImageURL)
	assert.Equal(t, "Colombia, Brazil", vm.CountryNames)

	noImage := NewProductVM(dto.Product{Name: "Plain"})
	assert.Empty(t, noImage.ImageURL)
}

func TestProductVMHasCountry(t *testing.T) {
	colombia := uuid.New()
	vm := NewProductVM(dto.Product{CountryIDs: []uuid.UUID{colombia}})

	assert.True(t, vm.HasCountry(colombia.String()))
	assert.False(t, vm.HasCountry(uuid.New().String()))
}

func TestProductListVMPageBounds(t *testing.T) {
	vm := NewProductListVM(nil, 25, 2, 10)
	assert.Equal(t, 3, vm.TotalPages)
	assert.True(t, vm.HasPrev())
	assert.True(t, vm.HasNext())

	first := NewProductListVM(nil, 25, 1, 10)
	assert.False(t, first.HasPrev())

	last := NewProductListVM(nil, 25, 3, 10)
	assert.False(t, last.HasNext())

	empty := NewProductListVM(nil, 0, 1, 10)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasPrev())
	assert.False(t, empty.HasNext())
}

func TestOrderVMFormatsTimestamp(t *testing.T) {
	vm := NewOrderVM(dto.Order{
		ProductName: "Colombian Roast",
		OrderedAt:   time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC),
	})

	assert.Equal(t, "14 Mar 2025 09:30", vm.OrderedAt)
}

func TestCustomerVMFullName(t *testing.T) {
	vm := NewCustomerVM(dto.UserWithOrders{
		Username: "alice",
		Name:     "Alice",
		Surname:  "Smith",
		Orders:   []dto.Order{{}, {}},
	})
	assert.Equal(t, "Alice Smith", vm.FullName)
	assert.Equal(t, 2, vm.OrderCount)

	bare := NewCustomerVM(dto.UserWithOrders{Username: "bob"})
	assert.Empty(t, bare.FullName)
}
