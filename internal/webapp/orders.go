package webapp

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/ecommerce/internal/apiclient"
	"github.com/example/ecommerce/internal/dto"
)

// OrdersHandler owns the order pages: placing orders from the storefront,
// the visitor's own history, and the admin customer overview.
type OrdersHandler struct {
	api *apiclient.Client
}

func NewOrdersHandler(api *apiclient.Client) *OrdersHandler {
	return &OrdersHandler{api: api}
}

func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.FormValue("product_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	paymentMethod := c.FormValue("payment_method")
	if paymentMethod == "" {
		paymentMethod = "card"
	}

	_, err = h.api.WithToken(bearerToken(c)).CreateOrder(dto.CreateOrderRequest{
		ProductID:     productID,
		PaymentMethod: paymentMethod,
		Notes:         c.FormValue("notes"),
	})
	if err != nil {
		return err
	}

	return c.Redirect("/orders/mine")
}

// Mine lists the visitor's own orders. The account is re-resolved by email
// through the API, and the API enforces the same scoping server-side.
func (h *OrdersHandler) Mine(c *fiber.Ctx) error {
	identity, _ := CurrentIdentity(c)
	client := h.api.WithToken(identity.Token)

	user, err := client.UserByEmail(identity.Email)
	if err != nil {
		return err
	}

	orders, err := client.UserOrders(user.ID)
	if err != nil {
		return err
	}

	return render(c, "orders/mine", fiber.Map{"Orders": NewOrderVMs(orders)})
}

func (h *OrdersHandler) Customers(c *fiber.Ctx) error {
	users, err := h.api.WithToken(bearerToken(c)).UsersWithOrders()
	if err != nil {
		return err
	}

	return render(c, "orders/customers", fiber.Map{"Customers": NewCustomerVMs(users)})
}
