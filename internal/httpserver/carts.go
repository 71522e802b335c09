package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uchef/internal/cart"
	"uchef/internal/checkout"
	"uchef/internal/domain"
)

type addCartItemRequest struct {
	Kind                cart.ItemKind `json:"kind" binding:"required"`
	ID                  string        `json:"id" binding:"required"`
	Quantity            int           `json:"quantity"`
	SpecialInstructions string        `json:"specialInstructions"`
}

type updateCartItemRequest struct {
	Kind     cart.ItemKind `json:"kind" binding:"required"`
	ID       string        `json:"id" binding:"required"`
	Quantity int           `json:"quantity"`
}

type checkoutRequest struct {
	DeliveryAddress string               `json:"deliveryAddress" binding:"required"`
	DeliveryNotes   string               `json:"deliveryNotes"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod" binding:"required"`
}

func getCartHandler(carts *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, carts.ForUser(currentUser(c).ID).Snapshot())
	}
}

// addCartItemHandler resolves the line's display name and price server-side
// before it enters the cart, so a client can never put its own price on a
// line.
func addCartItemHandler(carts *cart.Registry, meals mealService, restaurants restaurantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if !cart.ValidKind(req.Kind) {
			badRequest(c, "kind must be regular or custom")
			return
		}

		ctx := c.Request.Context()
		user := currentUser(c)
		line := cart.LineItem{
			Ref:                 cart.ItemRef{Kind: req.Kind, ID: req.ID},
			Quantity:            req.Quantity,
			SpecialInstructions: req.SpecialInstructions,
		}

		var restaurantID string
		switch req.Kind {
		case cart.KindRegular:
			m, err := meals.GetMeal(ctx, req.ID)
			if err != nil {
				respondError(c, err)
				return
			}
			line.Name = m.Name
			line.UnitPriceCents = m.BasePriceCents
			line.ImageURL = m.ImageURL
			restaurantID = m.RestaurantID
		case cart.KindCustom:
			m, err := meals.GetCustomMeal(ctx, user.ID, req.ID)
			if err != nil {
				respondError(c, err)
				return
			}
			line.Name = m.Name
			line.UnitPriceCents = m.PriceCents()
			restaurantID = m.RestaurantID
		}

		r, err := restaurants.Get(ctx, restaurantID)
		if err != nil {
			respondError(c, err)
			return
		}

		userCart := carts.ForUser(user.ID)
		userCart.AddItem(line, r.ID, r.Name)
		c.JSON(http.StatusOK, userCart.Snapshot())
	}
}

func updateCartItemHandler(carts *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		userCart := carts.ForUser(currentUser(c).ID)
		userCart.UpdateQuantity(cart.ItemRef{Kind: req.Kind, ID: req.ID}, req.Quantity)
		c.JSON(http.StatusOK, userCart.Snapshot())
	}
}

func removeCartItemHandler(carts *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := cart.ItemKind(c.Param("kind"))
		if !cart.ValidKind(kind) {
			badRequest(c, "kind must be regular or custom")
			return
		}

		userCart := carts.ForUser(currentUser(c).ID)
		userCart.RemoveItem(cart.ItemRef{Kind: kind, ID: c.Param("id")})
		c.JSON(http.StatusOK, userCart.Snapshot())
	}
}

func clearCartHandler(carts *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		carts.ForUser(currentUser(c).ID).Clear()
		c.Status(http.StatusNoContent)
	}
}

func checkoutHandler(carts *cart.Registry, checkoutSvc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		user := currentUser(c)
		order, err := checkoutSvc.Submit(
			c.Request.Context(),
			user.ID,
			carts.ForUser(user.ID),
			checkout.DeliveryInfo{Address: req.DeliveryAddress, Notes: req.DeliveryNotes},
			req.PaymentMethod,
		)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}
