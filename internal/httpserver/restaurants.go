package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uchef/internal/domain"
	restaurantsvc "uchef/internal/service/restaurant"
)

type updateRestaurantRequest struct {
	restaurantsvc.RegisterInput
	IsActive *bool `json:"isActive"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func listRestaurantsHandler(restaurants restaurantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Approved restaurants only unless an admin asks for everything.
		includeAll := c.Query("all") == "true"
		if includeAll {
			u := currentUser(c)
			if u == nil || u.Role != domain.RoleAdmin {
				includeAll = false
			}
		}

		list, err := restaurants.List(c.Request.Context(), includeAll)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func getRestaurantHandler(restaurants restaurantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := restaurants.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

func registerRestaurantHandler(restaurants restaurantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in restaurantsvc.RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err.Error())
			return
		}

		r, err := restaurants.Register(c.Request.Context(), currentUser(c).ID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, r)
	}
}

func updateRestaurantHandler(restaurants restaurantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateRestaurantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		r, err := restaurants.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), req.RegisterInput, isActive)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

func approveRestaurantHandler(restaurants restaurantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := restaurants.Approve(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

func rejectRestaurantHandler(restaurants restaurantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req rejectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		r, err := restaurants.Reject(c.Request.Context(), c.Param("id"), req.Reason)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

func listIngredientsHandler(restaurants restaurantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := restaurants.ListIngredients(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func addIngredientHandler(restaurants restaurantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in restaurantsvc.IngredientInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err.Error())
			return
		}

		ing, err := restaurants.AddIngredient(c.Request.Context(), currentUser(c).ID, c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, ing)
	}
}

func updateIngredientHandler(restaurants restaurantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in restaurantsvc.IngredientInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err.Error())
			return
		}

		ing, err := restaurants.UpdateIngredient(c.Request.Context(), currentUser(c).ID, c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, ing)
	}
}

func deleteIngredientHandler(restaurants restaurantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := restaurants.DeleteIngredient(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
