package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uchef/internal/cart"
	mealsvc "uchef/internal/service/meal"
)

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func listMealsHandler(meals mealService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := meals.ListMeals(c.Request.Context(), c.Query("restaurant"), c.Query("featured") == "true")
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func getMealHandler(meals mealService) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := meals.GetMeal(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

func createMealHandler(meals mealService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in mealsvc.CreateMealInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err.Error())
			return
		}

		m, err := meals.CreateMeal(c.Request.Context(), currentUser(c).ID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

func updateMealHandler(meals mealService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in mealsvc.CreateMealInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err.Error())
			return
		}

		m, err := meals.UpdateMeal(c.Request.Context(), currentUser(c).ID, c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

func deleteMealHandler(meals mealService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := meals.DeleteMeal(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func mealAvailabilityHandler(meals mealService) gin.HandlerFunc {
	return availabilityHandler(meals, cart.KindRegular)
}

func customMealAvailabilityHandler(meals mealService) gin.HandlerFunc {
	return availabilityHandler(meals, cart.KindCustom)
}

func availabilityHandler(meals mealService, kind cart.ItemKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		quantity := 1
		if q := c.Query("quantity"); q != "" {
			n, err := strconv.Atoi(q)
			if err != nil || n < 1 {
				badRequest(c, "quantity must be a positive integer")
				return
			}
			quantity = n
		}

		res, err := meals.CheckAvailability(c.Request.Context(), cart.ItemRef{Kind: kind, ID: c.Param("id")}, quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func listCategoriesHandler(meals mealService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := meals.ListCategories(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func createCategoryHandler(meals mealService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		cat, err := meals.CreateCategory(c.Request.Context(), req.Name, req.Description)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}
