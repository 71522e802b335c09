package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mealsvc "uchef/internal/service/meal"
)

func listCustomMealsHandler(meals mealService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := meals.ListCustomMeals(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func createCustomMealHandler(meals mealService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in mealsvc.CustomMealInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err.Error())
			return
		}

		m, err := meals.CreateCustomMeal(c.Request.Context(), currentUser(c).ID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

func getCustomMealHandler(meals mealService) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := meals.GetCustomMeal(c.Request.Context(), currentUser(c).ID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

func deleteCustomMealHandler(meals mealService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := meals.DeleteCustomMeal(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func customMealIngredientsHandler(meals mealService) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := meals.GetCustomMeal(c.Request.Context(), currentUser(c).ID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, m.Ingredients)
	}
}

func customMealPriceHandler(meals mealService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Ownership/visibility check happens through the same lookup the
		// other custom meal endpoints use.
		if _, err := meals.GetCustomMeal(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		price, err := meals.CustomMealPriceCents(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"totalPriceCents": price})
	}
}
