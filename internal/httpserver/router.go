package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"uchef/internal/cart"
	"uchef/internal/checkout"
	"uchef/internal/domain"
	mealsvc "uchef/internal/service/meal"
	ordersvc "uchef/internal/service/order"
	restaurantsvc "uchef/internal/service/restaurant"
	reviewsvc "uchef/internal/service/review"
	usersvc "uchef/internal/service/user"
)

type userService interface {
	Signup(ctx context.Context, in usersvc.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, userID string) error
	UpdateProfile(ctx context.Context, userID string, in usersvc.UpdateProfileInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
	AccessTTLSeconds() int
}

type restaurantService interface {
	Register(ctx context.Context, ownerID string, in restaurantsvc.RegisterInput) (*domain.Restaurant, error)
	Get(ctx context.Context, id string) (*domain.Restaurant, error)
	GetByOwner(ctx context.Context, ownerID string) (*domain.Restaurant, error)
	List(ctx context.Context, includeAll bool) ([]domain.Restaurant, error)
	Update(ctx context.Context, ownerID, id string, in restaurantsvc.RegisterInput, isActive bool) (*domain.Restaurant, error)
	Approve(ctx context.Context, id string) (*domain.Restaurant, error)
	Reject(ctx context.Context, id, reason string) (*domain.Restaurant, error)
	AddIngredient(ctx context.Context, ownerID, restaurantID string, in restaurantsvc.IngredientInput) (*domain.Ingredient, error)
	ListIngredients(ctx context.Context, restaurantID string) ([]domain.Ingredient, error)
	UpdateIngredient(ctx context.Context, ownerID, ingredientID string, in restaurantsvc.IngredientInput) (*domain.Ingredient, error)
	DeleteIngredient(ctx context.Context, ownerID, ingredientID string) error
}

type mealService interface {
	CreateMeal(ctx context.Context, ownerID string, in mealsvc.CreateMealInput) (*domain.Meal, error)
	GetMeal(ctx context.Context, id string) (*domain.Meal, error)
	ListMeals(ctx context.Context, restaurantID string, featuredOnly bool) ([]domain.Meal, error)
	UpdateMeal(ctx context.Context, ownerID, mealID string, in mealsvc.CreateMealInput) (*domain.Meal, error)
	DeleteMeal(ctx context.Context, ownerID, mealID string) error
	CreateCategory(ctx context.Context, name, description string) (*domain.MealCategory, error)
	ListCategories(ctx context.Context) ([]domain.MealCategory, error)
	CreateCustomMeal(ctx context.Context, userID string, in mealsvc.CustomMealInput) (*domain.CustomMeal, error)
	GetCustomMeal(ctx context.Context, userID, id string) (*domain.CustomMeal, error)
	ListCustomMeals(ctx context.Context, userID string) ([]domain.CustomMeal, error)
	DeleteCustomMeal(ctx context.Context, userID, id string) error
	CheckAvailability(ctx context.Context, ref cart.ItemRef, quantity int) (domain.AvailabilityResult, error)
	CustomMealPriceCents(ctx context.Context, customMealID string) (int64, error)
}

type orderService interface {
	Create(ctx context.Context, userID string, in ordersvc.CreateInput) (*domain.Order, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.Order, error)
	List(ctx context.Context, actor *domain.User) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, actor *domain.User, id string, next domain.OrderStatus, reason string) (*domain.Order, error)
}

type reviewService interface {
	Create(ctx context.Context, userID string, in reviewsvc.CreateInput) (*domain.Review, error)
	ListBySubject(ctx context.Context, subject domain.ReviewSubject, subjectID string) ([]domain.Review, error)
	Summary(ctx context.Context, subject domain.ReviewSubject, subjectID string) (*domain.RatingSummary, error)
	Delete(ctx context.Context, id, userID string) error
}

type notificationService interface {
	List(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type checkoutService interface {
	Submit(ctx context.Context, userID string, c *cart.Cart, delivery checkout.DeliveryInfo, method domain.PaymentMethod) (*domain.Order, error)
}

// Deps carries the services the router depends on.
type Deps struct {
	UserSvc         userService
	RestaurantSvc   restaurantService
	MealSvc         mealService
	OrderSvc        orderService
	ReviewSvc       reviewService
	NotificationSvc notificationService
	Carts           *cart.Registry
	Checkout        checkoutService
}

func (d Deps) validate() error {
	switch {
	case d.UserSvc == nil:
		return errors.New("httpserver: UserSvc is required")
	case d.RestaurantSvc == nil:
		return errors.New("httpserver: RestaurantSvc is required")
	case d.MealSvc == nil:
		return errors.New("httpserver: MealSvc is required")
	case d.OrderSvc == nil:
		return errors.New("httpserver: OrderSvc is required")
	case d.ReviewSvc == nil:
		return errors.New("httpserver: ReviewSvc is required")
	case d.NotificationSvc == nil:
		return errors.New("httpserver: NotificationSvc is required")
	case d.Carts == nil:
		return errors.New("httpserver: Carts is required")
	case d.Checkout == nil:
		return errors.New("httpserver: Checkout is required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsCfg.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/signup", signupHandler(deps.UserSvc))
	router.POST("/login", loginHandler(deps.UserSvc))

	router.GET("/restaurants", optionalAuth(deps.UserSvc), listRestaurantsHandler(deps.RestaurantSvc))
	router.GET("/restaurants/:id", getRestaurantHandler(deps.RestaurantSvc))
	router.GET("/restaurants/:id/ingredients", listIngredientsHandler(deps.RestaurantSvc))
	router.GET("/meals", listMealsHandler(deps.MealSvc))
	router.GET("/meals/:id", getMealHandler(deps.MealSvc))
	router.GET("/meals/:id/check_availability", mealAvailabilityHandler(deps.MealSvc))
	router.GET("/meal-categories", listCategoriesHandler(deps.MealSvc))

	router.GET("/restaurant-reviews", listReviewsHandler(deps.ReviewSvc, domain.ReviewRestaurant))
	router.GET("/meal-reviews", listReviewsHandler(deps.ReviewSvc, domain.ReviewMeal))
	router.GET("/custom-meal-reviews", listReviewsHandler(deps.ReviewSvc, domain.ReviewCustomMeal))

	authed := router.Group("", authMiddleware(deps.UserSvc))
	{
		authed.GET("/me", meHandler)
		authed.PATCH("/me", updateProfileHandler(deps.UserSvc))
		authed.POST("/logout", logoutHandler(deps.UserSvc, deps.Carts))

		authed.POST("/restaurants", requireRole(domain.RoleRestaurant), registerRestaurantHandler(deps.RestaurantSvc))
		authed.PATCH("/restaurants/:id", requireRole(domain.RoleRestaurant), updateRestaurantHandler(deps.RestaurantSvc))
		authed.POST("/restaurants/:id/ingredients", requireRole(domain.RoleRestaurant), addIngredientHandler(deps.RestaurantSvc))
		authed.PATCH("/ingredients/:id", requireRole(domain.RoleRestaurant), updateIngredientHandler(deps.RestaurantSvc))
		authed.DELETE("/ingredients/:id", requireRole(domain.RoleRestaurant), deleteIngredientHandler(deps.RestaurantSvc))

		authed.POST("/meals", requireRole(domain.RoleRestaurant), createMealHandler(deps.MealSvc))
		authed.PATCH("/meals/:id", requireRole(domain.RoleRestaurant), updateMealHandler(deps.MealSvc))
		authed.DELETE("/meals/:id", requireRole(domain.RoleRestaurant), deleteMealHandler(deps.MealSvc))

		authed.GET("/custom-meals", listCustomMealsHandler(deps.MealSvc))
		authed.POST("/custom-meals", createCustomMealHandler(deps.MealSvc))
		authed.GET("/custom-meals/:id", getCustomMealHandler(deps.MealSvc))
		authed.DELETE("/custom-meals/:id", deleteCustomMealHandler(deps.MealSvc))
		authed.GET("/custom-meals/:id/ingredients", customMealIngredientsHandler(deps.MealSvc))
		authed.GET("/custom-meals/:id/price", customMealPriceHandler(deps.MealSvc))
		authed.GET("/custom-meals/:id/check_availability", customMealAvailabilityHandler(deps.MealSvc))

		authed.GET("/cart", getCartHandler(deps.Carts))
		authed.POST("/cart/items", addCartItemHandler(deps.Carts, deps.MealSvc, deps.RestaurantSvc))
		authed.PATCH("/cart/items", updateCartItemHandler(deps.Carts))
		authed.DELETE("/cart/items/:kind/:id", removeCartItemHandler(deps.Carts))
		authed.DELETE("/cart", clearCartHandler(deps.Carts))

		authed.POST("/checkout", checkoutHandler(deps.Carts, deps.Checkout))

		authed.POST("/orders", createOrderHandler(deps.OrderSvc))
		authed.GET("/orders", listOrdersHandler(deps.OrderSvc))
		authed.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
		authed.POST("/orders/:id/update_status", updateOrderStatusHandler(deps.OrderSvc))

		authed.GET("/notifications", listNotificationsHandler(deps.NotificationSvc))
		authed.POST("/notifications/:id/read", markNotificationReadHandler(deps.NotificationSvc))
		authed.POST("/notifications/read_all", markAllNotificationsReadHandler(deps.NotificationSvc))

		authed.POST("/restaurant-reviews", createReviewHandler(deps.ReviewSvc, domain.ReviewRestaurant))
		authed.POST("/meal-reviews", createReviewHandler(deps.ReviewSvc, domain.ReviewMeal))
		authed.POST("/custom-meal-reviews", createReviewHandler(deps.ReviewSvc, domain.ReviewCustomMeal))
		authed.DELETE("/reviews/:id", deleteReviewHandler(deps.ReviewSvc))

		admin := authed.Group("", requireRole(domain.RoleAdmin))
		{
			admin.POST("/restaurants/:id/approve", approveRestaurantHandler(deps.RestaurantSvc))
			admin.POST("/restaurants/:id/reject", rejectRestaurantHandler(deps.RestaurantSvc))
			admin.POST("/meal-categories", createCategoryHandler(deps.MealSvc))
			admin.GET("/users", listUsersHandler(deps.UserSvc))
			admin.DELETE("/users/:id", deleteUserHandler(deps.UserSvc))
		}
	}

	return router, nil
}
