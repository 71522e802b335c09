package httpserver

import (
	"context"
	"io"
	"log"

	"uchef/internal/cart"
	"uchef/internal/checkout"
	"uchef/internal/domain"
	mealsvc "uchef/internal/service/meal"
	ordersvc "uchef/internal/service/order"
	restaurantsvc "uchef/internal/service/restaurant"
	reviewsvc "uchef/internal/service/review"
	usersvc "uchef/internal/service/user"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubUserSvc struct {
	user      *domain.User
	signupErr error
	loginErr  error
	lookupErr error
}

func (s *stubUserSvc) Signup(_ context.Context, _ usersvc.SignupInput) (*domain.User, error) {
	return s.user, s.signupErr
}

func (s *stubUserSvc) Login(_ context.Context, _, _ string) (*domain.User, string, string, error) {
	if s.loginErr != nil {
		return nil, "", "", s.loginErr
	}
	return s.user, "access", "refresh", nil
}

func (s *stubUserSvc) LookupByToken(_ context.Context, _ string) (*domain.User, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.user, nil
}

func (s *stubUserSvc) Logout(_ context.Context, _ string) error { return nil }

func (s *stubUserSvc) UpdateProfile(_ context.Context, _ string, _ usersvc.UpdateProfileInput) (*domain.User, error) {
	return s.user, nil
}

func (s *stubUserSvc) List(_ context.Context) ([]domain.User, error) { return nil, nil }

func (s *stubUserSvc) Delete(_ context.Context, _ string) error { return nil }

func (s *stubUserSvc) AccessTTLSeconds() int { return 3600 }

type stubRestaurantSvc struct {
	restaurant *domain.Restaurant
	getErr     error

	lastListAll bool
}

func (s *stubRestaurantSvc) Register(_ context.Context, _ string, _ restaurantsvc.RegisterInput) (*domain.Restaurant, error) {
	return s.restaurant, nil
}

func (s *stubRestaurantSvc) Get(_ context.Context, _ string) (*domain.Restaurant, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.restaurant, nil
}

func (s *stubRestaurantSvc) GetByOwner(_ context.Context, _ string) (*domain.Restaurant, error) {
	return s.restaurant, nil
}

func (s *stubRestaurantSvc) List(_ context.Context, includeAll bool) ([]domain.Restaurant, error) {
	s.lastListAll = includeAll
	if s.restaurant == nil {
		return nil, nil
	}
	return []domain.Restaurant{*s.restaurant}, nil
}

func (s *stubRestaurantSvc) Update(_ context.Context, _, _ string, _ restaurantsvc.RegisterInput, _ bool) (*domain.Restaurant, error) {
	return s.restaurant, nil
}

func (s *stubRestaurantSvc) Approve(_ context.Context, _ string) (*domain.Restaurant, error) {
	return s.restaurant, nil
}

func (s *stubRestaurantSvc) Reject(_ context.Context, _, reason string) (*domain.Restaurant, error) {
	if reason == "" {
		return nil, restaurantsvc.ErrReasonRequired
	}
	return s.restaurant, nil
}

func (s *stubRestaurantSvc) AddIngredient(_ context.Context, _, _ string, _ restaurantsvc.IngredientInput) (*domain.Ingredient, error) {
	return &domain.Ingredient{}, nil
}

func (s *stubRestaurantSvc) ListIngredients(_ context.Context, _ string) ([]domain.Ingredient, error) {
	return nil, nil
}

func (s *stubRestaurantSvc) UpdateIngredient(_ context.Context, _, _ string, _ restaurantsvc.IngredientInput) (*domain.Ingredient, error) {
	return &domain.Ingredient{}, nil
}

func (s *stubRestaurantSvc) DeleteIngredient(_ context.Context, _, _ string) error { return nil }

type stubMealSvc struct {
	meal         *domain.Meal
	mealErr      error
	custom       *domain.CustomMeal
	customErr    error
	availability domain.AvailabilityResult
	availErr     error
	price        int64

	lastAvailRef cart.ItemRef
	lastAvailQty int
}

func (s *stubMealSvc) CreateMeal(_ context.Context, _ string, _ mealsvc.CreateMealInput) (*domain.Meal, error) {
	return s.meal, s.mealErr
}

func (s *stubMealSvc) GetMeal(_ context.Context, _ string) (*domain.Meal, error) {
	if s.mealErr != nil {
		return nil, s.mealErr
	}
	return s.meal, nil
}

func (s *stubMealSvc) ListMeals(_ context.Context, _ string, _ bool) ([]domain.Meal, error) {
	return nil, nil
}

func (s *stubMealSvc) UpdateMeal(_ context.Context, _, _ string, _ mealsvc.CreateMealInput) (*domain.Meal, error) {
	return s.meal, s.mealErr
}

func (s *stubMealSvc) DeleteMeal(_ context.Context, _, _ string) error { return s.mealErr }

func (s *stubMealSvc) CreateCategory(_ context.Context, name, description string) (*domain.MealCategory, error) {
	return &domain.MealCategory{Name: name, Description: description}, nil
}

func (s *stubMealSvc) ListCategories(_ context.Context) ([]domain.MealCategory, error) {
	return nil, nil
}

func (s *stubMealSvc) CreateCustomMeal(_ context.Context, _ string, _ mealsvc.CustomMealInput) (*domain.CustomMeal, error) {
	return s.custom, s.customErr
}

func (s *stubMealSvc) GetCustomMeal(_ context.Context, _, _ string) (*domain.CustomMeal, error) {
	if s.customErr != nil {
		return nil, s.customErr
	}
	return s.custom, nil
}

func (s *stubMealSvc) ListCustomMeals(_ context.Context, _ string) ([]domain.CustomMeal, error) {
	return nil, nil
}

func (s *stubMealSvc) DeleteCustomMeal(_ context.Context, _, _ string) error { return s.customErr }

func (s *stubMealSvc) CheckAvailability(_ context.Context, ref cart.ItemRef, quantity int) (domain.AvailabilityResult, error) {
	s.lastAvailRef = ref
	s.lastAvailQty = quantity
	return s.availability, s.availErr
}

func (s *stubMealSvc) CustomMealPriceCents(_ context.Context, _ string) (int64, error) {
	return s.price, nil
}

type stubOrderSvc struct {
	order     *domain.Order
	createErr error
	statusErr error

	lastStatus domain.OrderStatus
	lastReason string
}

func (s *stubOrderSvc) Create(_ context.Context, _ string, _ ordersvc.CreateInput) (*domain.Order, error) {
	return s.order, s.createErr
}

func (s *stubOrderSvc) Get(_ context.Context, _ *domain.User, _ string) (*domain.Order, error) {
	return s.order, nil
}

func (s *stubOrderSvc) List(_ context.Context, _ *domain.User) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderSvc) UpdateStatus(_ context.Context, _ *domain.User, _ string, next domain.OrderStatus, reason string) (*domain.Order, error) {
	s.lastStatus = next
	s.lastReason = reason
	return s.order, s.statusErr
}

type stubReviewSvc struct {
	review    *domain.Review
	createErr error
}

func (s *stubReviewSvc) Create(_ context.Context, _ string, _ reviewsvc.CreateInput) (*domain.Review, error) {
	return s.review, s.createErr
}

func (s *stubReviewSvc) ListBySubject(_ context.Context, _ domain.ReviewSubject, _ string) ([]domain.Review, error) {
	return nil, nil
}

func (s *stubReviewSvc) Summary(_ context.Context, _ domain.ReviewSubject, _ string) (*domain.RatingSummary, error) {
	return &domain.RatingSummary{}, nil
}

func (s *stubReviewSvc) Delete(_ context.Context, _, _ string) error { return nil }

type stubCheckoutSvc struct {
	order *domain.Order
	err   error

	lastUserID   string
	lastDelivery checkout.DeliveryInfo
	lastMethod   domain.PaymentMethod
}

func (s *stubCheckoutSvc) Submit(_ context.Context, userID string, _ *cart.Cart, delivery checkout.DeliveryInfo, method domain.PaymentMethod) (*domain.Order, error) {
	s.lastUserID = userID
	s.lastDelivery = delivery
	s.lastMethod = method
	return s.order, s.err
}

type stubNotificationSvc struct {
	notifications []domain.Notification
	markReadErr   error

	lastUnreadOnly bool
	lastMarkedID   string
	markedAll      bool
}

func (s *stubNotificationSvc) List(_ context.Context, _ string, unreadOnly bool) ([]domain.Notification, error) {
	s.lastUnreadOnly = unreadOnly
	return s.notifications, nil
}

func (s *stubNotificationSvc) MarkRead(_ context.Context, _, id string) (*domain.Notification, error) {
	if s.markReadErr != nil {
		return nil, s.markReadErr
	}
	s.lastMarkedID = id
	return &domain.Notification{ID: id, IsRead: true}, nil
}

func (s *stubNotificationSvc) MarkAllRead(_ context.Context, _ string) (int64, error) {
	s.markedAll = true
	return int64(len(s.notifications)), nil
}

// testDeps returns a Deps with every service stubbed so individual tests
// only override what they exercise.
func testDeps() (Deps, *stubUserSvc, *stubMealSvc, *stubOrderSvc, *stubCheckoutSvc) {
	users := &stubUserSvc{user: &domain.User{ID: "u1", Email: "u1@example.com", Role: domain.RoleCustomer}}
	meals := &stubMealSvc{}
	orders := &stubOrderSvc{}
	co := &stubCheckoutSvc{}
	deps := Deps{
		UserSvc:         users,
		RestaurantSvc:   &stubRestaurantSvc{restaurant: &domain.Restaurant{ID: "r1", Name: "Test Kitchen"}},
		MealSvc:         meals,
		OrderSvc:        orders,
		ReviewSvc:       &stubReviewSvc{review: &domain.Review{ID: "rev-1"}},
		NotificationSvc: &stubNotificationSvc{},
		Carts:           cart.NewRegistry(),
		Checkout:        co,
	}
	return deps, users, meals, orders, co
}
