package order

import (
	"context"
	"errors"
	"testing"

	"uchef/internal/domain"
	custommealrepo "uchef/internal/repository/custommeal"
	mealrepo "uchef/internal/repository/meal"
	orderrepo "uchef/internal/repository/order"
)

type stubNotificationRepo struct {
	created   []domain.Notification
	createErr error
}

func (s *stubNotificationRepo) Create(_ context.Context, n domain.Notification) (*domain.Notification, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, n)
	return &n, nil
}

func (s *stubNotificationRepo) ListByRecipient(_ context.Context, _ string, _ bool) ([]domain.Notification, error) {
	return nil, nil
}

func (s *stubNotificationRepo) MarkRead(_ context.Context, _, _ string) (*domain.Notification, error) {
	return nil, nil
}

func (s *stubNotificationRepo) MarkAllRead(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

type stubOrderRepo struct {
	created    *orderrepo.CreateOrderInput
	createErr  error
	order      *domain.Order
	getErr     error
	guardOrder *domain.Order
	guardErr   error

	lastGuardExpected domain.OrderStatus
	lastGuardNext     domain.OrderStatus
	lastGuardReason   string
}

func (s *stubOrderRepo) Create(_ context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error) {
	s.created = &in
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.Order{ID: "order-1", Status: domain.OrderPending, TotalPriceCents: in.TotalCents}, nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.order, nil
}

func (s *stubOrderRepo) ListByUser(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) ListByRestaurant(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) UpdateStatusGuard(_ context.Context, _ string, expected, next domain.OrderStatus, reason string) (*domain.Order, error) {
	s.lastGuardExpected = expected
	s.lastGuardNext = next
	s.lastGuardReason = reason
	if s.guardErr != nil {
		return nil, s.guardErr
	}
	return s.guardOrder, nil
}

type stubMealRepo struct {
	meal   *domain.Meal
	getErr error
}

func (s *stubMealRepo) Create(_ context.Context, _ mealrepo.CreateMealInput) (*domain.Meal, error) {
	return nil, nil
}

func (s *stubMealRepo) GetByID(_ context.Context, _ string) (*domain.Meal, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.meal, nil
}

func (s *stubMealRepo) List(_ context.Context, _ string, _ bool) ([]domain.Meal, error) {
	return nil, nil
}

func (s *stubMealRepo) Update(_ context.Context, _ domain.Meal) (*domain.Meal, error) {
	return nil, nil
}

func (s *stubMealRepo) Delete(_ context.Context, _ string) error { return nil }

func (s *stubMealRepo) CreateCategory(_ context.Context, _ domain.MealCategory) (*domain.MealCategory, error) {
	return nil, nil
}

func (s *stubMealRepo) ListCategories(_ context.Context) ([]domain.MealCategory, error) {
	return nil, nil
}

type stubCustomMealRepo struct {
	meal *domain.CustomMeal
}

func (s *stubCustomMealRepo) Create(_ context.Context, _ custommealrepo.CreateInput) (*domain.CustomMeal, error) {
	return nil, nil
}

func (s *stubCustomMealRepo) GetByID(_ context.Context, _ string) (*domain.CustomMeal, error) {
	if s.meal == nil {
		return nil, domain.ErrNotFound
	}
	return s.meal, nil
}

func (s *stubCustomMealRepo) List(_ context.Context, _ string) ([]domain.CustomMeal, error) {
	return nil, nil
}

func (s *stubCustomMealRepo) Delete(_ context.Context, _, _ string) error { return nil }

type stubRestaurantRepo struct {
	restaurant *domain.Restaurant
	ownerErr   error
}

func (s *stubRestaurantRepo) Create(_ context.Context, _ domain.Restaurant) (*domain.Restaurant, error) {
	return nil, nil
}

func (s *stubRestaurantRepo) GetByID(_ context.Context, _ string) (*domain.Restaurant, error) {
	if s.restaurant == nil {
		return nil, domain.ErrNotFound
	}
	return s.restaurant, nil
}

func (s *stubRestaurantRepo) GetByOwner(_ context.Context, _ string) (*domain.Restaurant, error) {
	if s.ownerErr != nil {
		return nil, s.ownerErr
	}
	return s.restaurant, nil
}

func (s *stubRestaurantRepo) List(_ context.Context, _ bool) ([]domain.Restaurant, error) {
	return nil, nil
}

func (s *stubRestaurantRepo) Update(_ context.Context, _ domain.Restaurant) (*domain.Restaurant, error) {
	return nil, nil
}

func (s *stubRestaurantRepo) SetApproval(_ context.Context, _ string, _ bool, _ string) (*domain.Restaurant, error) {
	return nil, nil
}

func (s *stubRestaurantRepo) Delete(_ context.Context, _ string) error { return nil }

func strptr(s string) *string { return &s }

func testMeal() *domain.Meal {
	return &domain.Meal{
		ID:             "meal-1",
		RestaurantID:   "r1",
		BasePriceCents: 1200,
		IsAvailable:    true,
		Ingredients: []domain.MealIngredient{
			{IngredientID: "ing-rice", Quantity: 2},
			{IngredientID: "ing-oil", Quantity: 0.1, IsOptional: true},
		},
	}
}

func newService(orders *stubOrderRepo, meals *stubMealRepo, customs *stubCustomMealRepo, restaurants *stubRestaurantRepo) *Service {
	if restaurants == nil {
		restaurants = &stubRestaurantRepo{restaurant: &domain.Restaurant{ID: "r1", OwnerID: "owner-1"}}
	}
	if customs == nil {
		customs = &stubCustomMealRepo{}
	}
	return New(orders, meals, customs, restaurants, &stubNotificationRepo{})
}

func TestCreateResolvesPricesAndAggregatesStock(t *testing.T) {
	orders := &stubOrderRepo{}
	meals := &stubMealRepo{meal: testMeal()}
	customs := &stubCustomMealRepo{meal: &domain.CustomMeal{
		ID:           "custom-1",
		UserID:       "u1",
		RestaurantID: "r1",
		Ingredients: []domain.CustomMealIngredient{
			{IngredientID: "ing-rice", Quantity: 1, Ingredient: &domain.Ingredient{Name: "rice", PricePerUnitCents: 150}},
			{IngredientID: "ing-salmon", Quantity: 2, Ingredient: &domain.Ingredient{Name: "salmon", PricePerUnitCents: 400}},
		},
	}}
	svc := newService(orders, meals, customs, nil)

	o, err := svc.Create(context.Background(), "u1", CreateInput{
		RestaurantID: "r1",
		Items: []ItemInput{
			{MealID: strptr("meal-1"), Quantity: 2},
			{CustomMealID: strptr("custom-1"), Quantity: 1},
		},
		DeliveryAddress: "Main st 1",
		PaymentMethod:   domain.PaymentCash,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// 2*1200 + (150 + 2*400)
	if o.TotalPriceCents != 3350 {
		t.Fatalf("total = %d, want 3350", o.TotalPriceCents)
	}

	in := orders.created
	if in == nil {
		t.Fatal("repository never called")
	}
	if in.Payment == nil || in.Payment.AmountCents != 3350 || in.Payment.Method != domain.PaymentCash {
		t.Fatalf("unexpected payment %+v", in.Payment)
	}
	// Rice is needed by both lines: 2*2 from the meal plus 1 from the custom
	// meal. Optional oil never reaches the stock list.
	if len(in.Stock) != 2 {
		t.Fatalf("expected 2 stock lines, got %+v", in.Stock)
	}
	if in.Stock[0].IngredientID != "ing-rice" || in.Stock[0].Amount != 5 {
		t.Fatalf("unexpected rice line %+v", in.Stock[0])
	}
	if in.Stock[1].IngredientID != "ing-salmon" || in.Stock[1].Amount != 2 {
		t.Fatalf("unexpected salmon line %+v", in.Stock[1])
	}
}

func TestCreateRejectsBadItems(t *testing.T) {
	svc := newService(&stubOrderRepo{}, &stubMealRepo{meal: testMeal()}, nil, nil)

	cases := []struct {
		name string
		item ItemInput
	}{
		{"both refs", ItemInput{MealID: strptr("meal-1"), CustomMealID: strptr("custom-1"), Quantity: 1}},
		{"no refs", ItemInput{Quantity: 1}},
		{"zero quantity", ItemInput{MealID: strptr("meal-1")}},
	}
	for _, tc := range cases {
		_, err := svc.Create(context.Background(), "u1", CreateInput{
			RestaurantID:    "r1",
			Items:           []ItemInput{tc.item},
			DeliveryAddress: "Main st 1",
			PaymentMethod:   domain.PaymentCash,
		})
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestCreateRejectsMealFromAnotherRestaurant(t *testing.T) {
	meal := testMeal()
	meal.RestaurantID = "r2"
	svc := newService(&stubOrderRepo{}, &stubMealRepo{meal: meal}, nil, nil)

	_, err := svc.Create(context.Background(), "u1", CreateInput{
		RestaurantID:    "r1",
		Items:           []ItemInput{{MealID: strptr("meal-1"), Quantity: 1}},
		DeliveryAddress: "Main st 1",
		PaymentMethod:   domain.PaymentCash,
	})
	if err == nil {
		t.Fatal("expected cross-restaurant meal to be rejected")
	}
}

func TestCreatePropagatesInsufficientStock(t *testing.T) {
	orders := &stubOrderRepo{createErr: orderrepo.ErrInsufficientStock}
	svc := newService(orders, &stubMealRepo{meal: testMeal()}, nil, nil)

	_, err := svc.Create(context.Background(), "u1", CreateInput{
		RestaurantID:    "r1",
		Items:           []ItemInput{{MealID: strptr("meal-1"), Quantity: 1}},
		DeliveryAddress: "Main st 1",
		PaymentMethod:   domain.PaymentCash,
	})
	if !errors.Is(err, orderrepo.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestUpdateStatusFollowsStateMachine(t *testing.T) {
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin}

	cases := []struct {
		from domain.OrderStatus
		to   domain.OrderStatus
		ok   bool
	}{
		{domain.OrderPending, domain.OrderConfirmed, true},
		{domain.OrderConfirmed, domain.OrderPreparing, true},
		{domain.OrderPreparing, domain.OrderReady, true},
		{domain.OrderReady, domain.OrderDelivered, true},
		{domain.OrderPending, domain.OrderReady, false},
		{domain.OrderDelivered, domain.OrderPending, false},
		{domain.OrderCancelled, domain.OrderConfirmed, false},
		{domain.OrderReady, domain.OrderCancelled, false},
	}
	for _, tc := range cases {
		orders := &stubOrderRepo{
			order:      &domain.Order{ID: "o1", UserID: "u1", RestaurantID: "r1", Status: tc.from},
			guardOrder: &domain.Order{ID: "o1", Status: tc.to},
		}
		svc := newService(orders, &stubMealRepo{}, nil, nil)

		_, err := svc.UpdateStatus(context.Background(), admin, "o1", tc.to, "")
		if tc.ok && err != nil {
			t.Fatalf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("%s -> %s: expected ErrInvalidTransition, got %v", tc.from, tc.to, err)
		}
		if tc.ok && orders.lastGuardExpected != tc.from {
			t.Fatalf("guard must use the observed status, got %s", orders.lastGuardExpected)
		}
	}
}

func TestUpdateStatusCancellationRequiresReason(t *testing.T) {
	orders := &stubOrderRepo{
		order:      &domain.Order{ID: "o1", UserID: "u1", RestaurantID: "r1", Status: domain.OrderPending},
		guardOrder: &domain.Order{ID: "o1", Status: domain.OrderCancelled},
	}
	svc := newService(orders, &stubMealRepo{}, nil, nil)
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin}

	if _, err := svc.UpdateStatus(context.Background(), admin, "o1", domain.OrderCancelled, "  "); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), admin, "o1", domain.OrderCancelled, "out of stock"); err != nil {
		t.Fatalf("cancel with reason: %v", err)
	}
	if orders.lastGuardReason != "out of stock" {
		t.Fatalf("reason not forwarded, got %q", orders.lastGuardReason)
	}
}

func TestUpdateStatusCustomerMayOnlyCancelOwnOrder(t *testing.T) {
	orders := &stubOrderRepo{
		order:      &domain.Order{ID: "o1", UserID: "u1", RestaurantID: "r1", Status: domain.OrderPending},
		guardOrder: &domain.Order{ID: "o1", Status: domain.OrderCancelled},
	}
	svc := newService(orders, &stubMealRepo{}, nil, nil)

	owner := &domain.User{ID: "u1", Role: domain.RoleCustomer}
	if _, err := svc.UpdateStatus(context.Background(), owner, "o1", domain.OrderConfirmed, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("customer confirming: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), owner, "o1", domain.OrderCancelled, "changed my mind"); err != nil {
		t.Fatalf("customer cancelling own order: %v", err)
	}

	stranger := &domain.User{ID: "u2", Role: domain.RoleCustomer}
	if _, err := svc.UpdateStatus(context.Background(), stranger, "o1", domain.OrderCancelled, "nope"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger: expected ErrForbidden, got %v", err)
	}
}

func TestUpdateStatusPropagatesStaleStatus(t *testing.T) {
	orders := &stubOrderRepo{
		order:    &domain.Order{ID: "o1", UserID: "u1", RestaurantID: "r1", Status: domain.OrderPending},
		guardErr: orderrepo.ErrStaleStatus,
	}
	svc := newService(orders, &stubMealRepo{}, nil, nil)
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin}

	if _, err := svc.UpdateStatus(context.Background(), admin, "o1", domain.OrderConfirmed, ""); !errors.Is(err, orderrepo.ErrStaleStatus) {
		t.Fatalf("expected ErrStaleStatus, got %v", err)
	}
}

func TestCreateNotifiesRestaurantOwner(t *testing.T) {
	orders := &stubOrderRepo{}
	restaurants := &stubRestaurantRepo{restaurant: &domain.Restaurant{ID: "r1", OwnerID: "owner-1", Name: "Rice Corner"}}
	notifications := &stubNotificationRepo{}
	svc := New(orders, &stubMealRepo{meal: testMeal()}, &stubCustomMealRepo{}, restaurants, notifications)

	if _, err := svc.Create(context.Background(), "u1", CreateInput{
		RestaurantID:    "r1",
		Items:           []ItemInput{{MealID: strptr("meal-1"), Quantity: 1}},
		DeliveryAddress: "Main st 1",
		PaymentMethod:   domain.PaymentCash,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(notifications.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications.created))
	}
	n := notifications.created[0]
	if n.RecipientID != "owner-1" || n.Kind != domain.NotificationNewOrder {
		t.Fatalf("unexpected notification %+v", n)
	}
	if n.OrderID == nil || *n.OrderID != "order-1" {
		t.Fatalf("notification must reference the order, got %+v", n.OrderID)
	}
}

func TestCreateSkipsNotificationWhenOrderFails(t *testing.T) {
	orders := &stubOrderRepo{createErr: orderrepo.ErrInsufficientStock}
	notifications := &stubNotificationRepo{}
	restaurants := &stubRestaurantRepo{restaurant: &domain.Restaurant{ID: "r1", OwnerID: "owner-1"}}
	svc := New(orders, &stubMealRepo{meal: testMeal()}, &stubCustomMealRepo{}, restaurants, notifications)

	_, err := svc.Create(context.Background(), "u1", CreateInput{
		RestaurantID:    "r1",
		Items:           []ItemInput{{MealID: strptr("meal-1"), Quantity: 1}},
		DeliveryAddress: "Main st 1",
		PaymentMethod:   domain.PaymentCash,
	})
	if !errors.Is(err, orderrepo.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if len(notifications.created) != 0 {
		t.Fatalf("failed order must not notify, got %+v", notifications.created)
	}
}

func TestCreateSucceedsWhenNotificationWriteFails(t *testing.T) {
	orders := &stubOrderRepo{}
	notifications := &stubNotificationRepo{createErr: errors.New("boom")}
	restaurants := &stubRestaurantRepo{restaurant: &domain.Restaurant{ID: "r1", OwnerID: "owner-1"}}
	svc := New(orders, &stubMealRepo{meal: testMeal()}, &stubCustomMealRepo{}, restaurants, notifications)

	o, err := svc.Create(context.Background(), "u1", CreateInput{
		RestaurantID:    "r1",
		Items:           []ItemInput{{MealID: strptr("meal-1"), Quantity: 1}},
		DeliveryAddress: "Main st 1",
		PaymentMethod:   domain.PaymentCash,
	})
	if err != nil || o == nil {
		t.Fatalf("order must survive a notification failure, got %v", err)
	}
}

func TestUpdateStatusNotifiesCustomer(t *testing.T) {
	orders := &stubOrderRepo{
		order:      &domain.Order{ID: "o1", UserID: "u1", RestaurantID: "r1", Status: domain.OrderPending},
		guardOrder: &domain.Order{ID: "o1", UserID: "u1", RestaurantID: "r1", Status: domain.OrderConfirmed},
	}
	restaurants := &stubRestaurantRepo{restaurant: &domain.Restaurant{ID: "r1", OwnerID: "owner-1"}}
	notifications := &stubNotificationRepo{}
	svc := New(orders, &stubMealRepo{}, &stubCustomMealRepo{}, restaurants, notifications)

	owner := &domain.User{ID: "owner-1", Role: domain.RoleRestaurant}
	if _, err := svc.UpdateStatus(context.Background(), owner, "o1", domain.OrderConfirmed, ""); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if len(notifications.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications.created))
	}
	n := notifications.created[0]
	if n.RecipientID != "u1" || n.Kind != domain.NotificationStatusUpdate {
		t.Fatalf("unexpected notification %+v", n)
	}
}

func TestCustomerCancellationNotifiesRestaurantOwner(t *testing.T) {
	orders := &stubOrderRepo{
		order:      &domain.Order{ID: "o1", UserID: "u1", RestaurantID: "r1", Status: domain.OrderPending},
		guardOrder: &domain.Order{ID: "o1", UserID: "u1", RestaurantID: "r1", Status: domain.OrderCancelled},
	}
	restaurants := &stubRestaurantRepo{restaurant: &domain.Restaurant{ID: "r1", OwnerID: "owner-1"}}
	notifications := &stubNotificationRepo{}
	svc := New(orders, &stubMealRepo{}, &stubCustomMealRepo{}, restaurants, notifications)

	customer := &domain.User{ID: "u1", Role: domain.RoleCustomer}
	if _, err := svc.UpdateStatus(context.Background(), customer, "o1", domain.OrderCancelled, "changed my mind"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if len(notifications.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications.created))
	}
	n := notifications.created[0]
	if n.RecipientID != "owner-1" || n.Kind != domain.NotificationOrderCancelled {
		t.Fatalf("unexpected notification %+v", n)
	}
	if n.SenderID == nil || *n.SenderID != "u1" {
		t.Fatalf("cancellation must name the customer as sender, got %+v", n.SenderID)
	}
}

func TestGetScopesByActor(t *testing.T) {
	order := &domain.Order{ID: "o1", UserID: "u1", RestaurantID: "r1"}
	orders := &stubOrderRepo{order: order}
	restaurants := &stubRestaurantRepo{restaurant: &domain.Restaurant{ID: "r1", OwnerID: "owner-1"}}
	svc := New(orders, &stubMealRepo{}, &stubCustomMealRepo{}, restaurants, &stubNotificationRepo{})

	for _, actor := range []*domain.User{
		{ID: "u1", Role: domain.RoleCustomer},
		{ID: "owner-1", Role: domain.RoleRestaurant},
		{ID: "a1", Role: domain.RoleAdmin},
	} {
		if _, err := svc.Get(context.Background(), actor, "o1"); err != nil {
			t.Fatalf("%s should see the order: %v", actor.Role, err)
		}
	}

	if _, err := svc.Get(context.Background(), &domain.User{ID: "u2", Role: domain.RoleCustomer}, "o1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
