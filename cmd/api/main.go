package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"uchef/internal/cart"
	"uchef/internal/checkout"
	"uchef/internal/config"
	"uchef/internal/db"
	"uchef/internal/httpserver"
	custommealrepo "uchef/internal/repository/custommeal"
	ingredientrepo "uchef/internal/repository/ingredient"
	mealrepo "uchef/internal/repository/meal"
	notificationrepo "uchef/internal/repository/notification"
	orderrepo "uchef/internal/repository/order"
	restaurantrepo "uchef/internal/repository/restaurant"
	reviewrepo "uchef/internal/repository/review"
	tokenrepo "uchef/internal/repository/token"
	userrepo "uchef/internal/repository/user"
	mealsvc "uchef/internal/service/meal"
	notificationsvc "uchef/internal/service/notification"
	ordersvc "uchef/internal/service/order"
	restaurantsvc "uchef/internal/service/restaurant"
	reviewsvc "uchef/internal/service/review"
	usersvc "uchef/internal/service/user"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	users := userrepo.NewPostgres(dbpool, logger)
	tokens := tokenrepo.NewPostgres(dbpool)
	restaurants := restaurantrepo.NewPostgres(dbpool)
	ingredients := ingredientrepo.NewPostgres(dbpool)
	meals := mealrepo.NewPostgres(dbpool, logger)
	customMeals := custommealrepo.NewPostgres(dbpool)
	orders := orderrepo.NewPostgres(dbpool, logger)
	reviews := reviewrepo.NewPostgres(dbpool)
	notifications := notificationrepo.NewPostgres(dbpool)

	userService := usersvc.New(users, tokens)
	restaurantService := restaurantsvc.New(restaurants, ingredients)
	mealService := mealsvc.New(meals, customMeals, restaurants)
	orderService := ordersvc.New(orders, meals, customMeals, restaurants, notifications)
	reviewService := reviewsvc.New(reviews)
	notificationService := notificationsvc.New(notifications)

	carts := cart.NewRegistry()
	reconciler := checkout.New(mealService, mealService, orderService)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		UserSvc:         userService,
		RestaurantSvc:   restaurantService,
		MealSvc:         mealService,
		OrderSvc:        orderService,
		ReviewSvc:       reviewService,
		NotificationSvc: notificationService,
		Carts:           carts,
		Checkout:        reconciler,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
