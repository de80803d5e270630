package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"shopeasy/internal/adapter/api"
	"shopeasy/internal/adapter/api/handler"
	apimiddleware "shopeasy/internal/adapter/api/middleware"
	"shopeasy/internal/adapter/api/router"
	"shopeasy/internal/adapter/repository"
	"shopeasy/internal/infrastructure/firebase"
	"shopeasy/internal/usecase"
	"shopeasy/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	fbAuth, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	authClient := firebase.NewAuthClient(fbAuth)
	identity := firebase.NewRequestIdentity(authClient)

	catalogRepo := repository.NewFirestoreCatalogRepository(firestoreClient)
	gateway := repository.NewFirestoreDocumentGateway(firestoreClient, identity, cfg.GatewayRetries, cfg.GatewayBackoff)

	cartUseCase := usecase.NewCartUseCase(gateway, catalogRepo)
	wishlistUseCase := usecase.NewWishlistUseCase(gateway, catalogRepo)
	orderUseCase := usecase.NewOrderUseCase(gateway, catalogRepo, cartUseCase)

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	limiter := apimiddleware.NewRateLimiter()
	limiter.StartCleanup()

	router.Setup(
		e,
		authMiddleware,
		handler.NewProductHandler(catalogRepo),
		handler.NewCartHandler(cartUseCase, catalogRepo),
		handler.NewWishlistHandler(wishlistUseCase),
		handler.NewOrderHandler(orderUseCase),
		handler.NewAuthHandler(identity),
		limiter,
	)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
