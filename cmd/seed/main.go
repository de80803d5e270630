package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"shopeasy/internal/adapter/repository"
	"shopeasy/internal/domain/entity"
	"shopeasy/pkg/config"
)

// Seeds the catalog with a small demo inventory so the API has
// something to sell against a fresh project.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	catalog := repository.NewFirestoreCatalogRepository(firestoreClient)

	for _, product := range demoProducts() {
		if err := catalog.Create(ctx, product); err != nil {
			log.Fatalf("Failed to seed product %s: %v", product.Name, err)
		}
		log.Printf("Seeded product %s (%s)", product.Name, product.ID)
	}
}

func demoProducts() []*entity.Product {
	inDays := func(days int) time.Time {
		return time.Now().UTC().AddDate(0, 0, days).Truncate(24 * time.Hour)
	}

	return []*entity.Product{
		{
			ID:          "p1",
			Name:        "Wireless Earbuds",
			Description: "High-quality wireless earbuds with noise cancellation",
			Category:    "Electronics",
			ImageURL:    "https://images.shopeasy.dev/products/earbuds.png",
			Merchants: []entity.MerchantOffer{
				{MerchantID: "soundhub", MerchantName: "SoundHub", Price: 79.99, DeliveryDate: inDays(2), Link: "https://soundhub.example.com/earbuds", InStock: true},
				{MerchantID: "megamart", MerchantName: "MegaMart", Price: 74.50, DeliveryDate: inDays(5), Link: "https://megamart.example.com/earbuds", InStock: true},
			},
		},
		{
			ID:          "p2",
			Name:        "Smart Watch",
			Description: "Track your fitness and stay connected with this smart watch",
			Category:    "Electronics",
			ImageURL:    "https://images.shopeasy.dev/products/watch.png",
			Merchants: []entity.MerchantOffer{
				{MerchantID: "gadgetco", MerchantName: "GadgetCo", Price: 199.99, DeliveryDate: inDays(3), Link: "https://gadgetco.example.com/watch", InStock: true},
			},
		},
		{
			ID:          "p3",
			Name:        "Bluetooth Speaker",
			Description: "Portable speaker with amazing sound quality",
			Category:    "Electronics",
			ImageURL:    "https://images.shopeasy.dev/products/speaker.png",
			Merchants: []entity.MerchantOffer{
				{MerchantID: "soundhub", MerchantName: "SoundHub", Price: 59.99, DeliveryDate: inDays(2), Link: "https://soundhub.example.com/speaker", InStock: true},
				{MerchantID: "megamart", MerchantName: "MegaMart", Price: 62.00, DeliveryDate: inDays(4), Link: "https://megamart.example.com/speaker", InStock: false},
			},
		},
		{
			ID:          "p4",
			Name:        "Running Shoes",
			Description: "Comfortable shoes for your daily run",
			Category:    "Clothing",
			ImageURL:    "https://images.shopeasy.dev/products/shoes.png",
			Merchants: []entity.MerchantOffer{
				{MerchantID: "sportify", MerchantName: "Sportify", Price: 89.99, DeliveryDate: inDays(6), Link: "https://sportify.example.com/shoes", InStock: true},
			},
		},
		{
			ID:          "p5",
			Name:        "Cotton T-Shirt",
			Description: "Soft cotton t-shirt for everyday wear",
			Category:    "Clothing",
			ImageURL:    "https://images.shopeasy.dev/products/tshirt.png",
			Merchants: []entity.MerchantOffer{
				{MerchantID: "megamart", MerchantName: "MegaMart", Price: 19.99, DeliveryDate: inDays(3), Link: "https://megamart.example.com/tshirt", InStock: true},
				{MerchantID: "sportify", MerchantName: "Sportify", Price: 21.99, DeliveryDate: inDays(2), Link: "https://sportify.example.com/tshirt", InStock: true},
			},
		},
	}
}
