package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mielhoja/bakeryapi/internal/config"
	"github.com/mielhoja/bakeryapi/internal/domain"
	"github.com/mielhoja/bakeryapi/internal/repository/postgres"
)

func main() {
	title := flag.String("title", "", "promotion title (required)")
	kind := flag.String("kind", "percentage", "discount kind: percentage, fixed or free_shipping")
	value := flag.String("value", "", "discount magnitude (required unless kind is free_shipping)")
	all := flag.Bool("all", false, "apply to all products")
	products := flag.String("products", "", "comma-separated product ids (when not -all)")
	freeShipping := flag.Bool("free-shipping", false, "also grant free shipping")
	flag.Parse()

	if *title == "" {
		fmt.Println("Usage: go run cmd/create-promotion/main.go -title \"Weekend deal\" -kind percentage -value 20 -all")
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	rule := &domain.PromotionRule{
		Title:        *title,
		Kind:         domain.DiscountKind(*kind),
		AppliesToAll: *all,
		FreeShipping: *freeShipping,
		Active:       true,
	}

	if *value != "" {
		v, err := decimal.NewFromString(*value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid value: %v\n", err)
			os.Exit(1)
		}
		rule.Value = &v
	}

	if !*all && *products != "" {
		for _, s := range strings.Split(*products, ",") {
			id, err := uuid.Parse(strings.TrimSpace(s))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid product id %q: %v\n", s, err)
				os.Exit(1)
			}
			rule.ProductIDs = append(rule.ProductIDs, id)
		}
	}

	repo := postgres.NewPromotionRepository(db, logger)
	if err := repo.Create(context.Background(), rule); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create promotion: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Promotion created: %s\n", rule.ID.String())
	fmt.Printf("Title: %s, kind: %s, applies to all: %v, free shipping: %v\n",
		rule.Title, rule.Kind, rule.AppliesToAll, rule.GrantsFreeShipping())
}
