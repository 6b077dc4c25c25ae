package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/wisker-app/wisker/admin/controllers"
	"github.com/wisker-app/wisker/admin/routes"
	"github.com/wisker-app/wisker/internal/config"
	"github.com/wisker-app/wisker/internal/repository/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	catalog := controllers.NewCatalog(postgres.NewPlanRepository(db), postgres.NewPromoRepository(db))

	addr := os.Getenv("ADMIN_ADDR")
	if addr == "" {
		addr = ":8081"
	}

	r := gin.Default()
	routes.RegisterAdminRoutes(r, catalog)

	log.Printf("Admin API running on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
