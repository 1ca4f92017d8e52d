package main

import (
	"log"

	"expense-tracker-api/internal/config"
	"expense-tracker-api/internal/database"
	httpserver "expense-tracker-api/internal/http"
	"expense-tracker-api/internal/models"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")

	db := database.Connect()
	if err := db.AutoMigrate(&models.User{}, &models.Expense{}); err != nil {
		log.Fatal(err)
	}

	cfg := config.Load()
	r := httpserver.NewServer(cfg, db)
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
