package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/config"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/routes"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using environment as-is")
	}

	config.ConnectDB()

	err := config.DB.AutoMigrate(
		&models.User{},
		&models.Setting{},
		&models.ActivityLog{},
		&models.Session{},
		&models.Kabisilya{},
		&models.Worker{},
		&models.Bukid{},
		&models.Pitak{},
		&models.Assignment{},
		&models.Debt{},
		&models.DebtHistory{},
		&models.Payment{},
		&models.PaymentHistory{},
	)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	config.SeedDefaults(config.DB)

	if s := os.Getenv("JWT_SECRET"); s != "" {
		utils.Secret = []byte(s)
	}

	r := gin.Default()
	routes.SetupRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": true, "message": "Kabisilya API is running", "data": nil})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
