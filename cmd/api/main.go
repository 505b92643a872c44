package main

import (
	_ "github.com/Drasasse/gestion-commerce-sub002/api/swagger" // swagger docs
	"github.com/Drasasse/gestion-commerce-sub002/internal/auth"
	"github.com/Drasasse/gestion-commerce-sub002/internal/config"
	"github.com/Drasasse/gestion-commerce-sub002/internal/database"
	"github.com/Drasasse/gestion-commerce-sub002/internal/handler"
	"github.com/Drasasse/gestion-commerce-sub002/internal/logger"
	"github.com/Drasasse/gestion-commerce-sub002/internal/repository"
	"github.com/Drasasse/gestion-commerce-sub002/internal/service"
	"github.com/Drasasse/gestion-commerce-sub002/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Gestion Commerce API
// @version         1.0
// @description     Multi-boutique retail management API.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.New()
	defer func() { _ = log.Sync() }()

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	log.Info("connected to PostgreSQL")

	jwtSecret := auth.Secret()

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(log)
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	boutiqueRepo := repository.NewBoutiqueRepository(db)
	userRepo := repository.NewUserRepository(db)
	categorieRepo := repository.NewCategorieRepository(db)
	clientRepo := repository.NewClientRepository(db)
	fournisseurRepo := repository.NewFournisseurRepository(db)
	produitRepo := repository.NewProduitRepository(db)
	venteRepo := repository.NewVenteRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	userService := service.NewUserService(userRepo, boutiqueRepo, jwtSecret)
	boutiqueService := service.NewBoutiqueService(boutiqueRepo, txManager)
	categorieService := service.NewCategorieService(categorieRepo)
	clientService := service.NewClientService(clientRepo)
	fournisseurService := service.NewFournisseurService(fournisseurRepo)
	produitService := service.NewProduitService(produitRepo, categorieRepo, fournisseurRepo)
	venteService := service.NewVenteService(venteRepo, produitRepo, clientRepo, txManager, wsHub)
	transactionService := service.NewTransactionService(transactionRepo, boutiqueRepo)
	statsService := service.NewStatsService(venteRepo, produitRepo)

	authHandler := handler.NewAuthHandler(userService, jwtSecret, log)
	userHandler := handler.NewUserHandler(userService, jwtSecret, log)
	boutiqueHandler := handler.NewBoutiqueHandler(boutiqueService, jwtSecret, log)
	categorieHandler := handler.NewCategorieHandler(categorieService, jwtSecret, log)
	clientHandler := handler.NewClientHandler(clientService, jwtSecret, log)
	fournisseurHandler := handler.NewFournisseurHandler(fournisseurService, jwtSecret, log)
	produitHandler := handler.NewProduitHandler(produitService, jwtSecret, log)
	venteHandler := handler.NewVenteHandler(venteService, jwtSecret, log)
	transactionHandler := handler.NewTransactionHandler(transactionService, jwtSecret, log)
	statsHandler := handler.NewStatsHandler(statsService, jwtSecret, log)

	// Set up Gin Router
	router := gin.New()
	router.Use(logger.RequestLogger(log), gin.Recovery())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, jwtSecret)
	})

	// Register API Routes
	root := router.Group("")
	authHandler.RegisterRoutes(root)
	userHandler.RegisterRoutes(root)
	boutiqueHandler.RegisterRoutes(root)
	categorieHandler.RegisterRoutes(root)
	clientHandler.RegisterRoutes(root)
	fournisseurHandler.RegisterRoutes(root)
	produitHandler.RegisterRoutes(root)
	venteHandler.RegisterRoutes(root)
	transactionHandler.RegisterRoutes(root)
	statsHandler.RegisterRoutes(root)

	log.Info("server listening", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
