package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/vitatrack/vitatrack/internal/config"
	"github.com/vitatrack/vitatrack/internal/db"
	"github.com/vitatrack/vitatrack/internal/recognition"
	"github.com/vitatrack/vitatrack/internal/repository"
	"github.com/vitatrack/vitatrack/internal/service"
)

type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB
	AuthService        *service.AuthService
	UserService        *service.UserService
	MealService        *service.MealService
	WorkoutService     *service.WorkoutService
	HealthService      *service.HealthService
	AchievementService *service.AchievementService
	TemplateService    *service.TemplateService
	RecognitionService *service.RecognitionService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	mealRepository := repository.NewMealRepository(database)
	foodRepository := repository.NewFoodRepository(database)
	workoutRepository := repository.NewWorkoutRepository(database)
	exerciseRepository := repository.NewExerciseRepository(database)
	metricRepository := repository.NewHealthMetricRepository(database)
	achievementRepository := repository.NewAchievementRepository(database)
	templateRepository := repository.NewWorkoutTemplateRepository(database)
	statRepository := repository.NewUserStatRepository(database)

	// Recognition clients
	visionClient := recognition.NewVisionClient(cfg.VisionAPIURL, cfg.VisionAPIKey, cfg.VisionModel, cfg.RecognitionTimeout)
	productClient := recognition.NewOpenFoodFactsClient(cfg.OpenFoodFactsURL, cfg.UserAgent, cfg.RecognitionTimeout)
	foodPageClient := recognition.NewFoodPageClient(cfg.FoodDatabaseURL, cfg.UserAgent, cfg.RecognitionTimeout)

	// Services
	authService := service.NewAuthService(database, userRepository, statRepository, cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepository)
	mealService := service.NewMealService(database, mealRepository, foodRepository)
	workoutService := service.NewWorkoutService(database, workoutRepository, exerciseRepository, statRepository)
	healthService := service.NewHealthService(database, metricRepository, userRepository)
	achievementService := service.NewAchievementService(achievementRepository)
	templateService := service.NewTemplateService(templateRepository, workoutService)
	recognitionService := service.NewRecognitionService(visionClient, productClient, foodPageClient)

	return &App{
		Cfg:                cfg,
		DB:                 database,
		AuthService:        authService,
		UserService:        userService,
		MealService:        mealService,
		WorkoutService:     workoutService,
		HealthService:      healthService,
		AchievementService: achievementService,
		TemplateService:    templateService,
		RecognitionService: recognitionService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
