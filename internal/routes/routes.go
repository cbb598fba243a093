package routes

import (
	"net/http"

	"github.com/vitatrack/vitatrack/internal/app"
	"github.com/vitatrack/vitatrack/internal/handler"
	"github.com/vitatrack/vitatrack/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	user := handler.NewUserHandler(app.UserService)
	meal := handler.NewMealHandler(app.MealService)
	workout := handler.NewWorkoutHandler(app.WorkoutService)
	health := handler.NewHealthHandler(app.HealthService)
	achievement := handler.NewAchievementHandler(app.AchievementService)
	template := handler.NewTemplateHandler(app.TemplateService)
	recognition := handler.NewRecognitionHandler(app.RecognitionService)

	mux := http.NewServeMux()

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /api/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /api/auth/logout", middleware.RequireAuth(auth.Logout))
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(auth.Me))

	// Users
	mux.HandleFunc("GET /api/users", middleware.RequireAuth(user.List))
	mux.HandleFunc("GET /api/users/{id}", middleware.RequireAuth(user.Get))
	mux.HandleFunc("PUT /api/users/{id}", middleware.RequireAuth(user.Update))
	mux.HandleFunc("DELETE /api/users/{id}", middleware.RequireAuth(user.Delete))
	mux.HandleFunc("PUT /api/users/{id}/change_password", middleware.RequireAuth(auth.ChangePassword))

	// Meals and foods
	mux.HandleFunc("GET /api/meals", middleware.RequireAuth(meal.List))
	mux.HandleFunc("POST /api/meals", middleware.RequireAuth(meal.Create))
	mux.HandleFunc("GET /api/meals/{id}", middleware.RequireAuth(meal.Get))
	mux.HandleFunc("PUT /api/meals/{id}", middleware.RequireAuth(meal.Update))
	mux.HandleFunc("DELETE /api/meals/{id}", middleware.RequireAuth(meal.Delete))
	mux.HandleFunc("POST /api/meals/{id}/foods", middleware.RequireAuth(meal.AddFood))
	mux.HandleFunc("PUT /api/foods/{id}", middleware.RequireAuth(meal.UpdateFood))
	mux.HandleFunc("DELETE /api/foods/{id}", middleware.RequireAuth(meal.DeleteFood))

	// Workouts and exercises
	mux.HandleFunc("GET /api/workouts", middleware.RequireAuth(workout.List))
	mux.HandleFunc("POST /api/workouts", middleware.RequireAuth(workout.Create))
	mux.HandleFunc("GET /api/workouts/{id}", middleware.RequireAuth(workout.Get))
	mux.HandleFunc("PUT /api/workouts/{id}", middleware.RequireAuth(workout.Update))
	mux.HandleFunc("DELETE /api/workouts/{id}", middleware.RequireAuth(workout.Delete))
	mux.HandleFunc("POST /api/workouts/{id}/exercises", middleware.RequireAuth(workout.AddExercise))
	mux.HandleFunc("PUT /api/exercises/{id}", middleware.RequireAuth(workout.UpdateExercise))
	mux.HandleFunc("DELETE /api/exercises/{id}", middleware.RequireAuth(workout.DeleteExercise))

	// Rolling workout counters
	mux.HandleFunc("GET /api/user_stats", middleware.RequireAuth(workout.Stats))

	// Health metrics; "latest" and "stats" are literal segments, so the mux
	// prefers them over the {id} wildcard
	mux.HandleFunc("GET /api/health_metrics", middleware.RequireAuth(health.List))
	mux.HandleFunc("POST /api/health_metrics", middleware.RequireAuth(health.Create))
	mux.HandleFunc("GET /api/health_metrics/latest", middleware.RequireAuth(health.Latest))
	mux.HandleFunc("GET /api/health_metrics/stats", middleware.RequireAuth(health.Stats))
	mux.HandleFunc("GET /api/health_metrics/{id}", middleware.RequireAuth(health.Get))
	mux.HandleFunc("PUT /api/health_metrics/{id}", middleware.RequireAuth(health.Update))
	mux.HandleFunc("DELETE /api/health_metrics/{id}", middleware.RequireAuth(health.Delete))

	// Achievements
	mux.HandleFunc("GET /api/achievements", middleware.RequireAuth(achievement.List))
	mux.HandleFunc("GET /api/achievements/completed", middleware.RequireAuth(achievement.Completed))
	mux.HandleFunc("POST /api/achievements", middleware.RequireAuth(achievement.Create))
	mux.HandleFunc("GET /api/achievements/{id}", middleware.RequireAuth(achievement.Get))
	mux.HandleFunc("PUT /api/achievements/{id}", middleware.RequireAuth(achievement.Update))
	mux.HandleFunc("DELETE /api/achievements/{id}", middleware.RequireAuth(achievement.Delete))

	// Workout templates (shared catalog)
	mux.HandleFunc("GET /api/workout_templates", middleware.RequireAuth(template.List))
	mux.HandleFunc("POST /api/workout_templates", middleware.RequireAuth(template.Create))
	mux.HandleFunc("GET /api/workout_templates/{id}", middleware.RequireAuth(template.Get))
	mux.HandleFunc("PUT /api/workout_templates/{id}", middleware.RequireAuth(template.Update))
	mux.HandleFunc("DELETE /api/workout_templates/{id}", middleware.RequireAuth(template.Delete))
	mux.HandleFunc("POST /api/workout_templates/{id}/create_workout", middleware.RequireAuth(template.StartWorkout))

	// Food recognition
	mux.HandleFunc("POST /api/diet_recognition", middleware.RequireAuth(recognition.EstimateDiet))
	mux.HandleFunc("POST /api/barcode_nutrition", middleware.RequireAuth(recognition.BarcodeNutrition))
	mux.HandleFunc("POST /api/food_recognition", middleware.RequireAuth(recognition.RecognizeFood))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.CORS,
		middleware.RequestLogging,
		middleware.Recover,
		middleware.AuthMiddleware(app.AuthService),
	)
}
