package app

import (
	"gorm.io/gorm"

	redisclient "github.com/yungbote/coachplan-backend/internal/clients/redis"
	"github.com/yungbote/coachplan-backend/internal/platform/logger"
	"github.com/yungbote/coachplan-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	Student  services.StudentService
	Plan     services.PlanService
	Summary  services.SummaryService
	Composer services.ComposerService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	// The summary cache is optional. Without Redis every summary is
	// recomputed from the plan rows.
	var cache services.SummaryCache
	if cfg.RedisAddr != "" {
		redisCache, err := redisclient.NewSummaryCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			log.Warn("Summary cache unavailable, continuing without it", "error", err)
		} else {
			cache = redisCache
		}
	}

	authService := services.NewAuthService(db, log, reposet.User, reposet.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	planService := services.NewPlanService(db, log, reposet.Plan, cache)
	summaryService := services.NewSummaryService(db, log, reposet.Plan, cache)
	studentService := services.NewStudentService(db, log, reposet.User, summaryService)
	composerService := services.NewComposerService(log, planService, studentService)

	return Services{
		Auth:     authService,
		Student:  studentService,
		Plan:     planService,
		Summary:  summaryService,
		Composer: composerService,
	}, nil
}
