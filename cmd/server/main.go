package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	httpadapter "resume-renderer/internal/adapter/http"
	repo "resume-renderer/internal/adapter/repository"
	"resume-renderer/internal/infrastructure/migration"
	"resume-renderer/internal/model"
	"resume-renderer/internal/theme"
	"resume-renderer/internal/usecase"
	"resume-renderer/pkg/gravatar"
	infra "resume-renderer/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	tplDir := os.Getenv("TEMPLATES_DIR")
	if tplDir == "" {
		tplDir = "templates"
	}

	validator, err := model.NewValidator(filepath.Join(tplDir, "resume.schema.json"))
	if err != nil {
		log.Fatal("schema unavailable", zap.Error(err))
	}

	jobsPool, err := infra.NewJobsPool(ctx)
	if err != nil {
		log.Warn("jobs DB not available, running without persistence", zap.Error(err))
		jobsPool = nil
	} else {
		if err := migration.RunMigrations(ctx, jobsPool, log); err != nil {
			log.Fatal("migrations failed", zap.Error(err))
		}
	}

	engine := theme.NewEngine(
		gravatar.NewSource(),
		infra.NewURLTypeProber(&http.Client{Timeout: 10 * time.Second}),
		infra.NewDirAssets(tplDir),
		log,
	)

	jobsRepo := repo.NewJobsRepo(jobsPool)
	processor := usecase.NewProcessor(engine, infra.NewChromedpRenderer(), jobsRepo, validator, "resume-data", log)

	app := fiber.New()
	h := httpadapter.NewHandler(processor, validator, jobsRepo, log)
	h.Register(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
