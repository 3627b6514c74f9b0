package http

import (
	"context"
	"errors"

	"resume-renderer/internal/domain"
	"resume-renderer/internal/model"
	"resume-renderer/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JobsReader fetches persisted render jobs.
type JobsReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RenderJob, error)
}

type Handler struct {
	processor *usecase.Processor
	validator *model.Validator
	jobs      JobsReader
	log       *zap.Logger
}

func NewHandler(p *usecase.Processor, v *model.Validator, jobs JobsReader, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{processor: p, validator: v, jobs: jobs, log: log}
}

// Register mounts the render routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Post("/render", h.RenderHTML)
	app.Post("/render/pdf", h.RenderPDF)
	app.Post("/jobs/start", h.StartJob)
	app.Get("/jobs/:id", h.GetJob)
}

func (h *Handler) decode(c *fiber.Ctx) (map[string]interface{}, error) {
	return model.Decode(c.Body(), h.validator)
}

// RenderHTML renders the posted resume document synchronously and
// returns the themed HTML.
func (h *Handler) RenderHTML(c *fiber.Ctx) error {
	doc, err := h.decode(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	html, err := h.processor.RenderHTML(c.Context(), doc)
	if err != nil {
		if errors.Is(err, model.ErrInvalidDocument) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.log.Error("render failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "render failed"})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// RenderPDF renders the posted document and prints it to an A4 PDF.
func (h *Handler) RenderPDF(c *fiber.Ctx) error {
	doc, err := h.decode(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	_, pdf, err := h.processor.RenderPDF(c.Context(), doc)
	if err != nil {
		if errors.Is(err, model.ErrInvalidDocument) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.log.Error("pdf render failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "pdf render failed"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}

// StartJob accepts a document and processes it in the background,
// returning the job id immediately.
func (h *Handler) StartJob(c *fiber.Ctx) error {
	doc, err := h.decode(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	job := domain.NewRenderJob(doc)
	go func(j *domain.RenderJob) {
		if err := h.processor.Process(context.Background(), j); err != nil {
			h.log.Error("job failed", zap.String("job", j.ID.String()), zap.Error(err))
		}
	}(job)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"jobId": job.ID.String(), "status": domain.JobPending})
}

// GetJob returns the persisted state of a render job.
func (h *Handler) GetJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid job id"})
	}
	if h.jobs == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job store not configured"})
	}
	job, err := h.jobs.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	return c.JSON(job)
}
