package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-renderer/internal/domain"
	"resume-renderer/internal/model"
	"resume-renderer/internal/theme"

	"go.uber.org/zap"
)

// Renderer prints rendered HTML to PDF bytes.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// JobsRepo persists render jobs.
type JobsRepo interface {
	Save(ctx context.Context, j *domain.RenderJob) error
}

// Processor drives one render job end to end: validate the document,
// enrich and substitute it into the theme, then print the HTML to PDF.
// Each invocation builds its view model from scratch; nothing is shared
// between concurrent jobs.
type Processor struct {
	engine    *theme.Engine
	renderer  Renderer
	repo      JobsRepo
	validator *model.Validator
	outDir    string
	log       *zap.Logger
}

func NewProcessor(engine *theme.Engine, renderer Renderer, repo JobsRepo, validator *model.Validator, outDir string, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		engine:    engine,
		renderer:  renderer,
		repo:      repo,
		validator: validator,
		outDir:    outDir,
		log:       log,
	}
}

// RenderHTML validates the document and produces the themed HTML. The
// document map is enriched in place; the returned string is the final
// substituted output.
func (p *Processor) RenderHTML(ctx context.Context, doc map[string]interface{}) (string, error) {
	if p.validator != nil {
		if err := p.validator.ValidateMap(doc); err != nil {
			return "", err
		}
	}
	return p.engine.Render(ctx, doc)
}

// RenderPDF renders the document to HTML and prints it to PDF with
// retry. The chromedp call is the one flaky external step, so transient
// failures get exponential backoff before the job is declared failed.
func (p *Processor) RenderPDF(ctx context.Context, doc map[string]interface{}) (string, []byte, error) {
	html, err := p.RenderHTML(ctx, doc)
	if err != nil {
		return "", nil, err
	}

	const attempts = 3
	var pdf []byte
	var renderErr error
	for i := 0; i < attempts; i++ {
		pdf, renderErr = p.renderer.RenderHTMLToPDF(ctx, html)
		if renderErr == nil {
			if len(pdf) > 0 && strings.HasPrefix(string(pdf), "%PDF") {
				return html, pdf, nil
			}
			renderErr = fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
		}
		p.log.Warn("pdf render attempt failed",
			zap.Int("attempt", i+1), zap.Error(renderErr))
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return html, nil, ctx.Err()
			}
		}
	}
	return html, nil, fmt.Errorf("pdf rendering failed after %d attempts: %w", attempts, renderErr)
}

// Process runs a persisted render job, saving the HTML artifact before
// the PDF so the HTML survives a print failure.
func (p *Processor) Process(ctx context.Context, job *domain.RenderJob) error {
	html, pdf, pdfErr := p.RenderPDF(ctx, job.Document)
	if html == "" {
		p.failJob(ctx, job, pdfErr)
		return pdfErr
	}

	genDir := filepath.Join(p.outDir, "generated")
	if err := os.MkdirAll(genDir, 0o755); err != nil {
		p.failJob(ctx, job, err)
		return err
	}
	htmlPath := filepath.Join(genDir, fmt.Sprintf("resume_%s.html", job.ID))
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		p.failJob(ctx, job, err)
		return err
	}
	job.Metadata["generated_html"] = htmlPath

	if pdfErr != nil {
		// HTML artifact is preserved; record the print failure only
		p.log.Warn("job completed without PDF", zap.String("job", job.ID.String()), zap.Error(pdfErr))
		job.Metadata["pdf_render_error"] = pdfErr.Error()
	} else {
		pdfPath := filepath.Join(genDir, fmt.Sprintf("resume_%s.pdf", job.ID))
		if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
			p.failJob(ctx, job, err)
			return err
		}
		job.Metadata["generated_pdf"] = pdfPath
	}

	job.Status = domain.JobCompleted
	job.UpdatedAt = time.Now()
	return p.saveJob(ctx, job)
}

func (p *Processor) failJob(ctx context.Context, job *domain.RenderJob, cause error) {
	job.Status = domain.JobFailed
	job.Metadata["error"] = cause.Error()
	job.UpdatedAt = time.Now()
	if err := p.saveJob(ctx, job); err != nil {
		p.log.Warn("failed to persist failed job", zap.String("job", job.ID.String()), zap.Error(err))
	}
}

func (p *Processor) saveJob(ctx context.Context, job *domain.RenderJob) error {
	if p.repo == nil {
		return nil
	}
	return p.repo.Save(ctx, job)
}
