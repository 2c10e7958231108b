package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/flightlinehq/courser/internal/course"
	"github.com/flightlinehq/courser/internal/locality"
	"github.com/flightlinehq/courser/internal/metrics"
	"github.com/flightlinehq/courser/internal/models"
	"github.com/flightlinehq/courser/internal/repository"
)

// ExtractionService periodically resolves turning points for uploaded course
// files: it polls the repository for pending courses, runs the extraction
// pipeline in a bounded worker pool, optionally annotates the results with
// locality names, and stores them back.
type ExtractionService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Interface for data repository access
	provider     locality.Provider    // Optional locality annotator; nil disables annotation
	providerName string               // Name of the provider for metrics labeling
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	numWorkers   int                  // Number of concurrent workers for processing
	pollInterval time.Duration        // Interval for polling pending courses
}

// NewExtractionService creates a new instance of ExtractionService. It takes
// a logger, a repository interface, an optional locality provider with its
// name for metrics, metrics for monitoring, the number of workers to use,
// and a polling interval. It returns a pointer to the newly created
// ExtractionService.
func NewExtractionService(
	log *slog.Logger,
	repo repository.Interface,
	provider locality.Provider,
	providerName string,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
) *ExtractionService {
	return &ExtractionService{
		log:          log,
		repo:         repo,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
		numWorkers:   numWorkers,
		pollInterval: pollInterval,
	}
}

// Run starts the extraction service, which periodically polls for pending
// courses. It listens for a cancellation signal from the context to
// gracefully stop the service.
func (es *ExtractionService) Run(ctx context.Context) {
	ticker := time.NewTicker(es.pollInterval)
	defer ticker.Stop()

	es.log.InfoContext(ctx, "Extraction service started...")

	for {
		select {
		case <-ctx.Done():
			es.log.InfoContext(ctx, "Extraction service stopped.")
			return
		case <-ticker.C:
			es.log.InfoContext(ctx, "Polling for pending courses...")
			es.processCourses(ctx)
		}
	}
}

// processCourses fetches pending courses from the repository, starts a
// worker pool to process them, and waits for all workers to finish.
func (es *ExtractionService) processCourses(ctx context.Context) {
	courseLimit := 100
	courses, err := es.repo.FetchPendingCourses(ctx, courseLimit)
	if err != nil {
		es.log.ErrorContext(ctx, "Failed to fetch pending courses", "error", err)
		return
	}
	if len(courses) == 0 {
		es.log.InfoContext(ctx, "No courses to process.")
		return
	}

	es.log.InfoContext(
		ctx,
		"Found courses to process. Starting worker pool.",
		"jobs",
		len(courses),
		"num_workers",
		es.numWorkers,
	)

	jobs := make(chan models.Course, len(courses))
	var wgr sync.WaitGroup

	for i := 1; i <= es.numWorkers; i++ {
		wgr.Add(1)
		go es.worker(ctx, i, &wgr, jobs)
	}

	for _, c := range courses {
		jobs <- c
	}
	close(jobs)

	wgr.Wait()
	es.log.InfoContext(ctx, "Processing batch finished")
}

// worker processes courses from the jobs channel. Each course is run through
// the extraction pipeline; an empty result is recorded as a failure so the
// organizer sees the broken file in the upload UI, a non-empty result is
// annotated and stored.
func (es *ExtractionService) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.Course) {
	defer wg.Done()
	for c := range jobs {
		es.metrics.ActiveWorkers.Inc()
		es.log.DebugContext(ctx, "Processing course", "worker", idx, "course", c.ID)

		startTime := time.Now()
		points := course.Extract(c.Document)
		es.metrics.ExtractionSeconds.Observe(time.Since(startTime).Seconds())

		if len(points) == 0 {
			es.log.WarnContext(ctx, "Course yielded no turning points", "worker", idx, "course", c.ID)
			es.metrics.CoursesProcessed.WithLabelValues("failure").Inc()

			if err := es.repo.IncrementFailureCount(ctx, c.ID, "no turning points extracted"); err != nil {
				es.log.ErrorContext(
					ctx,
					"Could not update failure count for course",
					"worker", idx,
					"course", c.ID,
					"error", err,
				)
			}
			es.metrics.ActiveWorkers.Dec()
			continue
		}

		points = es.annotate(ctx, points)
		es.metrics.TurningPointsResolved.Add(float64(len(points)))
		es.metrics.CoursesProcessed.WithLabelValues("success").Inc()

		if err := es.repo.SaveTurningPoints(ctx, c.ID, points); err != nil {
			es.log.ErrorContext(
				ctx,
				"Failed to save turning points for course",
				"worker", idx,
				"course", c.ID,
				"error", err,
			)
		} else {
			es.log.DebugContext(ctx, "Worker successfully processed the course",
				"worker", idx, "course", c.ID, "turning_points", len(points))
		}

		es.metrics.ActiveWorkers.Dec()
	}
}

// annotate fills in the locality name of each turning point via the
// configured provider. Annotation is best-effort: failures are logged and
// counted, never fatal.
func (es *ExtractionService) annotate(ctx context.Context, points []models.TurningPoint) []models.TurningPoint {
	if es.provider == nil {
		return points
	}

	for i, point := range points {
		startTime := time.Now()
		name, err := es.provider.Locality(ctx, models.Coordinate{
			Longitude: point.Longitude,
			Latitude:  point.Latitude,
		})
		es.metrics.AnnotationSeconds.WithLabelValues(es.providerName).Observe(time.Since(startTime).Seconds())

		if err != nil {
			es.log.WarnContext(ctx, "Failed to annotate turning point",
				"turning_point", point.Name, "error", err)
			es.metrics.AnnotationErrors.Inc()
			continue
		}

		points[i].Locality = name
	}

	return points
}
