package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/flightlinehq/courser/internal/metrics"
	"github.com/flightlinehq/courser/internal/models"
	"github.com/flightlinehq/courser/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const validCourseDoc = `<kml><Document>
	<Placemark><name>Track</name><LineString><coordinates>0,0,0 1,0,0</coordinates></LineString></Placemark>
	<Placemark><name>Gate 1</name><LineString><coordinates>0.5,-1,0 0.5,0,0 0.5,1,0</coordinates></LineString></Placemark>
	<Placemark><name>TP 1</name><Point><coordinates>0.5,0.1,0</coordinates></Point></Placemark>
</Document></kml>`

func TestProcessCourses(t *testing.T) {
	mockRepo := mocks.NewInterface(t)
	mockProvider := mocks.NewProvider(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)
	ctx := t.Context()
	svc := NewExtractionService(logger, mockRepo, mockProvider, "nominatim", appMetrics, 2, 1*time.Second)

	resolved := models.Coordinate{Longitude: 0.5, Latitude: 0}

	t.Run("successful processing with annotation", func(t *testing.T) {
		sampleCourses := []models.Course{{ID: 1, Name: "Rally 2026", Document: validCourseDoc}}
		annotated := []models.TurningPoint{
			{Name: "TP 1", Longitude: 0.5, Latitude: 0, Locality: "Bila Tserkva"},
		}

		mockRepo.On("FetchPendingCourses", ctx, 100).Return(sampleCourses, nil).Once()
		mockProvider.On("Locality", ctx, resolved).Return("Bila Tserkva", nil).Once()
		mockRepo.On("SaveTurningPoints", ctx, 1, annotated).Return(nil).Once()

		svc.processCourses(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("annotation failure is not fatal", func(t *testing.T) {
		sampleCourses := []models.Course{{ID: 1, Name: "Rally 2026", Document: validCourseDoc}}
		unannotated := []models.TurningPoint{{Name: "TP 1", Longitude: 0.5, Latitude: 0}}

		mockRepo.On("FetchPendingCourses", ctx, 100).Return(sampleCourses, nil).Once()
		mockProvider.On("Locality", ctx, resolved).Return("", assert.AnError).Once()
		mockRepo.On("SaveTurningPoints", ctx, 1, unannotated).Return(nil).Once()

		svc.processCourses(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("fetch courses return error", func(t *testing.T) {
		mockRepo.On("FetchPendingCourses", ctx, 100).Return(nil, assert.AnError).Once()

		svc.processCourses(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("fetch courses return empty list", func(t *testing.T) {
		mockRepo.On("FetchPendingCourses", ctx, 100).Return([]models.Course{}, nil).Once()

		svc.processCourses(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("empty extraction increments failure count", func(t *testing.T) {
		sampleCourses := []models.Course{{ID: 2, Name: "Broken", Document: "<kml/>"}}

		mockRepo.On("FetchPendingCourses", ctx, 100).Return(sampleCourses, nil).Once()
		mockRepo.On("IncrementFailureCount", ctx, 2, "no turning points extracted").Return(nil).Once()

		svc.processCourses(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("error to increment failure count", func(t *testing.T) {
		sampleCourses := []models.Course{{ID: 2, Name: "Broken", Document: "<kml/>"}}

		mockRepo.On("FetchPendingCourses", ctx, 100).Return(sampleCourses, nil).Once()
		mockRepo.On("IncrementFailureCount", ctx, 2, "no turning points extracted").
			Return(assert.AnError).Once()

		svc.processCourses(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("error to save turning points", func(t *testing.T) {
		sampleCourses := []models.Course{{ID: 1, Name: "Rally 2026", Document: validCourseDoc}}

		mockRepo.On("FetchPendingCourses", ctx, 100).Return(sampleCourses, nil).Once()
		mockProvider.On("Locality", ctx, resolved).Return("Bila Tserkva", nil).Once()
		mockRepo.On("SaveTurningPoints", ctx, 1, mock.Anything).Return(assert.AnError).Once()

		svc.processCourses(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("start context cancelled", func(t *testing.T) {
		tctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		svc.Run(tctx)
	})
}

func TestProcessCourses_NoProvider(t *testing.T) {
	mockRepo := mocks.NewInterface(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)
	ctx := t.Context()
	svc := NewExtractionService(logger, mockRepo, nil, "none", appMetrics, 1, 1*time.Second)

	sampleCourses := []models.Course{{ID: 3, Name: "Rally 2026", Document: validCourseDoc}}
	points := []models.TurningPoint{{Name: "TP 1", Longitude: 0.5, Latitude: 0}}

	mockRepo.On("FetchPendingCourses", ctx, 100).Return(sampleCourses, nil).Once()
	mockRepo.On("SaveTurningPoints", ctx, 3, points).Return(nil).Once()

	svc.processCourses(ctx)

	mockRepo.AssertExpectations(t)
}
