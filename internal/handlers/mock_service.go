package handlers

import (
	"context"

	"mission_awareness/internal/models"
	"mission_awareness/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockWindows struct {
	chronResp  []models.ActivityRecord
	chronErr   error
	streamResp []models.Window
	streamErr  error

	chronCalls  int
	streamCalls int
	lastRecords []models.ActivityRecord
}

func (m *mockWindows) BuildChronological(ctx context.Context, records []models.ActivityRecord) ([]models.ActivityRecord, error) {
	m.chronCalls++
	m.lastRecords = records
	return m.chronResp, m.chronErr
}

func (m *mockWindows) BuildStreaming(ctx context.Context, records []models.ActivityRecord) ([]models.Window, error) {
	m.streamCalls++
	m.lastRecords = records
	return m.streamResp, m.streamErr
}

type mockMonitoring struct {
	stats models.ServiceStats
}

func (m *mockMonitoring) Stats(ctx context.Context) models.ServiceStats {
	return m.stats
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
