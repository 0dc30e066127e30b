package routes

import (
	"net/http"
	"testing"

	"maintenance-system/internal/controllers"
	"maintenance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func registeredPaths(e *echo.Echo) map[string]bool {
	paths := make(map[string]bool)
	for _, r := range e.Routes() {
		paths[r.Method+" "+r.Path] = true
	}
	return paths
}

func TestDashboardRoutes(t *testing.T) {
	e := echo.New()
	authMW := middleware.NewAuthMiddleware(nil, nil, zap.NewNop())
	ctrl := controllers.NewDashboardController(nil, zap.NewNop())

	runDashboardRouter(e.Group("/api"), ctrl, authMW)

	paths := registeredPaths(e)
	assert.True(t, paths[http.MethodGet+" /api/dashboard/stats"])
	assert.True(t, paths[http.MethodGet+" /api/dashboard/export"])
	assert.False(t, paths[http.MethodGet+" /api/dashboard/summary"])
}

func TestWorksheetRoutes(t *testing.T) {
	e := echo.New()
	ctrl := controllers.NewWorksheetController(nil, zap.NewNop())

	runWorksheetRouter(e.Group("/api"), ctrl)

	paths := registeredPaths(e)
	assert.True(t, paths[http.MethodGet+" /api/worksheets"])
	assert.True(t, paths[http.MethodGet+" /api/worksheets/:id"])
	assert.True(t, paths[http.MethodPost+" /api/worksheets"])
	assert.True(t, paths[http.MethodPut+" /api/worksheets/:id"])
	assert.True(t, paths[http.MethodDelete+" /api/worksheets/:id"])
}
