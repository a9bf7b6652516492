package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"media-registry/internal/config"
	"media-registry/internal/infrastructure/auth"
)

func setupAuthTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	validator, err := auth.NewValidator(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}

	r := gin.New()
	r.Use(validator.Middleware())
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"identity": auth.CallerIdentity(c)})
	})
	return r
}

func TestMiddleware_Disabled_HeaderIdentity(t *testing.T) {
	router := setupAuthTestRouter(t, &config.Config{AuthEnabled: false})

	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("X-Caller-Identity", "alice")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"identity":"alice"}` {
		t.Errorf("Unexpected body: %s", body)
	}
}

func TestMiddleware_Disabled_DefaultsToAnonymous(t *testing.T) {
	router := setupAuthTestRouter(t, &config.Config{AuthEnabled: false})

	req, _ := http.NewRequest("GET", "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if body := w.Body.String(); body != `{"identity":"anonymous"}` {
		t.Errorf("Unexpected body: %s", body)
	}
}

func TestCallerIdentity_NoMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if got := auth.CallerIdentity(c); got != "anonymous" {
		t.Errorf("CallerIdentity = %q, want anonymous", got)
	}
}
