package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-cms/config"
	"github.com/oksasatya/go-portfolio-cms/internal/container"
)

type envelope struct {
	Status  int                    `json:"status"`
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func newTestRegistry(mods ...Module) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	r := NewRegistry(engine)
	for _, m := range mods {
		r.Add(m)
	}
	r.RegisterAll()
	return engine
}

func serve(t *testing.T, engine *gin.Engine, method, path string) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return w.Code, env
}

func TestRegistry(t *testing.T) {
	ping := ModuleFunc(func(rg *gin.RouterGroup) {
		rg.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) })
	})
	engine := newTestRegistry(ping)

	t.Run("module func routes are mounted under /api", func(t *testing.T) {
		code, env := serve(t, engine, http.MethodGet, "/api/ping")
		if code != http.StatusOK || !env.Success {
			t.Errorf("expected 200 success, got %d %+v", code, env)
		}
	})

	t.Run("unknown route returns json 404", func(t *testing.T) {
		code, env := serve(t, engine, http.MethodGet, "/api/nope")
		if code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", code)
		}
		if env.Success || env.Status != http.StatusNotFound {
			t.Errorf("expected error envelope, got %+v", env)
		}
	})

	t.Run("wrong method returns json 405", func(t *testing.T) {
		code, env := serve(t, engine, http.MethodPost, "/api/ping")
		if code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", code)
		}
		if env.Message != "method not allowed" {
			t.Errorf("expected method not allowed, got %q", env.Message)
		}
	})
}

func TestHealth(t *testing.T) {
	c := &container.Container{Config: &config.Config{StoreDriver: config.StoreDriverMemory}}
	engine := newTestRegistry(healthModule(c))

	code, env := serve(t, engine, http.MethodGet, "/api/health")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	want := map[string]string{
		"store":     "memory",
		"redis":     "disabled",
		"search":    "disabled",
		"storage":   "disabled",
		"mail_jobs": "disabled",
	}
	for k, v := range want {
		if got := env.Data[k]; got != v {
			t.Errorf("expected %s=%s, got %v", k, v, got)
		}
	}
}
