package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validators.Register(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// newRouter monta um gin com o ErrorHandler e um ator fixo no contexto.
func newRouter(actor auth.Actor) *gin.Engine {
	r := gin.New()
	r.Use(httperr.ErrorHandler())
	r.Use(func(c *gin.Context) {
		if actor.UserID != 0 {
			c.Set(middleware.ContextUserID, actor.UserID)
			c.Set(middleware.ContextUserRole, actor.Role)
		}
		c.Next()
	})
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}
