package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/san-kum/crashsim/internal/config"
	"github.com/san-kum/crashsim/internal/physics"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, &config.Server{Environment: "test"})
	return router
}

func postSimulate(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSimulateElastic(t *testing.T) {
	router := testRouter()

	w := postSimulate(t, router, `{
		"particle1": {"mass": 2, "velocity": 5},
		"particle2": {"mass": 2, "velocity": -5},
		"restitution": 1
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res physics.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad response body: %v", err)
	}

	if math.Abs(res.Particle1After.Velocity+5) > 1e-9 || math.Abs(res.Particle2After.Velocity-5) > 1e-9 {
		t.Errorf("equal-mass elastic collision must swap velocities, got %f/%f",
			res.Particle1After.Velocity, res.Particle2After.Velocity)
	}
	if math.Abs(res.TotalMomentumBefore-res.TotalMomentumAfter) > 1e-9 {
		t.Error("momentum not conserved across the API")
	}
}

func TestSimulateCollisionTypeOverride(t *testing.T) {
	router := testRouter()

	// collision_type wins over the coefficient, as in the original API.
	w := postSimulate(t, router, `{
		"particle1": {"mass": 2, "velocity": 5},
		"particle2": {"mass": 3, "velocity": -2},
		"restitution": 1,
		"collision_type": "inelastic"
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res physics.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Particle1After.Velocity-0.8) > 1e-9 {
		t.Errorf("expected common velocity 0.8, got %f", res.Particle1After.Velocity)
	}
	if res.Particle1After.Velocity != res.Particle2After.Velocity {
		t.Error("perfectly inelastic bodies must share a velocity")
	}
}

func TestSimulateDefaultsToElastic(t *testing.T) {
	router := testRouter()

	w := postSimulate(t, router, `{
		"particle1": {"mass": 1, "velocity": 5},
		"particle2": {"mass": 1, "velocity": 0}
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res physics.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Restitution != 1 {
		t.Errorf("expected default restitution 1, got %f", res.Restitution)
	}
}

func TestSimulateRejectsInvalidInputs(t *testing.T) {
	router := testRouter()

	cases := []struct {
		name string
		body string
	}{
		{"zero mass", `{"particle1": {"mass": 0, "velocity": 1}, "particle2": {"mass": 1, "velocity": 0}}`},
		{"mass too large", `{"particle1": {"mass": 5, "velocity": 1}, "particle2": {"mass": 1, "velocity": 0}}`},
		{"velocity too fast", `{"particle1": {"mass": 1, "velocity": 30}, "particle2": {"mass": 1, "velocity": 0}}`},
		{"restitution above one", `{"particle1": {"mass": 1, "velocity": 1}, "particle2": {"mass": 1, "velocity": 0}, "restitution": 1.5}`},
		{"missing particle", `{"particle1": {"mass": 1, "velocity": 1}}`},
		{"not json", `mass=1`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := postSimulate(t, router, c.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestListPresets(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/presets", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var presets []config.Preset
	if err := json.Unmarshal(w.Body.Bytes(), &presets); err != nil {
		t.Fatal(err)
	}
	if len(presets) != len(config.Presets) {
		t.Errorf("expected %d presets, got %d", len(config.Presets), len(presets))
	}
	if presets[0].ID != "equal-mass-head-on" {
		t.Errorf("unexpected first preset: %s", presets[0].ID)
	}
}

func TestGetPresetByID(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/presets/stationary-target", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var p config.Preset
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.Name != "Stationary Target" {
		t.Errorf("unexpected preset: %+v", p)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/presets/nope", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown preset, got %d", w.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected health body: %v", body)
	}
}
