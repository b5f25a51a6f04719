package server

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/san-kum/crashsim/internal/config"
	"github.com/san-kum/crashsim/internal/physics"
)

var startTime = time.Now()

const version = "1.0.0"

type particleRequest struct {
	Mass     float64 `json:"mass" binding:"required,gt=0,lte=2"`
	Velocity float64 `json:"velocity" binding:"gte=-20,lte=20"`
}

type simulateRequest struct {
	Particle1 particleRequest `json:"particle1" binding:"required"`
	Particle2 particleRequest `json:"particle2" binding:"required"`

	// Restitution defaults to 1 (elastic) when omitted. CollisionType, when
	// set to "elastic" or "inelastic", overrides the coefficient with the
	// corresponding boundary value.
	Restitution   *float64 `json:"restitution" binding:"omitempty,gte=0,lte=1"`
	CollisionType string   `json:"collision_type"`
}

func (r *simulateRequest) restitution() float64 {
	switch strings.ToLower(r.CollisionType) {
	case "elastic":
		return 1
	case "inelastic":
		return 0
	}
	if r.Restitution != nil {
		return *r.Restitution
	}
	return 1
}

// Info describes the API.
func Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "crashsim collision simulator API",
		"version": version,
		"endpoints": gin.H{
			"simulate": "POST /api/v1/simulate - run a collision",
			"presets":  "GET /api/v1/presets - list preset scenarios",
			"health":   "GET /api/v1/health - server health",
		},
	})
}

// HealthCheck returns server health status.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "crashsim-api",
		"version": version,
		"uptime":  time.Since(startTime).String(),
	})
}

// Simulate resolves a two-body collision and returns the full before/after
// breakdown.
func Simulate(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Both particles need mass in (0, 2] and velocity in [-20, 20].",
		})
		return
	}

	result, err := physics.Resolve(
		req.Particle1.Mass, req.Particle1.Velocity,
		req.Particle2.Mass, req.Particle2.Velocity,
		req.restitution(),
	)
	if err != nil {
		var perr *physics.InvalidParameterError
		if errors.As(err, &perr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": perr.Error()})
			return
		}
		log.Printf("[ERROR] Simulate: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Simulation failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListPresets returns the preset scenario catalog.
func ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, config.Presets)
}

// GetPreset returns one preset by id.
func GetPreset(c *gin.Context) {
	id := c.Param("id")
	if p := config.GetPreset(id); p != nil {
		c.JSON(http.StatusOK, p)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Preset '" + id + "' not found"})
}
