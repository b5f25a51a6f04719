package config

import "strings"

// Preset is a named, described collision scenario. Presets are applied only
// while the simulation is idle, through the same mutation path as the
// manual controls.
type Preset struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	Description   string         `json:"description" yaml:"description"`
	Particle1     ParticleConfig `json:"particle1" yaml:"particle1"`
	Particle2     ParticleConfig `json:"particle2" yaml:"particle2"`
	Restitution   float64        `json:"restitution" yaml:"restitution"`
	CollisionType string         `json:"collision_type" yaml:"collision_type"`
}

// Presets is the built-in scenario catalog, in display order.
var Presets = []Preset{
	{
		ID:            "equal-mass-head-on",
		Name:          "Equal Mass – Head-On",
		Description:   "Two particles of equal mass colliding head-on",
		Particle1:     ParticleConfig{Mass: 1.0, Velocity: 5.0},
		Particle2:     ParticleConfig{Mass: 1.0, Velocity: -5.0},
		Restitution:   1.0,
		CollisionType: "elastic",
	},
	{
		ID:            "heavy-vs-light",
		Name:          "Heavy vs Light",
		Description:   "Heavy particle colliding with lighter one",
		Particle1:     ParticleConfig{Mass: 2.0, Velocity: 3.0},
		Particle2:     ParticleConfig{Mass: 0.5, Velocity: 0.0},
		Restitution:   1.0,
		CollisionType: "elastic",
	},
	{
		ID:            "perfectly-inelastic",
		Name:          "Perfectly Inelastic",
		Description:   "Two particles sticking together after collision",
		Particle1:     ParticleConfig{Mass: 1.5, Velocity: 8.0},
		Particle2:     ParticleConfig{Mass: 1.0, Velocity: -2.0},
		Restitution:   0.0,
		CollisionType: "inelastic",
	},
	{
		ID:            "partial-inelastic",
		Name:          "Partial Inelastic",
		Description:   "Collision with some energy loss",
		Particle1:     ParticleConfig{Mass: 1.2, Velocity: 6.0},
		Particle2:     ParticleConfig{Mass: 0.8, Velocity: -3.0},
		Restitution:   0.5,
		CollisionType: "custom",
	},
	{
		ID:            "stationary-target",
		Name:          "Stationary Target",
		Description:   "Moving particle hits stationary target",
		Particle1:     ParticleConfig{Mass: 1.0, Velocity: 10.0},
		Particle2:     ParticleConfig{Mass: 1.5, Velocity: 0.0},
		Restitution:   1.0,
		CollisionType: "elastic",
	},
}

// GetPreset looks a preset up by id, case-insensitively. Returns nil when
// no preset matches.
func GetPreset(id string) *Preset {
	id = strings.ToLower(id)
	for i := range Presets {
		if Presets[i].ID == id {
			return &Presets[i]
		}
	}
	return nil
}

// ListPresets returns the catalog ids in display order.
func ListPresets() []string {
	ids := make([]string, 0, len(Presets))
	for _, p := range Presets {
		ids = append(ids, p.ID)
	}
	return ids
}
