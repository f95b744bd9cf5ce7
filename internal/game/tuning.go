package game

import "math"

// TickDT is the fixed simulation step the drivers feed to AdvanceTick.
const TickDT = 1.0 / 60.0

// Tuning holds every gameplay constant. Distances are in cells, rates and
// speeds are per second.
type Tuning struct {
	WalkSpeed   float64 `yaml:"walk_speed"`
	SprintSpeed float64 `yaml:"sprint_speed"`

	MaxStamina float64 `yaml:"max_stamina"`
	// StaminaDrain is the base drain while sprinting on a full tank;
	// StaminaDrainMul scales the extra drain as the tank empties.
	StaminaDrain    float64 `yaml:"stamina_drain"`
	StaminaDrainMul float64 `yaml:"stamina_drain_mul"`
	StaminaRegen    float64 `yaml:"stamina_regen"`
	// SprintUnlockAmount is the stamina needed to lift the empty-tank lockout.
	SprintUnlockAmount float64 `yaml:"sprint_unlock_amount"`

	PickupRadiusSq     float64 `yaml:"pickup_radius_sq"`
	PickupBobRate      float64 `yaml:"pickup_bob_rate"`
	FreezeDuration     float64 `yaml:"freeze_duration"`
	FlashlightDuration float64 `yaml:"flashlight_duration"`
	// FlashlightFade is how long the boost takes to fade out at the end.
	FlashlightFade float64 `yaml:"flashlight_fade"`

	AdversarySpeed      float64 `yaml:"adversary_speed"`
	AdversarySpawnDelay float64 `yaml:"adversary_spawn_delay"`
	AdversaryReplan     float64 `yaml:"adversary_replan"`
	AdversaryArrival    float64 `yaml:"adversary_arrival"`
	// AdversaryMinSpawnCells is the minimum BFS distance from the start cell.
	AdversaryMinSpawnCells int `yaml:"adversary_min_spawn_cells"`

	CaptureRadiusSq float64 `yaml:"capture_radius_sq"`
	CaptureHalfFOV  float64 `yaml:"capture_half_fov"`
}

// DefaultTuning returns the baseline gameplay constants.
func DefaultTuning() Tuning {
	return Tuning{
		WalkSpeed:   2.1,
		SprintSpeed: 3.9,

		MaxStamina:         100,
		StaminaDrain:       54,
		StaminaDrainMul:    1.5,
		StaminaRegen:       36,
		SprintUnlockAmount: 25,

		PickupRadiusSq:     0.25,
		PickupBobRate:      4.8,
		FreezeDuration:     5,
		FlashlightDuration: 5,
		FlashlightFade:     1,

		AdversarySpeed:         1.68,
		AdversarySpawnDelay:    10,
		AdversaryReplan:        0.5,
		AdversaryArrival:       0.1,
		AdversaryMinSpawnCells: 12,

		CaptureRadiusSq: 0.2,
		CaptureHalfFOV:  math.Pi / 3,
	}
}
