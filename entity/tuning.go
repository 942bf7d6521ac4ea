package entity

import "fmt"

// PlayerTuning holds the player's movement constants, in pixels and ticks.
type PlayerTuning struct {
	JumpSpeed      float64 `yaml:"jump_speed"`
	WallJumpPush   float64 `yaml:"wall_jump_push"`
	WallJumpSpeed  float64 `yaml:"wall_jump_speed"`
	WallSlideSpeed float64 `yaml:"wall_slide_speed"`
	AirGraceTicks  int     `yaml:"air_grace_ticks"`
	JumpAirTime    int     `yaml:"jump_air_time"`
	FallDeathTicks int     `yaml:"fall_death_ticks"`
	DashTicks      int     `yaml:"dash_ticks"`
	DashTailTicks  int     `yaml:"dash_tail_ticks"`
	DashSpeed      float64 `yaml:"dash_speed"`
	DashExitScale  float64 `yaml:"dash_exit_scale"`
	DashBurstCount int     `yaml:"dash_burst_count"`
	HorizontalDrag float64 `yaml:"horizontal_drag"`
	MaxJumps       int     `yaml:"max_jumps"`
}

// EnemyTuning holds the enemy AI constants.
type EnemyTuning struct {
	WalkSpeed       float64 `yaml:"walk_speed"`
	WanderChance    float64 `yaml:"wander_chance"`
	WalkMinTicks    int     `yaml:"walk_min_ticks"`
	WalkMaxTicks    int     `yaml:"walk_max_ticks"`
	ProbeForward    float64 `yaml:"probe_forward"`
	ProbeDepth      float64 `yaml:"probe_depth"`
	FireBand        float64 `yaml:"fire_band"`
	MuzzleOffset    float64 `yaml:"muzzle_offset"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`

	// StompDashTicks is the dash magnitude at or above which touching the
	// player kills the enemy.
	StompDashTicks int `yaml:"stomp_dash_ticks"`
}

// ProjectileTuning holds projectile constants.
type ProjectileTuning struct {
	MaxAge int `yaml:"max_age"`

	// HarmlessDashTicks is the dash magnitude at or above which projectiles
	// pass through the player.
	HarmlessDashTicks int `yaml:"harmless_dash_ticks"`
}

// Tuning groups every gameplay constant.
type Tuning struct {
	Player     PlayerTuning     `yaml:"player"`
	Enemy      EnemyTuning      `yaml:"enemy"`
	Projectile ProjectileTuning `yaml:"projectile"`
}

// DefaultTuning returns the shipped balance.
func DefaultTuning() Tuning {
	return Tuning{
		Player: PlayerTuning{
			JumpSpeed:      3,
			WallJumpPush:   3.5,
			WallJumpSpeed:  2.5,
			WallSlideSpeed: 0.5,
			AirGraceTicks:  4,
			JumpAirTime:    5,
			FallDeathTicks: 120,
			DashTicks:      60,
			DashTailTicks:  50,
			DashSpeed:      8,
			DashExitScale:  0.1,
			DashBurstCount: 20,
			HorizontalDrag: 0.1,
			MaxJumps:       1,
		},
		Enemy: EnemyTuning{
			WalkSpeed:       0.5,
			WanderChance:    0.01,
			WalkMinTicks:    30,
			WalkMaxTicks:    120,
			ProbeForward:    7,
			ProbeDepth:      23,
			FireBand:        16,
			MuzzleOffset:    7,
			ProjectileSpeed: 1.5,
			StompDashTicks:  50,
		},
		Projectile: ProjectileTuning{
			MaxAge:            360,
			HarmlessDashTicks: 50,
		},
	}
}

// Validate rejects tuning that would break the simulation.
func (t Tuning) Validate() error {
	e := t.Enemy
	if e.WalkMinTicks < 0 || e.WalkMaxTicks < e.WalkMinTicks {
		return fmt.Errorf("entity: enemy walk range %d..%d is invalid", e.WalkMinTicks, e.WalkMaxTicks)
	}
	if t.Player.MaxJumps < 0 {
		return fmt.Errorf("entity: player max_jumps %d is negative", t.Player.MaxJumps)
	}
	if t.Player.DashTailTicks > t.Player.DashTicks {
		return fmt.Errorf("entity: player dash_tail_ticks %d exceeds dash_ticks %d", t.Player.DashTailTicks, t.Player.DashTicks)
	}
	return nil
}
