package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSeed seeds every optimizer's random generator unless overridden, so
// replayed snapshots produce the same passes.
const DefaultSeed = 14

// Config is the full tuning bundle. It is loaded once at startup and only
// read by the decision core.
type Config struct {
	SocketPath    string `yaml:"socket_path"`
	LogLevel      string `yaml:"log_level"`
	Seed          int64  `yaml:"seed"`
	PitchDivision string `yaml:"pitch_division"` // "eighteen_zone" or "eight_zone"

	Physics  Physics  `yaml:"physics"`
	Passing  Passing  `yaml:"passing"`
	FreeKick FreeKick `yaml:"free_kick"`
	Attacker Attacker `yaml:"attacker"`
	Dribble  Dribble  `yaml:"dribble"`
	KeepAway KeepAway `yaml:"keep_away"`

	Plays []PlayRule `yaml:"plays"`
}

// Physics holds the ball friction model used to derive pass speeds.
type Physics struct {
	SlidingDeceleration      float64 `yaml:"sliding_deceleration"` // m/s^2, magnitude
	RollingDeceleration      float64 `yaml:"rolling_deceleration"` // m/s^2, magnitude
	FrictionTransitionFactor float64 `yaml:"friction_transition_factor"`
	RobotMaxSpeed            float64 `yaml:"robot_max_speed"`
	EnemyReactionTime        float64 `yaml:"enemy_reaction_time"` // seconds
}

type Passing struct {
	MinPassSpeed         float64 `yaml:"min_pass_speed"`
	MaxPassSpeed         float64 `yaml:"max_pass_speed"`
	MaxReceiveSpeed      float64 `yaml:"max_receive_speed"`
	GradientStepsPerIter int     `yaml:"gradient_steps_per_iter"`
	GradientStepSize     float64 `yaml:"gradient_step_size"` // meters per step, roughly
	SamplesPerRobot      int     `yaml:"samples_per_robot"`
	SampleStdDev         float64 `yaml:"sample_std_dev"`

	// Rater shaping.
	StaticFieldWeight   float64 `yaml:"static_field_weight"`
	EnemyRiskWidth      float64 `yaml:"enemy_risk_width"`
	FriendlyReceiveTime float64 `yaml:"friendly_receive_time"`
	InZoneWidth         float64 `yaml:"in_zone_width"`
}

type FreeKick struct {
	MinAcceptablePassScore float64 `yaml:"min_acceptable_pass_score"`
	MaxTimeCommitToPass    float64 `yaml:"max_time_commit_to_pass"` // seconds
}

type Attacker struct {
	MinOpenAngleForShotDeg      float64 `yaml:"min_open_angle_for_shot_deg"`
	EnemyAboutToStealBallRadius float64 `yaml:"enemy_about_to_steal_ball_radius"`
}

type Dribble struct {
	LoseBallControlThreshold float64 `yaml:"lose_ball_control_threshold"`
	DestinationTolerance     float64 `yaml:"destination_tolerance"`
	OrientationTolerance     float64 `yaml:"orientation_tolerance"` // radians
}

type KeepAway struct {
	MinPassScore float64 `yaml:"min_pass_score"`
	SearchRadius float64 `yaml:"search_radius"`
}

// PlayRule selects a play when its expr condition holds.
type PlayRule struct {
	Name     string `yaml:"name"`
	Priority int    `yaml:"priority"`
	When     string `yaml:"when"`
	Play     string `yaml:"play"`
}

// Default returns the tuned baseline configuration.
func Default() Config {
	return Config{
		SocketPath:    "/tmp/striker.sock",
		LogLevel:      "info",
		Seed:          DefaultSeed,
		PitchDivision: "eighteen_zone",
		Physics: Physics{
			SlidingDeceleration:      6.9,
			RollingDeceleration:      0.5,
			FrictionTransitionFactor: 5.0 / 7.0,
			RobotMaxSpeed:            3.0,
			EnemyReactionTime:        0.4,
		},
		Passing: Passing{
			MinPassSpeed:         1.0,
			MaxPassSpeed:         5.5,
			MaxReceiveSpeed:      2.0,
			GradientStepsPerIter: 5,
			GradientStepSize:     0.1,
			SamplesPerRobot:      3,
			SampleStdDev:         0.5,
			StaticFieldWeight:    0.7,
			EnemyRiskWidth:       0.5,
			FriendlyReceiveTime:  0.3,
			InZoneWidth:          0.2,
		},
		FreeKick: FreeKick{
			MinAcceptablePassScore: 0.4,
			MaxTimeCommitToPass:    3.0,
		},
		Attacker: Attacker{
			MinOpenAngleForShotDeg:      6,
			EnemyAboutToStealBallRadius: 0.5,
		},
		Dribble: Dribble{
			LoseBallControlThreshold: 0.05,
			DestinationTolerance:     0.1,
			OrientationTolerance:     0.1,
		},
		KeepAway: KeepAway{
			MinPassScore: 0.6,
			SearchRadius: 0.5,
		},
		Plays: DefaultPlays(),
	}
}

// DefaultPlays is the play selection table used when the file has none.
func DefaultPlays() []PlayRule {
	return []PlayRule{
		{Name: "halt", Priority: 1000, When: `Halted() || Stopped()`, Play: "halt"},
		{Name: "our-free-kick", Priority: 800, When: `OurFreeKick() && FriendlyCount() > 0`, Play: "free_kick"},
		{Name: "keep-away", Priority: 500, When: `Playing() && FriendlyHasBall()`, Play: "keep_away"},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if len(cfg.Plays) == 0 {
		cfg.Plays = DefaultPlays()
	}

	cfg.Validate()
	return cfg, nil
}

// Validate clamps every tunable into its usable range. Out-of-range values are
// never an error.
func (c *Config) Validate() {
	if c.PitchDivision != "eight_zone" {
		c.PitchDivision = "eighteen_zone"
	}

	c.Physics.SlidingDeceleration = clamp(c.Physics.SlidingDeceleration, 0.1, 50)
	c.Physics.RollingDeceleration = clamp(c.Physics.RollingDeceleration, 0.01, c.Physics.SlidingDeceleration)
	c.Physics.FrictionTransitionFactor = clamp(c.Physics.FrictionTransitionFactor, 0.1, 1)
	c.Physics.RobotMaxSpeed = clamp(c.Physics.RobotMaxSpeed, 0.1, 10)
	c.Physics.EnemyReactionTime = clamp(c.Physics.EnemyReactionTime, 0, 2)

	c.Passing.MinPassSpeed = clamp(c.Passing.MinPassSpeed, 0.1, 10)
	c.Passing.MaxPassSpeed = clamp(c.Passing.MaxPassSpeed, c.Passing.MinPassSpeed, 10)
	c.Passing.MaxReceiveSpeed = clamp(c.Passing.MaxReceiveSpeed, 0, c.Passing.MaxPassSpeed)
	c.Passing.GradientStepsPerIter = clampInt(c.Passing.GradientStepsPerIter, 0, 50)
	c.Passing.GradientStepSize = clamp(c.Passing.GradientStepSize, 0.001, 1)
	c.Passing.SamplesPerRobot = clampInt(c.Passing.SamplesPerRobot, 0, 20)
	c.Passing.SampleStdDev = clamp(c.Passing.SampleStdDev, 0.01, 3)
	c.Passing.StaticFieldWeight = clamp(c.Passing.StaticFieldWeight, 0, 1)
	c.Passing.EnemyRiskWidth = clamp(c.Passing.EnemyRiskWidth, 0.01, 5)
	c.Passing.FriendlyReceiveTime = clamp(c.Passing.FriendlyReceiveTime, 0, 5)
	c.Passing.InZoneWidth = clamp(c.Passing.InZoneWidth, 0.01, 2)

	c.FreeKick.MinAcceptablePassScore = clamp(c.FreeKick.MinAcceptablePassScore, 0, 1)
	c.FreeKick.MaxTimeCommitToPass = clamp(c.FreeKick.MaxTimeCommitToPass, 0.1, 60)

	c.Attacker.MinOpenAngleForShotDeg = clamp(c.Attacker.MinOpenAngleForShotDeg, 0, 90)
	c.Attacker.EnemyAboutToStealBallRadius = clamp(c.Attacker.EnemyAboutToStealBallRadius, 0, 5)

	c.Dribble.LoseBallControlThreshold = clamp(c.Dribble.LoseBallControlThreshold, 0.001, 1)
	c.Dribble.DestinationTolerance = clamp(c.Dribble.DestinationTolerance, 0.01, 1)
	c.Dribble.OrientationTolerance = clamp(c.Dribble.OrientationTolerance, 0.01, 1)

	c.KeepAway.MinPassScore = clamp(c.KeepAway.MinPassScore, 0, 1)
	c.KeepAway.SearchRadius = clamp(c.KeepAway.SearchRadius, 0.05, 3)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
