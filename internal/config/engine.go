package config

import (
	"fmt"
	"math"
	"time"
)

// weightSumTolerance is the allowed deviation when checking that a weight
// group sums to 1.
const weightSumTolerance = 0.001

// EngineConfig holds review-engine tuning parameters.
type EngineConfig struct {
	// ReviewerQuorum is the number of submitted reviews required before a
	// submission can be finalized automatically.
	ReviewerQuorum int

	// SkillWeight, PerformanceWeight and WorkloadWeight combine the
	// candidate sub-scores into the composite ranking score. They must sum to 1.
	SkillWeight       float64
	PerformanceWeight float64
	WorkloadWeight    float64

	// ReliabilityWeight, EfficiencyWeight and ConsistencyWeight combine the
	// performance sub-scores into the overall performance score. They must sum to 1.
	ReliabilityWeight float64
	EfficiencyWeight  float64
	ConsistencyWeight float64

	// MinSkillScore is the default minimum skill score for candidate ranking.
	MinSkillScore float64
	// MaxWorkload is the default maximum number of active assignments a
	// candidate may hold and still be ranked.
	MaxWorkload int

	// SweepInterval is how often the overdue-revision sweeper runs.
	SweepInterval time.Duration

	// SuggestEnabled toggles the optional AI suggestion provider.
	SuggestEnabled bool
	// SuggestModel is the model identifier passed to the provider.
	SuggestModel string
	// SuggestTimeout bounds a single suggestion call.
	SuggestTimeout time.Duration
	// SuggestMaxInFlight caps concurrent provider calls.
	SuggestMaxInFlight int
	// SuggestMaxAttempts caps retries on retryable provider errors.
	SuggestMaxAttempts int
}

// LoadEngineConfigFromEnv loads engine configuration from environment variables.
func LoadEngineConfigFromEnv() EngineConfig {
	return EngineConfig{
		ReviewerQuorum:     GetEnvInt("ENGINE_REVIEWER_QUORUM", 2),
		SkillWeight:        GetEnvFloat("ENGINE_SKILL_WEIGHT", 0.5),
		PerformanceWeight:  GetEnvFloat("ENGINE_PERFORMANCE_WEIGHT", 0.3),
		WorkloadWeight:     GetEnvFloat("ENGINE_WORKLOAD_WEIGHT", 0.2),
		ReliabilityWeight:  GetEnvFloat("ENGINE_RELIABILITY_WEIGHT", 1.0/3.0),
		EfficiencyWeight:   GetEnvFloat("ENGINE_EFFICIENCY_WEIGHT", 1.0/3.0),
		ConsistencyWeight:  GetEnvFloat("ENGINE_CONSISTENCY_WEIGHT", 1.0/3.0),
		MinSkillScore:      GetEnvFloat("ENGINE_MIN_SKILL_SCORE", 0.3),
		MaxWorkload:        GetEnvInt("ENGINE_MAX_WORKLOAD", 5),
		SweepInterval:      GetEnvDuration("ENGINE_SWEEP_INTERVAL", 10*time.Minute),
		SuggestEnabled:     GetEnvBool("SUGGEST_ENABLED", false),
		SuggestModel:       GetEnv("SUGGEST_MODEL", "claude-sonnet-4-5"),
		SuggestTimeout:     GetEnvDuration("SUGGEST_TIMEOUT", 10*time.Second),
		SuggestMaxInFlight: GetEnvInt("SUGGEST_MAX_IN_FLIGHT", 4),
		SuggestMaxAttempts: GetEnvInt("SUGGEST_MAX_ATTEMPTS", 3),
	}
}

// Validate validates engine configuration.
func (c EngineConfig) Validate() error {
	if c.ReviewerQuorum < 1 {
		return fmt.Errorf("ENGINE_REVIEWER_QUORUM must be at least 1, got %d", c.ReviewerQuorum)
	}

	for name, w := range map[string]float64{
		"ENGINE_SKILL_WEIGHT":       c.SkillWeight,
		"ENGINE_PERFORMANCE_WEIGHT": c.PerformanceWeight,
		"ENGINE_WORKLOAD_WEIGHT":    c.WorkloadWeight,
		"ENGINE_RELIABILITY_WEIGHT": c.ReliabilityWeight,
		"ENGINE_EFFICIENCY_WEIGHT":  c.EfficiencyWeight,
		"ENGINE_CONSISTENCY_WEIGHT": c.ConsistencyWeight,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s must be in [0,1], got %g", name, w)
		}
	}

	if sum := c.SkillWeight + c.PerformanceWeight + c.WorkloadWeight; math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("ranking weights must sum to 1, got %g", sum)
	}
	if sum := c.ReliabilityWeight + c.EfficiencyWeight + c.ConsistencyWeight; math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("performance weights must sum to 1, got %g", sum)
	}

	if c.MinSkillScore < 0 || c.MinSkillScore > 1 {
		return fmt.Errorf("ENGINE_MIN_SKILL_SCORE must be in [0,1], got %g", c.MinSkillScore)
	}
	if c.MaxWorkload < 1 {
		return fmt.Errorf("ENGINE_MAX_WORKLOAD must be at least 1, got %d", c.MaxWorkload)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("ENGINE_SWEEP_INTERVAL must be greater than 0")
	}

	if c.SuggestEnabled {
		if c.SuggestModel == "" {
			return fmt.Errorf("SUGGEST_MODEL must not be empty when suggestions are enabled")
		}
		if c.SuggestTimeout <= 0 {
			return fmt.Errorf("SUGGEST_TIMEOUT must be greater than 0")
		}
		if c.SuggestMaxInFlight < 1 {
			return fmt.Errorf("SUGGEST_MAX_IN_FLIGHT must be at least 1, got %d", c.SuggestMaxInFlight)
		}
		if c.SuggestMaxAttempts < 1 {
			return fmt.Errorf("SUGGEST_MAX_ATTEMPTS must be at least 1, got %d", c.SuggestMaxAttempts)
		}
	}

	return nil
}
