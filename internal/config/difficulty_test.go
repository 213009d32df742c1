package config

import "testing"

func TestGravityIntervalScalesWithScore(t *testing.T) {
	cfg := DefaultBlockfallConfig()
	d := NewDifficultyManager(cfg.Difficulty)

	base := cfg.Gravity.IntervalMs

	atZero := d.GravityInterval(base, 0, 0)
	if atZero != base {
		t.Errorf("Interval at zero score should be the base %dms, got %dms", base, atZero)
	}

	atMax := d.GravityInterval(base, cfg.Difficulty.Progression.MaxAt, 0)
	if atMax >= atZero {
		t.Errorf("Interval should shrink with score: %dms -> %dms", atZero, atMax)
	}
	if atMax < cfg.Difficulty.Scaling.MinIntervalMs {
		t.Errorf("Interval %dms fell below the %dms floor", atMax, cfg.Difficulty.Scaling.MinIntervalMs)
	}
}

func TestGravityIntervalFixedPreset(t *testing.T) {
	cfg := DefaultBlockfallConfig()
	ApplyBlockfallPreset(&cfg, DifficultyFixed)

	d := NewDifficultyManager(cfg.Difficulty)
	base := cfg.Gravity.IntervalMs

	if got := d.GravityInterval(base, 100000, 100000); got != base {
		t.Errorf("Fixed preset must not scale gravity: got %dms, want %dms", got, base)
	}
}

func TestApplyPresetInitialLevels(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		level  float64
	}{
		{DifficultyEasy, 0.0},
		{DifficultyNormal, 0.3},
		{DifficultyHard, 0.7},
	}

	for _, tt := range tests {
		cfg := DefaultBlockfallConfig()
		ApplyBlockfallPreset(&cfg, tt.preset)
		if !cfg.Difficulty.Enabled {
			t.Errorf("%s: progression should stay enabled", tt.preset)
		}
		if cfg.Difficulty.InitialLevel != tt.level {
			t.Errorf("%s: initial level = %v, want %v", tt.preset, cfg.Difficulty.InitialLevel, tt.level)
		}
	}
}

func TestLoadBlockfallFallsBackToEmbedded(t *testing.T) {
	cfg, err := LoadBlockfall("")
	if err != nil {
		t.Fatalf("LoadBlockfall() failed: %v", err)
	}

	if cfg.Board.Rows <= 0 || cfg.Board.Cols <= 0 {
		t.Errorf("Loaded config has invalid board %dx%d", cfg.Board.Rows, cfg.Board.Cols)
	}
	if cfg.Gravity.IntervalMs <= 0 {
		t.Errorf("Loaded config has invalid gravity interval %dms", cfg.Gravity.IntervalMs)
	}
}

func TestLoadBlockfallMissingCustomPath(t *testing.T) {
	if _, err := LoadBlockfall("/nonexistent/path.yaml"); err == nil {
		t.Error("Expected error for missing custom config path")
	}
}
