package fitness

import (
	"math"
	"testing"
)

func TestPresets_Registered(t *testing.T) {
	for _, p := range []Preset{PresetBaseline, PresetGuided, PresetExplorer, DefaultPreset} {
		if _, err := Lookup(p); err != nil {
			t.Errorf("preset %s: %v", p, err)
		}
	}

	baseline, _ := Lookup(PresetBaseline)
	if baseline.ResidualReward != 0 {
		t.Errorf("baseline must not grant residual credit, got %v", baseline.ResidualReward)
	}
	guided, _ := Lookup(PresetGuided)
	if guided.ResidualReward <= 0 {
		t.Error("guided preset must grant residual credit")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	if err := Register(PresetBaseline, BaselineWeights()); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestRegister_RejectsNonFinite(t *testing.T) {
	w := BaselineWeights()
	w.GoalReward = math.Inf(1)
	if err := Register("broken", w); err == nil {
		t.Error("expected error for infinite weight")
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, err := Lookup("nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
