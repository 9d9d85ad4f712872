package fitness

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lixenwraith/mazewalk/parameter"
)

// Preset names a reward variant
type Preset string

const (
	PresetBaseline Preset = "baseline"
	PresetGuided   Preset = "guided"
	PresetExplorer Preset = "explorer"
)

// DefaultPreset is used when no preset is configured
const DefaultPreset = Preset(parameter.FitnessDefaultPreset)

var (
	presetsMu sync.RWMutex
	presets   = map[Preset]Weights{}
)

func init() {
	baseline := BaselineWeights()

	guided := baseline
	guided.ResidualReward = parameter.FitnessResidualReward
	guided.ResidualFalloff = parameter.FitnessResidualFalloff

	explorer := guided
	explorer.NoveltyReward = parameter.FitnessExplorerNoveltyReward
	explorer.ExploreReward = parameter.FitnessExplorerExploreReward
	explorer.WallPenalty = parameter.FitnessExplorerWallPenalty

	for name, w := range map[Preset]Weights{
		PresetBaseline: baseline,
		PresetGuided:   guided,
		PresetExplorer: explorer,
	} {
		if err := Register(name, w); err != nil {
			panic(err)
		}
	}
}

// Register adds a named weight preset
func Register(name Preset, w Weights) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("preset %q: %w", name, err)
	}

	presetsMu.Lock()
	defer presetsMu.Unlock()

	if _, exists := presets[name]; exists {
		return fmt.Errorf("preset %q already registered", name)
	}
	presets[name] = w
	return nil
}

// Lookup returns the weights registered under name
func Lookup(name Preset) (Weights, error) {
	presetsMu.RLock()
	defer presetsMu.RUnlock()

	w, ok := presets[name]
	if !ok {
		return Weights{}, fmt.Errorf("unknown fitness preset %q (known: %v)", name, presetNames())
	}
	return w, nil
}

// Presets lists registered names in sorted order
func Presets() []Preset {
	presetsMu.RLock()
	defer presetsMu.RUnlock()
	return presetNames()
}

func presetNames() []Preset {
	names := make([]Preset, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
