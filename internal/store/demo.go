package store

import "grove-cli/internal/model"

// DemoSeeds are planted into an empty grove so the layout has something to show
// before the first real question.
func DemoSeeds() []model.Seed {
	mk := func(cls model.Class, ghost, note string) model.Seed {
		return Normalize(model.Seed{
			ID:    NewSeedID(),
			Class: cls,
			Ghost: ghost,
			Note:  note,
		})
	}
	return []model.Seed{
		mk(model.ClassGreen, "A good echo from the ghost.", "resonant"),
		mk(model.ClassYellow, "Half-right and half-smudged.", "needs nuance"),
		mk(model.ClassRed, "Confidently wrong in a familiar way.", "harmful"),
		mk(model.ClassYellow, "Fragmented memory, polished tone.", "meh"),
		mk(model.ClassGreen, "It lands softly and true.", "nice"),
	}
}

// EnsureDemo plants the demo seeds when the store is empty. Returns true when
// it planted.
func (s Store) EnsureDemo() (bool, error) {
	if s.Count() > 0 {
		return false, nil
	}
	return true, s.SaveAll(DemoSeeds())
}
