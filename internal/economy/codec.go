package economy

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// blob is the persisted record. Field names match the original save format;
// because YAML is a superset of JSON, JSON saves decode as well.
type blob struct {
	Coins      int      `yaml:"coins"`
	Best       int      `yaml:"best"`
	OwnedSkins []string `yaml:"ownedSkins"`
	ActiveSkin string   `yaml:"activeSkin"`
	OwnedPerks PerkSet  `yaml:"ownedPerks"`
}

// Encode serializes the state. Output is deterministic for a given state.
func Encode(s State) ([]byte, error) {
	b := blob{
		Coins:      s.Coins,
		Best:       s.BestScore,
		OwnedSkins: make([]string, len(s.OwnedSkins)),
		ActiveSkin: string(s.ActiveSkin),
		OwnedPerks: s.OwnedPerks,
	}
	for i, id := range s.OwnedSkins {
		b.OwnedSkins[i] = string(id)
	}
	data, err := yaml.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrPersistenceWrite, err)
	}
	return data, nil
}

// Decode parses a blob over the defaults and normalizes the result. It
// always returns a usable state; the error only describes what was lost.
// Missing fields keep their defaults, and fields with the wrong type are
// skipped while the rest of the document is kept.
func Decode(data []byte, defaultSkin SkinID) (State, error) {
	def := DefaultState(defaultSkin)
	if len(data) == 0 {
		return def, fmt.Errorf("%w: empty blob", ErrPersistenceRead)
	}

	b := blob{
		OwnedSkins: []string{string(defaultSkin)},
		ActiveSkin: string(defaultSkin),
	}
	var decodeErr error
	if err := yaml.Unmarshal(data, &b); err != nil {
		var typeErr *yaml.TypeError
		if !errors.As(err, &typeErr) {
			return def, fmt.Errorf("%w: %v", ErrPersistenceRead, err)
		}
		decodeErr = fmt.Errorf("%w: partial: %v", ErrPersistenceRead, err)
	}

	s := State{
		Coins:      b.Coins,
		BestScore:  b.Best,
		OwnedSkins: make([]SkinID, 0, len(b.OwnedSkins)),
		ActiveSkin: SkinID(b.ActiveSkin),
		OwnedPerks: b.OwnedPerks,
	}
	for _, id := range b.OwnedSkins {
		s.OwnedSkins = append(s.OwnedSkins, SkinID(id))
	}
	s.normalize(defaultSkin)
	return s, decodeErr
}
