// Package economy owns the persistent currency and ownership state that
// survives across runs: coins, best score, skins and perks.
//
// A Store is not safe for concurrent use. The run controller and the shop
// surface reach it from the same goroutine.
package economy

import (
	"slices"
)

// SkinID identifies a cosmetic skin.
type SkinID string

// PerkID identifies a gameplay perk.
type PerkID string

// Known perks.
const (
	PerkDoubleJump PerkID = "doubleJump"
	PerkShield     PerkID = "shield"
	PerkMagnet     PerkID = "magnet"
	PerkSpeed      PerkID = "speed"
)

// AllPerks lists every perk in display order.
var AllPerks = []PerkID{PerkDoubleJump, PerkShield, PerkMagnet, PerkSpeed}

// PerkSet holds the permanent "owned" flag of every perk.
type PerkSet struct {
	DoubleJump bool `yaml:"doubleJump"`
	Shield     bool `yaml:"shield"`
	Magnet     bool `yaml:"magnet"`
	Speed      bool `yaml:"speed"`
}

// Has reports whether the perk is owned. Unknown ids are never owned.
func (p PerkSet) Has(id PerkID) bool {
	switch id {
	case PerkDoubleJump:
		return p.DoubleJump
	case PerkShield:
		return p.Shield
	case PerkMagnet:
		return p.Magnet
	case PerkSpeed:
		return p.Speed
	}
	return false
}

func (p *PerkSet) grant(id PerkID) bool {
	switch id {
	case PerkDoubleJump:
		p.DoubleJump = true
	case PerkShield:
		p.Shield = true
	case PerkMagnet:
		p.Magnet = true
	case PerkSpeed:
		p.Speed = true
	default:
		return false
	}
	return true
}

// State is the economy snapshot: Coins >= 0, BestScore >= 0, ActiveSkin is
// always one of OwnedSkins, and OwnedSkins is sorted without duplicates.
type State struct {
	Coins      int
	BestScore  int
	OwnedSkins []SkinID
	ActiveSkin SkinID
	OwnedPerks PerkSet
}

// Owns reports whether the skin is owned.
func (s State) Owns(id SkinID) bool {
	_, found := slices.BinarySearch(s.OwnedSkins, id)
	return found
}

// Clone returns a deep copy so callers cannot alias the store's slice.
func (s State) Clone() State {
	s.OwnedSkins = slices.Clone(s.OwnedSkins)
	return s
}

// DefaultState returns the state of a brand new player.
func DefaultState(defaultSkin SkinID) State {
	return State{
		OwnedSkins: []SkinID{defaultSkin},
		ActiveSkin: defaultSkin,
	}
}

// normalize restores every State invariant in place.
func (s *State) normalize(defaultSkin SkinID) {
	s.Coins = max(s.Coins, 0)
	s.BestScore = max(s.BestScore, 0)

	owned := make([]SkinID, 0, len(s.OwnedSkins)+1)
	owned = append(owned, defaultSkin)
	for _, id := range s.OwnedSkins {
		if id != "" {
			owned = append(owned, id)
		}
	}
	slices.Sort(owned)
	s.OwnedSkins = slices.Compact(owned)

	if !s.Owns(s.ActiveSkin) {
		s.ActiveSkin = defaultSkin
	}
}

func (s *State) addSkin(id SkinID) {
	if i, found := slices.BinarySearch(s.OwnedSkins, id); !found {
		s.OwnedSkins = slices.Insert(s.OwnedSkins, i, id)
	}
}
