package economy

import (
	"github.com/vovakirdan/dinox/internal/config"
	"github.com/vovakirdan/dinox/internal/core"
)

// Skin is a purely cosmetic player appearance.
type Skin struct {
	ID     SkinID
	Name   string
	Color  core.Color
	Accent core.Color
}

// Perk is a permanently purchasable, passively applied modifier.
type Perk struct {
	ID          PerkID
	Name        string
	Description string
	Price       int
}

// Prices is the static price table shown by the shop.
type Prices struct {
	Skin  int // Flat price, same for every skin
	Perks map[PerkID]int
}

// Catalog lists what the shop sells. It is read-only after construction.
type Catalog struct {
	skinPrice   int
	defaultSkin SkinID
	skins       []Skin
	perks       []Perk
}

// NewCatalog builds the catalog from the economy section of the config.
// Unknown color names fall back to the default terminal color.
func NewCatalog(cfg config.EconomyConfig) Catalog {
	c := Catalog{
		skinPrice:   cfg.SkinPrice,
		defaultSkin: SkinID(cfg.DefaultSkin),
	}
	for _, s := range cfg.Skins {
		body, _ := core.ParseColor(s.Color)
		accent, _ := core.ParseColor(s.Accent)
		c.skins = append(c.skins, Skin{ID: SkinID(s.ID), Name: s.Name, Color: body, Accent: accent})
	}
	for _, p := range cfg.Perks {
		c.perks = append(c.perks, Perk{ID: PerkID(p.ID), Name: p.Name, Description: p.Description, Price: p.Price})
	}
	return c
}

// DefaultSkin returns the skin every player owns.
func (c Catalog) DefaultSkin() SkinID {
	return c.defaultSkin
}

// Skins returns the skins in display order.
func (c Catalog) Skins() []Skin {
	return append([]Skin(nil), c.skins...)
}

// Perks returns the perks in display order.
func (c Catalog) Perks() []Perk {
	return append([]Perk(nil), c.perks...)
}

// Skin looks up a skin by id.
func (c Catalog) Skin(id SkinID) (Skin, bool) {
	for _, s := range c.skins {
		if s.ID == id {
			return s, true
		}
	}
	return Skin{}, false
}

// SkinOrDefault returns the skin, or the default skin for unknown ids.
func (c Catalog) SkinOrDefault(id SkinID) Skin {
	if s, ok := c.Skin(id); ok {
		return s
	}
	s, _ := c.Skin(c.defaultSkin)
	return s
}

// Perk looks up a perk by id.
func (c Catalog) Perk(id PerkID) (Perk, bool) {
	for _, p := range c.perks {
		if p.ID == id {
			return p, true
		}
	}
	return Perk{}, false
}

// Prices returns a copy of the price tables.
func (c Catalog) Prices() Prices {
	p := Prices{Skin: c.skinPrice, Perks: make(map[PerkID]int, len(c.perks))}
	for _, perk := range c.perks {
		p.Perks[perk.ID] = perk.Price
	}
	return p
}
