package economy

import "errors"

var (
	// ErrInsufficientFunds is returned when a purchase costs more than the
	// current coins. The state is left unchanged.
	ErrInsufficientFunds = errors.New("economy: insufficient funds")

	// ErrUnknownOrUnownedSkin is returned when activating a skin that is not owned.
	ErrUnknownOrUnownedSkin = errors.New("economy: unknown or unowned skin")

	// ErrUnknownSkin is returned when buying a skin the catalog does not sell.
	ErrUnknownSkin = errors.New("economy: unknown skin")

	// ErrUnknownPerk is returned when buying a perk the catalog does not sell.
	ErrUnknownPerk = errors.New("economy: unknown perk")

	// ErrPersistenceRead marks a missing or malformed save blob. Load recovers
	// from it with defaults; it only reaches the log.
	ErrPersistenceRead = errors.New("economy: cannot read save")

	// ErrPersistenceWrite marks a failed save. Writes are best-effort and the
	// in-memory state stays authoritative.
	ErrPersistenceWrite = errors.New("economy: cannot write save")
)
