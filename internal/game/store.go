package game

import "context"

// OfferOps describes side effects on the draw-offer registry that must commit
// atomically with the record written by an Update. AddOffer names a player
// whose offer to record; ClearOffers wipes every pending offer for the game.
type OfferOps struct {
	AddOffer    string
	ClearOffers bool
}

// UpdateFunc mutates a loaded record in place. offers is a snapshot of the
// pending draw offers for the game at transaction start. Returning an error
// aborts the update with stored state byte-for-byte unchanged.
type UpdateFunc func(rec *Record, offers map[string]struct{}) (OfferOps, error)

// Store is the durable map of game id to record plus the draw-offer registry.
// Update must apply as a single atomic read-modify-write over both; Get must
// only ever observe fully-committed records.
type Store interface {
	// AllocateID hands out the next monotonically increasing game id.
	AllocateID(ctx context.Context) (uint64, error)

	// Create stores a brand-new record, failing with ErrGameAlreadyExists
	// when the id is already occupied.
	Create(ctx context.Context, rec *Record) error

	// Get loads a committed record or fails with ErrGameNotExist.
	Get(ctx context.Context, id uint64) (*Record, error)

	// Update runs fn inside an atomic read-modify-write on the record and
	// its draw offers. A concurrent writer surfaces as ErrConflict.
	Update(ctx context.Context, id uint64, fn UpdateFunc) (*Record, error)

	// Draw-offer registry. Offers have no expiry besides ClearOffers.
	HasOffer(ctx context.Context, id uint64, player string) (bool, error)
	RecordOffer(ctx context.Context, id uint64, player string) error
	ClearOffers(ctx context.Context, id uint64) error

	Close() error
}
