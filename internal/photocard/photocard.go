package photocard

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MaxPhotos caps how many photos one card can carry.
const MaxPhotos = 10

var (
	ErrNotFound      = errors.New("photo card not found")
	ErrTooManyPhotos = errors.New("photo card holds at most 10 photos")
)

// Photo is one ordered image on a card. The original filename is kept for
// display; the URL points at the stored copy.
type Photo struct {
	URL              string
	OriginalFilename string
}

// Card is a shareable work-portfolio entry, optionally linked to the sale it
// was made for. At most one card per sale.
type Card struct {
	ID          uuid.UUID
	Title       string
	Description string
	Tags        []string
	SaleID      *uuid.UUID
	Photos      []Photo
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
