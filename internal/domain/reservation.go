package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReservationID is an opaque unique token minted once per successful
// reservation and never reused.
type ReservationID string

// NewReservationID generates a reservation token from a random identifier
// concatenated with the creation timestamp.
func NewReservationID() ReservationID {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return ReservationID(fmt.Sprintf("%s||%s", id, time.Now().UTC().Format(time.RFC3339Nano)))
}

// Reservation is the claim on one physical tool unit. Its validity is
// derived from durable-store row state, not tracked here.
type Reservation struct {
	ID          ReservationID `json:"id"`
	Tool        Tool          `json:"tool"`
	RentalPrice RentalPrice   `json:"rental_price"`
}
