package domain

import "github.com/google/uuid"

// Gender of a client.
type Gender string

const (
	ClientMale   Gender = "MALE"
	ClientFemale Gender = "FEMALE"
)

// Client is a potential ad viewer. Clients are read-only from the ad
// engine's perspective; they are managed by an external directory.
type Client struct {
	ID       uuid.UUID
	Login    string
	Age      int
	Location string
	Gender   Gender
}
