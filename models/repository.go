package models

import "errors"

// Sentinel errors surfaced by repositories and the event aggregate.
// Handlers translate them to HTTP status codes.
var (
	ErrClientNotFound = errors.New("client not found")
	ErrEventNotFound  = errors.New("event not found")
	ErrAlreadyMember  = errors.New("client is already enrolled in event")
	ErrNotMember      = errors.New("client is not enrolled in event")
)

// Restrictions is the open eligibility bag attached to an event
// (idiomaRequerido, edad_minima, plazasDisponibles, ...). Keys are not fixed:
// the map is stored and projected verbatim, never enforced at join time.
type Restrictions map[string]any

// ===== Clients =====
type Client struct {
	ID              int64  `json:"id"`
	Nombre          string `json:"nombre"`
	Apellidos       string `json:"apellidos"`
	Username        string `json:"username"`
	Correo          string `json:"correo"`
	FechaNacimiento string `json:"fechaNacimiento"` // YYYY-MM-DD
	Ciudad          string `json:"ciudad"`
	Idioma          string `json:"idioma"`
	Password        string `json:"-"`
}

type ClientRepository interface {
	Create(c *Client) error
	ValidateCredentials(usernameOrEmail, plain string) (Client, error)
	GetByID(id int64) (Client, error)
}

// ===== Events =====
type EventRepository interface {
	GetAll() ([]Event, error)
	GetByID(id string) (Event, error)
	ListByParticipant(clientID int64) ([]Event, error)
	ListByCreator(clientID int64) ([]Event, error)
	Create(e *Event) error
	Update(e *Event) error
	Delete(id string) error
}

// ===== Participants =====
// Backed by the SQL join table with UNIQUE (cliente_id, evento_id); that
// constraint is the authoritative duplicate guard, the in-memory roster
// check on Event is only the pre-write guard.
type ParticipantRepository interface {
	Add(clientID int64, eventID string) error
	Remove(clientID int64, eventID string) error
	RemoveAllForEvent(eventID string) error
}
