package models

// Event is the aggregate persisted as one Mongo document. Field names follow
// the wire contract (fecha/hora as strings so they sort lexicographically in
// schedule order). ParticipantesIDs has set semantics: AddParticipant and
// RemoveParticipant are the only mutation paths and keep it duplicate-free.
type Event struct {
	ID               string       `json:"id" bson:"id"` // UUID, shared with the SQL participantes table
	Fecha            string       `json:"fecha" bson:"fecha" binding:"required"`
	Hora             string       `json:"hora" bson:"hora" binding:"required"`
	Lugar            string       `json:"lugar" bson:"lugar" binding:"required"`
	Titulo           string       `json:"titulo" bson:"titulo" binding:"required"`
	Descripcion      string       `json:"descripcion" bson:"descripcion"`
	Restricciones    Restrictions `json:"restricciones" bson:"restricciones"`
	Tags             []string     `json:"tags" bson:"tags"`
	IDCreador        int64        `json:"idCreador" bson:"idCreador"`
	ParticipantesIDs []int64      `json:"participantesIds" bson:"participantesIds"`
}

// HasParticipant reports whether the client is already on the roster.
func (e *Event) HasParticipant(clientID int64) bool {
	for _, id := range e.ParticipantesIDs {
		if id == clientID {
			return true
		}
	}
	return false
}

// AddParticipant enrolls a client. Duplicate joins are rejected, not
// silently ignored; a failed call leaves the roster untouched.
func (e *Event) AddParticipant(clientID int64) error {
	if e.HasParticipant(clientID) {
		return ErrAlreadyMember
	}
	e.ParticipantesIDs = append(e.ParticipantesIDs, clientID)
	return nil
}

// RemoveParticipant unenrolls a client. Leaving an event the client never
// joined is rejected and does not mutate the roster.
func (e *Event) RemoveParticipant(clientID int64) error {
	for i, id := range e.ParticipantesIDs {
		if id == clientID {
			e.ParticipantesIDs = append(e.ParticipantesIDs[:i], e.ParticipantesIDs[i+1:]...)
			return nil
		}
	}
	return ErrNotMember
}

// EventView is the external read model. Same shape as Event but total:
// tags and restricciones are never null, participants are ids only.
type EventView struct {
	ID               string       `json:"id"`
	Fecha            string       `json:"fecha"`
	Hora             string       `json:"hora"`
	Lugar            string       `json:"lugar"`
	Titulo           string       `json:"titulo"`
	Descripcion      string       `json:"descripcion"`
	Restricciones    Restrictions `json:"restricciones"`
	Tags             []string     `json:"tags"`
	IDCreador        int64        `json:"idCreador"`
	ParticipantesIDs []int64      `json:"participantesIds"`
}

// NewEventView projects an Event into its view. Pure and idempotent: the
// slices and map are copied so later aggregate mutations never leak into an
// already-built view.
func NewEventView(e Event) EventView {
	v := EventView{
		ID:               e.ID,
		Fecha:            e.Fecha,
		Hora:             e.Hora,
		Lugar:            e.Lugar,
		Titulo:           e.Titulo,
		Descripcion:      e.Descripcion,
		Restricciones:    Restrictions{},
		Tags:             []string{},
		IDCreador:        e.IDCreador,
		ParticipantesIDs: []int64{},
	}
	for k, val := range e.Restricciones {
		v.Restricciones[k] = val
	}
	v.Tags = append(v.Tags, e.Tags...)
	v.ParticipantesIDs = append(v.ParticipantesIDs, e.ParticipantesIDs...)
	return v
}

// NewEventViews projects a slice, keeping storage order.
func NewEventViews(events []Event) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, NewEventView(e))
	}
	return views
}
