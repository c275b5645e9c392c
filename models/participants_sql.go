package models

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type sqlParticipantRepo struct{ db *sql.DB }

func NewSQLParticipantRepository(db *sql.DB) ParticipantRepository {
	return &sqlParticipantRepo{db}
}

func (r *sqlParticipantRepo) Add(clientID int64, eventID string) error {
	// UNIQUE (cliente_id, evento_id) is the authoritative duplicate guard:
	// a concurrent join that slipped past the in-memory roster check still
	// fails here with 23505.
	_, err := r.db.Exec(
		`INSERT INTO participantes(cliente_id, evento_id) VALUES ($1,$2)`,
		clientID, eventID,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrAlreadyMember
	}
	return err
}

func (r *sqlParticipantRepo) Remove(clientID int64, eventID string) error {
	res, err := r.db.Exec(
		`DELETE FROM participantes WHERE cliente_id=$1 AND evento_id=$2`,
		clientID, eventID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotMember
	}
	return nil
}

// RemoveAllForEvent clears the roster rows when an event is deleted.
func (r *sqlParticipantRepo) RemoveAllForEvent(eventID string) error {
	_, err := r.db.Exec(`DELETE FROM participantes WHERE evento_id=$1`, eventID)
	return err
}
