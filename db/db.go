// Package db bootstraps the Postgres schema. Events live in Mongo; Postgres
// holds clients and the (cliente, evento) enrollment pairs.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

func CreateTables(db *sql.DB) error {
	createClientesTable := `
	CREATE TABLE IF NOT EXISTS clientes (
		id BIGSERIAL PRIMARY KEY,
		nombre TEXT NOT NULL,
		apellidos TEXT NOT NULL,
		username TEXT NOT NULL UNIQUE,
		correo TEXT NOT NULL UNIQUE,
		fecha_nacimiento DATE NOT NULL,
		ciudad TEXT,
		idioma TEXT,
		password TEXT NOT NULL
	);`
	if _, err := db.Exec(createClientesTable); err != nil {
		return fmt.Errorf("create clientes table: %w", err)
	}

	// evento_id is the event UUID from Mongo; the pair constraint is the
	// authoritative "no duplicate membership" guard.
	createParticipantesTable := `
	CREATE TABLE IF NOT EXISTS participantes (
		id BIGSERIAL PRIMARY KEY,
		cliente_id BIGINT NOT NULL REFERENCES clientes(id),
		evento_id UUID NOT NULL,
		UNIQUE (cliente_id, evento_id)
	);`
	if _, err := db.Exec(createParticipantesTable); err != nil {
		return fmt.Errorf("create participantes table: %w", err)
	}
	return nil
}
