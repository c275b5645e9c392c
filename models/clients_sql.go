package models

import (
	"database/sql"
	"errors"

	"eventmanager/utils"
)

type sqlClientRepo struct{ db *sql.DB }

func NewSQLClientRepository(db *sql.DB) ClientRepository { return &sqlClientRepo{db} }

func (r *sqlClientRepo) Create(c *Client) error {
	// c.Password arrives as plain text; hash before it touches the table.
	hashed, err := utils.HashPassword(c.Password)
	if err != nil {
		return err
	}
	c.Password = hashed

	return r.db.QueryRow(
		`INSERT INTO clientes(nombre, apellidos, username, correo, fecha_nacimiento, ciudad, idioma, password)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`,
		c.Nombre, c.Apellidos, c.Username, c.Correo, c.FechaNacimiento, c.Ciudad, c.Idioma, c.Password,
	).Scan(&c.ID)
}

// ValidateCredentials accepts either the username or the email, bcrypt-compares
// the stored hash and returns the matching client.
func (r *sqlClientRepo) ValidateCredentials(usernameOrEmail, plain string) (Client, error) {
	var c Client
	err := r.db.QueryRow(
		`SELECT id, nombre, apellidos, username, correo, password
		 FROM clientes WHERE username=$1 OR correo=$1`, usernameOrEmail,
	).Scan(&c.ID, &c.Nombre, &c.Apellidos, &c.Username, &c.Correo, &c.Password)
	if err != nil {
		return Client{}, errors.New("invalid credentials")
	}

	if !utils.CheckPasswordHash(plain, c.Password) {
		return Client{}, errors.New("invalid credentials")
	}
	c.Password = ""
	return c, nil
}

func (r *sqlClientRepo) GetByID(id int64) (Client, error) {
	var c Client
	err := r.db.QueryRow(
		`SELECT id, nombre, apellidos, username, correo FROM clientes WHERE id=$1`, id,
	).Scan(&c.ID, &c.Nombre, &c.Apellidos, &c.Username, &c.Correo)
	if errors.Is(err, sql.ErrNoRows) {
		return Client{}, ErrClientNotFound
	}
	if err != nil {
		return Client{}, err
	}
	return c, nil
}
