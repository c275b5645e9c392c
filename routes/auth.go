package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventmanager/models"
	"eventmanager/utils"
)

// POST /signup
func (d *deps) signup(c *gin.Context) {
	var req struct {
		Nombre          string `json:"nombre" binding:"required"`
		Apellidos       string `json:"apellidos" binding:"required"`
		Username        string `json:"username" binding:"required"`
		Correo          string `json:"correo" binding:"required,email"`
		FechaNacimiento string `json:"fechaNacimiento" binding:"required"`
		Ciudad          string `json:"ciudad"`
		Idioma          string `json:"idioma"`
		Password        string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	if err := d.policy.Validate(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Insecure password."})
		return
	}

	cl := models.Client{
		Nombre:          req.Nombre,
		Apellidos:       req.Apellidos,
		Username:        req.Username,
		Correo:          req.Correo,
		FechaNacimiento: req.FechaNacimiento,
		Ciudad:          req.Ciudad,
		Idioma:          req.Idioma,
		Password:        req.Password,
	}
	if err := d.clients.Create(&cl); err != nil {
		// UNIQUE on username/correo lands here as well
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not save user. Username or email may be in use."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user created successfully", "userId": cl.ID})
}

// POST /login
func (d *deps) login(c *gin.Context) {
	var req struct {
		UsernameOrEmail string `json:"usernameOrEmail" binding:"required"`
		Password        string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	client, err := d.clients.ValidateCredentials(req.UsernameOrEmail, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Could not authenticate user."})
		return
	}

	token, err := utils.GenerateToken(client.Username, client.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not authenticate user."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful!",
		"token":    token,
		"userId":   client.ID,
		"username": client.Username,
	})
}
