package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventmanager/models"
	"eventmanager/utils"
)

// storageError maps classified schema problems to a sanitized 500 and
// everything else to the generic message.
func storageError(c *gin.Context, err error, fallback string) {
	if sm, ok := utils.AsSchemaMismatch(err); ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "SCHEMA_MISMATCH",
			"message": sm.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
}

/* -------------------- Queries -------------------- */

// GET /events
func (d *deps) getEvents(c *gin.Context) {
	events, err := d.events.GetAll()
	if err != nil {
		storageError(c, err, "Could not fetch events. Try again later.")
		return
	}
	c.JSON(http.StatusOK, models.NewEventViews(events))
}

// GET /events/:id
func (d *deps) getEvent(c *gin.Context) {
	event, err := d.events.GetByID(c.Param("id"))
	if errors.Is(err, models.ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
		return
	}
	if err != nil {
		storageError(c, err, "Could not fetch event. Try again later.")
		return
	}
	c.JSON(http.StatusOK, models.NewEventView(event))
}

// GET /events/my-events — events the caller participates in
func (d *deps) getMyEvents(c *gin.Context) {
	events, err := d.events.ListByParticipant(c.GetInt64("userId"))
	if err != nil {
		storageError(c, err, "Could not fetch events. Try again later.")
		return
	}
	c.JSON(http.StatusOK, models.NewEventViews(events))
}

// GET /events/my-created — events the caller created
func (d *deps) getMyCreatedEvents(c *gin.Context) {
	events, err := d.events.ListByCreator(c.GetInt64("userId"))
	if err != nil {
		storageError(c, err, "Could not fetch events. Try again later.")
		return
	}
	c.JSON(http.StatusOK, models.NewEventViews(events))
}

/* -------------------- Create / Update / Delete -------------------- */

type createEventRequest struct {
	Fecha         string              `json:"fecha" binding:"required"`
	Hora          string              `json:"hora" binding:"required"`
	Lugar         string              `json:"lugar" binding:"required"`
	Titulo        string              `json:"titulo" binding:"required"`
	Descripcion   string              `json:"descripcion"`
	Restricciones models.Restrictions `json:"restricciones"`
	Tags          []string            `json:"tags"`
}

func (r *createEventRequest) validSchedule() bool {
	if _, err := time.Parse("2006-01-02", r.Fecha); err != nil {
		return false
	}
	_, err := time.Parse("15:04", r.Hora)
	return err == nil
}

// POST /events
func (d *deps) createEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	if !req.validSchedule() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid fecha or hora. Expected YYYY-MM-DD and HH:mm."})
		return
	}

	creatorID := c.GetInt64("userId")
	if _, err := d.clients.GetByID(creatorID); err != nil {
		if errors.Is(err, models.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Client not found."})
			return
		}
		storageError(c, err, "Could not resolve creator. Try again later.")
		return
	}

	event := models.Event{
		ID:            uuid.NewString(), // shared key with the SQL participantes table
		Fecha:         req.Fecha,
		Hora:          req.Hora,
		Lugar:         req.Lugar,
		Titulo:        req.Titulo,
		Descripcion:   req.Descripcion,
		Restricciones: req.Restricciones,
		Tags:          req.Tags,
	}
	if event.Restricciones == nil {
		event.Restricciones = models.Restrictions{}
	}
	if event.Tags == nil {
		event.Tags = []string{}
	}
	event.IDCreador = creatorID
	// a fresh roster cannot already contain the creator
	_ = event.AddParticipant(creatorID)

	if err := d.events.Create(&event); err != nil {
		storageError(c, err, "Could not create event. Try again later.")
		return
	}
	if err := d.parts.Add(creatorID, event.ID); err != nil {
		storageError(c, err, "Could not enroll creator. Try again later.")
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItem(c, event.ID)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "event created!", "event": models.NewEventView(event)})
}

// PUT /events/:id
func (d *deps) updateEvent(c *gin.Context) {
	id := c.Param("id")
	userId := c.GetInt64("userId")

	old, err := d.events.GetByID(id)
	if errors.Is(err, models.ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
		return
	}
	if err != nil {
		storageError(c, err, "Could not fetch the event. Try again later.")
		return
	}
	if old.IDCreador != userId {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized to update event."})
		return
	}

	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	if !req.validSchedule() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid fecha or hora. Expected YYYY-MM-DD and HH:mm."})
		return
	}

	// identifier, creator and roster survive a full-record update
	incoming := old
	incoming.Fecha = req.Fecha
	incoming.Hora = req.Hora
	incoming.Lugar = req.Lugar
	incoming.Titulo = req.Titulo
	incoming.Descripcion = req.Descripcion
	incoming.Restricciones = req.Restricciones
	incoming.Tags = req.Tags
	if incoming.Restricciones == nil {
		incoming.Restricciones = models.Restrictions{}
	}
	if incoming.Tags == nil {
		incoming.Tags = []string{}
	}

	if err := d.events.Update(&incoming); err != nil {
		storageError(c, err, "Could not update event. Try again later.")
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItem(c, incoming.ID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully!", "event": models.NewEventView(incoming)})
}

// DELETE /events/:id
func (d *deps) deleteEvent(c *gin.Context) {
	id := c.Param("id")
	userId := c.GetInt64("userId")

	ev, err := d.events.GetByID(id)
	if errors.Is(err, models.ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
		return
	}
	if err != nil {
		storageError(c, err, "Could not fetch the event. Try again later.")
		return
	}
	if ev.IDCreador != userId {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized to delete event."})
		return
	}

	if err := d.events.Delete(id); err != nil {
		storageError(c, err, "Could not delete the event.")
		return
	}
	if err := d.parts.RemoveAllForEvent(id); err != nil {
		storageError(c, err, "Could not clean up event enrollments.")
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItem(c, id)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully!"})
}

/* -------------------- Join / Leave -------------------- */

// POST /events/join
func (d *deps) joinEvent(c *gin.Context) {
	var req struct {
		IDEvento       string `json:"idEvento" binding:"required"`
		IDParticipante int64  `json:"idParticipante" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	if _, err := d.clients.GetByID(req.IDParticipante); err != nil {
		if errors.Is(err, models.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Client not found."})
			return
		}
		storageError(c, err, "Could not resolve client. Try again later.")
		return
	}

	event, err := d.events.GetByID(req.IDEvento)
	if errors.Is(err, models.ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
		return
	}
	if err != nil {
		storageError(c, err, "Could not fetch event. Try again later.")
		return
	}

	// pre-write guard on the aggregate; the UNIQUE pair constraint backstops it
	if err := event.AddParticipant(req.IDParticipante); err != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Already enrolled in event."})
		return
	}
	if err := d.parts.Add(req.IDParticipante, event.ID); err != nil {
		if errors.Is(err, models.ErrAlreadyMember) {
			c.JSON(http.StatusConflict, gin.H{"message": "Already enrolled in event."})
			return
		}
		storageError(c, err, "Could not join event. Try again later.")
		return
	}
	if err := d.events.Update(&event); err != nil {
		storageError(c, err, "Could not join event. Try again later.")
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItem(c, event.ID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Joined event!", "event": models.NewEventView(event)})
}

// POST /events/:id/leave
func (d *deps) leaveEvent(c *gin.Context) {
	eventId := c.Param("id")
	userId := c.GetInt64("userId")

	if _, err := d.clients.GetByID(userId); err != nil {
		if errors.Is(err, models.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Client not found."})
			return
		}
		storageError(c, err, "Could not resolve client. Try again later.")
		return
	}

	event, err := d.events.GetByID(eventId)
	if errors.Is(err, models.ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
		return
	}
	if err != nil {
		storageError(c, err, "Could not fetch event. Try again later.")
		return
	}

	if err := event.RemoveParticipant(userId); err != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Not enrolled in event."})
		return
	}
	if err := d.parts.Remove(userId, event.ID); err != nil && !errors.Is(err, models.ErrNotMember) {
		storageError(c, err, "Could not leave event. Try again later.")
		return
	}
	if err := d.events.Update(&event); err != nil {
		storageError(c, err, "Could not leave event. Try again later.")
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItem(c, event.ID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left event!", "event": models.NewEventView(event)})
}
