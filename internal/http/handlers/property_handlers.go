package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
	"github.com/MiluneSadakaChrispinus/househunter/internal/services"
)

// PropertyHandlers exposes the landlord management operations.
type PropertyHandlers struct {
	form     *services.PropertyFormController
	listings *services.ListingRepository
	sessions *services.SessionStore
}

// NewPropertyHandlers creates new property handlers.
func NewPropertyHandlers(form *services.PropertyFormController, listings *services.ListingRepository, sessions *services.SessionStore) *PropertyHandlers {
	return &PropertyHandlers{form: form, listings: listings, sessions: sessions}
}

// Mine returns the landlord's owned records.
func (h *PropertyHandlers) Mine(c *gin.Context) {
	session := h.sessions.Session()
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrAuthRequired.Error()})
		return
	}
	if err := h.listings.FetchOwned(c.Request.Context(), session.UserID); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"properties": h.listings.Owned()}})
}

// Create persists a new record from multipart form fields plus an optional
// image file.
func (h *PropertyHandlers) Create(c *gin.Context) {
	h.form.Reset()
	h.submit(c, http.StatusCreated)
}

// Update persists changes to an existing record, scoped by (id, owner).
func (h *PropertyHandlers) Update(c *gin.Context) {
	id := c.Param("id")
	property, ok := h.listings.ByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	h.form.StartEdit(property)
	h.submit(c, http.StatusOK)
}

// Delete removes a record and its attached image. The caller confirms the
// destructive action with confirm=true.
func (h *PropertyHandlers) Delete(c *gin.Context) {
	id := c.Param("id")
	imageKey := c.Query("image_path")
	confirmed := c.Query("confirm") == "true"

	err := h.form.Delete(c.Request.Context(), id, imageKey, confirmed)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConfirmationRequired):
			c.JSON(http.StatusPreconditionRequired, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrAuthRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrRoleForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrBusy):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": id}})
}

// submit binds the draft fields, attaches an uploaded file when present, and
// drives the form controller. On failure the draft stays intact so the user
// can retry without re-entering data.
func (h *PropertyHandlers) submit(c *gin.Context, successStatus int) {
	var draft domain.PropertyDraft
	if err := c.ShouldBind(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.form.SetDraft(draft)

	if file, err := c.FormFile("image"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.form.SelectFile(file.Filename, file.Header.Get("Content-Type"), data)
	}

	err := h.form.Submit(c.Request.Context())
	if err != nil {
		if fields, ok := domain.AsValidationErrors(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "fields": fields})
			return
		}
		switch {
		case errors.Is(err, domain.ErrAuthRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrRoleForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrBusy):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(successStatus, gin.H{"data": gin.H{"saved": true}})
}
