package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

// PropertyFormController manages the create/edit draft for a landlord-owned
// property, including image selection, upload sequencing, and the
// submit/validate/reset transitions. A busy flag gates re-submission while a
// mutation is in flight.
type PropertyFormController struct {
	tables   domain.TableAPI
	blobs    domain.BlobAPI
	sessions *SessionStore
	listings *ListingRepository
	policy   *AccessPolicy
	bucket   string
	log      *zap.Logger

	now func() time.Time

	mu      sync.Mutex
	draft   domain.PropertyDraft
	editID  string
	pending *domain.PendingFile
	preview string
	busy    bool
}

// NewPropertyFormController creates the controller with a blank draft.
func NewPropertyFormController(
	tables domain.TableAPI,
	blobs domain.BlobAPI,
	sessions *SessionStore,
	listings *ListingRepository,
	policy *AccessPolicy,
	bucket string,
	log *zap.Logger,
) *PropertyFormController {
	return &PropertyFormController{
		tables:   tables,
		blobs:    blobs,
		sessions: sessions,
		listings: listings,
		policy:   policy,
		bucket:   bucket,
		log:      log,
		now:      time.Now,
		draft:    domain.NewPropertyDraft(),
	}
}

// Draft returns the current draft.
func (c *PropertyFormController) Draft() domain.PropertyDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetDraft replaces the draft fields. The pending file and editing state are
// untouched.
func (c *PropertyFormController) SetDraft(d domain.PropertyDraft) {
	c.mu.Lock()
	c.draft = d
	c.mu.Unlock()
}

// EditingID returns the record under edit, empty in create mode.
func (c *PropertyFormController) EditingID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editID
}

// Busy reports whether a submit or delete is in flight.
func (c *PropertyFormController) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Preview returns the local preview reference for the selected or persisted
// image, empty when there is none.
func (c *PropertyFormController) Preview() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preview
}

// StartEdit seeds every draft field from an existing property, maps its
// persisted image URL into the draft, and clears any pending file selection.
func (c *PropertyFormController) StartEdit(p domain.Property) {
	c.mu.Lock()
	c.draft = domain.DraftFromProperty(p)
	c.editID = p.ID
	c.pending = nil
	c.preview = p.ImageURL
	c.mu.Unlock()
}

// SelectFile replaces the pending file and regenerates the local preview.
// Nothing is uploaded until submit.
func (c *PropertyFormController) SelectFile(name, contentType string, data []byte) {
	c.mu.Lock()
	c.pending = &domain.PendingFile{Name: name, ContentType: contentType, Data: data}
	c.preview = "local:" + name
	c.mu.Unlock()
}

// RemoveFile clears the pending file and its preview.
func (c *PropertyFormController) RemoveFile() {
	c.mu.Lock()
	c.pending = nil
	c.preview = ""
	c.mu.Unlock()
}

// Reset restores the blank create-mode draft, discarding editing state and
// any pending file.
func (c *PropertyFormController) Reset() {
	c.mu.Lock()
	c.draft = domain.NewPropertyDraft()
	c.editID = ""
	c.pending = nil
	c.preview = ""
	c.mu.Unlock()
}

// Submit validates the draft, uploads a pending image first when one is
// selected, and persists the record: update scoped by (id, owner) when
// editing, insert carrying the owner id and session email otherwise. On
// success the draft clears and the listings refresh; on failure the draft
// stays intact so nothing is re-entered.
func (c *PropertyFormController) Submit(ctx context.Context) error {
	session := c.sessions.Session()
	if session == nil {
		return domain.ErrAuthRequired
	}
	if !c.policy.CanWrite(c.sessions.Role(), "properties") {
		return domain.ErrRoleForbidden
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return domain.ErrBusy
	}
	c.busy = true
	draft := c.draft
	editID := c.editID
	pending := c.pending
	c.mu.Unlock()
	defer c.clearBusy()

	if errs := validateDraft(draft); len(errs) > 0 {
		return errs
	}

	row, err := draftRow(draft)
	if err != nil {
		return err
	}

	imageURL := strings.TrimSpace(draft.ImageURL)
	var imagePath any
	if pending != nil {
		key := uploadKey(session.UserID, c.now(), pending.Name)
		if err := c.blobs.Upload(ctx, c.bucket, key, pending.Data, pending.ContentType); err != nil {
			c.log.Warn("image upload failed", zap.String("key", key), zap.Error(err))
			return domain.NewMutationError("image upload failed", err)
		}
		// The public URL of the fresh upload wins over any manually typed
		// image URL.
		imageURL = c.blobs.PublicURL(c.bucket, key)
		imagePath = key
	}
	row["image_url"] = imageURL
	row["image_path"] = imagePath
	row["owner_id"] = session.UserID
	row["landlord"] = session.Email

	if editID != "" {
		err := c.tables.Update(ctx, domain.PropertiesTable, row, domain.Filters{
			"id":       editID,
			"owner_id": session.UserID,
		})
		if err != nil {
			return domain.NewMutationError("property update failed", err)
		}
		c.log.Info("property updated", zap.String("id", editID))
	} else {
		if err := c.tables.Insert(ctx, domain.PropertiesTable, row); err != nil {
			return domain.NewMutationError("property create failed", err)
		}
		c.log.Info("property created", zap.String("title", draft.Title))
	}

	c.Reset()
	c.refresh(ctx, session.UserID)
	return nil
}

// Delete removes a record and its attached image. It requires explicit
// confirmation before any destructive call. The blob goes first, the record
// second; when the record delete fails after the image is gone, the error is
// reported and the image is not restored. An orphaned record keeps its owner
// reference and can be retried, while an orphaned blob would have no
// back-reference at all.
func (c *PropertyFormController) Delete(ctx context.Context, id, imageKey string, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	session := c.sessions.Session()
	if session == nil {
		return domain.ErrAuthRequired
	}
	if !c.policy.CanWrite(c.sessions.Role(), "properties") {
		return domain.ErrRoleForbidden
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return domain.ErrBusy
	}
	c.busy = true
	c.mu.Unlock()
	defer c.clearBusy()

	if imageKey != "" {
		if err := c.blobs.Remove(ctx, c.bucket, []string{imageKey}); err != nil {
			c.log.Warn("image removal failed, deleting record anyway",
				zap.String("key", imageKey), zap.Error(err))
		}
	}

	err := c.tables.Delete(ctx, domain.PropertiesTable, domain.Filters{
		"id":       id,
		"owner_id": session.UserID,
	})
	if err != nil {
		return domain.NewMutationError("property delete failed", err)
	}

	c.log.Info("property deleted", zap.String("id", id))
	c.refresh(ctx, session.UserID)
	return nil
}

func (c *PropertyFormController) clearBusy() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// refresh reloads both views after a successful mutation. Refresh failures
// are recorded by the repository itself; the mutation already succeeded.
func (c *PropertyFormController) refresh(ctx context.Context, ownerID string) {
	if err := c.listings.FetchAll(ctx); err != nil {
		c.log.Warn("listing refresh failed", zap.Error(err))
	}
	if err := c.listings.FetchOwned(ctx, ownerID); err != nil {
		c.log.Warn("owned listing refresh failed", zap.Error(err))
	}
}

// uploadKey derives a collision-free storage key from the owner, the moment
// of upload, and the original filename.
func uploadKey(ownerID string, at time.Time, filename string) string {
	return fmt.Sprintf("%s-%d-%s", ownerID, at.UnixMilli(), filename)
}

// validateDraft checks required fields and that numeric input parses. A
// draft that fails never reaches the gateway.
func validateDraft(d domain.PropertyDraft) domain.ValidationErrors {
	errs := domain.ValidationErrors{}
	if strings.TrimSpace(d.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(d.Location) == "" {
		errs["location"] = "location is required"
	}

	checkNumeric := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
			errs[field] = "must be a number"
		}
	}
	checkNumeric("price", d.Price)
	checkNumeric("area", d.Area)
	checkNumeric("latitude", d.Latitude)
	checkNumeric("longitude", d.Longitude)

	checkWhole := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		if _, err := strconv.Atoi(strings.TrimSpace(value)); err != nil {
			errs[field] = "must be a whole number"
		}
	}
	checkWhole("bedrooms", d.Bedrooms)
	checkWhole("bathrooms", d.Bathrooms)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// draftRow coerces the draft's text fields into a persistable row. Empty
// numeric input maps to null, never to zero, so "unknown" stays
// distinguishable from an actual zero.
func draftRow(d domain.PropertyDraft) (map[string]any, error) {
	row := map[string]any{
		"title":        strings.TrimSpace(d.Title),
		"location":     strings.TrimSpace(d.Location),
		"type":         strings.TrimSpace(d.Type),
		"description":  d.Description,
		"phone":        strings.TrimSpace(d.Phone),
		"email":        strings.TrimSpace(d.Email),
		"amenities":    d.Amenities,
		"full_address": strings.TrimSpace(d.FullAddress),
	}

	numeric := map[string]string{
		"price":     d.Price,
		"area":      d.Area,
		"latitude":  d.Latitude,
		"longitude": d.Longitude,
	}
	for column, value := range numeric {
		coerced, err := coerceFloat(value)
		if err != nil {
			return nil, domain.ValidationErrors{column: "must be a number"}
		}
		row[column] = coerced
	}

	integers := map[string]string{
		"bedrooms":  d.Bedrooms,
		"bathrooms": d.Bathrooms,
	}
	for column, value := range integers {
		coerced, err := coerceInt(value)
		if err != nil {
			return nil, domain.ValidationErrors{column: "must be a whole number"}
		}
		row[column] = coerced
	}

	return row, nil
}

// coerceFloat maps empty input to nil and everything else through ParseFloat.
func coerceFloat(s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// coerceInt maps empty input to nil and everything else through Atoi.
func coerceInt(s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return i, nil
}
