package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
	"github.com/MiluneSadakaChrispinus/househunter/internal/mocks"
)

func landlordStore(t *testing.T) *SessionStore {
	t.Helper()
	auth := mocks.NewMockAuthAPI()
	auth.SessionFunc = func(ctx context.Context) (*domain.Session, error) {
		return &domain.Session{
			AccessToken:  "t",
			UserID:       "owner-1",
			Email:        "landlord@example.com",
			MetadataRole: domain.RoleLandlord,
		}, nil
	}
	store := NewSessionStore(context.Background(), auth, mocks.NewMockRoleStore(), zap.NewNop())
	t.Cleanup(store.Close)
	return store
}

type formFixture struct {
	tables *mocks.MockTableAPI
	blobs  *mocks.MockBlobAPI
	form   *PropertyFormController
}

func newFormFixture(t *testing.T, sessions *SessionStore) *formFixture {
	t.Helper()
	tables := mocks.NewMockTableAPI()
	blobs := mocks.NewMockBlobAPI()
	policy, err := NewAccessPolicy()
	if err != nil {
		t.Fatalf("NewAccessPolicy() error = %v", err)
	}
	listings := NewListingRepository(tables, zap.NewNop())
	form := NewPropertyFormController(tables, blobs, sessions, listings, policy, "property-images", zap.NewNop())
	return &formFixture{tables: tables, blobs: blobs, form: form}
}

func validDraft() domain.PropertyDraft {
	d := domain.NewPropertyDraft()
	d.Title = "Cozy Flat"
	d.Location = "Nairobi"
	d.Price = "1200"
	return d
}

func TestPropertyForm_NumericCoercion(t *testing.T) {
	fx := newFormFixture(t, landlordStore(t))

	draft := validDraft()
	draft.Bedrooms = ""
	draft.Bathrooms = "2"
	draft.Area = ""
	fx.form.SetDraft(draft)

	if err := fx.form.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	inserts := fx.tables.CallsFor("insert")
	if len(inserts) != 1 {
		t.Fatalf("insert calls = %d, want 1", len(inserts))
	}
	row := inserts[0].Row

	// Empty numeric input persists as null, never as zero.
	if row["bedrooms"] != nil {
		t.Errorf("bedrooms = %v, want null", row["bedrooms"])
	}
	if row["area"] != nil {
		t.Errorf("area = %v, want null", row["area"])
	}
	if row["price"] != float64(1200) {
		t.Errorf("price = %v (%T), want 1200 as number", row["price"], row["price"])
	}
	if row["bathrooms"] != 2 {
		t.Errorf("bathrooms = %v, want 2", row["bathrooms"])
	}
	if row["owner_id"] != "owner-1" {
		t.Errorf("owner_id = %v", row["owner_id"])
	}
	if row["landlord"] != "landlord@example.com" {
		t.Errorf("landlord = %v", row["landlord"])
	}
	if row["image_url"] != "" || row["image_path"] != nil {
		t.Errorf("image fields = %v / %v, want empty url and null path", row["image_url"], row["image_path"])
	}
}

func TestPropertyForm_ValidationBlocksGateway(t *testing.T) {
	fx := newFormFixture(t, landlordStore(t))

	draft := domain.NewPropertyDraft()
	draft.Price = "not-a-number"
	fx.form.SetDraft(draft)

	err := fx.form.Submit(context.Background())
	fields, ok := domain.AsValidationErrors(err)
	if !ok {
		t.Fatalf("expected validation errors, got %v", err)
	}
	for _, field := range []string{"title", "location", "price"} {
		if _, present := fields[field]; !present {
			t.Errorf("missing validation error for %s: %v", field, fields)
		}
	}
	if len(fx.tables.Calls) != 0 || len(fx.blobs.Calls) != 0 {
		t.Error("invalid draft reached the gateway")
	}
}

func TestPropertyForm_ValidationRejectsFractionalCounts(t *testing.T) {
	fx := newFormFixture(t, landlordStore(t))

	draft := validDraft()
	draft.Bedrooms = "2.5"
	draft.Bathrooms = "two"
	fx.form.SetDraft(draft)

	err := fx.form.Submit(context.Background())
	fields, ok := domain.AsValidationErrors(err)
	if !ok {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if fields["bedrooms"] != "must be a whole number" {
		t.Errorf("bedrooms error = %q, want whole-number message", fields["bedrooms"])
	}
	if fields["bathrooms"] != "must be a whole number" {
		t.Errorf("bathrooms error = %q, want whole-number message", fields["bathrooms"])
	}
	if len(fx.tables.Calls) != 0 {
		t.Error("invalid draft reached the gateway")
	}
}

func TestPropertyForm_UploadThenLink(t *testing.T) {
	fx := newFormFixture(t, landlordStore(t))
	fx.form.now = func() time.Time { return time.UnixMilli(1700000000000) }

	draft := validDraft()
	draft.ImageURL = "https://typed.example.com/ignored.jpg"
	fx.form.SetDraft(draft)
	fx.form.SelectFile("front.jpg", "image/jpeg", []byte("jpegdata"))

	if err := fx.form.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	uploads := fx.blobs.CallsFor("upload")
	if len(uploads) != 1 {
		t.Fatalf("upload calls = %d, want 1", len(uploads))
	}
	wantKey := "owner-1-1700000000000-front.jpg"
	if uploads[0].Key != wantKey {
		t.Errorf("upload key = %q, want %q", uploads[0].Key, wantKey)
	}
	if uploads[0].Bucket != "property-images" {
		t.Errorf("bucket = %q", uploads[0].Bucket)
	}

	inserts := fx.tables.CallsFor("insert")
	if len(inserts) != 1 {
		t.Fatalf("insert calls = %d, want 1", len(inserts))
	}
	row := inserts[0].Row
	// The fresh upload's public URL overrides the manually typed one.
	wantURL := "https://blobs.test/property-images/" + wantKey
	if row["image_url"] != wantURL {
		t.Errorf("image_url = %v, want %v", row["image_url"], wantURL)
	}
	if row["image_path"] != wantKey {
		t.Errorf("image_path = %v, want %v", row["image_path"], wantKey)
	}
}

func TestPropertyForm_UploadFailureKeepsDraft(t *testing.T) {
	fx := newFormFixture(t, landlordStore(t))
	fx.blobs.UploadFunc = func(ctx context.Context, bucket, key string, data []byte, contentType string) error {
		return errors.New("bucket quota exceeded")
	}

	draft := validDraft()
	fx.form.SetDraft(draft)
	fx.form.SelectFile("front.jpg", "image/jpeg", []byte("jpegdata"))

	err := fx.form.Submit(context.Background())
	if !domain.IsMutationError(err) {
		t.Fatalf("expected mutation error, got %v", err)
	}
	if len(fx.tables.CallsFor("insert")) != 0 {
		t.Error("record persisted despite failed upload")
	}
	if got := fx.form.Draft(); got != draft {
		t.Error("draft was not left intact after failure")
	}
}

func TestPropertyForm_EditUpdatesScopedByOwner(t *testing.T) {
	fx := newFormFixture(t, landlordStore(t))

	existing := domain.Property{
		ID:       "prop-9",
		Title:    "Old Title",
		Location: "Kisumu",
		Price:    floatp(1000),
		ImageURL: "https://img.example.com/old.jpg",
		OwnerID:  "owner-1",
	}
	fx.form.StartEdit(existing)

	draft := fx.form.Draft()
	if draft.Title != "Old Title" || draft.Price != "1000" {
		t.Fatalf("draft not seeded: %+v", draft)
	}
	if draft.ImageURL != existing.ImageURL {
		t.Errorf("image URL not mapped into draft: %q", draft.ImageURL)
	}

	draft.Price = "1500"
	fx.form.SetDraft(draft)
	if err := fx.form.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	updates := fx.tables.CallsFor("update")
	if len(updates) != 1 {
		t.Fatalf("update calls = %d, want 1", len(updates))
	}
	if updates[0].Filters["id"] != "prop-9" || updates[0].Filters["owner_id"] != "owner-1" {
		t.Errorf("update filters = %+v, want id+owner scoping", updates[0].Filters)
	}
	if updates[0].Row["price"] != float64(1500) {
		t.Errorf("price = %v, want 1500", updates[0].Row["price"])
	}

	// Success returns the form to the blank create-mode draft.
	if fx.form.EditingID() != "" {
		t.Error("editing state not cleared after successful update")
	}
	if got := fx.form.Draft(); got != domain.NewPropertyDraft() {
		t.Errorf("draft after success = %+v, want blank", got)
	}
}

func TestPropertyForm_CancelEditRestoresBlankDraft(t *testing.T) {
	fx := newFormFixture(t, landlordStore(t))

	fx.form.StartEdit(domain.Property{ID: "prop-9", Title: "Old", Location: "X", ImageURL: "u"})
	fx.form.Reset()

	if got := fx.form.Draft(); got != domain.NewPropertyDraft() {
		t.Errorf("draft after cancel = %+v, want blank", got)
	}
	if fx.form.EditingID() != "" || fx.form.Preview() != "" {
		t.Error("editing state leaked past cancel")
	}
}

func TestPropertyForm_SubmitFailureKeepsEditingState(t *testing.T) {
	fx := newFormFixture(t, landlordStore(t))
	fx.tables.UpdateFunc = func(ctx context.Context, table string, row map[string]any, filters domain.Filters) error {
		return errors.New("row level security violation")
	}

	fx.form.StartEdit(domain.Property{ID: "prop-9", Title: "Old", Location: "X", OwnerID: "owner-1"})
	err := fx.form.Submit(context.Background())
	if !domain.IsMutationError(err) {
		t.Fatalf("expected mutation error, got %v", err)
	}
	if got := domain.BackendMessage(err); got != "row level security violation" {
		t.Errorf("backend message = %q, want verbatim text", got)
	}
	if fx.form.EditingID() != "prop-9" {
		t.Error("editing state cleared on failure; retry would lose work")
	}
}

func TestPropertyForm_RoleGating(t *testing.T) {
	fx := newFormFixture(t, tenantStore(t))
	fx.form.SetDraft(validDraft())

	if err := fx.form.Submit(context.Background()); !errors.Is(err, domain.ErrRoleForbidden) {
		t.Errorf("tenant Submit() error = %v, want ErrRoleForbidden", err)
	}
	if err := fx.form.Delete(context.Background(), "prop-1", "", true); !errors.Is(err, domain.ErrRoleForbidden) {
		t.Errorf("tenant Delete() error = %v, want ErrRoleForbidden", err)
	}
}

func TestPropertyForm_BusyGatesResubmission(t *testing.T) {
	fx := newFormFixture(t, landlordStore(t))

	var reentrant error
	fx.tables.InsertFunc = func(ctx context.Context, table string, row map[string]any) error {
		reentrant = fx.form.Submit(ctx)
		return nil
	}
	fx.form.SetDraft(validDraft())

	if err := fx.form.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !errors.Is(reentrant, domain.ErrBusy) {
		t.Errorf("in-flight re-submission error = %v, want ErrBusy", reentrant)
	}
}

func TestPropertyForm_DeleteRequiresConfirmation(t *testing.T) {
	fx := newFormFixture(t, landlordStore(t))

	err := fx.form.Delete(context.Background(), "prop-1", "some-key", false)
	if !errors.Is(err, domain.ErrConfirmationRequired) {
		t.Fatalf("Delete() error = %v, want ErrConfirmationRequired", err)
	}
	if len(fx.tables.Calls) != 0 || len(fx.blobs.Calls) != 0 {
		t.Error("destructive call issued without confirmation")
	}
}

func TestPropertyForm_DeleteBlobFirstThenRecord(t *testing.T) {
	fx := newFormFixture(t, landlordStore(t))

	var order []string
	fx.blobs.RemoveFunc = func(ctx context.Context, bucket string, keys []string) error {
		order = append(order, "blob")
		if len(keys) != 1 || keys[0] != "owner-1-123-img.jpg" {
			t.Errorf("remove keys = %v", keys)
		}
		return nil
	}
	fx.tables.DeleteFunc = func(ctx context.Context, table string, filters domain.Filters) error {
		order = append(order, "record")
		if filters["id"] != "prop-1" || filters["owner_id"] != "owner-1" {
			t.Errorf("delete filters = %+v", filters)
		}
		return nil
	}

	if err := fx.form.Delete(context.Background(), "prop-1", "owner-1-123-img.jpg", true); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if fmt.Sprint(order) != "[blob record]" {
		t.Errorf("call order = %v, want blob before record", order)
	}
}

func TestPropertyForm_DeleteWithoutImageSkipsBlob(t *testing.T) {
	fx := newFormFixture(t, landlordStore(t))

	if err := fx.form.Delete(context.Background(), "prop-1", "", true); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(fx.blobs.CallsFor("remove")) != 0 {
		t.Error("blob removal issued for a record with no image key")
	}
	if len(fx.tables.CallsFor("delete")) != 1 {
		t.Error("record delete not issued")
	}
}

func TestPropertyForm_RecordDeleteFailureAfterBlobRemoval(t *testing.T) {
	// Deliberate policy: the image is not restored when the record delete
	// fails after the blob is already gone.
	fx := newFormFixture(t, landlordStore(t))
	fx.tables.DeleteFunc = func(ctx context.Context, table string, filters domain.Filters) error {
		return errors.New("permission denied for table properties")
	}

	err := fx.form.Delete(context.Background(), "prop-1", "key-1", true)
	if !domain.IsMutationError(err) {
		t.Fatalf("expected mutation error, got %v", err)
	}
	if len(fx.blobs.CallsFor("remove")) != 1 {
		t.Error("blob removal should have been attempted first")
	}
	if got := domain.BackendMessage(err); got != "permission denied for table properties" {
		t.Errorf("backend message = %q, want verbatim text", got)
	}
}
