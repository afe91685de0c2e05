package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"evently/internal/events/service"
	"evently/pkg/auth"
	apperrors "evently/pkg/errors"
	"evently/pkg/logger"
	"evently/pkg/model"
)

type mockEventService struct {
	getAllFunc  func(ctx context.Context) ([]*model.EventWithCreator, error)
	getByIDFunc func(ctx context.Context, id string) (*model.EventWithCreator, error)
	createFunc  func(ctx context.Context, identity auth.Identity, input *model.EventInput) (*model.Event, error)
	updateFunc  func(ctx context.Context, identity auth.Identity, id string, input *model.EventInput) (*model.Event, error)
	deleteFunc  func(ctx context.Context, identity auth.Identity, id string) error
}

func (m *mockEventService) GetAll(ctx context.Context) ([]*model.EventWithCreator, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx)
	}
	return []*model.EventWithCreator{}, nil
}

func (m *mockEventService) GetByID(ctx context.Context, id string) (*model.EventWithCreator, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, apperrors.NotFoundWithID("Event", id)
}

func (m *mockEventService) Create(ctx context.Context, identity auth.Identity, input *model.EventInput) (*model.Event, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, identity, input)
	}
	return &model.Event{}, nil
}

func (m *mockEventService) Update(ctx context.Context, identity auth.Identity, id string, input *model.EventInput) (*model.Event, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, identity, id, input)
	}
	return &model.Event{}, nil
}

func (m *mockEventService) Delete(ctx context.Context, identity auth.Identity, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, identity, id)
	}
	return nil
}

var _ service.EventService = (*mockEventService)(nil)

func newTestRouter(svc *mockEventService) *httprouter.Router {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.FormatJSON,
		Output:  io.Discard,
		Service: "test",
	})
	router := httprouter.New()
	NewEventHandler(svc, log).RegisterRoutes(router)
	return router
}

func TestGetAllReturnsBareArray(t *testing.T) {
	svc := &mockEventService{
		getAllFunc: func(ctx context.Context) ([]*model.EventWithCreator, error) {
			return []*model.EventWithCreator{
				{Event: model.Event{ID: primitive.NewObjectID(), Title: "GopherCon"}},
			}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var events []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("expected a JSON array body: %v", err)
	}
	if len(events) != 1 || events[0]["title"] != "GopherCon" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetByIDNotFound(t *testing.T) {
	router := newTestRouter(&mockEventService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/507f1f77bcf86cd799439099", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Errorf("expected error field in body: %s", rec.Body.String())
	}
}

func TestCreateReturns201(t *testing.T) {
	svc := &mockEventService{
		createFunc: func(ctx context.Context, identity auth.Identity, input *model.EventInput) (*model.Event, error) {
			return &model.Event{
				ID:          primitive.NewObjectID(),
				Title:       input.Title,
				Description: input.Description,
				Date:        input.Date,
				Location:    input.Location,
			}, nil
		},
	}
	router := newTestRouter(svc)

	payload := `{"title":"GopherCon","description":"A conference","date":"2025-01-01T10:00:00Z","location":"Berlin"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var event model.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &event); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if event.Title != "GopherCon" {
		t.Errorf("expected title round trip, got %q", event.Title)
	}
	if !event.Date.Equal(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date: %v", event.Date)
	}
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	var called bool
	svc := &mockEventService{
		createFunc: func(ctx context.Context, identity auth.Identity, input *model.EventInput) (*model.Event, error) {
			called = true
			return &model.Event{}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if called {
		t.Error("expected service not to be called for malformed body")
	}
}

func TestCreatePassesSessionIdentity(t *testing.T) {
	var gotIdentity auth.Identity
	svc := &mockEventService{
		createFunc: func(ctx context.Context, identity auth.Identity, input *model.EventInput) (*model.Event, error) {
			gotIdentity = identity
			return &model.Event{}, nil
		},
	}
	router := newTestRouter(svc)

	payload := `{"title":"T","description":"D","date":"2025-01-01T10:00:00Z","location":"L"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(payload))
	identity := auth.Identity{ID: "507f1f77bcf86cd799439011", Role: "admin"}
	req = req.WithContext(auth.WithIdentity(req.Context(), identity))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotIdentity != identity {
		t.Errorf("expected identity %+v, got %+v", identity, gotIdentity)
	}
}

func TestDeleteReturnsMessage(t *testing.T) {
	router := newTestRouter(&mockEventService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/events/507f1f77bcf86cd799439011", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["message"] == "" {
		t.Errorf("expected confirmation message, got %s", rec.Body.String())
	}
}

func TestUpdateServiceErrorPropagates(t *testing.T) {
	svc := &mockEventService{
		updateFunc: func(ctx context.Context, identity auth.Identity, id string, input *model.EventInput) (*model.Event, error) {
			return nil, apperrors.Unauthorized("Admin privileges required")
		},
	}
	router := newTestRouter(svc)

	payload := `{"title":"T","description":"D","date":"2025-01-01T10:00:00Z","location":"L"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/events/507f1f77bcf86cd799439011", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
