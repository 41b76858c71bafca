package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/item"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/response"
)

const (
	itemID     = "7d0a3a52-9c1f-4e0b-8a55-3b7f8b0c6d21"
	categoryID = "5b7e0c1a-2d3f-4a5b-8c9d-0e1f2a3b4c5d"
)

type stubService struct {
	created   item.CreateRequest
	lastList  item.Filter
	deleteErr error
	deletedBy *auth.Session
}

func sampleItem() *item.Item {
	return &item.Item{
		ID:          itemID,
		OwnerID:     "owner-1",
		Title:       "Silk Lehenga",
		PricePerDay: 500,
		Gender:      "Women",
		Categories:  []item.CategoryRef{{ID: categoryID, Name: "Bridal"}},
		IsAvailable: true,
	}
}

func (s *stubService) Create(ctx context.Context, req item.CreateRequest) (*item.Item, error) {
	s.created = req
	return sampleItem(), nil
}

func (s *stubService) GetByID(ctx context.Context, id string) (*item.Item, error) {
	return sampleItem(), nil
}

func (s *stubService) List(ctx context.Context, filter item.Filter) ([]*item.Item, int, error) {
	s.lastList = filter
	return []*item.Item{sampleItem()}, 1, nil
}

func (s *stubService) Update(ctx context.Context, id string, actor *auth.Session, req item.UpdateRequest) (*item.Item, error) {
	return sampleItem(), nil
}

func (s *stubService) Delete(ctx context.Context, id string, actor *auth.Session) error {
	s.deletedBy = actor
	return s.deleteErr
}

// testAuth trusts X-Test-User and X-Test-Role headers in place of a bearer token.
func testAuth(c *gin.Context) {
	id := c.GetHeader("X-Test-User")
	if id == "" {
		response.AbortWithError(c, http.StatusUnauthorized, "Not authorized, no token")
		return
	}
	auth.SetSession(c, &auth.Session{UserID: id, Role: c.GetHeader("X-Test-Role")})
	c.Next()
}

func setup(svc item.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api"), NewHandler(svc), testAuth)
	return r
}

func do(r *gin.Engine, method, path, user, role string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
		req.Header.Set("X-Test-Role", role)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestList_CategoryFilter(t *testing.T) {
	svc := &stubService{}
	r := setup(svc)

	w := do(r, http.MethodGet, "/api/items?category="+categoryID, "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, categoryID, svc.lastList.CategoryID)
	assert.Equal(t, 12, svc.lastList.PageSize)

	var resp response.PageResponse[ItemResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, []CategoryTag{{ID: categoryID, Name: "Bridal"}}, resp.Items[0].Categories)

	w = do(r, http.MethodGet, "/api/items?category=bridal", "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreate_PassesCategories(t *testing.T) {
	svc := &stubService{}
	r := setup(svc)

	body := CreateRequest{Title: "Silk Lehenga", PricePerDay: 500, Gender: "Women", Categories: []string{categoryID}}
	w := do(r, http.MethodPost, "/api/items", "owner-1", auth.RoleShopOwner, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, []string{categoryID}, svc.created.CategoryIDs)
	assert.Equal(t, "owner-1", svc.created.OwnerID)

	body.Categories = []string{"not-a-uuid"}
	w = do(r, http.MethodPost, "/api/items", "owner-1", auth.RoleShopOwner, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/items", "renter-1", auth.RoleCustomer, body)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDelete(t *testing.T) {
	svc := &stubService{}
	r := setup(svc)

	w := do(r, http.MethodDelete, "/api/items/"+itemID, "owner-1", auth.RoleShopOwner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp response.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Item removed", resp.Message)
	require.NotNil(t, svc.deletedBy)
	assert.Equal(t, "owner-1", svc.deletedBy.UserID)

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not the owner", item.ErrForbidden, http.StatusForbidden},
		{"has rentals", item.ErrHasRentals, http.StatusBadRequest},
		{"missing", item.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.deleteErr = tt.err
			defer func() { svc.deleteErr = nil }()
			w := do(r, http.MethodDelete, "/api/items/"+itemID, "someone", auth.RoleCustomer, nil)
			assert.Equal(t, tt.code, w.Code)
		})
	}

	w = do(r, http.MethodDelete, "/api/items/"+itemID, "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
