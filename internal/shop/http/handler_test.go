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
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/shop"
)

const shopID = "9a8b7c6d-5e4f-4a3b-9c2d-1e0f9a8b7c6d"

type stubShops struct {
	created   shop.CreateRequest
	createErr error
	updateErr error
	lastOwner string
}

func sampleShop() *shop.Shop {
	return &shop.Shop{ID: shopID, OwnerID: "owner-1", OwnerName: "Meera", Name: "Meera Boutique", City: "Jaipur", Pincode: "302001", IsActive: true}
}

func (s *stubShops) Create(ctx context.Context, ownerID string, req shop.CreateRequest) (*shop.Shop, error) {
	s.created = req
	s.lastOwner = ownerID
	if s.createErr != nil {
		return nil, s.createErr
	}
	return sampleShop(), nil
}

func (s *stubShops) GetByID(ctx context.Context, id string) (*shop.Shop, error) {
	if id != shopID {
		return nil, shop.ErrNotFound
	}
	return sampleShop(), nil
}

func (s *stubShops) GetByOwner(ctx context.Context, ownerID string) (*shop.Shop, error) {
	if ownerID != "owner-1" {
		return nil, shop.ErrNoShop
	}
	return sampleShop(), nil
}

func (s *stubShops) List(ctx context.Context, filter shop.Filter) ([]*shop.Shop, int, error) {
	return []*shop.Shop{sampleShop()}, 1, nil
}

func (s *stubShops) Update(ctx context.Context, id string, actor *auth.Session, req shop.UpdateRequest) (*shop.Shop, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	sh := sampleShop()
	if req.Name != nil {
		sh.Name = *req.Name
	}
	return sh, nil
}

type stubItems struct {
	item.Service
	lastList item.Filter
}

func (s *stubItems) List(ctx context.Context, filter item.Filter) ([]*item.Item, int, error) {
	s.lastList = filter
	return []*item.Item{{ID: "item-1", Title: "Silk Lehenga", ShopID: &[]string{shopID}[0], IsAvailable: true}}, 1, nil
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

func setup(svc shop.Service, items item.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api"), NewHandler(svc, items), testAuth)
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

func TestGet_IncludesAvailableItems(t *testing.T) {
	items := &stubItems{}
	r := setup(&stubShops{}, items)

	w := do(r, http.MethodGet, "/api/shops/"+shopID, "", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ShopDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Meera Boutique", resp.Shop.Name)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Silk Lehenga", resp.Items[0].Title)

	assert.Equal(t, shopID, items.lastList.ShopID)
	assert.Equal(t, 12, items.lastList.PageSize)
	assert.False(t, items.lastList.IncludeUnavailable)

	w = do(r, http.MethodGet, "/api/shops/1f2e3d4c-5b6a-4978-8a9b-0c1d2e3f4a5b", "", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMyShop(t *testing.T) {
	r := setup(&stubShops{}, &stubItems{})

	w := do(r, http.MethodGet, "/api/shops/my-shop", "owner-1", auth.RoleShopOwner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/shops/my-shop", "owner-2", auth.RoleShopOwner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No shop found", resp.Message)

	w = do(r, http.MethodGet, "/api/shops/my-shop", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreate(t *testing.T) {
	svc := &stubShops{}
	r := setup(svc, &stubItems{})
	body := CreateRequest{Name: "Meera Boutique", Address: "12 MG Road", City: "Jaipur", Pincode: "302001"}

	w := do(r, http.MethodPost, "/api/shops", "owner-1", auth.RoleShopOwner, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp ShopEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Shop created", resp.Message)
	assert.Equal(t, "owner-1", svc.lastOwner)

	w = do(r, http.MethodPost, "/api/shops", "renter-1", auth.RoleIndividualOwner, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPost, "/api/shops", "owner-1", auth.RoleShopOwner, map[string]string{"shop_name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.createErr = shop.ErrAlreadyHasShop
	w = do(r, http.MethodPost, "/api/shops", "owner-1", auth.RoleShopOwner, body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdate(t *testing.T) {
	svc := &stubShops{}
	r := setup(svc, &stubItems{})

	w := do(r, http.MethodPut, "/api/shops/"+shopID, "owner-1", auth.RoleShopOwner, map[string]string{"shop_name": "Meera Couture"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp ShopEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Shop updated", resp.Message)
	assert.Equal(t, "Meera Couture", resp.Shop.Name)

	svc.updateErr = shop.ErrForbidden
	w = do(r, http.MethodPut, "/api/shops/"+shopID, "owner-2", auth.RoleShopOwner, map[string]string{"shop_name": "Mine now"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestList(t *testing.T) {
	r := setup(&stubShops{}, &stubItems{})

	w := do(r, http.MethodGet, "/api/shops?city=Jaipur", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp response.PageResponse[ShopResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 12, resp.PageSize)
}
