package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"asset-backend/internal/cache"
	"asset-backend/internal/models"
	"asset-backend/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/mux"
)

type fakeAssetStore struct {
	assets map[int]*models.Asset
	nextID int
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{assets: make(map[int]*models.Asset)}
}

func (s *fakeAssetStore) Create(ctx context.Context, asset *models.Asset) error {
	s.nextID++
	asset.ID = s.nextID
	copied := *asset
	s.assets[asset.ID] = &copied
	return nil
}

func (s *fakeAssetStore) Get(ctx context.Context, id int) (*models.Asset, error) {
	asset, ok := s.assets[id]
	if !ok {
		return nil, &models.NotFoundError{Resource: "asset", ID: fmt.Sprint(id)}
	}
	copied := *asset
	return &copied, nil
}

func (s *fakeAssetStore) List(ctx context.Context) ([]models.Asset, error) {
	out := make([]models.Asset, 0, len(s.assets))
	for _, a := range s.assets {
		out = append(out, *a)
	}
	return out, nil
}

func (s *fakeAssetStore) ListTags(ctx context.Context) ([]string, error) {
	var tags []string
	for _, a := range s.assets {
		tags = append(tags, a.Tag)
	}
	return tags, nil
}

func (s *fakeAssetStore) UpdateStatus(ctx context.Context, id int, status models.AssetStatus, assignedTo string) error {
	asset, ok := s.assets[id]
	if !ok {
		return &models.NotFoundError{Resource: "asset", ID: fmt.Sprint(id)}
	}
	asset.Status = status
	asset.AssignedTo = assignedTo
	return nil
}

func (s *fakeAssetStore) CountInStorage(ctx context.Context) ([]models.StockCount, error) {
	byKey := make(map[string]*models.StockCount)
	var out []models.StockCount
	for _, a := range s.assets {
		if a.Status != models.AssetInStorage {
			continue
		}
		key := a.Name + "|" + a.Brand
		if c, ok := byKey[key]; ok {
			c.Count++
			continue
		}
		out = append(out, models.StockCount{Name: a.Name, Brand: a.Brand, Count: 1})
		byKey[key] = &out[len(out)-1]
	}
	return out, nil
}

type fakeMovementStore struct {
	movements []models.StockMovement
}

func (s *fakeMovementStore) Create(ctx context.Context, movement *models.StockMovement) error {
	movement.ID = len(s.movements) + 1
	s.movements = append(s.movements, *movement)
	return nil
}

func (s *fakeMovementStore) ListByItem(ctx context.Context, name, brand string) ([]models.StockMovement, error) {
	var out []models.StockMovement
	for i := len(s.movements) - 1; i >= 0; i-- {
		m := s.movements[i]
		if m.AssetName == name && m.Brand == brand {
			out = append(out, m)
		}
	}
	return out, nil
}

func TestRegisterAssets_InvalidatesStockCache(t *testing.T) {
	mr := miniredis.RunT(t)
	if err := cache.Init(mr.Addr(), ""); err != nil {
		t.Fatalf("cache init failed: %v", err)
	}

	store := newFakeAssetStore()
	stock := services.NewStockService(&fakeMovementStore{}, store)
	handler := NewAssetHandler(services.NewAssetService(store, stock, nil))

	cache.CacheStockSummary(context.Background(), []byte(`[]`))
	if !mr.Exists(cache.StockSummaryKey) {
		t.Fatal("Expected stock summary cached before registration")
	}

	body := bytes.NewBufferString(`{"name":"Mouse","brand":"Logitech","count":1}`)
	rec := httptest.NewRecorder()
	handler.RegisterAssets(rec, httptest.NewRequest(http.MethodPost, "/api/assets", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if mr.Exists(cache.StockSummaryKey) {
		t.Error("Expected stock summary cache cleared after registration")
	}
}

func TestUpdateAssetStatus_InvalidatesStockCache(t *testing.T) {
	mr := miniredis.RunT(t)
	if err := cache.Init(mr.Addr(), ""); err != nil {
		t.Fatalf("cache init failed: %v", err)
	}

	store := newFakeAssetStore()
	store.Create(context.Background(), &models.Asset{
		Tag: "AST-0001", Name: "Mouse", Brand: "Logitech", Status: models.AssetInStorage,
	})
	stock := services.NewStockService(&fakeMovementStore{}, store)
	handler := NewAssetHandler(services.NewAssetService(store, stock, nil))

	cache.CacheStockSummary(context.Background(), []byte(`[{"name":"Mouse","brand":"Logitech","count":1}]`))

	body := bytes.NewBufferString(`{"status":"IN_USE","assigned_to":"Budi"}`)
	req := mux.SetURLVars(
		httptest.NewRequest(http.MethodPatch, "/api/assets/1/status", body),
		map[string]string{"id": "1"},
	)
	rec := httptest.NewRecorder()
	handler.UpdateAssetStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if mr.Exists(cache.StockSummaryKey) {
		t.Error("Expected stock summary cache cleared after status change")
	}

	var got models.Asset
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.Status != models.AssetInUse {
		t.Errorf("Expected IN_USE, got %s", got.Status)
	}
}
