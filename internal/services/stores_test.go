package services

import (
	"context"
	"fmt"
	"sync"

	"asset-backend/internal/models"
)

// In-memory store fakes backing the service tests. The request and loan
// fakes enforce the same version compare-and-swap contract as the real
// repositories.

type memRequestStore struct {
	mu       sync.Mutex
	requests map[string]*models.Request
}

func newMemRequestStore() *memRequestStore {
	return &memRequestStore{requests: make(map[string]*models.Request)}
}

func (s *memRequestStore) Create(ctx context.Context, req *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.requests[req.ID]; exists {
		return fmt.Errorf("duplicate request id %s", req.ID)
	}
	req.Version = 1
	clone := *req
	s.requests[req.ID] = &clone
	return nil
}

func (s *memRequestStore) Update(ctx context.Context, req *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.requests[req.ID]
	if !ok {
		return &models.NotFoundError{Resource: "request", ID: req.ID}
	}
	if stored.Version != req.Version {
		return models.ErrVersionConflict
	}
	req.Version++
	clone := *req
	s.requests[req.ID] = &clone
	return nil
}

func (s *memRequestStore) Get(ctx context.Context, id string) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.requests[id]
	if !ok {
		return nil, &models.NotFoundError{Resource: "request", ID: id}
	}
	clone := *stored
	clone.ItemStatuses = make(map[int]models.ItemStatus, len(stored.ItemStatuses))
	for k, v := range stored.ItemStatuses {
		clone.ItemStatuses[k] = v
	}
	clone.PartiallyRegisteredItems = make(map[int]int, len(stored.PartiallyRegisteredItems))
	for k, v := range stored.PartiallyRegisteredItems {
		clone.PartiallyRegisteredItems[k] = v
	}
	return &clone, nil
}

func (s *memRequestStore) List(ctx context.Context) ([]models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Request, 0, len(s.requests))
	for _, req := range s.requests {
		out = append(out, *req)
	}
	return out, nil
}

func (s *memRequestStore) ListIDs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.requests))
	for id := range s.requests {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *memRequestStore) ListDocNumbers(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := make([]string, 0, len(s.requests))
	for _, req := range s.requests {
		docs = append(docs, req.DocNumber)
	}
	return docs, nil
}

type memLoanStore struct {
	mu    sync.Mutex
	loans map[string]*models.LoanRequest
}

func newMemLoanStore() *memLoanStore {
	return &memLoanStore{loans: make(map[string]*models.LoanRequest)}
}

func (s *memLoanStore) Create(ctx context.Context, loan *models.LoanRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	loan.Version = 1
	clone := *loan
	s.loans[loan.ID] = &clone
	return nil
}

func (s *memLoanStore) Update(ctx context.Context, loan *models.LoanRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.loans[loan.ID]
	if !ok {
		return &models.NotFoundError{Resource: "loan", ID: loan.ID}
	}
	if stored.Version != loan.Version {
		return models.ErrVersionConflict
	}
	loan.Version++
	clone := *loan
	s.loans[loan.ID] = &clone
	return nil
}

func (s *memLoanStore) Get(ctx context.Context, id string) (*models.LoanRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.loans[id]
	if !ok {
		return nil, &models.NotFoundError{Resource: "loan", ID: id}
	}
	clone := *stored
	return &clone, nil
}

func (s *memLoanStore) List(ctx context.Context) ([]models.LoanRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LoanRequest, 0, len(s.loans))
	for _, loan := range s.loans {
		out = append(out, *loan)
	}
	return out, nil
}

func (s *memLoanStore) ListIDs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.loans))
	for id := range s.loans {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *memLoanStore) ListDocNumbers(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := make([]string, 0, len(s.loans))
	for _, loan := range s.loans {
		docs = append(docs, loan.DocNumber)
	}
	return docs, nil
}

type memAssetStore struct {
	mu     sync.Mutex
	nextID int
	assets map[int]*models.Asset
}

func newMemAssetStore() *memAssetStore {
	return &memAssetStore{nextID: 1, assets: make(map[int]*models.Asset)}
}

func (s *memAssetStore) Create(ctx context.Context, asset *models.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset.ID = s.nextID
	s.nextID++
	clone := *asset
	s.assets[asset.ID] = &clone
	return nil
}

func (s *memAssetStore) Get(ctx context.Context, id int) (*models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.assets[id]
	if !ok {
		return nil, &models.NotFoundError{Resource: "asset", ID: fmt.Sprintf("%d", id)}
	}
	clone := *stored
	return &clone, nil
}

func (s *memAssetStore) List(ctx context.Context) ([]models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Asset, 0, len(s.assets))
	for _, asset := range s.assets {
		out = append(out, *asset)
	}
	return out, nil
}

func (s *memAssetStore) ListTags(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tags := make([]string, 0, len(s.assets))
	for _, asset := range s.assets {
		tags = append(tags, asset.Tag)
	}
	return tags, nil
}

func (s *memAssetStore) UpdateStatus(ctx context.Context, id int, status models.AssetStatus, assignedTo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.assets[id]
	if !ok {
		return &models.NotFoundError{Resource: "asset", ID: fmt.Sprintf("%d", id)}
	}
	stored.Status = status
	stored.AssignedTo = assignedTo
	return nil
}

func (s *memAssetStore) CountInStorage(ctx context.Context) ([]models.StockCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	grouped := make(map[string]*models.StockCount)
	for _, asset := range s.assets {
		if asset.Status != models.AssetInStorage {
			continue
		}
		key := asset.Name + "|" + asset.Brand
		if c, ok := grouped[key]; ok {
			c.Count++
		} else {
			grouped[key] = &models.StockCount{Name: asset.Name, Brand: asset.Brand, Count: 1}
		}
	}
	out := make([]models.StockCount, 0, len(grouped))
	for _, c := range grouped {
		out = append(out, *c)
	}
	return out, nil
}

// seed inserts n IN_STORAGE assets for one name+brand
func (s *memAssetStore) seed(name, brand string, n int) {
	for i := 0; i < n; i++ {
		s.Create(context.Background(), &models.Asset{
			Tag:    fmt.Sprintf("AST-%04d", s.nextID),
			Name:   name,
			Brand:  brand,
			Status: models.AssetInStorage,
		})
	}
}

type memMovementStore struct {
	mu        sync.Mutex
	nextID    int
	movements []models.StockMovement
}

func newMemMovementStore() *memMovementStore {
	return &memMovementStore{nextID: 1}
}

func (s *memMovementStore) Create(ctx context.Context, movement *models.StockMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	movement.ID = s.nextID
	s.nextID++
	s.movements = append(s.movements, *movement)
	return nil
}

func (s *memMovementStore) ListByItem(ctx context.Context, name, brand string) ([]models.StockMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.StockMovement
	// Inserted in order, returned newest first
	for i := len(s.movements) - 1; i >= 0; i-- {
		m := s.movements[i]
		if m.AssetName == name && m.Brand == brand {
			out = append(out, m)
		}
	}
	return out, nil
}

type memActivityStore struct {
	mu         sync.Mutex
	nextID     int
	activities []models.RequestActivity
}

func newMemActivityStore() *memActivityStore {
	return &memActivityStore{nextID: 1}
}

func (s *memActivityStore) Create(ctx context.Context, activity *models.RequestActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	activity.ID = s.nextID
	s.nextID++
	s.activities = append(s.activities, *activity)
	return nil
}

func (s *memActivityStore) ListByRequest(ctx context.Context, requestID string) ([]models.RequestActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.RequestActivity
	for i := len(s.activities) - 1; i >= 0; i-- {
		if s.activities[i].RequestID == requestID {
			out = append(out, s.activities[i])
		}
	}
	return out, nil
}
