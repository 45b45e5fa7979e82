package test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless the email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user.ID = s.Next
	user.CreatedAt = time.Now()
	s.Next++
	stored := user
	s.Users[user.Email] = &stored
	s.ByID[user.ID] = &stored
	return &user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderStore is an in-memory order repository with product stock, mirroring
// the transactional semantics of the PostgreSQL store.
type OrderStore struct {
	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
	DeleteErr error

	mu      sync.Mutex
	orders  map[uuid.UUID]model.Order
	stock   map[uuid.UUID]int
	users   map[int64]model.UserRef
	updates []model.StatusUpdate
	seq     int
	created map[uuid.UUID]int
}

// NewOrderStore returns an empty store.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders:  make(map[uuid.UUID]model.Order),
		stock:   make(map[uuid.UUID]int),
		users:   make(map[int64]model.UserRef),
		created: make(map[uuid.UUID]int),
	}
}

// AddUser registers an owner used to expand fetched orders.
func (s *OrderStore) AddUser(id int64, name, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = model.UserRef{ID: id, Name: name, Email: email}
}

// SetStock sets the stock on hand for a product.
func (s *OrderStore) SetStock(productID uuid.UUID, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[productID] = qty
}

// Stock returns the stock on hand for a product.
func (s *OrderStore) Stock(productID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stock[productID]
}

// Updates returns the recorded status updates.
func (s *OrderStore) Updates() []model.StatusUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.StatusUpdate(nil), s.updates...)
}

// Put stores an order as is.
func (s *OrderStore) Put(order model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(order)
}

func (s *OrderStore) put(order model.Order) {
	if _, ok := s.created[order.ID]; !ok {
		s.seq++
		s.created[order.ID] = s.seq
	}
	order.User = nil
	s.orders[order.ID] = order
}

func (s *OrderStore) Create(ctx context.Context, order *model.Order) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[order.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	order.CreatedAt = time.Now()
	s.put(*order)
	return nil
}

func (s *OrderStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if ref, ok := s.users[order.UserID]; ok {
		order.User = &ref
	} else {
		order.User = &model.UserRef{ID: order.UserID}
	}
	return &order, nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.list(func(o model.Order) bool { return o.UserID == userID })
}

func (s *OrderStore) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.list(func(model.Order) bool { return true })
}

func (s *OrderStore) list(keep func(model.Order) bool) ([]model.Order, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.orders {
		if keep(o) {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return s.created[result[i].ID] < s.created[result[j].ID]
	})
	return result, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, upd model.StatusUpdate) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, upd)

	order, ok := s.orders[upd.OrderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if order.Status.Terminal() {
		return domainErrors.ErrOrderDelivered
	}

	deduct := upd.Deduct == model.DeductAlways || (upd.Deduct == model.DeductOnce && !order.StockDeducted)
	if deduct {
		next := make(map[uuid.UUID]int, len(order.Items))
		for _, item := range order.Items {
			have, ok := next[item.ProductID]
			if !ok {
				if have, ok = s.stock[item.ProductID]; !ok {
					return fmt.Errorf("product %s: %w", item.ProductID, domainErrors.ErrNotFound)
				}
			}
			if have < item.Quantity {
				return fmt.Errorf("product %s: %w", item.ProductID, domainErrors.ErrInsufficientStock)
			}
			next[item.ProductID] = have - item.Quantity
		}
		for id, qty := range next {
			s.stock[id] = qty
		}
		order.StockDeducted = true
	}

	order.Status = upd.Status
	if upd.DeliveredAt != nil {
		order.DeliveredAt = upd.DeliveredAt
	}
	s.orders[order.ID] = order
	return nil
}

func (s *OrderStore) Delete(ctx context.Context, id uuid.UUID) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.orders, id)
	delete(s.created, id)
	return nil
}

// ProductRepositoryStub serves a fixed catalog.
type ProductRepositoryStub struct {
	Products []model.Product
	Err      error
	Calls    int
}

// ListByCategory filters the fixed catalog by category.
func (s *ProductRepositoryStub) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	result := []model.Product{}
	for _, p := range s.Products {
		if category == "" {
			result = append(result, p)
			continue
		}
		for _, c := range p.Categories {
			if c == category {
				result = append(result, p)
				break
			}
		}
	}
	return result, nil
}
