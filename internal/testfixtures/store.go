package testfixtures

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	availabilityRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/availability"
	productRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/product"
	rentalRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/rental"
	userRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/user"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

type txKey struct{}

type dayKey struct {
	productID uuid.UUID
	date      types.Date
}

// Store хранилище в памяти с семантикой репозиториев PostgreSQL:
// уникальность (product_id, date) и email, транзакции с полным откатом.
// Транзакции выполняются строго по очереди.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	products     map[uuid.UUID]domain.Product
	users        map[uuid.UUID]domain.User
	rentals      map[uuid.UUID]domain.Rental
	availability map[uuid.UUID]domain.Availability

	base  time.Time
	ticks int
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		products:     make(map[uuid.UUID]domain.Product),
		users:        make(map[uuid.UUID]domain.User),
		rentals:      make(map[uuid.UUID]domain.Rental),
		availability: make(map[uuid.UUID]domain.Availability),
		base:         time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC),
	}
}

// Products репозиторий товаров
func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }

// Users репозиторий пользователей
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Rentals репозиторий аренд
func (s *Store) Rentals() *RentalRepository { return &RentalRepository{s: s} }

// Availability репозиторий календаря
func (s *Store) Availability() *AvailabilityRepository { return &AvailabilityRepository{s: s} }

// TxManager менеджер транзакций хранилища
func (s *Store) TxManager() *TxManager { return &TxManager{s: s} }

// SeedProduct добавляет товар
func (s *Store) SeedProduct(p domain.Product) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = domain.ProductAvailable
	}
	p.CreatedAt = s.tick()
	p.UpdatedAt = p.CreatedAt
	s.products[p.ID] = p
	return &p
}

// SeedUser добавляет пользователя
func (s *Store) SeedUser(u domain.User) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	u.Email = domain.NormalizeEmail(u.Email)
	u.CreatedAt = s.tick()
	s.users[u.ID] = u
	return &u
}

// SeedRental добавляет аренду без строк календаря
func (s *Store) SeedRental(r domain.Rental) *domain.Rental {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = s.tick()
	r.UpdatedAt = r.CreatedAt
	s.rentals[r.ID] = r
	return &r
}

// SeedAvailability добавляет строку календаря в обход проверок
func (s *Store) SeedAvailability(a domain.Availability) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = s.tick()
	s.availability[a.ID] = a
}

// RentalCount количество аренд
func (s *Store) RentalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rentals)
}

// UserCount количество пользователей
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// AvailabilityRows строки календаря товара, отсортированные по дате
func (s *Store) AvailabilityRows(productID uuid.UUID) []domain.Availability {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Availability
	for _, a := range s.availability {
		if a.ProductID == productID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// UserByEmail пользователь по email или nil
func (s *Store) UserByEmail(email string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == domain.NormalizeEmail(email) {
			return &u
		}
	}
	return nil
}

// tick монотонное время создания записей, вызывается под s.mu
func (s *Store) tick() time.Time {
	s.ticks++
	return s.base.Add(time.Duration(s.ticks) * time.Minute)
}

type snapshot struct {
	products     map[uuid.UUID]domain.Product
	users        map[uuid.UUID]domain.User
	rentals      map[uuid.UUID]domain.Rental
	availability map[uuid.UUID]domain.Availability
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		products:     copyMap(s.products),
		users:        copyMap(s.users),
		rentals:      copyMap(s.rentals),
		availability: copyMap(s.availability),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.users = snap.users
	s.rentals = snap.rentals
	s.availability = snap.availability
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// TxManager выполняет функции по очереди, откатывая изменения при ошибке
type TxManager struct {
	s *Store
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	snap := m.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.restore(snap)
		return err
	}
	return nil
}

// ProductRepository товары в памяти
type ProductRepository struct{ s *Store }

func (r *ProductRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, productRepo.ErrProductNotFound
	}
	return &p, nil
}

func (r *ProductRepository) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = r.s.tick()
	p.UpdatedAt = p.CreatedAt
	r.s.products[p.ID] = *p
	return p, nil
}

// UserRepository пользователи в памяти
type UserRepository struct{ s *Store }

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == domain.NormalizeEmail(email) {
			return &u, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (r *UserRepository) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.Email = domain.NormalizeEmail(u.Email)
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, fmt.Errorf("%w: %s", userRepo.ErrEmailTaken, u.Email)
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = r.s.tick()
	r.s.users[u.ID] = *u
	return u, nil
}

// RentalRepository аренды в памяти
type RentalRepository struct{ s *Store }

func (r *RentalRepository) Create(_ context.Context, rental *domain.Rental) (*domain.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rental.ID == uuid.Nil {
		rental.ID = uuid.New()
	}
	rental.CreatedAt = r.s.tick()
	rental.UpdatedAt = rental.CreatedAt
	r.s.rentals[rental.ID] = *rental
	return rental, nil
}

func (r *RentalRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rental, ok := r.s.rentals[id]
	if !ok {
		return nil, rentalRepo.ErrRentalNotFound
	}
	return &rental, nil
}

func (r *RentalRepository) GetActiveByProduct(_ context.Context, productID uuid.UUID) ([]*domain.Rental, error) {
	return r.filter(func(rental domain.Rental) bool {
		return rental.ProductID == productID && rental.Status.IsActive()
	}, false), nil
}

func (r *RentalRepository) GetByUserID(_ context.Context, userID uuid.UUID, status *domain.RentalStatus) ([]*domain.Rental, error) {
	return r.filter(func(rental domain.Rental) bool {
		return rental.UserID == userID && (status == nil || rental.Status == *status)
	}, true), nil
}

func (r *RentalRepository) List(_ context.Context, f domain.RentalsFilter) ([]*domain.Rental, error) {
	return r.filter(func(rental domain.Rental) bool {
		switch {
		case f.ProductID != nil && rental.ProductID != *f.ProductID:
			return false
		case f.UserID != nil && rental.UserID != *f.UserID:
			return false
		case f.Status != nil && rental.Status != *f.Status:
			return false
		case f.From != nil && rental.EndDate.Before(*f.From):
			return false
		case f.To != nil && rental.StartDate.After(*f.To):
			return false
		}
		return true
	}, true), nil
}

func (r *RentalRepository) UpdateStatus(_ context.Context, rental *domain.Rental, status domain.RentalStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.rentals[rental.ID]
	if !ok {
		return rentalRepo.ErrRentalNotFound
	}
	stored.Status = status
	stored.UpdatedAt = r.s.tick()
	r.s.rentals[rental.ID] = stored
	rental.Status = status
	rental.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *RentalRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rentals[id]; !ok {
		return rentalRepo.ErrRentalNotFound
	}
	delete(r.s.rentals, id)
	for key, a := range r.s.availability {
		if a.RentalID != nil && *a.RentalID == id {
			delete(r.s.availability, key)
		}
	}
	return nil
}

// filter выбирает аренды; newestFirst сортирует по created_at DESC, иначе по start_date
func (r *RentalRepository) filter(keep func(domain.Rental) bool, newestFirst bool) []*domain.Rental {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Rental, 0)
	for _, rental := range r.s.rentals {
		if keep(rental) {
			rental := rental
			out = append(out, &rental)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}

// AvailabilityRepository календарь в памяти
type AvailabilityRepository struct{ s *Store }

func (r *AvailabilityRepository) GetBlockedDates(_ context.Context, productID uuid.UUID) ([]types.Date, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]types.Date, 0)
	for _, a := range r.s.availability {
		if a.ProductID != productID {
			continue
		}
		if a.IsBlocked {
			out = append(out, a.Date)
			continue
		}
		if a.RentalID != nil {
			if rental, ok := r.s.rentals[*a.RentalID]; ok && rental.Status.IsActive() {
				out = append(out, a.Date)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func (r *AvailabilityRepository) CreateBatch(_ context.Context, rows []*domain.Availability) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	taken := make(map[dayKey]struct{}, len(r.s.availability))
	for _, a := range r.s.availability {
		taken[dayKey{a.ProductID, a.Date}] = struct{}{}
	}
	for _, row := range rows {
		key := dayKey{row.ProductID, row.Date}
		if _, ok := taken[key]; ok {
			return fmt.Errorf("%w: %s", availabilityRepo.ErrDateTaken, row.Date)
		}
		taken[key] = struct{}{}
	}

	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		row.CreatedAt = r.s.tick()
		r.s.availability[row.ID] = *row
	}
	return nil
}

func (r *AvailabilityRepository) DeleteByRentalID(_ context.Context, rentalID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for key, a := range r.s.availability {
		if a.RentalID != nil && *a.RentalID == rentalID {
			delete(r.s.availability, key)
			n++
		}
	}
	return n, nil
}

func (r *AvailabilityRepository) DeleteManualBlocks(_ context.Context, productID uuid.UUID, dates []types.Date) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[types.Date]struct{}, len(dates))
	for _, d := range dates {
		wanted[d] = struct{}{}
	}
	var n int64
	for key, a := range r.s.availability {
		if a.ProductID != productID || !a.IsManualBlock() {
			continue
		}
		if _, ok := wanted[a.Date]; ok {
			delete(r.s.availability, key)
			n++
		}
	}
	return n, nil
}
