package service

import (
	"context"
	"sync"
	"time"

	"github.com/woodmart/storefront/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
	err    error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByCredentials(_ context.Context, username, password string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[username]
	if !ok || u.Password != password {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Create(_ context.Context, username, password string, role domain.Role) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, exists := r.users[username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	u := &domain.User{ID: r.nextID, Username: username, Password: password, Role: role, CreatedAt: time.Now().UTC()}
	r.users[username] = u
	return cloneUser(u), nil
}

type stubProductRepo struct {
	products map[int64]*domain.Product
	nextID   int64
	err      error
}

func newStubProductRepo(seed ...domain.Product) *stubProductRepo {
	r := &stubProductRepo{products: make(map[int64]*domain.Product)}
	for i := range seed {
		p := seed[i]
		r.products[p.ID] = &p
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
	}
	return r
}

func (r *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Product, 0, len(r.products))
	for id := int64(1); id <= r.nextID; id++ {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Get(_ context.Context, id int64) (*domain.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Create(_ context.Context, in domain.ProductInput) (*domain.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	p := &domain.Product{ID: r.nextID, Name: in.Name, Price: in.Price, ImageURL: in.ImageURL, CreatedAt: time.Now().UTC()}
	r.products[p.ID] = p
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Update(_ context.Context, id int64, in domain.ProductInput) error {
	if r.err != nil {
		return r.err
	}
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Name, p.Price, p.ImageURL = in.Name, in.Price, in.ImageURL
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id int64) error {
	if r.err != nil {
		return r.err
	}
	delete(r.products, id)
	return nil
}

type stubSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	err      error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Load(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessionStore) Save(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sessions[sess.ID] = sess
	return nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(s.sessions, id)
	return nil
}

func signedIn(id int64, username string, role domain.Role) *domain.Session {
	sess := domain.NewSession("sess-" + username)
	sess.SignIn(&domain.User{ID: id, Username: username, Role: role})
	return sess
}
