package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gvn/lending-platform/internal/core/domain"
)

// journal records the order of store and cache operations so tests can
// assert the evict-after-commit contract.
type journal struct {
	entries []string
}

func (j *journal) add(entry string) {
	if j != nil {
		j.entries = append(j.entries, entry)
	}
}

// stubCache is an in-memory ports.Cache. Values pass through JSON so the
// decode semantics match the Redis implementation.
type stubCache struct {
	data map[string][]byte
	log  *journal
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string][]byte)}
}

func (c *stubCache) Get(_ context.Context, group, key string, dest any) (bool, error) {
	raw, ok := c.data[group+":"+key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *stubCache) Set(_ context.Context, group, key string, value any, _ time.Duration) error {
	if value == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[group+":"+key] = raw
	c.log.add("cache.set " + group + ":" + key)
	return nil
}

func (c *stubCache) EvictGroup(_ context.Context, group string) error {
	for k := range c.data {
		if strings.HasPrefix(k, group+":") {
			delete(c.data, k)
		}
	}
	c.log.add("cache.evict " + group)
	return nil
}

// stubUserRepo keeps users in memory keyed by id.
type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
	log    *journal
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	created := cloneUser(user)
	created.ID = r.nextID
	r.nextID++
	r.users[created.ID] = cloneUser(created)
	r.log.add("store.create user")
	return created, nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	r.log.add("store.update user")
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	r.log.add("store.delete user")
	return nil
}

// stubRoleRepo keeps roles in memory keyed by id.
type stubRoleRepo struct {
	roles  map[int64]*domain.Role
	nextID int64
}

func newStubRoleRepo(names ...string) *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[int64]*domain.Role), nextID: 1}
	for _, name := range names {
		r.roles[r.nextID] = &domain.Role{ID: r.nextID, Name: name}
		r.nextID++
	}
	return r
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return nil, domain.ErrRoleExists
		}
	}
	created := &domain.Role{ID: r.nextID, Name: role.Name}
	r.nextID++
	r.roles[created.ID] = created
	return created, nil
}

func (r *stubRoleRepo) FindAll(_ context.Context) ([]domain.Role, error) {
	out := make([]domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r *stubRoleRepo) FindByID(_ context.Context, id int64) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	copy := *role
	return &copy, nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			copy := *role
			return &copy, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) Update(_ context.Context, role *domain.Role) (*domain.Role, error) {
	if _, ok := r.roles[role.ID]; !ok {
		return nil, domain.ErrRoleNotFound
	}
	copy := *role
	r.roles[role.ID] = &copy
	return role, nil
}

func (r *stubRoleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.roles[id]; !ok {
		return domain.ErrRoleNotFound
	}
	delete(r.roles, id)
	return nil
}

// stubProductRepo keeps products in memory keyed by id.
type stubProductRepo struct {
	products map[int64]*domain.Product
	nextID   int64
	log      *journal
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[int64]*domain.Product), nextID: 1}
}

func (r *stubProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	created := *product
	created.ID = r.nextID
	r.nextID++
	r.products[created.ID] = &created
	r.log.add("store.create product")
	copy := created
	return &copy, nil
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	copy := *p
	return &copy, nil
}

func (r *stubProductRepo) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if _, ok := r.products[product.ID]; !ok {
		return nil, domain.ErrProductNotFound
	}
	copy := *product
	r.products[product.ID] = &copy
	r.log.add("store.update product")
	return product, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	r.log.add("store.delete product")
	return nil
}
