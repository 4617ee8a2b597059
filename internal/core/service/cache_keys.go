package service

import "fmt"

// Cache groups, one per entity family. Every committed write to a family
// evicts its whole group.
const (
	CacheGroupUsers    = "users"
	CacheGroupRoles    = "roles"
	CacheGroupProducts = "products"
)

// Collection sentinel keys.
const (
	keyAllUsers    = "allUsers"
	keyAllRoles    = "allRoles"
	keyAllProducts = "allProducts"
)

func userKey(id int64) string    { return fmt.Sprintf("user_%d", id) }
func roleKey(id int64) string    { return fmt.Sprintf("role_%d", id) }
func productKey(id int64) string { return fmt.Sprintf("product_%d", id) }
