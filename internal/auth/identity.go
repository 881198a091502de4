package auth

import (
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/adhyoctora11-coder/HMTH/internal/model"
)

// The identity table is fixed: there is no user management, only a lookup
// from (login, secret) to one of three known identities. Each identity is
// reachable by its short login or its email address, case-insensitively.

type identity struct {
	user   model.User
	login  string
	secret string // verified through bcrypt, hashed lazily below
}

var identities = []identity{
	{
		user:   model.User{ID: "USR-MASTER-IT", Name: "IT Cawang", Email: "itops@hmth.local", Role: model.RoleAdmin},
		login:  "itops",
		secret: "Kitchen2026",
	},
	{
		user:   model.User{ID: "USR-ADMIN-AYU", Name: "Ayu", Email: "ayu@hmth.local", Role: model.RoleAdmin},
		login:  "ayu",
		secret: "Kitchen2026",
	},
	{
		user:   model.User{ID: "USR-STAFF-HADHI", Name: "Hadhi", Email: "hadhi@hmth.local", Role: model.RoleStaff},
		login:  "hadhi",
		secret: "Kitchen2026",
	},
}

var (
	hashOnce sync.Once
	hashes   []string
)

// hashSecrets computes the bcrypt hashes of the fixed secrets once, so that
// every Authenticate call goes through a real bcrypt comparison.
func hashSecrets() {
	hashes = make([]string, len(identities))
	for i, id := range identities {
		h, err := bcrypt.GenerateFromPassword([]byte(id.secret), bcrypt.MinCost)
		if err != nil {
			// bcrypt only fails on impossible cost parameters.
			panic("hashing identity secret: " + err.Error())
		}
		hashes[i] = string(h)
	}
}

// Authenticate maps a (login, secret) pair to a fixed identity.
// Returns nil when no identity matches.
func Authenticate(login, secret string) *model.User {
	hashOnce.Do(hashSecrets)

	login = strings.ToLower(strings.TrimSpace(login))
	for i, id := range identities {
		if login != id.login && login != strings.ToLower(id.user.Email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(hashes[i]), []byte(secret)) != nil {
			return nil
		}
		user := id.user
		return &user
	}
	return nil
}
