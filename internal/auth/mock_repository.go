package auth

import (
	"strconv"
	"sync"
)

type mockRepository struct {
	users        map[string]*User
	usersByEmail map[string]*User
	usersByID    map[string]*User
	mu           sync.RWMutex
}

func newMockRepository() Repository {
	return &mockRepository{
		users:        make(map[string]*User),
		usersByEmail: make(map[string]*User),
		usersByID:    make(map[string]*User),
	}
}

func (r *mockRepository) CreateUser(user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return ErrUserExists
	}
	if _, exists := r.usersByEmail[user.Email]; exists {
		return ErrUserExists
	}

	if user.ID == "" {
		user.ID = "user-" + strconv.Itoa(len(r.users)+1)
	}

	// Clone the user to prevent external modifications
	newUser := &User{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	}

	r.users[newUser.Username] = newUser
	r.usersByEmail[newUser.Email] = newUser
	r.usersByID[newUser.ID] = newUser
	return nil
}

func (r *mockRepository) GetUserByEmail(email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.usersByEmail[email]
	if !exists {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *mockRepository) GetUserByID(id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.usersByID[id]
	if !exists {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *mockRepository) UsernameTaken(username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.users[username]
	return exists, nil
}

func (r *mockRepository) EmailTaken(email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.usersByEmail[email]
	return exists, nil
}

// deleteUser simulates a record removed out-of-band, for profile tests.
func (r *mockRepository) deleteUser(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.usersByID[id]
	if !exists {
		return
	}
	delete(r.users, user.Username)
	delete(r.usersByEmail, user.Email)
	delete(r.usersByID, id)
}
