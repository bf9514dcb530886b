package repositories

import "github.com/blogem/regdesk/datastore"

// Repositories struct holds all repository interfaces
type Repositories struct {
	Applications ApplicationRepository
	Audit        AuditRepository
	Messages     MessageRepository
	Users        UserRepository
	Settings     SettingsRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(client datastore.Client) *Repositories {
	return &Repositories{
		Applications: NewApplicationRepository(client),
		Audit:        NewAuditRepository(client),
		Messages:     NewMessageRepository(client),
		Users:        NewUserRepository(client),
		Settings:     NewSettingsRepository(client),
	}
}
