package postgres

import (
	"github.com/Ghani-Agu/app-reviews/internal/ports"
	"gorm.io/gorm"
)

type Repositories struct {
	Sessions ports.SessionRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Sessions: &sessionRepository{db: db},
	}
}
