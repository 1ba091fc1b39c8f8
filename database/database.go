package database

import (
	"gorm.io/gorm"
)

type Database struct {
	db             *gorm.DB
	projectRepo    *ProjectRepo
	technologyRepo *TechnologyRepo
	tagRepo        *TagRepo
	userRepo       *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:             db,
		projectRepo:    NewProjectRepo(db),
		technologyRepo: NewTechnologyRepo(db),
		tagRepo:        NewTagRepo(db),
		userRepo:       NewUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TechnologyRepo() *TechnologyRepo {
	return d.technologyRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

// Transaction runs fn against a Database whose repositories are all bound to
// the same transaction. Rolls back if fn returns an error.
func (d Database) Transaction(fn func(tx Database) error) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
