package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Entries  *EntryRepository
	Symptoms *SymptomRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Entries:  NewEntryRepository(database),
		Symptoms: NewSymptomRepository(database),
	}
}
