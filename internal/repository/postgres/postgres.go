package postgres

import (
	"database/sql"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CustomerRepository
	repository.EquipmentRepository
	repository.RentalRepository
	repository.SettlementRepository
	repository.AnalyticsRepository
}

func NewStore(db *sql.DB, txMaxRetries int) *Store {
	return &Store{
		db:                   db,
		UserRepository:       NewUserRepository(db),
		CustomerRepository:   NewCustomerRepository(db),
		EquipmentRepository:  NewEquipmentRepository(db),
		RentalRepository:     NewRentalRepository(db),
		SettlementRepository: NewSettlementRepository(db, txMaxRetries),
		AnalyticsRepository:  NewAnalyticsRepository(db),
	}
}
