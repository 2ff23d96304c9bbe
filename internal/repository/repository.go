package repository

import "github.com/jackc/pgx/v5/pgxpool"

type Repository struct {
	Interview InterviewRepository
	Plan      PlanRepository
	Bank      BankRepository
	Record    RecordRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Interview: InterviewRepository{db: db},
		Plan:      PlanRepository{db: db},
		Bank:      BankRepository{db: db},
		Record:    RecordRepository{db: db},
	}
}
