package memory

import (
	"context"

	"notevault-be/internal/repository/contract"
	"notevault-be/internal/repository/unitofwork"
)

// UnitOfWork wraps the in-memory repositories behind the unitofwork contract.
// Begin/Commit/Rollback are no-ops; writes land in the maps immediately.
type UnitOfWork struct {
	users *UserRepository
	notes *NoteRepository
}

func (u *UnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *UnitOfWork) Commit() error                   { return nil }
func (u *UnitOfWork) Rollback() error                 { return nil }

func (u *UnitOfWork) UserRepository() contract.UserRepository {
	return u.users
}

func (u *UnitOfWork) NoteRepository() contract.NoteRepository {
	return u.notes
}

type RepositoryFactory struct {
	uow *UnitOfWork
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{
		uow: &UnitOfWork{
			users: NewUserRepository(),
			notes: NewNoteRepository(),
		},
	}
}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}
