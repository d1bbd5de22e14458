package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MaeliPalharini/bankledger/pkg/domain"
	"github.com/MaeliPalharini/bankledger/pkg/dto"
	repo "github.com/MaeliPalharini/bankledger/pkg/repository"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestClientRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db)

	create := dto.ClientCreate{
		ID:        uuid.New(),
		CPF:       "12345678901",
		Name:      "Maria Silva",
		BirthDate: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		Address:   "Rua A, 12",
	}

	mock.ExpectExec(`INSERT INTO "clients" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(context.Background(), create))

	mock.ExpectExec(`INSERT INTO "clients" (.+) VALUES (.+)`).
		WillReturnError(gorm.ErrDuplicatedKey)
	err := repo.Create(context.Background(), create)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_GetByCPF(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "clients" WHERE cpf = (.+)`).
		WithArgs("12345678901", 1).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "cpf", "name", "birth_date", "address", "created_at", "updated_at"},
		).AddRow(id, "12345678901", "Maria Silva", time.Now(), "Rua A, 12", time.Now(), time.Now()))

	got, err := repo.GetByCPF(context.Background(), "12345678901")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Maria Silva", got.Name)

	mock.ExpectQuery(`SELECT \* FROM "clients" WHERE cpf = (.+)`).
		WithArgs("00000000000", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = repo.GetByCPF(context.Background(), "00000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetForClientForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	clientID := uuid.New()
	accountID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE client_id = (.+) ORDER BY created_at ASC, number ASC,(.+) FOR UPDATE`).
		WithArgs(clientID, 1).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "number", "client_id", "balance", "created_at", "updated_at"},
		).AddRow(accountID, int64(42), clientID, int64(10000), time.Now(), time.Now()))

	got, err := repo.GetForClientForUpdate(context.Background(), clientID)
	require.NoError(t, err)
	assert.Equal(t, accountID, got.ID)
	assert.Equal(t, int64(42), got.Number)
	assert.Equal(t, int64(10000), got.Balance)
	assert.Equal(t, "100.00", got.Formatted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_UpdateBalance(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	id := uuid.New()
	mock.ExpectExec(`UPDATE "accounts" SET (.+) WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateBalance(context.Background(), id, 2500))

	mock.ExpectExec(`UPDATE "accounts" SET (.+) WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateBalance(context.Background(), id, 2500)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)

	create := dto.TransactionCreate{
		ID:        uuid.New(),
		AccountID: uuid.New(),
		Kind:      "deposit",
		Amount:    10000,
		Balance:   10000,
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectQuery(`INSERT INTO "transactions" (.+) VALUES (.+) RETURNING "seq"`).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(7)))

	got, err := repo.Create(context.Background(), create)
	require.NoError(t, err)
	assert.Equal(t, create.ID, got.ID)
	assert.Equal(t, int64(7), got.Seq)
	assert.Equal(t, "100.00", got.Formatted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_ListForAccount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)

	accountID := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE account_id = (.+) ORDER BY created_at ASC, seq ASC`).
		WithArgs(accountID).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "account_id", "kind", "amount", "balance", "seq", "created_at"},
		).
			AddRow(uuid.New(), accountID, "deposit", int64(10000), int64(10000), int64(1), now).
			AddRow(uuid.New(), accountID, "withdrawal", int64(4000), int64(6000), int64(2), now))

	got, err := repo.ListForAccount(context.Background(), accountID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "deposit", got[0].Kind)
	assert.Equal(t, "withdrawal", got[1].Kind)
	assert.Equal(t, int64(6000), got[1].Balance)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByIdentity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = (.+) OR email = (.+)`).
		WithArgs("teller", "teller", 1).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "username", "email", "password", "active", "created_at", "updated_at"},
		).AddRow(id, "teller", "teller@bank.example", "$2a$10$hash", true, time.Now(), time.Now()))

	got, err := repo.GetByIdentity(context.Background(), "teller")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "$2a$10$hash", got.HashedPassword)
	assert.True(t, got.Active)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_DoCommitsAndRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "clients" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(u repo.UnitOfWork) error {
		clients, err := u.ClientRepository()
		if err != nil {
			return err
		}
		return clients.Create(context.Background(), dto.ClientCreate{
			ID:   uuid.New(),
			CPF:  "12345678901",
			Name: "Maria Silva",
		})
	})
	require.NoError(t, err)

	// fn errors unwrapped: the caller sees exactly what fn returned.
	mock.ExpectBegin()
	mock.ExpectRollback()
	err = uow.Do(context.Background(), func(u repo.UnitOfWork) error {
		return domain.ErrUnauthorized
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.NoError(t, mock.ExpectationsWereMet())
}
