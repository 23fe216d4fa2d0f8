package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
	"github.com/allisson/reptend/internal/database"
	apperrors "github.com/allisson/reptend/internal/errors"
)

const mysqlSelectCipherKey = `SELECT id, name, version, prime, master_key_id, created_at, deleted_at
			  FROM cipher_keys`

// MySQLCipherKeyRepository implements cipher key persistence for MySQL.
//
// MySQL has no native UUID type, so IDs are stored as BINARY(16) and marshaled
// with uuid.MarshalBinary / uuid.UnmarshalBinary.
type MySQLCipherKeyRepository struct {
	db *sql.DB
}

// mysqlDuplicateEntry is ER_DUP_ENTRY, raised by the (name, version) unique key.
const mysqlDuplicateEntry = 1062

// Create inserts a new cipher key version. A (name, version) pair already taken,
// by a live or soft-deleted row, yields ErrCipherKeyAlreadyExists.
func (m *MySQLCipherKeyRepository) Create(ctx context.Context, cipherKey *cipherDomain.CipherKey) error {
	querier := database.GetTx(ctx, m.db)

	id, err := cipherKey.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal cipher key id")
	}

	prime, err := encodePrime(cipherKey.Prime)
	if err != nil {
		return err
	}

	query := `INSERT INTO cipher_keys (id, name, version, prime, master_key_id, created_at, deleted_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		cipherKey.Name,
		cipherKey.Version,
		prime,
		cipherKey.MasterKeyID,
		cipherKey.CreatedAt,
		cipherKey.DeletedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return cipherDomain.ErrCipherKeyAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create cipher key")
	}
	return nil
}

// Delete soft-deletes a cipher key version.
func (m *MySQLCipherKeyRepository) Delete(ctx context.Context, cipherKeyID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := cipherKeyID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal cipher key id")
	}

	query := `UPDATE cipher_keys SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete cipher key")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return cipherDomain.ErrCipherKeyNotFound
	}

	return nil
}

// GetByName retrieves the latest non-deleted version of a cipher key.
func (m *MySQLCipherKeyRepository) GetByName(ctx context.Context, name string) (*cipherDomain.CipherKey, error) {
	querier := database.GetTx(ctx, m.db)

	query := mysqlSelectCipherKey + `
			  WHERE name = ? AND deleted_at IS NULL
			  ORDER BY version DESC
			  LIMIT 1`

	cipherKey, err := m.scan(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get cipher key by name")
	}
	return cipherKey, nil
}

// LatestVersion returns the highest version ever stored under name, soft-deleted
// rows included, or 0 when the name is unused.
func (m *MySQLCipherKeyRepository) LatestVersion(ctx context.Context, name string) (uint, error) {
	querier := database.GetTx(ctx, m.db)

	var version uint
	query := `SELECT COALESCE(MAX(version), 0) FROM cipher_keys WHERE name = ?`
	if err := querier.QueryRowContext(ctx, query, name).Scan(&version); err != nil {
		return 0, apperrors.Wrap(err, "failed to get latest cipher key version")
	}
	return version, nil
}

// GetByNameAndVersion retrieves a specific non-deleted version of a cipher key.
func (m *MySQLCipherKeyRepository) GetByNameAndVersion(
	ctx context.Context,
	name string,
	version uint,
) (*cipherDomain.CipherKey, error) {
	querier := database.GetTx(ctx, m.db)

	query := mysqlSelectCipherKey + `
			  WHERE name = ? AND version = ? AND deleted_at IS NULL`

	cipherKey, err := m.scan(querier.QueryRowContext(ctx, query, name, version))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get cipher key by name and version")
	}
	return cipherKey, nil
}

// List returns live cipher key versions ordered by name and descending version.
func (m *MySQLCipherKeyRepository) List(ctx context.Context, offset, limit int) ([]*cipherDomain.CipherKey, error) {
	querier := database.GetTx(ctx, m.db)

	query := mysqlSelectCipherKey + `
			  WHERE deleted_at IS NULL
			  ORDER BY name ASC, version DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list cipher keys")
	}
	defer func() {
		_ = rows.Close()
	}()

	cipherKeys := make([]*cipherDomain.CipherKey, 0)
	for rows.Next() {
		cipherKey, err := m.scan(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan cipher key row")
		}
		cipherKeys = append(cipherKeys, cipherKey)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating cipher key rows")
	}
	return cipherKeys, nil
}

func (m *MySQLCipherKeyRepository) scan(row rowScanner) (*cipherDomain.CipherKey, error) {
	var cipherKey cipherDomain.CipherKey
	var id []byte
	var prime string

	err := row.Scan(
		&id,
		&cipherKey.Name,
		&cipherKey.Version,
		&prime,
		&cipherKey.MasterKeyID,
		&cipherKey.CreatedAt,
		&cipherKey.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cipherDomain.ErrCipherKeyNotFound
		}
		return nil, err
	}

	if err := cipherKey.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal cipher key id")
	}
	if cipherKey.Prime, err = decodePrime(prime); err != nil {
		return nil, err
	}
	return &cipherKey, nil
}

// NewMySQLCipherKeyRepository creates a new MySQL cipher key repository.
func NewMySQLCipherKeyRepository(db *sql.DB) *MySQLCipherKeyRepository {
	return &MySQLCipherKeyRepository{db: db}
}
