package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
	"github.com/allisson/reptend/internal/database"
	apperrors "github.com/allisson/reptend/internal/errors"
)

const postgresSelectCipherKey = `SELECT id, name, version, prime, master_key_id, created_at, deleted_at
			  FROM cipher_keys`

// PostgreSQLCipherKeyRepository implements cipher key persistence for PostgreSQL.
//
// Database schema requirements:
//   - id: UUID PRIMARY KEY
//   - name: TEXT
//   - version: INTEGER
//   - prime: TEXT (decimal)
//   - master_key_id: TEXT
//   - created_at: TIMESTAMP WITH TIME ZONE
//   - deleted_at: TIMESTAMP WITH TIME ZONE (nullable)
//   - UNIQUE constraint on (name, version)
type PostgreSQLCipherKeyRepository struct {
	db *sql.DB
}

// pgUniqueViolation is the SQLSTATE raised by the (name, version) constraint.
const pgUniqueViolation = "23505"

// Create inserts a new cipher key version. A (name, version) pair already taken,
// by a live or soft-deleted row, yields ErrCipherKeyAlreadyExists.
func (p *PostgreSQLCipherKeyRepository) Create(ctx context.Context, cipherKey *cipherDomain.CipherKey) error {
	querier := database.GetTx(ctx, p.db)

	prime, err := encodePrime(cipherKey.Prime)
	if err != nil {
		return err
	}

	query := `INSERT INTO cipher_keys (id, name, version, prime, master_key_id, created_at, deleted_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = querier.ExecContext(
		ctx,
		query,
		cipherKey.ID,
		cipherKey.Name,
		cipherKey.Version,
		prime,
		cipherKey.MasterKeyID,
		cipherKey.CreatedAt,
		cipherKey.DeletedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return cipherDomain.ErrCipherKeyAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create cipher key")
	}
	return nil
}

// Delete soft-deletes a cipher key version. Returns ErrCipherKeyNotFound if no
// live row has the given ID.
func (p *PostgreSQLCipherKeyRepository) Delete(ctx context.Context, cipherKeyID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE cipher_keys SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, cipherKeyID)
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
func (p *PostgreSQLCipherKeyRepository) GetByName(
	ctx context.Context,
	name string,
) (*cipherDomain.CipherKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := postgresSelectCipherKey + `
			  WHERE name = $1 AND deleted_at IS NULL
			  ORDER BY version DESC
			  LIMIT 1`

	cipherKey, err := p.scan(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get cipher key by name")
	}
	return cipherKey, nil
}

// LatestVersion returns the highest version ever stored under name, soft-deleted
// rows included, or 0 when the name is unused.
func (p *PostgreSQLCipherKeyRepository) LatestVersion(ctx context.Context, name string) (uint, error) {
	querier := database.GetTx(ctx, p.db)

	var version uint
	query := `SELECT COALESCE(MAX(version), 0) FROM cipher_keys WHERE name = $1`
	if err := querier.QueryRowContext(ctx, query, name).Scan(&version); err != nil {
		return 0, apperrors.Wrap(err, "failed to get latest cipher key version")
	}
	return version, nil
}

// GetByNameAndVersion retrieves a specific non-deleted version of a cipher key.
func (p *PostgreSQLCipherKeyRepository) GetByNameAndVersion(
	ctx context.Context,
	name string,
	version uint,
) (*cipherDomain.CipherKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := postgresSelectCipherKey + `
			  WHERE name = $1 AND version = $2 AND deleted_at IS NULL`

	cipherKey, err := p.scan(querier.QueryRowContext(ctx, query, name, version))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get cipher key by name and version")
	}
	return cipherKey, nil
}

// List returns live cipher key versions ordered by name and descending version.
func (p *PostgreSQLCipherKeyRepository) List(ctx context.Context, offset, limit int) ([]*cipherDomain.CipherKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := postgresSelectCipherKey + `
			  WHERE deleted_at IS NULL
			  ORDER BY name ASC, version DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list cipher keys")
	}
	defer func() {
		_ = rows.Close()
	}()

	cipherKeys := make([]*cipherDomain.CipherKey, 0)
	for rows.Next() {
		cipherKey, err := p.scan(rows)
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

func (p *PostgreSQLCipherKeyRepository) scan(row rowScanner) (*cipherDomain.CipherKey, error) {
	var cipherKey cipherDomain.CipherKey
	var prime string

	err := row.Scan(
		&cipherKey.ID,
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

	if cipherKey.Prime, err = decodePrime(prime); err != nil {
		return nil, err
	}
	return &cipherKey, nil
}

// NewPostgreSQLCipherKeyRepository creates a new PostgreSQL cipher key repository.
func NewPostgreSQLCipherKeyRepository(db *sql.DB) *PostgreSQLCipherKeyRepository {
	return &PostgreSQLCipherKeyRepository{db: db}
}
