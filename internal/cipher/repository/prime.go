// Package repository persists cipher keys in PostgreSQL and MySQL.
//
// Primes are stored as decimal text so rows stay readable and portable between
// drivers. Both implementations are transaction-aware through database.GetTx and
// soft-delete rows by setting deleted_at.
package repository

import (
	"fmt"
	"math/big"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
)

func encodePrime(p *big.Int) (string, error) {
	if p == nil || p.Sign() <= 0 {
		return "", cipherDomain.ErrInvalidPrime
	}
	return p.Text(10), nil
}

func decodePrime(s string) (*big.Int, error) {
	p, ok := new(big.Int).SetString(s, 10)
	if !ok || p.Sign() <= 0 {
		return nil, fmt.Errorf("%w: stored prime %q", cipherDomain.ErrInvalidPrime, s)
	}
	return p, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
