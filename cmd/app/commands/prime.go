package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/reptend/internal/cipher/http/dto"
	cipherUseCase "github.com/allisson/reptend/internal/cipher/usecase"
)

// RunGeneratePrime prints a fresh full reptend prime of bits bits.
func RunGeneratePrime(
	ctx context.Context,
	primeUseCase cipherUseCase.PrimeUseCase,
	logger *slog.Logger,
	writer io.Writer,
	bits int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	p, err := primeUseCase.Generate(ctx, bits)
	if err != nil {
		return fmt.Errorf("failed to generate prime: %w", err)
	}

	logger.Debug("prime generated", slog.Int("bits", p.BitLen()))

	if format == "json" {
		return writeJSON(writer, dto.MapPrimeResponse(p, true))
	}
	_, err = fmt.Fprintln(writer, p.String())
	return err
}

// RunCheckPrime reports whether value is a full reptend prime. A value that is not
// one is reported, not treated as an error.
func RunCheckPrime(
	ctx context.Context,
	primeUseCase cipherUseCase.PrimeUseCase,
	writer io.Writer,
	value string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	p, err := parsePrime(value)
	if err != nil {
		return err
	}

	ok, err := primeUseCase.Check(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to check prime: %w", err)
	}

	if format == "json" {
		return writeJSON(writer, dto.MapPrimeResponse(p, ok))
	}
	if ok {
		_, err = fmt.Fprintf(writer, "%s is a full reptend prime (%d bits)\n", p, p.BitLen())
	} else {
		_, err = fmt.Fprintf(writer, "%s is not a full reptend prime\n", p)
	}
	return err
}
