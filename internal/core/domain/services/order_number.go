package services

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	orderNumberPrefix   = "ORD"
	orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	orderNumberSuffix   = 6
)

// OrderNumberGenerator produces numbers of the form ORD-<unix millis, base 36>-<6 random chars>.
// Uniqueness is enforced by storage; callers retry with a fresh number on conflict.
type OrderNumberGenerator struct {
	random io.Reader
}

// NewOrderNumberGenerator uses crypto/rand for the suffix.
func NewOrderNumberGenerator() *OrderNumberGenerator {
	return &OrderNumberGenerator{random: rand.Reader}
}

// NewOrderNumberGeneratorWithSource draws the suffix from random. Used by tests to
// force collisions.
func NewOrderNumberGeneratorWithSource(random io.Reader) *OrderNumberGenerator {
	return &OrderNumberGenerator{random: random}
}

func (g *OrderNumberGenerator) Next(now time.Time) (string, error) {
	alphabetSize := big.NewInt(int64(len(orderNumberAlphabet)))

	var suffix strings.Builder
	for range orderNumberSuffix {
		n, err := rand.Int(g.random, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("generate order number: %w", err)
		}
		suffix.WriteByte(orderNumberAlphabet[n.Int64()])
	}

	stamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return fmt.Sprintf("%s-%s-%s", orderNumberPrefix, stamp, suffix.String()), nil
}
