package strength

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Character sets used for password generation
const (
	charsetLower   = "abcdefghijklmnopqrstuvwxyz"
	charsetUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	charsetDigits  = "0123456789"
	charsetSymbols = "!@#$%^&*()-_=+[]{};:,.<>?"
)

// GenerateOptions controls random password generation
type GenerateOptions struct {
	Length  int
	Lower   bool
	Upper   bool
	Digits  bool
	Symbols bool
}

func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Length:  16,
		Lower:   true,
		Upper:   true,
		Digits:  true,
		Symbols: true,
	}
}

// Generate produces a random password from the enabled character
// classes, guaranteeing at least one character of each enabled class.
// Randomness comes from crypto/rand.
func Generate(opts GenerateOptions) (string, error) {
	var sets []string
	if opts.Lower {
		sets = append(sets, charsetLower)
	}
	if opts.Upper {
		sets = append(sets, charsetUpper)
	}
	if opts.Digits {
		sets = append(sets, charsetDigits)
	}
	if opts.Symbols {
		sets = append(sets, charsetSymbols)
	}
	if len(sets) == 0 {
		return "", fmt.Errorf("no character classes enabled")
	}
	if opts.Length < len(sets) {
		return "", fmt.Errorf("length %d cannot cover %d enabled character classes", opts.Length, len(sets))
	}

	combined := ""
	for _, set := range sets {
		combined += set
	}

	password := make([]byte, 0, opts.Length)

	// One guaranteed character per enabled class, the rest drawn from
	// the combined set
	for _, set := range sets {
		c, err := randomFrom(set)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}
	for len(password) < opts.Length {
		c, err := randomFrom(combined)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	if err := shuffle(password); err != nil {
		return "", err
	}
	return string(password), nil
}

func randomFrom(set string) (byte, error) {
	i, err := randomInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

// shuffle is a Fisher-Yates pass so the guaranteed class characters do
// not cluster at the front
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}

func randomInt(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random source: %w", err)
	}
	return int(n.Int64()), nil
}
