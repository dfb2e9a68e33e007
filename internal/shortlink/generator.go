package shortlink

import "github.com/jaevor/go-nanoid"

// Alphabet is the character set sampled for generated shortcodes.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeGenerator produces candidate shortcodes. Uniqueness is not the
// generator's concern: the service retries generation whenever the store
// rejects a candidate as taken.
type CodeGenerator func() string

// NewCodeGenerator returns a generator sampling codes of the given length
// uniformly from Alphabet.
func NewCodeGenerator(length int) (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		return nil, err
	}

	return CodeGenerator(gen), nil
}
