// Package gameid creates time-ordered identifiers for games.
package gameid

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Generator creates game IDs. A nil reader uses crypto/rand.
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator reading random bits from r
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate creates a new game ID using crypto/rand
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate returns a UUIDv7 string; IDs sort by creation time
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand != nil {
		id, err = uuid.NewV7FromReader(g.rand)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		// Out of entropy; a v4 ID is still unique, just not ordered.
		return uuid.New().String()
	}
	return id.String()
}

// Short returns the trailing 8 characters, enough to tell games apart in a log
func Short(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

// Validate checks that id is a well-formed UUID
func Validate(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid game ID %q: %w", id, err)
	}
	return nil
}
