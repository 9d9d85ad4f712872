package genetic

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/mazewalk/maze"
)

// Codec translates between genomes and their text form
type Codec interface {
	Encode(Genome) string
	Decode(string) (Genome, error)
}

// letters indexed by direction code
const letters = "RDLU"

// LetterCodec encodes each gene as one of R, D, L, U
type LetterCodec struct{}

func (LetterCodec) Encode(g Genome) string {
	var b strings.Builder
	b.Grow(len(g))
	for _, d := range g {
		if !d.Valid() {
			b.WriteByte('?')
			continue
		}
		b.WriteByte(letters[d])
	}
	return b.String()
}

func (LetterCodec) Decode(s string) (Genome, error) {
	g := make(Genome, len(s))
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(letters, s[i])
		if idx < 0 {
			return nil, fmt.Errorf("%w: unknown gene %q at %d", ErrMalformedGenome, s[i], i)
		}
		g[i] = maze.Direction(idx)
	}
	return g, nil
}
