package persistence

import (
	"fmt"

	"github.com/lixenwraith/mazewalk/genetic"
)

// PopulationDTO is the serializable population state
type PopulationDTO struct {
	// Generation is the index the resumed run continues at
	Generation int            `toml:"generation"`
	Seed       uint64         `toml:"seed"`
	Candidates []CandidateDTO `toml:"candidates"`
}

// CandidateDTO is a serializable candidate; genes use the letter codec
type CandidateDTO struct {
	Genes string  `toml:"genes"`
	Score float64 `toml:"score"`
}

// FromPool converts an engine pool to DTO
func FromPool(pool *genetic.Pool, seed uint64, codec genetic.Codec) PopulationDTO {
	if pool == nil {
		return PopulationDTO{Seed: seed}
	}

	dto := PopulationDTO{
		Generation: pool.Generation,
		Seed:       seed,
		Candidates: make([]CandidateDTO, len(pool.Members)),
	}

	for i, m := range pool.Members {
		dto.Candidates[i] = CandidateDTO{
			Genes: codec.Encode(m.Genome),
			Score: m.Score,
		}
	}

	return dto
}

// Genomes decodes candidates for injection
func (dto PopulationDTO) Genomes(codec genetic.Codec) ([]genetic.Genome, error) {
	genomes := make([]genetic.Genome, len(dto.Candidates))

	for i, c := range dto.Candidates {
		g, err := codec.Decode(c.Genes)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		genomes[i] = g
	}

	return genomes, nil
}
