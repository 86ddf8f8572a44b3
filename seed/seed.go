package seed

import (
	"math/rand/v2"
	"time"

	"github.com/outofforest/robinhood/types"
)

// Source provides seeds for new tables.
type Source interface {
	Seed() types.Seed
}

// NewRandom returns source mixing current time with pseudo-random generator output.
func NewRandom() Source {
	return randomSource{}
}

type randomSource struct{}

func (randomSource) Seed() types.Seed {
	return types.Seed(uint64(time.Now().UnixNano()) ^ rand.Uint64())
}

// Fixed returns source always returning the same seed.
func Fixed(seed types.Seed) Source {
	return fixedSource(seed)
}

type fixedSource types.Seed

func (s fixedSource) Seed() types.Seed {
	return types.Seed(s)
}
