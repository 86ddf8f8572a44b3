package table

import (
	"testing"

	"github.com/outofforest/robinhood/seed"
	"github.com/outofforest/robinhood/types"
)

func BenchmarkInsertGetDelete(b *testing.B) {
	b.Run("Table", func(b *testing.B) {
		tbl, err := New(Config{Seed: seed.Fixed(1)})
		if err != nil {
			b.Fatal(err)
		}
		defer tbl.Close()

		b.ReportAllocs()
		b.ResetTimer()
		for i := range b.N {
			key := types.Key(i & 255)
			if err := tbl.Insert(key, types.Value(i)); err != nil {
				b.Fatal(err)
			}
			tbl.Get(key)
			tbl.Delete(key)
		}
	})

	b.Run("Map", func(b *testing.B) {
		m := map[types.Key]types.Value{}

		b.ReportAllocs()
		b.ResetTimer()
		for i := range b.N {
			key := types.Key(i & 255)
			m[key] = types.Value(i)
			_ = m[key]
			delete(m, key)
		}
	})
}

func BenchmarkGet(b *testing.B) {
	const count = 100_000

	tbl, err := New(Config{Seed: seed.Fixed(1)})
	if err != nil {
		b.Fatal(err)
	}
	defer tbl.Close()

	for i := range count {
		if err := tbl.Insert(types.Key(i), types.Value(i)); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := range b.N {
		tbl.Get(types.Key(i % count))
	}
}
