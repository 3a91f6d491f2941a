package memory

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func BenchmarkMemoryCache_Get(b *testing.B) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()
	body := make([]byte, 64*1024)
	_ = cache.Set(ctx, "torznab:bench", body, time.Hour)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cache.Get(ctx, "torznab:bench")
	}
}

func BenchmarkMemoryCache_Set(b *testing.B) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()
	body := make([]byte, 64*1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cache.Set(ctx, fmt.Sprintf("torznab:%d", i%1000), body, time.Hour)
	}
}

func BenchmarkMemoryCache_ConcurrentGet(b *testing.B) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		_ = cache.Set(ctx, fmt.Sprintf("torznab:%d", i), []byte("<rss/>"), time.Hour)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = cache.Get(ctx, fmt.Sprintf("torznab:%d", i%100))
			i++
		}
	})
}
