package icache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fetchsim/timing/icache"
)

var _ = Describe("Cache", func() {
	var cache *icache.Cache

	BeforeEach(func() {
		// Small cache so eviction is easy to provoke: 2 sets, 2 ways.
		cache = icache.New(icache.Config{
			Size:          256,
			Associativity: 2,
			BlockSize:     64,
		})
	})

	It("should miss on first access and hit afterwards", func() {
		Expect(cache.Access(0x1000)).To(BeFalse())
		Expect(cache.Access(0x1000)).To(BeTrue())
	})

	It("should hit anywhere inside a cached block", func() {
		cache.Access(0x1000)
		Expect(cache.Access(0x103C)).To(BeTrue())
	})

	It("should keep blocks in different sets apart", func() {
		Expect(cache.Access(0x1000)).To(BeFalse())
		Expect(cache.Access(0x1040)).To(BeFalse())
		Expect(cache.Access(0x1000)).To(BeTrue())
		Expect(cache.Access(0x1040)).To(BeTrue())
	})

	It("should evict the LRU way when a set overflows", func() {
		// Three blocks mapping to the same set of a 2-way cache.
		cache.Access(0x1000)
		cache.Access(0x1080)
		cache.Access(0x1100)

		Expect(cache.Stats().Evictions).To(Equal(uint64(1)))
		Expect(cache.Access(0x1000)).To(BeFalse())
	})

	It("should count accesses, hits, and misses", func() {
		cache.Access(0x1000)
		cache.Access(0x1000)
		cache.Access(0x2000)

		stats := cache.Stats()
		Expect(stats.Accesses).To(Equal(uint64(3)))
		Expect(stats.Hits).To(Equal(uint64(1)))
		Expect(stats.Misses).To(Equal(uint64(2)))
	})

	It("should forget invalidated blocks", func() {
		cache.Access(0x1000)
		cache.Invalidate(0x1000)
		Expect(cache.Access(0x1000)).To(BeFalse())
	})

	It("should clear everything on reset", func() {
		cache.Access(0x1000)
		cache.Reset()

		Expect(cache.Stats().Accesses).To(BeZero())
		Expect(cache.Access(0x1000)).To(BeFalse())
	})
})
