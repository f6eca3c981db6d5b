package fetchmem_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fetchsim/mem"
	"github.com/sarchlab/fetchsim/timing/fetchmem"
	"github.com/sarchlab/fetchsim/timing/icache"
)

var _ = Describe("LineMemory", func() {
	var memory *mem.Memory

	BeforeEach(func() {
		memory = mem.NewMemory()
		for i := uint32(0); i < 4; i++ {
			memory.Write32(0x1000+4*i, 0xA0+i)
		}
	})

	It("should return the four words of the requested line", func() {
		fetcher := fetchmem.NewLineMemory(memory)
		Expect(fetcher.FetchLine(0x1000)).To(Equal([4]uint32{0xA0, 0xA1, 0xA2, 0xA3}))
	})

	Describe("CachedLineMemory", func() {
		var fetcher *fetchmem.CachedLineMemory

		BeforeEach(func() {
			fetcher = fetchmem.NewCachedLineMemory(memory, icache.New(icache.DefaultL1IConfig()))
		})

		It("should serve the same data as the plain line memory", func() {
			Expect(fetcher.FetchLine(0x1000)).To(Equal([4]uint32{0xA0, 0xA1, 0xA2, 0xA3}))
		})

		It("should record fetches in the cache", func() {
			fetcher.FetchLine(0x1000)
			fetcher.FetchLine(0x1000)

			stats := fetcher.Cache().Stats()
			Expect(stats.Misses).To(Equal(uint64(1)))
			Expect(stats.Hits).To(Equal(uint64(1)))
		})
	})
})
