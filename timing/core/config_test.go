package core_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fetchsim/timing/core"
)

var _ = Describe("Config", func() {
	It("should validate the default configuration", func() {
		Expect(core.DefaultConfig().Validate()).To(Succeed())
	})

	It("should reject an unaligned reset vector", func() {
		config := core.DefaultConfig()
		config.ResetVector = 0x1002
		Expect(config.Validate()).To(HaveOccurred())
	})

	It("should reject inconsistent cache geometry when the cache is enabled", func() {
		config := core.DefaultConfig()
		config.ICacheEnabled = true
		config.ICacheBlockSize = 24
		Expect(config.Validate()).To(HaveOccurred())
	})

	It("should ignore cache geometry when the cache is disabled", func() {
		config := core.DefaultConfig()
		config.ICacheSize = -1
		Expect(config.Validate()).To(Succeed())
	})

	It("should round-trip through a JSON file", func() {
		config := core.DefaultConfig()
		config.ResetVector = 0x8000
		config.ICacheEnabled = true

		path := filepath.Join(GinkgoT().TempDir(), "frontend.json")
		Expect(config.SaveConfig(path)).To(Succeed())

		loaded, err := core.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(config))
	})

	It("should report missing config files", func() {
		_, err := core.LoadConfig(filepath.Join(GinkgoT().TempDir(), "missing.json"))
		Expect(err).To(HaveOccurred())
	})

	It("should clone into an independent copy", func() {
		config := core.DefaultConfig()
		clone := config.Clone()
		clone.ResetVector = 0x4000

		Expect(config.ResetVector).To(Equal(uint32(0x1000)))
	})
})
