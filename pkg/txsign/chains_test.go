package txsign

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
)

func TestLookupChain(t *testing.T) {
	t.Run("Known chains", func(t *testing.T) {
		for id, name := range map[uint64]string{1: "mainnet", 5: "goerli", 11155111: "sepolia"} {
			chain, ok := LookupChain(id)
			assert.True(t, ok)
			assert.Equal(t, name, chain.Name)
			assert.Equal(t, Petersburg, chain.Hardfork)
		}
	})

	t.Run("Unknown chain falls back to default hardfork", func(t *testing.T) {
		chain, ok := LookupChain(1337)
		assert.False(t, ok)
		assert.Equal(t, uint64(1337), chain.ID)
		assert.Equal(t, "custom", chain.Name)
		assert.Equal(t, DefaultHardfork, chain.Hardfork)
	})

	t.Run("Zero chain id", func(t *testing.T) {
		chain, ok := LookupChain(0)
		assert.False(t, ok)
		assert.Equal(t, Homestead, chain.Hardfork)
	})
}

func TestHardforkReplayProtected(t *testing.T) {
	assert.False(t, Homestead.ReplayProtected())
	assert.True(t, SpuriousDragon.ReplayProtected())
	assert.True(t, Petersburg.ReplayProtected())
	assert.True(t, Istanbul.ReplayProtected())
	assert.False(t, Hardfork("frontier").ReplayProtected())
}

func TestChainSigner(t *testing.T) {
	chain, _ := LookupChain(1)
	assert.True(t, chain.Signer().Equal(types.NewEIP155Signer(big.NewInt(1))))

	chain, _ = LookupChain(0)
	assert.True(t, chain.Signer().Equal(types.HomesteadSigner{}))

	chain = Chain{ID: 7, Name: "old", Hardfork: Homestead}
	assert.True(t, chain.Signer().Equal(types.HomesteadSigner{}))
}
