package txsign

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
)

// Hardfork names the rule set a legacy transaction is signed under.
type Hardfork string

const (
	Homestead      Hardfork = "homestead"
	SpuriousDragon Hardfork = "spuriousDragon"
	Byzantium      Hardfork = "byzantium"
	Constantinople Hardfork = "constantinople"
	Petersburg     Hardfork = "petersburg"
	Istanbul       Hardfork = "istanbul"
)

// hardforkOrder lists hardforks by activation order.
var hardforkOrder = []Hardfork{Homestead, SpuriousDragon, Byzantium, Constantinople, Petersburg, Istanbul}

func (h Hardfork) index() int {
	for i, fork := range hardforkOrder {
		if fork == h {
			return i
		}
	}
	return -1
}

// ReplayProtected reports whether EIP-155 is active under h.
func (h Hardfork) ReplayProtected() bool {
	return h.index() >= SpuriousDragon.index()
}

// DefaultHardfork applies to chains missing from the table.
const DefaultHardfork = Petersburg

// Chain is one entry of the chain profile table.
type Chain struct {
	ID       uint64
	Name     string
	Hardfork Hardfork
}

var knownChains = map[uint64]Chain{
	1:        {ID: 1, Name: "mainnet", Hardfork: Petersburg},
	3:        {ID: 3, Name: "ropsten", Hardfork: Petersburg},
	4:        {ID: 4, Name: "rinkeby", Hardfork: Petersburg},
	5:        {ID: 5, Name: "goerli", Hardfork: Petersburg},
	42:       {ID: 42, Name: "kovan", Hardfork: Petersburg},
	17000:    {ID: 17000, Name: "holesky", Hardfork: Petersburg},
	11155111: {ID: 11155111, Name: "sepolia", Hardfork: Petersburg},
}

// LookupChain returns the profile for id. Unknown ids get a "custom"
// profile with DefaultHardfork and ok=false. Chain id 0 means "no chain"
// and is signed without replay protection.
func LookupChain(id uint64) (chain Chain, ok bool) {
	if chain, ok := knownChains[id]; ok {
		return chain, true
	}
	if id == 0 {
		return Chain{ID: 0, Name: "none", Hardfork: Homestead}, false
	}
	return Chain{ID: id, Name: "custom", Hardfork: DefaultHardfork}, false
}

// Signer returns the go-ethereum transaction signer for the profile.
func (c Chain) Signer() types.Signer {
	if c.ID == 0 || !c.Hardfork.ReplayProtected() {
		return types.HomesteadSigner{}
	}
	return types.NewEIP155Signer(new(big.Int).SetUint64(c.ID))
}
