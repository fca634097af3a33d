package toolkit_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erc7824/nitrolite/cryptokit/pkg/metrics"
	"github.com/erc7824/nitrolite/cryptokit/pkg/toolkit"
	"github.com/erc7824/nitrolite/cryptokit/pkg/txsign"
)

func TestSignTx(t *testing.T) {
	m := metrics.NewMetricsWithRegistry(prometheus.NewRegistry())
	svc := newTestService(t, toolkit.ServiceConfig{Metrics: m})

	utx := txsign.UnsignedTransaction{
		Nonce:    "0x09",
		GasPrice: "0x4a817c800",
		GasLimit: "0x5208",
		To:       "0x3535353535353535353535353535353535353535",
		Value:    "0xde0b6b3a7640000",
		Data:     "0x",
		ChainID:  1,
	}
	key := "0x4646464646464646464646464646464646464646464646464646464646464646"

	t.Run("EIP-155 example", func(t *testing.T) {
		signed, err := svc.SignTx(utx, key)
		require.NoError(t, err)
		assert.Equal(t, "0xf86c098504a817c800825208943535353535353535353535353535353535353535880de0b6b3a76400008025a028ef61340bd939bc2195fe537567866003e1a15d3c71ff63e1590620aa636276a067cbe9d8997f761aecb703304b3800ccf555c9f3dc64214b297fb1966a3b6d83", signed.SignedTx)
		assert.Equal(t, ethcrypto.Keccak256Hash(hexutil.MustDecode(signed.SignedTx)).Hex(), signed.TransactionHash)
	})

	t.Run("Deterministic", func(t *testing.T) {
		first, err := svc.SignTx(utx, key)
		require.NoError(t, err)
		second, err := svc.SignTx(utx, key)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Unknown chain", func(t *testing.T) {
		custom := utx
		custom.ChainID = 424242
		signed, err := svc.SignTx(custom, key)
		require.NoError(t, err)
		assert.NotEmpty(t, signed.SignedTx)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.UnknownChainFallbacks))
	})

	t.Run("Invalid field", func(t *testing.T) {
		bad := utx
		bad.Value = "0xnope"
		_, err := svc.SignTx(bad, key)
		assert.ErrorIs(t, err, toolkit.ErrInvalidTransactionField)
	})

	t.Run("Invalid key", func(t *testing.T) {
		_, err := svc.SignTx(utx, "0x12")
		assert.ErrorIs(t, err, toolkit.ErrInvalidPrivateKey)
	})
}
