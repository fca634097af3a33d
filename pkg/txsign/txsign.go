// Package txsign signs legacy (pre-typed) Ethereum transactions.
//
// A transaction goes through a fixed pipeline: the hex fields are validated
// and parsed, the RLP encoding of the unsigned fields (plus the chain id for
// replay protected chains) is hashed, the digest is signed, and the fields
// are re-encoded together with v, r and s. The hash of that final encoding
// is the transaction hash.
package txsign

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/go-playground/validator/v10"

	"github.com/erc7824/nitrolite/cryptokit/pkg/log"
	"github.com/erc7824/nitrolite/cryptokit/pkg/sign"
)

// ErrInvalidTransactionField is returned when a field is not valid hex or out of range.
var ErrInvalidTransactionField = errors.New("invalid transaction field")

var hexStringRegex = regexp.MustCompile(`^(0[xX])?[0-9a-fA-F]*$`)

// UnsignedTransaction holds the fields of a legacy transaction as hex strings.
// An empty numeric field means zero; an empty To creates a contract.
type UnsignedTransaction struct {
	Nonce    string `json:"nonce"    validate:"hexstr"`
	GasPrice string `json:"gasPrice" validate:"hexstr"`
	GasLimit string `json:"gasLimit" validate:"hexstr"`
	To       string `json:"to"       validate:"omitempty,eth_addr"`
	Value    string `json:"value"    validate:"hexstr"`
	Data     string `json:"data"     validate:"hexstr"`
	ChainID  uint64 `json:"chainId"`
}

// SignedTransaction is the serialized signed transaction and its hash, both 0x-prefixed hex.
type SignedTransaction struct {
	SignedTx        string `json:"signedTx"`
	TransactionHash string `json:"transactionHash"`
}

// TxSigner validates, encodes and signs transactions. It holds no per-call state.
type TxSigner struct {
	validate *validator.Validate
	logger   log.Logger
}

// NewTxSigner creates a TxSigner. A nil logger disables logging.
func NewTxSigner(logger log.Logger) *TxSigner {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &TxSigner{
		validate: getValidator(),
		logger:   logger.WithName("txsign"),
	}
}

func getValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		return name
	})

	if err := validate.RegisterValidation("hexstr", func(fl validator.FieldLevel) bool {
		return hexStringRegex.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("failed to register hexstr validation: %v", err))
	}
	return validate
}

// Build validates the fields and returns the unsigned go-ethereum transaction.
func (s *TxSigner) Build(utx UnsignedTransaction) (*types.Transaction, error) {
	if err := s.validate.Struct(utx); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("%w: %s is not valid %s", ErrInvalidTransactionField, verrs[0].Field(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransactionField, err)
	}

	nonce, err := parseUint64("nonce", utx.Nonce)
	if err != nil {
		return nil, err
	}
	gasLimit, err := parseUint64("gasLimit", utx.GasLimit)
	if err != nil {
		return nil, err
	}
	data, err := parseBytes("data", utx.Data)
	if err != nil {
		return nil, err
	}

	legacy := &types.LegacyTx{
		Nonce:    nonce,
		GasPrice: parseBig(utx.GasPrice),
		Gas:      gasLimit,
		Value:    parseBig(utx.Value),
		Data:     data,
	}
	if utx.To != "" {
		to := common.HexToAddress(utx.To)
		legacy.To = &to
	}
	return types.NewTx(legacy), nil
}

// Sign runs the whole pipeline with signer holding the sender key.
func (s *TxSigner) Sign(utx UnsignedTransaction, signer sign.Signer) (SignedTransaction, error) {
	tx, err := s.Build(utx)
	if err != nil {
		return SignedTransaction{}, err
	}

	chain, known := LookupChain(utx.ChainID)
	if !known {
		s.logger.Warn("chain id not in profile table, using default profile",
			"chainId", utx.ChainID, "hardfork", chain.Hardfork)
	}
	txSigner := chain.Signer()

	sig, err := signer.Sign(txSigner.Hash(tx).Bytes())
	if err != nil {
		return SignedTransaction{}, fmt.Errorf("failed to sign transaction: %w", err)
	}
	// WithSignature expects the raw 0/1 recovery id and applies the chain offset itself.
	raw := make([]byte, sign.SignatureLength)
	copy(raw, sig)
	raw[64] = sig.RecoveryID()

	signed, err := tx.WithSignature(txSigner, raw)
	if err != nil {
		return SignedTransaction{}, fmt.Errorf("failed to attach signature: %w", err)
	}
	encoded, err := signed.MarshalBinary()
	if err != nil {
		return SignedTransaction{}, fmt.Errorf("failed to encode transaction: %w", err)
	}

	s.logger.Debug("transaction signed", "chain", chain.Name, "chainId", chain.ID, "hash", signed.Hash().Hex())
	return SignedTransaction{
		SignedTx:        hexutil.Encode(encoded),
		TransactionHash: signed.Hash().Hex(),
	}, nil
}

func trimHex(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

// parseBig expects input that already passed hexstr validation.
func parseBig(s string) *big.Int {
	n := new(big.Int)
	if digits := trimHex(s); digits != "" {
		n.SetString(digits, 16)
	}
	return n
}

func parseUint64(field, s string) (uint64, error) {
	n := parseBig(s)
	if !n.IsUint64() {
		return 0, fmt.Errorf("%w: %s overflows uint64", ErrInvalidTransactionField, field)
	}
	return n.Uint64(), nil
}

func parseBytes(field, s string) ([]byte, error) {
	digits := trimHex(s)
	if len(digits)%2 == 1 {
		return nil, fmt.Errorf("%w: %s has odd length", ErrInvalidTransactionField, field)
	}
	b, err := hexutil.Decode("0x" + digits)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTransactionField, field, err)
	}
	return b, nil
}
