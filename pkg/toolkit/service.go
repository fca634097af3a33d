package toolkit

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/accounts"

	"github.com/erc7824/nitrolite/cryptokit/pkg/config"
	"github.com/erc7824/nitrolite/cryptokit/pkg/ecies"
	"github.com/erc7824/nitrolite/cryptokit/pkg/hd"
	"github.com/erc7824/nitrolite/cryptokit/pkg/log"
	"github.com/erc7824/nitrolite/cryptokit/pkg/metrics"
	"github.com/erc7824/nitrolite/cryptokit/pkg/passcrypt"
	"github.com/erc7824/nitrolite/cryptokit/pkg/sign"
	"github.com/erc7824/nitrolite/cryptokit/pkg/txsign"
)

// Service exposes every toolkit operation. Build it with NewService.
type Service struct {
	cfg  ServiceConfig
	path accounts.DerivationPath
}

// ServiceConfig contains the collaborators of a Service.
// Every field is optional; nil or zero fields get the Ethereum defaults.
type ServiceConfig struct {
	// Logger receives debug and warning events, never secrets (default: no-op).
	Logger log.Logger
	// Metrics records operation counters (default: disabled).
	Metrics *metrics.Metrics

	// Hasher digests canonical bytes (default: Keccak-256).
	Hasher Hasher
	// NewSigner parses private keys into signers (default: sign.NewEthereumSigner).
	NewSigner SignerFactory
	// Recoverer recovers public keys from signatures (default: sign.EthereumRecoverer).
	Recoverer sign.PublicKeyRecoverer
	// TxSigner signs transactions (default: txsign.TxSigner).
	TxSigner TransactionSigner
	// KeyAgreement is the hybrid cipher (default: go-ethereum ECIES).
	KeyAgreement KeyAgreement
	// SymmetricCipher is the passphrase cipher (default: PBKDF2 + AES-256-CTR).
	SymmetricCipher SymmetricCipher

	// Clock is read by IsInTimeRange (default: wall clock).
	Clock clock.Clock
	// Rand feeds GetSalt and the default KeyAgreement (default: crypto/rand).
	Rand io.Reader

	// MnemonicStrength is the entropy of generated mnemonics in bits (default: 128).
	MnemonicStrength int
	// DerivationPath is the account path used by DeriveAccount (default: m/44'/60'/0'/0/0).
	DerivationPath string
}

// NewService creates a Service, filling unset fields of cfg with defaults.
// It fails only for an unparsable derivation path or unsupported mnemonic strength.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewNoopLogger()
	}
	cfg.Logger = cfg.Logger.WithName("toolkit")

	if cfg.Hasher == nil {
		cfg.Hasher = Keccak256Hasher{}
	}
	if cfg.NewSigner == nil {
		cfg.NewSigner = sign.NewEthereumSigner
	}
	if cfg.Recoverer == nil {
		cfg.Recoverer = &sign.EthereumRecoverer{}
	}
	if cfg.TxSigner == nil {
		cfg.TxSigner = txsign.NewTxSigner(cfg.Logger)
	}
	if cfg.SymmetricCipher == nil {
		cfg.SymmetricCipher = passcrypt.NewCipher()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.Reader
	}
	if cfg.KeyAgreement == nil {
		cfg.KeyAgreement = ecies.NewCipherWithRand(cfg.Rand)
	}

	if cfg.MnemonicStrength == 0 {
		cfg.MnemonicStrength = hd.DefaultEntropyBits
	}
	if cfg.MnemonicStrength < 128 || cfg.MnemonicStrength > 256 || cfg.MnemonicStrength%32 != 0 {
		return nil, fmt.Errorf("%w: %d bits", hd.ErrInvalidStrength, cfg.MnemonicStrength)
	}

	path := hd.DefaultPath()
	if cfg.DerivationPath != "" {
		var err error
		if path, err = hd.ParsePath(cfg.DerivationPath); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDerivationPath, err)
		}
	}
	cfg.DerivationPath = path.String()

	return &Service{cfg: cfg, path: path}, nil
}

// NewServiceFromConfig creates a Service from environment configuration.
// Metrics are registered on the default Prometheus registry when enabled.
func NewServiceFromConfig(conf *config.Config, logger log.Logger) (*Service, error) {
	sc := ServiceConfig{
		Logger:           logger,
		MnemonicStrength: conf.MnemonicStrength,
		DerivationPath:   conf.DerivationPath,
	}
	if conf.Metrics {
		sc.Metrics = metrics.NewMetrics()
	}
	return NewService(sc)
}

// DerivationPath returns the path DeriveAccount uses.
func (s *Service) DerivationPath() string { return s.cfg.DerivationPath }

func (s *Service) observe(operation string, err error) {
	s.cfg.Metrics.ObserveOperation(operation, err)
}
