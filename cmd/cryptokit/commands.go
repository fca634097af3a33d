package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/erc7824/nitrolite/cryptokit/pkg/sign"
	"github.com/erc7824/nitrolite/cryptokit/pkg/toolkit"
	"github.com/erc7824/nitrolite/cryptokit/pkg/txsign"
)

type command struct {
	name  string
	usage string
	nargs int
	run   func(svc *toolkit.Service, args []string) (any, error)
}

var commands = []command{
	{"hash", "<text|json-object>", 1, runHash},
	{"salt", "", 0, func(svc *toolkit.Service, _ []string) (any, error) { return svc.GetSalt() }},
	{"mnemonic", "", 0, func(svc *toolkit.Service, _ []string) (any, error) { return svc.GenerateMnemonic() }},
	{"credentials", "", 0, func(svc *toolkit.Service, _ []string) (any, error) { return svc.GetCredentials() }},
	{"restore", "<mnemonic> [passphrase]", 1, runRestore},
	{"address", "<public-key>", 1, func(svc *toolkit.Service, args []string) (any, error) { return svc.PublicKeyToAddress(args[0]) }},
	{"sign", "<message> (key from CRYPTOKIT_PRIVATE_KEY)", 1, runSign},
	{"verify", "<message> <signature|r s v> <public-key|address>", 3, runVerify},
	{"sign-tx", "<tx-json-file|-> (key from CRYPTOKIT_PRIVATE_KEY)", 1, runSignTx},
	{"encrypt", "<public-key> <json>", 2, runEncrypt},
	{"decrypt", "<ciphertext> (key from CRYPTOKIT_PRIVATE_KEY)", 1, runDecrypt},
	{"encrypt-aes", "<passphrase> <text>", 2, func(svc *toolkit.Service, args []string) (any, error) { return svc.EncryptAES(args[0], args[1]) }},
	{"decrypt-aes", "<passphrase> <hex>", 2, func(svc *toolkit.Service, args []string) (any, error) { return svc.DecryptAES(args[0], args[1]) }},
	{"in-range", "<valid-from|-> <valid-until|->", 2, runInRange},
}

func runCli(svc *toolkit.Service, name string, args []string) (any, error) {
	for _, c := range commands {
		if c.name != name {
			continue
		}
		if len(args) < c.nargs {
			return nil, fmt.Errorf("usage: cryptokit %s %s", c.name, c.usage)
		}
		return c.run(svc, args)
	}
	return nil, fmt.Errorf("unknown command %q", name)
}

// messageArg treats arguments that parse as a JSON object as maps, anything else as text.
func messageArg(arg string) any {
	var obj map[string]any
	if err := json.Unmarshal([]byte(arg), &obj); err == nil && obj != nil {
		return obj
	}
	return arg
}

func privateKeyEnv() (string, error) {
	key := os.Getenv("CRYPTOKIT_PRIVATE_KEY")
	if key == "" {
		return "", fmt.Errorf("CRYPTOKIT_PRIVATE_KEY environment variable is required")
	}
	return key, nil
}

func runHash(svc *toolkit.Service, args []string) (any, error) {
	return svc.GetHash(messageArg(args[0]))
}

func runRestore(svc *toolkit.Service, args []string) (any, error) {
	passphrase := ""
	if len(args) > 1 {
		passphrase = args[1]
	}
	return svc.DeriveAccount(args[0], passphrase)
}

type signOutput struct {
	R         string         `json:"r"`
	S         string         `json:"s"`
	V         uint64         `json:"v"`
	Signature sign.Signature `json:"signature"`
}

func runSign(svc *toolkit.Service, args []string) (any, error) {
	key, err := privateKeyEnv()
	if err != nil {
		return nil, err
	}
	c, err := svc.Sign(messageArg(args[0]), key)
	if err != nil {
		return nil, err
	}
	sig, err := c.Signature()
	if err != nil {
		return nil, err
	}
	return signOutput{R: c.R, S: c.S, V: c.V, Signature: sig}, nil
}

// signatureArg decodes a {r, s, v} JSON object or a compact signature hex string.
func signatureArg(arg string) (sign.Components, error) {
	data := []byte(strings.TrimSpace(arg))
	if len(data) == 0 || data[0] != '{' {
		data, _ = json.Marshal(arg)
	}
	var c sign.Components
	if err := json.Unmarshal(data, &c); err != nil {
		return sign.Components{}, fmt.Errorf("invalid signature: %w", err)
	}
	return c, nil
}

func runVerify(svc *toolkit.Service, args []string) (any, error) {
	var (
		sig sign.Components
		id  string
	)
	switch len(args) {
	case 3:
		var err error
		if sig, err = signatureArg(args[1]); err != nil {
			return nil, err
		}
		id = args[2]
	case 5:
		v, err := strconv.ParseUint(args[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid v %q: %w", args[3], err)
		}
		sig, id = sign.Components{R: args[1], S: args[2], V: v}, args[4]
	default:
		return nil, fmt.Errorf("usage: cryptokit verify <message> <signature|r s v> <public-key|address>")
	}

	ok, err := svc.Verify(messageArg(args[0]), sig, id)
	if err != nil {
		return nil, err
	}
	return map[string]bool{"valid": ok}, nil
}

func runSignTx(svc *toolkit.Service, args []string) (any, error) {
	key, err := privateKeyEnv()
	if err != nil {
		return nil, err
	}

	var raw []byte
	if args[0] == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read transaction: %w", err)
	}

	var utx txsign.UnsignedTransaction
	if err := json.Unmarshal(raw, &utx); err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	return svc.SignTx(utx, key)
}

func runEncrypt(svc *toolkit.Service, args []string) (any, error) {
	var payload any
	if err := json.Unmarshal([]byte(args[1]), &payload); err != nil {
		return nil, fmt.Errorf("payload must be JSON: %w", err)
	}
	return svc.Encrypt(args[0], payload)
}

func runDecrypt(svc *toolkit.Service, args []string) (any, error) {
	key, err := privateKeyEnv()
	if err != nil {
		return nil, err
	}
	var payload any
	if err := svc.Decrypt(key, args[0], &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func runInRange(svc *toolkit.Service, args []string) (any, error) {
	bounds := make([]*int64, 2)
	for i, arg := range args[:2] {
		if arg == "-" {
			continue
		}
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid unix timestamp %q: %w", arg, err)
		}
		bounds[i] = &n
	}
	return map[string]bool{"inRange": svc.IsInTimeRange(bounds[0], bounds[1])}, nil
}
