package commands

import (
	"encoding/json"
	stderrors "errors"

	"git.home.luguber.info/inful/staticbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/staticbuild/internal/keydemo"
)

// KeysCmd groups the key demo commands. The scheme is a teaching toy, not cryptography.
type KeysCmd struct {
	Generate KeysGenerateCmd `cmd:"" help:"Generate a demo key pair and print it as JSON"`
	Sign     KeysSignCmd     `cmd:"" help:"Sign a message with a demo private key"`
	Verify   KeysVerifyCmd   `cmd:"" help:"Verify a signature the way the demo page does"`
}

type KeysGenerateCmd struct{}

func (k *KeysGenerateCmd) Run(g *Global) error {
	pair, err := keydemo.NewSession(nil).Generate()
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "generate key pair").Build()
	}
	enc := json.NewEncoder(g.stdout())
	enc.SetIndent("", "  ")
	return enc.Encode(pair)
}

type KeysSignCmd struct {
	Message    string `short:"m" required:"" help:"Message to sign"`
	PrivateKey string `name:"private-key" short:"k" required:"" env:"STATICBUILD_PRIVATE_KEY" help:"Hex private key"`
}

func (k *KeysSignCmd) Run(g *Global) error {
	sig, err := keydemo.NewSessionWithKey(k.PrivateKey).Sign(k.Message)
	if err != nil {
		return keyError(err)
	}
	g.printf("%s\n", sig)
	return nil
}

// KeysVerifyCmd verifies inside a session that holds only --private-key, so
// signatures from any other key pair are reported INVALID.
type KeysVerifyCmd struct {
	Message    string `short:"m" required:"" help:"Signed message"`
	Signature  string `short:"s" required:"" help:"Hex signature"`
	PublicKey  string `name:"public-key" short:"p" required:"" help:"Hex public key"`
	PrivateKey string `name:"private-key" short:"k" env:"STATICBUILD_PRIVATE_KEY" help:"Private key held by the verifying session"`
}

func (k *KeysVerifyCmd) Run(g *Global) error {
	session := keydemo.NewSession(nil)
	if k.PrivateKey != "" {
		session = keydemo.NewSessionWithKey(k.PrivateKey)
	}
	ok, err := session.Verify(k.Message, k.Signature, k.PublicKey)
	if err != nil {
		return keyError(err)
	}
	if ok {
		g.printf("✓ Signature is VALID\n")
	} else {
		g.printf("✗ Signature is INVALID\n")
	}
	return nil
}

func keyError(err error) error {
	switch {
	case stderrors.Is(err, keydemo.ErrMissingField), stderrors.Is(err, keydemo.ErrNoKeyPair):
		return errors.WrapError(err, errors.CategoryValidation, "invalid key demo input").Build()
	default:
		return errors.WrapError(err, errors.CategoryRuntime, "key demo failed").Build()
	}
}
