package keydemo

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// PrivateKeySize is the number of random bytes behind a private key (256 bits).
const PrivateKeySize = 32

var (
	// ErrNoKeyPair is returned when signing before a key pair exists.
	ErrNoKeyPair = errors.New("no key pair generated")
	// ErrMissingField is returned when a message, signature or key is empty.
	ErrMissingField = errors.New("message, signature and key are required")
)

// KeyPair holds hex-encoded keys exactly as the page displays them.
type KeyPair struct {
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
}

// GenerateKeyPair reads PrivateKeySize bytes from r (crypto/rand when nil).
func GenerateKeyPair(r io.Reader) (KeyPair, error) {
	if r == nil {
		r = rand.Reader
	}
	buf := make([]byte, PrivateKeySize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return KeyPair{}, fmt.Errorf("read random key: %w", err)
	}
	private := hex.EncodeToString(buf)
	return KeyPair{PrivateKey: private, PublicKey: DerivePublicKey(private)}, nil
}

// DerivePublicKey hashes the hex string itself, not the decoded bytes, matching
// CryptoJS.SHA256 on a string argument.
func DerivePublicKey(private string) string {
	sum := sha256.Sum256([]byte(private))
	return hex.EncodeToString(sum[:])
}

// Sign returns hex(HMAC-SHA256(message)) keyed with the private key string.
func Sign(message, private string) string {
	mac := hmac.New(sha256.New, []byte(private))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// Session holds at most one key pair, like a single browser tab.
type Session struct {
	pair *KeyPair
	rand io.Reader
}

// NewSession returns an empty session. A nil reader means crypto/rand.
func NewSession(r io.Reader) *Session {
	return &Session{rand: r}
}

// NewSessionWithKey returns a session holding the pair derived from private.
func NewSessionWithKey(private string) *Session {
	pair := KeyPair{PrivateKey: private, PublicKey: DerivePublicKey(private)}
	return &Session{pair: &pair}
}

// Generate replaces the session's key pair.
func (s *Session) Generate() (KeyPair, error) {
	pair, err := GenerateKeyPair(s.rand)
	if err != nil {
		return KeyPair{}, err
	}
	s.pair = &pair
	return pair, nil
}

// KeyPair returns the current pair, if any.
func (s *Session) KeyPair() (KeyPair, bool) {
	if s.pair == nil {
		return KeyPair{}, false
	}
	return *s.pair, true
}

// Sign signs message with the session's private key.
func (s *Session) Sign(message string) (string, error) {
	if s.pair == nil {
		return "", ErrNoKeyPair
	}
	if message == "" {
		return "", ErrMissingField
	}
	return Sign(message, s.pair.PrivateKey), nil
}

// Verify succeeds only when public belongs to the session's own pair and the
// signature matches. Signatures from any other session fail.
func (s *Session) Verify(message, signature, public string) (bool, error) {
	if message == "" || signature == "" || public == "" {
		return false, ErrMissingField
	}
	private, ok := s.findPrivateKey(public)
	if !ok {
		return false, nil
	}
	return signature == Sign(message, private), nil
}

func (s *Session) findPrivateKey(public string) (string, bool) {
	if s.pair == nil || DerivePublicKey(s.pair.PrivateKey) != public {
		return "", false
	}
	return s.pair.PrivateKey, true
}
