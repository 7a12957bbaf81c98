package elgamal

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/rand"

	"github.com/ncw/gmp"
	"github.com/sachaservan/bigdh/numtheory"
)

var (
	ErrInvalidKeySize = errors.New("key size must be at least 2 bits")
	ErrMalformedKey   = errors.New("malformed key")
)

// DefaultMaxCoprimeAttempts bounds each coprime search unless overridden
// with WithMaxCoprimeAttempts.
const DefaultMaxCoprimeAttempts = 4096

var (
	one = gmp.NewInt(1)
	two = gmp.NewInt(2)
)

// Engine generates keys and runs both sides of the exchange for one key size.
// The factor base and sampling bounds are computed once in NewEngine and
// shared by every operation; an Engine is safe for concurrent use.
type Engine struct {
	keySize int

	lowerBound *gmp.Int // 2^(keySize-1)
	upperBound *gmp.Int // 2^(2*keySize-1)

	factorBase *numtheory.FactorBase
	sampler    *numtheory.Sampler

	maxCoprimeAttempts int
}

type engineConfig struct {
	source             rand.Source
	maxCoprimeAttempts int
}

// Option configures an Engine.
type Option func(*engineConfig)

// WithSeed makes every draw of the engine reproducible.
func WithSeed(seed int64) Option {
	return func(c *engineConfig) {
		c.source = rand.NewSource(seed)
	}
}

// WithSource sets the random source. The engine takes ownership of src.
func WithSource(src rand.Source) Option {
	return func(c *engineConfig) {
		c.source = src
	}
}

// WithMaxCoprimeAttempts caps the draws of one coprime search; n <= 0 removes the cap.
func WithMaxCoprimeAttempts(n int) Option {
	return func(c *engineConfig) {
		c.maxCoprimeAttempts = n
	}
}

func randomSeed() int64 {
	max := big.NewInt(math.MaxInt64)
	x, err := crand.Int(crand.Reader, max)
	if err != nil {
		panic(err)
	}
	return x.Int64()
}

// NewEngine precomputes the first 2*keySize primes and the sampling bounds.
// This is the expensive step; keep the engine around for many handshakes.
func NewEngine(keySize int, opts ...Option) (*Engine, error) {
	if keySize < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKeySize, keySize)
	}

	cfg := &engineConfig{maxCoprimeAttempts: DefaultMaxCoprimeAttempts}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.source == nil {
		cfg.source = rand.NewSource(randomSeed())
	}

	return &Engine{
		keySize:            keySize,
		lowerBound:         new(gmp.Int).Lsh(one, uint(keySize-1)),
		upperBound:         new(gmp.Int).Lsh(one, uint(2*keySize-1)),
		factorBase:         numtheory.NewFactorBase(2 * keySize),
		sampler:            numtheory.NewSampler(cfg.source),
		maxCoprimeAttempts: cfg.maxCoprimeAttempts,
	}, nil
}

// KeySize returns the key size in bits the engine was built for.
func (e *Engine) KeySize() int {
	return e.keySize
}

// FactorBaseLen returns the number of primes in the engine's factor base.
func (e *Engine) FactorBaseLen() int {
	return e.factorBase.Len()
}

func (e *Engine) coprime(a *gmp.Int) (*gmp.Int, error) {
	return numtheory.FindCoprime(e.sampler, e.lowerBound, a, e.maxCoprimeAttempts)
}

// GenerateKeys samples a modulus Q in [2^(keySize-1), 2^(2*keySize-1)), a
// generator G in [2, Q) and a secret exponent K coprime to Q, and publishes
// H = G^K mod Q.
func (e *Engine) GenerateKeys() (PublicKey, PrivateKey, error) {
	var q *gmp.Int
	var err error

	// Q == lowerBound leaves no candidates for the exponent search
	for q == nil || q.Cmp(e.lowerBound) == 0 {
		q, err = e.sampler.Int(e.lowerBound, e.upperBound)
		if err != nil {
			return PublicKey{}, PrivateKey{}, fmt.Errorf("sampling modulus: %w", err)
		}
	}

	g, err := e.sampler.Int(two, q)
	if err != nil {
		return PublicKey{}, PrivateKey{}, fmt.Errorf("sampling generator: %w", err)
	}

	k, err := e.coprime(q)
	if err != nil {
		return PublicKey{}, PrivateKey{}, fmt.Errorf("sampling private exponent: %w", err)
	}

	h, err := e.factorBase.ModPow(g, k, q)
	if err != nil {
		return PublicKey{}, PrivateKey{}, err
	}

	pk := PublicKey{Q: q, G: g, H: h}
	sk := PrivateKey{K: k, Q: new(gmp.Int).Set(q)}
	return pk, sk, nil
}

// ClientSide picks a fresh ephemeral exponent k and returns the shared
// secret H^k mod Q along with the cipher G^k mod Q to send to the key owner.
func (e *Engine) ClientSide(pk PublicKey) (sharedSecret, cipher *gmp.Int, err error) {
	if err = pk.validate(); err != nil {
		return nil, nil, err
	}

	k, err := e.coprime(pk.Q)
	if err != nil {
		return nil, nil, fmt.Errorf("sampling ephemeral exponent: %w", err)
	}

	sharedSecret, err = e.factorBase.ModPow(pk.H, k, pk.Q)
	if err != nil {
		return nil, nil, err
	}

	cipher, err = e.factorBase.ModPow(pk.G, k, pk.Q)
	if err != nil {
		return nil, nil, err
	}

	return sharedSecret, cipher, nil
}

// ServerSide recovers the shared secret from the client's cipher:
// cipher^K = (G^k)^K = (G^K)^k = H^k mod Q.
func (e *Engine) ServerSide(sk PrivateKey, cipher *gmp.Int) (*gmp.Int, error) {
	if err := sk.validate(); err != nil {
		return nil, err
	}
	if cipher == nil {
		return nil, fmt.Errorf("%w: nil cipher", ErrMalformedKey)
	}

	return e.factorBase.ModPow(cipher, sk.K, sk.Q)
}
