package params

import (
	"crypto/dsa" //nolint:staticcheck
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-keyinfo/pkg/lib/oid"
)

// ============================================================================
// 变体测试
// ============================================================================

func TestKind_String(t *testing.T) {
	assert.Equal(t, "RSA-CRT", KindRSACrt.String())
	assert.Equal(t, "DSA-Private", KindDSAPrivate.String())
	assert.Equal(t, "Unknown", Kind(99).String())
}

func TestVariants_Kind(t *testing.T) {
	tests := []struct {
		params  AsymmetricKeyParameters
		kind    Kind
		private bool
	}{
		{&RSAKeyParameters{Modulus: big.NewInt(15), Exponent: big.NewInt(3)}, KindRSA, false},
		{NewRSAPrivateCrtKeyParameters(big.NewInt(15), big.NewInt(3), big.NewInt(3),
			big.NewInt(3), big.NewInt(5), big.NewInt(1), big.NewInt(1), big.NewInt(2)), KindRSACrt, true},
		{NewDSAPrivateKeyParameters(big.NewInt(6), &DSAParameters{}), KindDSAPrivate, true},
		{&DSAPublicKeyParameters{}, KindDSAPublic, false},
		{&ECPrivateKeyParameters{}, KindECPrivate, true},
		{&Ed25519PrivateKeyParameters{}, KindEd25519Private, true},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.params.Kind())
			assert.Equal(t, tt.private, tt.params.IsPrivate())
		})
	}
}

// ============================================================================
// 转换测试
// ============================================================================

func TestFromPrivateKey_RSA(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	p, err := FromPrivateKey(priv)
	require.NoError(t, err)

	crt, ok := p.(*RSAPrivateCrtKeyParameters)
	require.True(t, ok)
	assert.Equal(t, 0, crt.Modulus.Cmp(priv.N))
	assert.Equal(t, int64(priv.E), crt.PublicExponent.Int64())
	assert.Equal(t, 0, crt.Exponent.Cmp(priv.D))
	assert.Equal(t, 0, crt.P.Cmp(priv.Primes[0]))
	assert.Equal(t, 0, crt.Q.Cmp(priv.Primes[1]))
	assert.Equal(t, 0, crt.DP.Cmp(priv.Precomputed.Dp))
	assert.Equal(t, 0, crt.DQ.Cmp(priv.Precomputed.Dq))
	assert.Equal(t, 0, crt.QInv.Cmp(priv.Precomputed.Qinv))
}

func TestFromPrivateKey_RSAWithoutPrecomputed(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	bare := &rsa.PrivateKey{
		PublicKey: priv.PublicKey,
		D:         priv.D,
		Primes:    priv.Primes,
	}

	p, err := FromPrivateKey(bare)
	require.NoError(t, err)
	crt := p.(*RSAPrivateCrtKeyParameters)

	assert.Equal(t, 0, crt.DP.Cmp(priv.Precomputed.Dp))
	assert.Equal(t, 0, crt.DQ.Cmp(priv.Precomputed.Dq))
	assert.Equal(t, 0, crt.QInv.Cmp(priv.Precomputed.Qinv))
	assert.Nil(t, bare.Precomputed.Dp, "input must not be mutated")
}

func TestFromPrivateKey_MultiPrimeRSA(t *testing.T) {
	priv := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{N: big.NewInt(105), E: 5},
		D:         big.NewInt(29),
		Primes:    []*big.Int{big.NewInt(3), big.NewInt(5), big.NewInt(7)},
	}
	_, err := FromPrivateKey(priv)
	assert.ErrorIs(t, err, ErrMultiPrimeRSA)
}

func TestFromPrivateKey_DSA(t *testing.T) {
	priv := testDSAKey()

	p, err := FromPrivateKey(priv)
	require.NoError(t, err)

	dp, ok := p.(*DSAPrivateKeyParameters)
	require.True(t, ok)
	assert.Equal(t, int64(6), dp.X.Int64())
	assert.Equal(t, int64(23), dp.Params.P.Int64())
	assert.Equal(t, int64(11), dp.Params.Q.Int64())
	assert.Equal(t, int64(4), dp.Params.G.Int64())
}

func TestFromPrivateKey_ECDSA(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	p, err := FromPrivateKey(priv)
	require.NoError(t, err)

	ec, ok := p.(*ECPrivateKeyParameters)
	require.True(t, ok)
	assert.True(t, ec.Curve.Equal(oid.NamedCurveP256))
	assert.Equal(t, 0, ec.D.Cmp(priv.D))
}

func TestFromPrivateKey_Secp256k1(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	p, err := FromPrivateKey(priv)
	require.NoError(t, err)

	ec, ok := p.(*ECPrivateKeyParameters)
	require.True(t, ok)
	assert.True(t, ec.Curve.Equal(oid.NamedCurveSecp256k1))
	assert.Equal(t, priv.Serialize(), ec.D.FillBytes(make([]byte, 32)))
}

func TestFromPrivateKey_Ed25519(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	p, err := FromPrivateKey(priv)
	require.NoError(t, err)
	assert.Equal(t, priv.Seed(), p.(*Ed25519PrivateKeyParameters).Seed)
}

func TestFromPrivateKey_Errors(t *testing.T) {
	_, err := FromPrivateKey(nil)
	assert.ErrorIs(t, err, ErrNilKey)

	var nilRSA *rsa.PrivateKey
	_, err = FromPrivateKey(nilRSA)
	assert.ErrorIs(t, err, ErrNilKey)

	_, err = FromPrivateKey("not a key")
	assert.ErrorIs(t, err, ErrUnknownKey)

	_, err = FromPrivateKey(ed25519.PrivateKey{1, 2, 3})
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestToPrivateKey_RSA(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	p, err := FromPrivateKey(priv)
	require.NoError(t, err)

	back, err := ToPrivateKey(p)
	require.NoError(t, err)

	rsaKey, ok := back.(*rsa.PrivateKey)
	require.True(t, ok)
	assert.True(t, priv.Equal(rsaKey))
	assert.NoError(t, rsaKey.Validate())
}

func TestToPrivateKey_DSA(t *testing.T) {
	back, err := ToPrivateKey(NewDSAPrivateKeyParameters(big.NewInt(6), &DSAParameters{
		P: big.NewInt(23),
		Q: big.NewInt(11),
		G: big.NewInt(4),
	}))
	require.NoError(t, err)

	dsaKey := back.(*dsa.PrivateKey)
	// 4^6 mod 23 = 2
	assert.Equal(t, int64(2), dsaKey.Y.Int64())
}

func TestToPrivateKey_Unsupported(t *testing.T) {
	_, err := ToPrivateKey(&ECPrivateKeyParameters{})
	assert.ErrorIs(t, err, ErrNotConvertible)

	_, err = ToPrivateKey(&DSAPrivateKeyParameters{X: big.NewInt(1)})
	assert.ErrorIs(t, err, ErrNotConvertible)

	_, err = ToPrivateKey(nil)
	assert.ErrorIs(t, err, ErrNilKey)
}

func TestToPrivateKey_InvalidRSA(t *testing.T) {
	b := big.NewInt
	valid := func() *RSAPrivateCrtKeyParameters {
		return NewRSAPrivateCrtKeyParameters(b(15), b(3), b(3), b(3), b(5), b(1), b(1), b(2))
	}

	tests := []struct {
		name string
		key  *RSAPrivateCrtKeyParameters
	}{
		{"typed-nil", nil},
		{"prime-one", NewRSAPrivateCrtKeyParameters(b(15), b(3), b(3), b(1), b(5), b(1), b(1), b(2))},
		{"prime-zero", NewRSAPrivateCrtKeyParameters(b(15), b(3), b(3), b(0), b(5), b(1), b(1), b(2))},
		{"modulus-mismatch", NewRSAPrivateCrtKeyParameters(b(21), b(3), b(3), b(3), b(5), b(1), b(1), b(2))},
		{"nil-modulus", func() *RSAPrivateCrtKeyParameters { k := valid(); k.Modulus = nil; return k }()},
		{"nil-public-exponent", func() *RSAPrivateCrtKeyParameters { k := valid(); k.PublicExponent = nil; return k }()},
		{"nil-private-exponent", func() *RSAPrivateCrtKeyParameters { k := valid(); k.Exponent = nil; return k }()},
		{"nil-p", func() *RSAPrivateCrtKeyParameters { k := valid(); k.P = nil; return k }()},
		{"nil-q", func() *RSAPrivateCrtKeyParameters { k := valid(); k.Q = nil; return k }()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				got, err := ToPrivateKey(tt.key)
				assert.ErrorIs(t, err, ErrNotConvertible)
				assert.Nil(t, got)
			})
		})
	}
}

func TestToPrivateKey_InvalidDSA(t *testing.T) {
	b := big.NewInt
	key := func(p, q, g, x *big.Int) *DSAPrivateKeyParameters {
		return NewDSAPrivateKeyParameters(x, &DSAParameters{P: p, Q: q, G: g})
	}

	tests := []struct {
		name string
		key  *DSAPrivateKeyParameters
	}{
		{"typed-nil", nil},
		{"p-zero", key(b(0), b(11), b(3), new(big.Int).Lsh(b(1), 27))},
		{"p-one", key(b(1), b(11), b(4), b(6))},
		{"p-too-large", key(new(big.Int).Lsh(b(1), maxDSAPrimeBits+1), b(11), b(4), b(6))},
		{"q-one", key(b(23), b(1), b(4), b(6))},
		{"g-one", key(b(23), b(11), b(1), b(6))},
		{"g-equals-p", key(b(23), b(11), b(23), b(6))},
		{"x-zero", key(b(23), b(11), b(4), b(0))},
		{"x-equals-q", key(b(23), b(11), b(4), b(11))},
		{"nil-x", key(b(23), b(11), b(4), nil)},
		{"nil-p", key(nil, b(11), b(4), b(6))},
		{"nil-q", key(b(23), nil, b(4), b(6))},
		{"nil-g", key(b(23), b(11), nil, b(6))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				got, err := ToPrivateKey(tt.key)
				assert.ErrorIs(t, err, ErrNotConvertible)
				assert.Nil(t, got)
			})
		})
	}
}

func testDSAKey() *dsa.PrivateKey {
	return &dsa.PrivateKey{
		PublicKey: dsa.PublicKey{
			Parameters: dsa.Parameters{
				P: big.NewInt(23),
				Q: big.NewInt(11),
				G: big.NewInt(4),
			},
			Y: big.NewInt(2),
		},
		X: big.NewInt(6),
	}
}
