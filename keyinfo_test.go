package keyinfo

import (
	"crypto/dsa" //nolint:staticcheck
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-keyinfo/pkg/lib/crypto/params"
	"github.com/dep2p/go-keyinfo/pkg/lib/oid"

	pkcs8 "github.com/dep2p/go-keyinfo/pkg/lib/crypto/keyinfo"
)

func TestEncode_RSA(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := Encode(key)
	require.NoError(t, err)

	want, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	assert.Equal(t, want, der)

	back, err := Decode(der)
	require.NoError(t, err)
	assert.True(t, key.Equal(back))
}

func TestEncodePEM_DSA(t *testing.T) {
	key := &dsa.PrivateKey{
		PublicKey: dsa.PublicKey{
			Parameters: dsa.Parameters{P: big.NewInt(23), Q: big.NewInt(11), G: big.NewInt(4)},
			Y:          big.NewInt(2),
		},
		X: big.NewInt(6),
	}

	out, err := EncodePEM(key)
	require.NoError(t, err)
	block, _ := pem.Decode(out)
	require.NotNil(t, block)
	assert.Equal(t, "PRIVATE KEY", block.Type)

	back, err := Decode(block.Bytes)
	require.NoError(t, err)
	assert.Equal(t, key, back)
}

func TestEncode_Unsupported(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	_, err = Encode(key)
	assert.ErrorIs(t, err, ErrUnsupportedKeyType)

	_, err = EncodePEM(key)
	assert.ErrorIs(t, err, ErrUnsupportedKeyType)

	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	_, err = Decode(der)
	assert.ErrorIs(t, err, ErrUnsupportedKeyType)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte{0x30, 0x01})
	assert.ErrorIs(t, err, ErrMalformedEncoding)
}

func TestDecode_InvalidRSAPrime(t *testing.T) {
	b := big.NewInt
	info, err := pkcs8.CreatePrivateKeyInfo(params.NewRSAPrivateCrtKeyParameters(
		b(15), b(3), b(3), b(1), b(5), b(1), b(1), b(2),
	))
	require.NoError(t, err)
	der, err := pkcs8.Marshal(info)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		_, err = Decode(der)
	})
	assert.ErrorIs(t, err, params.ErrNotConvertible)
}

func TestDecode_InvalidDSAModulus(t *testing.T) {
	der, err := pkcs8.Marshal(&pkcs8.PrivateKeyInfo{
		Algorithm: pkcs8.AlgorithmIdentifier{
			Algorithm:  oid.DSA,
			Parameters: &pkcs8.DSAParameter{P: big.NewInt(0), Q: big.NewInt(11), G: big.NewInt(3)},
		},
		PrivateKey: pkcs8.Integer{Value: new(big.Int).Lsh(big.NewInt(1), 27)},
	})
	require.NoError(t, err)

	_, err = Decode(der)
	assert.ErrorIs(t, err, params.ErrNotConvertible)
}
