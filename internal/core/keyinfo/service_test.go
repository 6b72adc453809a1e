package keyinfo

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-keyinfo/internal/core/keystore"
	"github.com/dep2p/go-keyinfo/pkg/lib/crypto/params"
	"github.com/dep2p/go-keyinfo/pkg/lib/oid"

	pkcs8 "github.com/dep2p/go-keyinfo/pkg/lib/crypto/keyinfo"
)

func dsaParams() params.AsymmetricKeyParameters {
	return params.NewDSAPrivateKeyParameters(big.NewInt(6), &params.DSAParameters{
		P: big.NewInt(23),
		Q: big.NewInt(11),
		G: big.NewInt(4),
	})
}

func TestService_Encode_RSA(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	p, err := params.FromPrivateKey(key)
	require.NoError(t, err)

	svc := NewService(nil, nil)
	der, err := svc.Encode(p)
	require.NoError(t, err)

	parsed, err := x509.ParsePKCS8PrivateKey(der)
	require.NoError(t, err)
	assert.True(t, key.Equal(parsed))

	pemBytes, err := svc.EncodePEM(p)
	require.NoError(t, err)
	info, err := pkcs8.DecodePEM(pemBytes)
	require.NoError(t, err)
	assert.True(t, oid.RSAEncryption.Equal(info.Algorithm.Algorithm))
}

func TestService_Encode_Unsupported(t *testing.T) {
	svc := NewService(nil, nil)

	_, err := svc.Encode(&params.Ed25519PrivateKeyParameters{Seed: make([]byte, 32)})
	assert.ErrorIs(t, err, pkcs8.ErrUnsupportedKeyType)
	assert.Equal(t, int64(1), svc.Stats().Rejected)
}

func TestService_StoreLoad(t *testing.T) {
	svc := NewService(nil, keystore.NewMemKeystore())
	defer svc.Close()

	id, err := svc.Store("dsa-1", dsaParams())
	require.NoError(t, err)
	assert.Equal(t, "dsa-1", id)

	info, err := svc.Load(id)
	require.NoError(t, err)
	assert.Equal(t, pkcs8.Integer{Value: big.NewInt(6)}, info.PrivateKey)

	ids, err := svc.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"dsa-1"}, ids)

	require.NoError(t, svc.Delete(id))
	_, err = svc.Load(id)
	assert.ErrorIs(t, err, keystore.ErrKeyNotFound)
}

func TestService_Store_GeneratesID(t *testing.T) {
	svc := NewService(nil, keystore.NewMemKeystore())

	id, err := svc.Store("", dsaParams())
	require.NoError(t, err)
	assert.NoError(t, keystore.ValidateID(id))
}

func TestService_Store_Duplicate(t *testing.T) {
	svc := NewService(nil, keystore.NewMemKeystore())

	_, err := svc.Store("k", dsaParams())
	require.NoError(t, err)
	_, err = svc.Store("k", dsaParams())
	assert.ErrorIs(t, err, keystore.ErrKeyExists)
}

func TestService_Store_Unsupported(t *testing.T) {
	store := keystore.NewMemKeystore()
	svc := NewService(nil, store)

	_, err := svc.Store("k", &params.DSAPublicKeyParameters{Y: big.NewInt(2)})
	assert.ErrorIs(t, err, pkcs8.ErrUnsupportedKeyType)

	ok, err := store.Has("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_NoKeystore(t *testing.T) {
	svc := NewService(nil, nil)

	_, err := svc.Store("k", dsaParams())
	assert.ErrorIs(t, err, ErrNoKeystore)
	_, err = svc.Load("k")
	assert.ErrorIs(t, err, ErrNoKeystore)
	_, err = svc.List()
	assert.ErrorIs(t, err, ErrNoKeystore)
	assert.ErrorIs(t, svc.Delete("k"), ErrNoKeystore)
	assert.NoError(t, svc.Close())
}

func TestService_LoadKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	p, err := params.FromPrivateKey(key)
	require.NoError(t, err)

	svc := NewService(nil, keystore.NewMemKeystore())
	id, err := svc.Store("", p)
	require.NoError(t, err)

	priv, err := svc.LoadKey(id)
	require.NoError(t, err)
	assert.True(t, key.Equal(priv))
}
