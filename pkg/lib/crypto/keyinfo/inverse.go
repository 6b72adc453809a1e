package keyinfo

import (
	"github.com/dep2p/go-keyinfo/pkg/lib/crypto/params"
	"github.com/dep2p/go-keyinfo/pkg/lib/oid"
)

// KeyParameters 从容器还原私钥参数
//
// CreatePrivateKeyInfo 的逆操作。返回值与容器共享 *big.Int 引用。
func KeyParameters(info *PrivateKeyInfo) (params.AsymmetricKeyParameters, error) {
	if info == nil {
		return nil, malformed("nil private key info")
	}

	alg := info.Algorithm.Algorithm
	switch {
	case alg.Equal(oid.RSAEncryption):
		k, ok := info.PrivateKey.(*RSAPrivateKey)
		if !ok || k == nil {
			return nil, malformed("rsaEncryption without RSAPrivateKey payload")
		}
		return params.NewRSAPrivateCrtKeyParameters(
			k.Modulus, k.PublicExponent, k.PrivateExponent,
			k.Prime1, k.Prime2, k.Exponent1, k.Exponent2, k.Coefficient,
		), nil

	case alg.Equal(oid.DSA):
		dp, ok := info.Algorithm.Parameters.(*DSAParameter)
		if !ok || dp == nil {
			return nil, malformed("id-dsa without Dss-Parms")
		}
		x, ok := info.PrivateKey.(Integer)
		if !ok {
			return nil, malformed("id-dsa without INTEGER payload")
		}
		return params.NewDSAPrivateKeyParameters(x.Value, &params.DSAParameters{
			P: dp.P,
			Q: dp.Q,
			G: dp.G,
		}), nil

	default:
		return nil, unsupported("algorithm %s", oid.Name(alg))
	}
}
