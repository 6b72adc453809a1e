package params

import (
	"crypto"
	"crypto/dsa" //nolint:staticcheck // DSA 仅用于兼容旧密钥
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/dep2p/go-keyinfo/pkg/lib/oid"
)

// 转换相关错误
var (
	// ErrNilKey 密钥为空
	ErrNilKey = errors.New("nil key")

	// ErrUnknownKey 无法识别的密钥类型
	ErrUnknownKey = errors.New("unknown private key type")

	// ErrMultiPrimeRSA 不支持多素数 RSA
	ErrMultiPrimeRSA = errors.New("multi-prime RSA keys are not supported")

	// ErrUnknownCurve 无法识别的曲线
	ErrUnknownCurve = errors.New("unknown elliptic curve")

	// ErrNotConvertible 参数无法还原为标准库密钥
	ErrNotConvertible = errors.New("key parameters cannot be converted")
)

var one = big.NewInt(1)

// ============================================================================
//                              标准库密钥 -> 参数
// ============================================================================

// FromPrivateKey 将标准库（或 secp256k1）私钥转换为密钥参数
//
// 支持：
//   - *rsa.PrivateKey（仅双素数，缺失的 CRT 值按 PKCS#1 计算）
//   - *dsa.PrivateKey
//   - *ecdsa.PrivateKey（P-224/P-256/P-384/P-521）
//   - ed25519.PrivateKey
//   - *secp256k1.PrivateKey
//
// 输入密钥不会被修改。
func FromPrivateKey(key crypto.PrivateKey) (AsymmetricKeyParameters, error) {
	switch k := key.(type) {
	case nil:
		return nil, ErrNilKey
	case *rsa.PrivateKey:
		return fromRSA(k)
	case *dsa.PrivateKey:
		if k == nil {
			return nil, ErrNilKey
		}
		return NewDSAPrivateKeyParameters(k.X, &DSAParameters{
			P: k.P,
			Q: k.Q,
			G: k.G,
		}), nil
	case *ecdsa.PrivateKey:
		if k == nil {
			return nil, ErrNilKey
		}
		curve, err := curveOID(k.Curve)
		if err != nil {
			return nil, err
		}
		return &ECPrivateKeyParameters{Curve: curve, D: k.D}, nil
	case ed25519.PrivateKey:
		if len(k) != ed25519.PrivateKeySize {
			return nil, fmt.Errorf("%w: ed25519 key length %d", ErrUnknownKey, len(k))
		}
		return &Ed25519PrivateKeyParameters{Seed: k.Seed()}, nil
	case *secp256k1.PrivateKey:
		if k == nil {
			return nil, ErrNilKey
		}
		return &ECPrivateKeyParameters{
			Curve: oid.Clone(oid.NamedCurveSecp256k1),
			D:     new(big.Int).SetBytes(k.Serialize()),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKey, key)
	}
}

func fromRSA(k *rsa.PrivateKey) (AsymmetricKeyParameters, error) {
	if k == nil {
		return nil, ErrNilKey
	}
	if len(k.Primes) != 2 {
		return nil, fmt.Errorf("%w: %d primes", ErrMultiPrimeRSA, len(k.Primes))
	}

	p, q := k.Primes[0], k.Primes[1]
	dP, dQ, qInv := k.Precomputed.Dp, k.Precomputed.Dq, k.Precomputed.Qinv
	if dP == nil || dQ == nil || qInv == nil {
		dP = new(big.Int).Mod(k.D, new(big.Int).Sub(p, one))
		dQ = new(big.Int).Mod(k.D, new(big.Int).Sub(q, one))
		qInv = new(big.Int).ModInverse(q, p)
	}

	return NewRSAPrivateCrtKeyParameters(
		k.N,
		big.NewInt(int64(k.E)),
		k.D,
		p, q,
		dP, dQ,
		qInv,
	), nil
}

func curveOID(c elliptic.Curve) (oid.OID, error) {
	switch c {
	case elliptic.P224():
		return oid.Clone(oid.NamedCurveP224), nil
	case elliptic.P256():
		return oid.Clone(oid.NamedCurveP256), nil
	case elliptic.P384():
		return oid.Clone(oid.NamedCurveP384), nil
	case elliptic.P521():
		return oid.Clone(oid.NamedCurveP521), nil
	case secp256k1.S256():
		return oid.Clone(oid.NamedCurveSecp256k1), nil
	}
	if c == nil {
		return nil, ErrUnknownCurve
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCurve, c.Params().Name)
}

// ============================================================================
//                              参数 -> 标准库密钥
// ============================================================================

// maxDSAPrimeBits 可还原的 DSA p 最大位数
const maxDSAPrimeBits = 8192

// ToPrivateKey 将 RSA CRT 或 DSA 私钥参数还原为标准库私钥
//
// 还原前检查参数：RSA 需通过 rsa.PrivateKey.Validate；DSA 需满足
// p > 1、q > 1、1 < g < p、0 < x < q。DSA 公钥 Y 由 g^x mod p 计算得到。
// 检查失败或其他变体返回 ErrNotConvertible。
func ToPrivateKey(p AsymmetricKeyParameters) (crypto.PrivateKey, error) {
	switch k := p.(type) {
	case *RSAPrivateCrtKeyParameters:
		key, err := toRSAPrivateKey(k)
		if err != nil {
			return nil, err
		}
		return key, nil
	case *DSAPrivateKeyParameters:
		key, err := toDSAPrivateKey(k)
		if err != nil {
			return nil, err
		}
		return key, nil
	case nil:
		return nil, ErrNilKey
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotConvertible, p.Kind())
	}
}

func toRSAPrivateKey(k *RSAPrivateCrtKeyParameters) (*rsa.PrivateKey, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: nil RSA key parameters", ErrNotConvertible)
	}
	if k.Modulus == nil || k.PublicExponent == nil || k.Exponent == nil || k.P == nil || k.Q == nil {
		return nil, fmt.Errorf("%w: incomplete RSA key parameters", ErrNotConvertible)
	}
	if !k.PublicExponent.IsInt64() || k.PublicExponent.Int64() > int64(^uint32(0)>>1) {
		return nil, fmt.Errorf("%w: public exponent out of range", ErrNotConvertible)
	}

	priv := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{
			N: new(big.Int).Set(k.Modulus),
			E: int(k.PublicExponent.Int64()),
		},
		D:      new(big.Int).Set(k.Exponent),
		Primes: []*big.Int{new(big.Int).Set(k.P), new(big.Int).Set(k.Q)},
	}
	if err := priv.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConvertible, err)
	}
	priv.Precompute()
	return priv, nil
}

func toDSAPrivateKey(k *DSAPrivateKeyParameters) (*dsa.PrivateKey, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: nil DSA key parameters", ErrNotConvertible)
	}
	dp := k.Params
	if dp == nil {
		return nil, fmt.Errorf("%w: missing DSA domain parameters", ErrNotConvertible)
	}
	if dp.P == nil || dp.Q == nil || dp.G == nil || k.X == nil {
		return nil, fmt.Errorf("%w: incomplete DSA key parameters", ErrNotConvertible)
	}

	switch {
	case dp.P.Cmp(one) <= 0 || dp.P.BitLen() > maxDSAPrimeBits:
		return nil, fmt.Errorf("%w: DSA p out of range", ErrNotConvertible)
	case dp.Q.Cmp(one) <= 0:
		return nil, fmt.Errorf("%w: DSA q out of range", ErrNotConvertible)
	case dp.G.Cmp(one) <= 0 || dp.G.Cmp(dp.P) >= 0:
		return nil, fmt.Errorf("%w: DSA g out of range", ErrNotConvertible)
	case k.X.Sign() <= 0 || k.X.Cmp(dp.Q) >= 0:
		return nil, fmt.Errorf("%w: DSA x out of range", ErrNotConvertible)
	}

	params := dsa.Parameters{
		P: new(big.Int).Set(dp.P),
		Q: new(big.Int).Set(dp.Q),
		G: new(big.Int).Set(dp.G),
	}
	return &dsa.PrivateKey{
		PublicKey: dsa.PublicKey{
			Parameters: params,
			Y:          new(big.Int).Exp(params.G, k.X, params.P),
		},
		X: new(big.Int).Set(k.X),
	}, nil
}
