// Package params 定义非对称密钥参数
//
// AsymmetricKeyParameters 是一个封闭的变体集合，包内未导出的方法
// 保证外部无法扩展。所有整数在构造后视为不可变。
package params

import (
	"math/big"

	"github.com/dep2p/go-keyinfo/pkg/lib/oid"
)

// ============================================================================
//                              变体类型
// ============================================================================

// Kind 密钥参数变体
type Kind int

const (
	// KindUnspecified 未指定
	KindUnspecified Kind = iota
	// KindRSA RSA 模数与指数（无 CRT 参数）
	KindRSA
	// KindRSACrt 完整 CRT 形式的 RSA 私钥
	KindRSACrt
	// KindDSAPrivate DSA 私钥
	KindDSAPrivate
	// KindDSAPublic DSA 公钥
	KindDSAPublic
	// KindECPrivate 椭圆曲线私钥
	KindECPrivate
	// KindEd25519Private Ed25519 私钥
	KindEd25519Private
)

// String 返回变体名称
func (k Kind) String() string {
	switch k {
	case KindUnspecified:
		return "Unspecified"
	case KindRSA:
		return "RSA"
	case KindRSACrt:
		return "RSA-CRT"
	case KindDSAPrivate:
		return "DSA-Private"
	case KindDSAPublic:
		return "DSA-Public"
	case KindECPrivate:
		return "EC-Private"
	case KindEd25519Private:
		return "Ed25519-Private"
	default:
		return "Unknown"
	}
}

// AsymmetricKeyParameters 非对称密钥参数
type AsymmetricKeyParameters interface {
	// IsPrivate 是否为私钥参数
	IsPrivate() bool

	// Kind 返回变体
	Kind() Kind

	sealed()
}

// ============================================================================
//                              RSA
// ============================================================================

// RSAKeyParameters RSA 模数和指数
//
// Private 为 true 时 Exponent 是私有指数，否则是公开指数。
type RSAKeyParameters struct {
	Private  bool
	Modulus  *big.Int
	Exponent *big.Int
}

func (p *RSAKeyParameters) IsPrivate() bool { return p.Private }
func (p *RSAKeyParameters) Kind() Kind      { return KindRSA }
func (p *RSAKeyParameters) sealed()         {}

// RSAPrivateCrtKeyParameters 带 CRT 参数的 RSA 私钥
type RSAPrivateCrtKeyParameters struct {
	RSAKeyParameters

	PublicExponent *big.Int
	P, Q           *big.Int
	DP, DQ         *big.Int
	QInv           *big.Int
}

// NewRSAPrivateCrtKeyParameters 按 PKCS#1 字段顺序构造 RSA CRT 私钥参数
func NewRSAPrivateCrtKeyParameters(n, e, d, p, q, dP, dQ, qInv *big.Int) *RSAPrivateCrtKeyParameters {
	return &RSAPrivateCrtKeyParameters{
		RSAKeyParameters: RSAKeyParameters{
			Private:  true,
			Modulus:  n,
			Exponent: d,
		},
		PublicExponent: e,
		P:              p,
		Q:              q,
		DP:             dP,
		DQ:             dQ,
		QInv:           qInv,
	}
}

func (p *RSAPrivateCrtKeyParameters) Kind() Kind { return KindRSACrt }

// ============================================================================
//                              DSA
// ============================================================================

// DSAParameters DSA 域参数
type DSAParameters struct {
	P, Q, G *big.Int
}

// DSAPrivateKeyParameters DSA 私钥
type DSAPrivateKeyParameters struct {
	Params *DSAParameters
	X      *big.Int
}

// NewDSAPrivateKeyParameters 构造 DSA 私钥参数
func NewDSAPrivateKeyParameters(x *big.Int, params *DSAParameters) *DSAPrivateKeyParameters {
	return &DSAPrivateKeyParameters{Params: params, X: x}
}

func (p *DSAPrivateKeyParameters) IsPrivate() bool { return true }
func (p *DSAPrivateKeyParameters) Kind() Kind      { return KindDSAPrivate }
func (p *DSAPrivateKeyParameters) sealed()         {}

// DSAPublicKeyParameters DSA 公钥
type DSAPublicKeyParameters struct {
	Params *DSAParameters
	Y      *big.Int
}

func (p *DSAPublicKeyParameters) IsPrivate() bool { return false }
func (p *DSAPublicKeyParameters) Kind() Kind      { return KindDSAPublic }
func (p *DSAPublicKeyParameters) sealed()         {}

// ============================================================================
//                              椭圆曲线
// ============================================================================

// ECPrivateKeyParameters 椭圆曲线私钥
type ECPrivateKeyParameters struct {
	Curve oid.OID
	D     *big.Int
}

func (p *ECPrivateKeyParameters) IsPrivate() bool { return true }
func (p *ECPrivateKeyParameters) Kind() Kind      { return KindECPrivate }
func (p *ECPrivateKeyParameters) sealed()         {}

// Ed25519PrivateKeyParameters Ed25519 私钥种子
type Ed25519PrivateKeyParameters struct {
	Seed []byte
}

func (p *Ed25519PrivateKeyParameters) IsPrivate() bool { return true }
func (p *Ed25519PrivateKeyParameters) Kind() Kind      { return KindEd25519Private }
func (p *Ed25519PrivateKeyParameters) sealed()         {}
