package keyinfo

import (
	"math/big"

	"github.com/dep2p/go-keyinfo/pkg/lib/oid"
)

// ============================================================================
//                              算法标识符
// ============================================================================

// AlgorithmParameters 算法参数
//
// nil 表示参数字段缺失；Null 表示存在但为空（ASN.1 NULL）；
// *DSAParameter 表示 DSA 域参数。
type AlgorithmParameters interface {
	isAlgorithmParameters()
}

// Null ASN.1 NULL 参数
type Null struct{}

func (Null) isAlgorithmParameters() {}

// DSAParameter Dss-Parms ::= SEQUENCE { p, q, g }
type DSAParameter struct {
	P, Q, G *big.Int
}

func (*DSAParameter) isAlgorithmParameters() {}

// AlgorithmIdentifier 算法标识符
type AlgorithmIdentifier struct {
	Algorithm  oid.OID
	Parameters AlgorithmParameters
}

// ============================================================================
//                              私钥载荷
// ============================================================================

// Payload 算法相关的私钥载荷
//
// 可能的取值：*RSAPrivateKey、Integer
type Payload interface {
	isPayload()
}

// RSAPrivateKey PKCS#1 双素数 RSA 私钥
type RSAPrivateKey struct {
	Version         int
	Modulus         *big.Int
	PublicExponent  *big.Int
	PrivateExponent *big.Int
	Prime1          *big.Int
	Prime2          *big.Int
	Exponent1       *big.Int
	Exponent2       *big.Int
	Coefficient     *big.Int
}

func (*RSAPrivateKey) isPayload() {}

// Fields 按 PKCS#1 顺序返回 (n, e, d, p, q, dP, dQ, qInv)
func (k *RSAPrivateKey) Fields() []*big.Int {
	return []*big.Int{
		k.Modulus,
		k.PublicExponent,
		k.PrivateExponent,
		k.Prime1,
		k.Prime2,
		k.Exponent1,
		k.Exponent2,
		k.Coefficient,
	}
}

// Integer 单个整数载荷（DSA 私钥 x）
type Integer struct {
	Value *big.Int
}

func (Integer) isPayload() {}

// ============================================================================
//                              PrivateKeyInfo
// ============================================================================

// PrivateKeyInfo PKCS#8 私钥容器
type PrivateKeyInfo struct {
	Version    int
	Algorithm  AlgorithmIdentifier
	PrivateKey Payload
}

// Equal 逐字段比较两个容器
func (i *PrivateKeyInfo) Equal(other *PrivateKeyInfo) bool {
	if i == nil || other == nil {
		return i == other
	}
	if i.Version != other.Version {
		return false
	}
	if !i.Algorithm.Algorithm.Equal(other.Algorithm.Algorithm) {
		return false
	}
	return parametersEqual(i.Algorithm.Parameters, other.Algorithm.Parameters) &&
		payloadEqual(i.PrivateKey, other.PrivateKey)
}

func parametersEqual(a, b AlgorithmParameters) bool {
	switch pa := a.(type) {
	case nil:
		return b == nil
	case Null:
		_, ok := b.(Null)
		return ok
	case *DSAParameter:
		pb, ok := b.(*DSAParameter)
		if !ok || pa == nil || pb == nil {
			return ok && pa == pb
		}
		return intEqual(pa.P, pb.P) && intEqual(pa.Q, pb.Q) && intEqual(pa.G, pb.G)
	default:
		return false
	}
}

func payloadEqual(a, b Payload) bool {
	switch pa := a.(type) {
	case nil:
		return b == nil
	case *RSAPrivateKey:
		pb, ok := b.(*RSAPrivateKey)
		if !ok || pa == nil || pb == nil {
			return ok && pa == pb
		}
		if pa.Version != pb.Version {
			return false
		}
		fa, fb := pa.Fields(), pb.Fields()
		for n := range fa {
			if !intEqual(fa[n], fb[n]) {
				return false
			}
		}
		return true
	case Integer:
		pb, ok := b.(Integer)
		return ok && intEqual(pa.Value, pb.Value)
	default:
		return false
	}
}

func intEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}
