// Package oid 提供私钥编码所需的算法对象标识符注册表
//
// 注册表在初始化后只读，可安全并发使用。
package oid

import (
	"encoding/asn1"
)

// OID 算法对象标识符
type OID = asn1.ObjectIdentifier

// ============================================================================
//                              算法标识符
// ============================================================================

var (
	// RSAEncryption PKCS#1 rsaEncryption
	RSAEncryption = OID{1, 2, 840, 113549, 1, 1, 1}

	// DSA X9.57 id-dsa
	DSA = OID{1, 2, 840, 10040, 4, 1}

	// ECPublicKey X9.62 id-ecPublicKey
	ECPublicKey = OID{1, 2, 840, 10045, 2, 1}

	// Ed25519 RFC 8410 id-Ed25519
	Ed25519 = OID{1, 3, 101, 112}
)

// ============================================================================
//                              命名曲线
// ============================================================================

var (
	NamedCurveP224      = OID{1, 3, 132, 0, 33}
	NamedCurveP256      = OID{1, 2, 840, 10045, 3, 1, 7}
	NamedCurveP384      = OID{1, 3, 132, 0, 34}
	NamedCurveP521      = OID{1, 3, 132, 0, 35}
	NamedCurveSecp256k1 = OID{1, 3, 132, 0, 10}
)

type entry struct {
	name string
	oid  OID
}

var registry = []entry{
	{"rsaEncryption", RSAEncryption},
	{"id-dsa", DSA},
	{"id-ecPublicKey", ECPublicKey},
	{"id-Ed25519", Ed25519},
	{"secp224r1", NamedCurveP224},
	{"prime256v1", NamedCurveP256},
	{"secp384r1", NamedCurveP384},
	{"secp521r1", NamedCurveP521},
	{"secp256k1", NamedCurveSecp256k1},
}

// Name 返回 OID 的符号名称
//
// 未注册的 OID 返回点分形式。
func Name(o OID) string {
	for _, e := range registry {
		if e.oid.Equal(o) {
			return e.name
		}
	}
	return o.String()
}

// Lookup 按符号名称查找 OID
//
// 返回的 OID 是注册表条目的副本，调用方可以随意修改。
func Lookup(name string) (OID, bool) {
	for _, e := range registry {
		if e.name == name {
			return Clone(e.oid), true
		}
	}
	return nil, false
}

// Clone 返回 OID 的副本
func Clone(o OID) OID {
	if o == nil {
		return nil
	}
	c := make(OID, len(o))
	copy(c, o)
	return c
}
