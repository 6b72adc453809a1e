package main

import (
	"crypto"
	"crypto/dsa" //nolint:staticcheck // OpenSSL DSA 私钥输入
	"crypto/x509"
	"encoding/asn1"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/dep2p/go-keyinfo/pkg/lib/crypto/params"
	"github.com/dep2p/go-keyinfo/pkg/lib/oid"

	pkcs8 "github.com/dep2p/go-keyinfo/pkg/lib/crypto/keyinfo"
)

// PEM 块类型
const (
	pemRSA   = "RSA PRIVATE KEY"
	pemDSA   = "DSA PRIVATE KEY"
	pemEC    = "EC PRIVATE KEY"
	pemPKCS8 = pkcs8.PEMType
)

var errNoPEM = errors.New("no PEM block found")

// opensslDSAKey OpenSSL 传统 DSA 私钥格式
//
//	SEQUENCE { version INTEGER, p, q, g, y, x INTEGER }
type opensslDSAKey struct {
	Version int
	P, Q, G *big.Int
	Y, X    *big.Int
}

// sec1Key RFC 5915 ECPrivateKey，只解析到曲线 OID
type sec1Key struct {
	Version    int
	PrivateKey []byte
	Curve      asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
	PublicKey  asn1.BitString        `asn1:"optional,explicit,tag:1"`
}

// readPrivateKey 解析第一个 PEM 块中的私钥
func readPrivateKey(data []byte) (crypto.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errNoPEM
	}

	switch block.Type {
	case pemRSA:
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	case pemDSA:
		return parseDSAKey(block.Bytes)
	case pemEC:
		return parseECKey(block.Bytes)
	case pemPKCS8:
		return parsePKCS8Key(block.Bytes)
	default:
		return nil, fmt.Errorf("unsupported PEM block type %q", block.Type)
	}
}

func parseDSAKey(der []byte) (*dsa.PrivateKey, error) {
	var k opensslDSAKey
	rest, err := asn1.Unmarshal(der, &k)
	if err != nil {
		return nil, fmt.Errorf("parse DSA key: %w", err)
	}
	if len(rest) > 0 {
		return nil, errors.New("parse DSA key: trailing data")
	}
	if k.Version != 0 {
		return nil, fmt.Errorf("parse DSA key: unsupported version %d", k.Version)
	}
	return &dsa.PrivateKey{
		PublicKey: dsa.PublicKey{
			Parameters: dsa.Parameters{P: k.P, Q: k.Q, G: k.G},
			Y:          k.Y,
		},
		X: k.X,
	}, nil
}

// parseECKey 解析 SEC1 私钥
//
// 标准库不认识 secp256k1，这类密钥交给 secp256k1 包处理。
func parseECKey(der []byte) (crypto.PrivateKey, error) {
	var k sec1Key
	if _, err := asn1.Unmarshal(der, &k); err != nil {
		return nil, fmt.Errorf("parse EC key: %w", err)
	}
	if k.Curve.Equal(oid.NamedCurveSecp256k1) {
		return secp256k1.PrivKeyFromBytes(k.PrivateKey), nil
	}
	return x509.ParseECPrivateKey(der)
}

// parsePKCS8Key 解析 PKCS#8 私钥
//
// 标准库不支持 DSA，失败时回退到 keyinfo 解析。
func parsePKCS8Key(der []byte) (crypto.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err == nil {
		return key, nil
	}

	info, perr := pkcs8.Parse(der)
	if perr != nil {
		return nil, perr
	}
	p, perr := pkcs8.KeyParameters(info)
	if perr != nil {
		return nil, perr
	}
	return params.ToPrivateKey(p)
}
