package keyinfo

import (
	"encoding/asn1"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/dep2p/go-keyinfo/pkg/lib/oid"
)

// ============================================================================
//                              DER 序列化
// ============================================================================

// DER 结构（RFC 5208）：
//
//   PrivateKeyInfo ::= SEQUENCE {
//     version                   INTEGER,
//     privateKeyAlgorithm       AlgorithmIdentifier,
//     privateKey                OCTET STRING,
//     attributes           [0]  IMPLICIT Attributes OPTIONAL }

// Marshal 将容器编码为 DER
//
// 任一整数字段为 nil 时返回 MalformedEncoding。
func Marshal(info *PrivateKeyInfo) ([]byte, error) {
	if info == nil {
		return nil, malformed("nil private key info")
	}
	if len(info.Algorithm.Algorithm) == 0 {
		return nil, malformed("missing algorithm identifier")
	}

	inner, err := marshalPayload(info.PrivateKey)
	if err != nil {
		return nil, err
	}
	if err := checkParameters(info.Algorithm.Parameters); err != nil {
		return nil, err
	}

	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(int64(info.Version))
		b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(asn1.ObjectIdentifier(info.Algorithm.Algorithm))
			addParameters(b, info.Algorithm.Parameters)
		})
		b.AddASN1OctetString(inner)
	})
	return b.Bytes()
}

func checkParameters(p AlgorithmParameters) error {
	switch v := p.(type) {
	case nil, Null:
		return nil
	case *DSAParameter:
		if v == nil || v.P == nil || v.Q == nil || v.G == nil {
			return malformed("incomplete DSA parameters")
		}
		return nil
	default:
		return malformed("unknown algorithm parameters %T", p)
	}
}

func addParameters(b *cryptobyte.Builder, p AlgorithmParameters) {
	switch v := p.(type) {
	case Null:
		b.AddASN1NULL()
	case *DSAParameter:
		b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1BigInt(v.P)
			b.AddASN1BigInt(v.Q)
			b.AddASN1BigInt(v.G)
		})
	}
}

func marshalPayload(p Payload) ([]byte, error) {
	var b cryptobyte.Builder

	switch v := p.(type) {
	case *RSAPrivateKey:
		if v == nil {
			return nil, malformed("nil RSA private key")
		}
		fields := v.Fields()
		for _, f := range fields {
			if f == nil {
				return nil, malformed("incomplete RSA private key")
			}
		}
		b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1Int64(int64(v.Version))
			for _, f := range fields {
				b.AddASN1BigInt(f)
			}
		})
	case Integer:
		if v.Value == nil {
			return nil, malformed("nil integer payload")
		}
		b.AddASN1BigInt(v.Value)
	default:
		return nil, malformed("unknown private key payload %T", p)
	}

	return b.Bytes()
}

// ============================================================================
//                              DER 解析
// ============================================================================

// Parse 解析 DER 编码的 PrivateKeyInfo
//
// 仅支持 rsaEncryption 和 id-dsa，其他算法返回 UnsupportedKeyType。
// 可选的 attributes 字段会被忽略。
func Parse(der []byte) (*PrivateKeyInfo, error) {
	input := cryptobyte.String(der)

	var (
		seq, algSeq, inner cryptobyte.String
		version            int64
		algorithm          asn1.ObjectIdentifier
	)
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) || !input.Empty() {
		return nil, malformed("invalid outer sequence")
	}
	if !seq.ReadASN1Integer(&version) {
		return nil, malformed("invalid version")
	}
	if version != 0 {
		return nil, malformed("unsupported version %d", version)
	}
	if !seq.ReadASN1(&algSeq, cbasn1.SEQUENCE) || !algSeq.ReadASN1ObjectIdentifier(&algorithm) {
		return nil, malformed("invalid algorithm identifier")
	}
	if !seq.ReadASN1(&inner, cbasn1.OCTET_STRING) {
		return nil, malformed("invalid private key octet string")
	}
	if !seq.SkipOptionalASN1(cbasn1.Tag(0).Constructed().ContextSpecific()) || !seq.Empty() {
		return nil, malformed("trailing data after private key")
	}

	info := &PrivateKeyInfo{
		Version: int(version),
	}
	info.Algorithm.Algorithm = oid.OID(algorithm)

	switch {
	case info.Algorithm.Algorithm.Equal(oid.RSAEncryption):
		var null cryptobyte.String
		if !algSeq.ReadASN1(&null, cbasn1.NULL) || len(null) != 0 || !algSeq.Empty() {
			return nil, malformed("rsaEncryption requires NULL parameters")
		}
		info.Algorithm.Parameters = Null{}
		key, err := parseRSAPrivateKey(inner)
		if err != nil {
			return nil, err
		}
		info.PrivateKey = key

	case info.Algorithm.Algorithm.Equal(oid.DSA):
		dp, err := parseDSAParameter(algSeq)
		if err != nil {
			return nil, err
		}
		info.Algorithm.Parameters = dp
		x := new(big.Int)
		if !inner.ReadASN1Integer(x) || !inner.Empty() {
			return nil, malformed("invalid DSA private key")
		}
		info.PrivateKey = Integer{Value: x}

	default:
		return nil, unsupported("algorithm %s", oid.Name(info.Algorithm.Algorithm))
	}

	return info, nil
}

func parseRSAPrivateKey(s cryptobyte.String) (*RSAPrivateKey, error) {
	var seq cryptobyte.String
	if !s.ReadASN1(&seq, cbasn1.SEQUENCE) || !s.Empty() {
		return nil, malformed("invalid RSA private key sequence")
	}

	var version int64
	if !seq.ReadASN1Integer(&version) {
		return nil, malformed("invalid RSA private key version")
	}
	if version != 0 {
		return nil, unsupported("multi-prime RSA private key")
	}

	key := &RSAPrivateKey{Version: int(version)}
	fields := []**big.Int{
		&key.Modulus,
		&key.PublicExponent,
		&key.PrivateExponent,
		&key.Prime1,
		&key.Prime2,
		&key.Exponent1,
		&key.Exponent2,
		&key.Coefficient,
	}
	for _, f := range fields {
		n := new(big.Int)
		if !seq.ReadASN1Integer(n) {
			return nil, malformed("invalid RSA private key integer")
		}
		*f = n
	}
	if !seq.Empty() {
		return nil, malformed("trailing data in RSA private key")
	}
	return key, nil
}

func parseDSAParameter(s cryptobyte.String) (*DSAParameter, error) {
	var seq cryptobyte.String
	if !s.ReadASN1(&seq, cbasn1.SEQUENCE) || !s.Empty() {
		return nil, malformed("id-dsa requires Dss-Parms")
	}
	dp := &DSAParameter{P: new(big.Int), Q: new(big.Int), G: new(big.Int)}
	if !seq.ReadASN1Integer(dp.P) || !seq.ReadASN1Integer(dp.Q) || !seq.ReadASN1Integer(dp.G) || !seq.Empty() {
		return nil, malformed("invalid Dss-Parms")
	}
	return dp, nil
}
