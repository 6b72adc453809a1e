package keyinfo

import (
	"crypto"

	"github.com/dep2p/go-keyinfo/pkg/lib/crypto/params"

	pkcs8 "github.com/dep2p/go-keyinfo/pkg/lib/crypto/keyinfo"
)

// 错误别名，便于调用方使用 errors.Is
var (
	ErrUnsupportedKeyType = pkcs8.ErrUnsupportedKeyType
	ErrMalformedEncoding  = pkcs8.ErrMalformedEncoding
)

// Encode 将私钥编码为 PKCS#8 DER
func Encode(key crypto.PrivateKey) ([]byte, error) {
	info, err := create(key)
	if err != nil {
		return nil, err
	}
	return pkcs8.Marshal(info)
}

// EncodePEM 将私钥编码为 PEM（PRIVATE KEY）
func EncodePEM(key crypto.PrivateKey) ([]byte, error) {
	info, err := create(key)
	if err != nil {
		return nil, err
	}
	return pkcs8.EncodePEM(info)
}

// Decode 解析 PKCS#8 DER，返回 *rsa.PrivateKey 或 *dsa.PrivateKey
func Decode(der []byte) (crypto.PrivateKey, error) {
	info, err := pkcs8.Parse(der)
	if err != nil {
		return nil, err
	}
	p, err := pkcs8.KeyParameters(info)
	if err != nil {
		return nil, err
	}
	return params.ToPrivateKey(p)
}

func create(key crypto.PrivateKey) (*pkcs8.PrivateKeyInfo, error) {
	p, err := params.FromPrivateKey(key)
	if err != nil {
		return nil, err
	}
	return pkcs8.CreatePrivateKeyInfo(p)
}
