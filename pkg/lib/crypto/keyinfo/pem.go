package keyinfo

import (
	"encoding/pem"
)

// PEMType PKCS#8 未加密私钥的 PEM 块类型
const PEMType = "PRIVATE KEY"

// EncodePEM 将容器编码为 PEM
func EncodePEM(info *PrivateKeyInfo) ([]byte, error) {
	der, err := Marshal(info)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: PEMType, Bytes: der}), nil
}

// DecodePEM 解析第一个 PEM 块
//
// 块类型必须为 PRIVATE KEY。
func DecodePEM(data []byte) (*PrivateKeyInfo, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, malformed("no PEM block found")
	}
	if block.Type != PEMType {
		return nil, malformed("unexpected PEM block type %q", block.Type)
	}
	return Parse(block.Bytes)
}
