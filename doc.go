// Package keyinfo 将私钥转换为 PKCS#8 PrivateKeyInfo
//
// # 核心概念
//
//   - 私钥参数（pkg/lib/crypto/params）：与具体库无关的数值密钥表示
//   - 工厂（pkg/lib/crypto/keyinfo）：参数 → PrivateKeyInfo 结构
//   - 编解码：PrivateKeyInfo ↔ DER / PEM
//
// # 快速开始
//
//	import "github.com/dep2p/go-keyinfo"
//
//	key, _ := rsa.GenerateKey(rand.Reader, 2048)
//	der, err := keyinfo.Encode(key)
//	if errors.Is(err, keyinfo.ErrUnsupportedKeyType) {
//	    // 椭圆曲线、Ed25519 等不支持
//	}
//
// # 支持的算法
//
//   - RSA（两素数，CRT 形式）
//   - DSA
//
// # 命令行
//
// cmd/keyinfo 提供批量转换 PEM 文件和管理密钥存储的命令行工具。
package keyinfo
