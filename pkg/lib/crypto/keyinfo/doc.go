// Package keyinfo 将私钥参数转换为 PKCS#8 PrivateKeyInfo 结构
//
// 本包是密钥参数与结构化编码之间的边界：调用方提供原始的数值密钥参数，
// 得到一个带算法标识的自描述容器，字段顺序与取值由外部标准决定。
//
// # 支持的密钥类型
//
//   - RSA（完整 CRT 形式）：rsaEncryption + NULL 参数，RSAPrivateKey 载荷
//   - DSA：id-dsa + Dss-Parms(p, q, g) 参数，INTEGER x 载荷
//
// 其他变体（椭圆曲线、Ed25519、RSA 公钥等）一律返回 UnsupportedKeyType。
//
// # 快速开始
//
//	p, _ := params.FromPrivateKey(rsaKey)
//	info, err := keyinfo.CreatePrivateKeyInfo(p)
//	der, err := keyinfo.Marshal(info)
//	pemBytes, err := keyinfo.EncodePEM(info)
//
// # 并发
//
// CreatePrivateKeyInfo 无共享状态，可并发调用。返回的容器与输入共享
// *big.Int 引用，双方均不得在构造后修改这些整数。
//
// # 相关规范
//
//   - RFC 5208: PKCS#8 PrivateKeyInfo
//   - RFC 8017: PKCS#1 RSAPrivateKey
//   - RFC 3279: Dss-Parms
package keyinfo
