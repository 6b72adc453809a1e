// Package lib 包含基础设施工具库
//
// 本目录包含与具体服务无关的通用工具库：
//
//   - crypto/params: 私钥参数（RSA、DSA、EC、Ed25519）及与标准库的转换
//   - crypto/keyinfo: PKCS#8 PrivateKeyInfo 工厂与 DER/PEM 编解码
//   - oid: 对象标识符常量与名称表
//
// # 与 internal/ 的关系
//
// lib/ 不依赖 internal/。
// internal/core 在其上构建密钥存储和服务模块。
package lib
