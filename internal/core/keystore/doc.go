// Package keystore 持久化存储 PKCS#8 私钥容器
//
// 每个条目以 protobuf wire 格式的记录保存，记录内为 PrivateKeyInfo 的
// DER 编码，可选使用 Argon2id + AES-GCM 加密。
//
// # 后端
//
//   - FSKeystore: 每个密钥一个 <id>.key 文件（权限 0600）
//   - BadgerKeystore: BadgerDB，键前缀 /keyinfo/
//   - MemKeystore: 内存存储（用于测试）
//
// # 记录格式
//
//	┌────────────────────────────────────────────────────────────┐
//	│  1: version    varint                                      │
//	│  2: algorithm  string（点分 OID）                           │
//	│  3: encrypted  bool                                        │
//	│  4: data       bytes（DER 或 salt||nonce||ciphertext）      │
//	│  5: created    varint（Unix 秒）                            │
//	└────────────────────────────────────────────────────────────┘
//
// 所有实现均可并发使用。
package keystore
