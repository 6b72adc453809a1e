// Package keyinfo 提供私钥容器服务模块
//
// Service 组合 PKCS#8 工厂与密钥存储：
//
//	svc.Encode(p)      // 参数 → DER
//	svc.Store(id, p)   // 参数 → 容器 → 密钥存储
//	svc.Load(id)       // 密钥存储 → 容器
//
// 通过 Module() 接入 Fx，停止时关闭密钥存储。
package keyinfo
