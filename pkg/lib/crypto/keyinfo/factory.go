package keyinfo

import (
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/dep2p/go-keyinfo/pkg/lib/crypto/params"
	"github.com/dep2p/go-keyinfo/pkg/lib/oid"
)

// ============================================================================
//                              工厂函数
// ============================================================================

// CreatePrivateKeyInfo 根据私钥参数构造 PKCS#8 容器
//
// 行为：
//   - RSA CRT 私钥：载荷为 (n, e, d, p, q, dP, dQ, qInv)，原样复制，
//     算法标识为 rsaEncryption，参数为 NULL（存在但为空）
//   - DSA 私钥：算法标识为 id-dsa，参数为 (p, q, g)，载荷为 x
//   - 其他变体：返回 UnsupportedKeyType，容器为 nil
//
// 不校验密钥的数学一致性，不修改输入。
func CreatePrivateKeyInfo(privateKey params.AsymmetricKeyParameters) (*PrivateKeyInfo, error) {
	switch k := privateKey.(type) {
	case *params.RSAPrivateCrtKeyParameters:
		if k == nil {
			return nil, unsupported("nil RSA key parameters")
		}
		return &PrivateKeyInfo{
			Algorithm: AlgorithmIdentifier{
				Algorithm:  oid.Clone(oid.RSAEncryption),
				Parameters: Null{},
			},
			PrivateKey: &RSAPrivateKey{
				Modulus:         k.Modulus,
				PublicExponent:  k.PublicExponent,
				PrivateExponent: k.Exponent,
				Prime1:          k.P,
				Prime2:          k.Q,
				Exponent1:       k.DP,
				Exponent2:       k.DQ,
				Coefficient:     k.QInv,
			},
		}, nil

	case *params.DSAPrivateKeyParameters:
		if k == nil || k.Params == nil {
			return nil, unsupported("DSA key without domain parameters")
		}
		dp := k.Params
		return &PrivateKeyInfo{
			Algorithm: AlgorithmIdentifier{
				Algorithm:  oid.Clone(oid.DSA),
				Parameters: &DSAParameter{P: dp.P, Q: dp.Q, G: dp.G},
			},
			PrivateKey: Integer{Value: k.X},
		}, nil

	case nil:
		return nil, unsupported("nil key parameters")

	default:
		return nil, unsupported("%s", privateKey.Kind())
	}
}

// ============================================================================
//                              Factory
// ============================================================================

// Stats 工厂统计信息
type Stats struct {
	RSA      int64
	DSA      int64
	Rejected int64
}

// Factory 带日志和统计的密钥容器工厂
//
// 输出与 CreatePrivateKeyInfo 完全一致，统计计数使用原子操作，可并发调用。
type Factory struct {
	log *slog.Logger

	rsa      atomic.Int64
	dsa      atomic.Int64
	rejected atomic.Int64
}

// Option 工厂选项
type Option func(*Factory)

// WithLogger 设置日志记录器
func WithLogger(l *slog.Logger) Option {
	return func(f *Factory) {
		if l != nil {
			f.log = l
		}
	}
}

// NewFactory 创建工厂
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create 构造 PKCS#8 容器，见 CreatePrivateKeyInfo
func (f *Factory) Create(privateKey params.AsymmetricKeyParameters) (*PrivateKeyInfo, error) {
	info, err := CreatePrivateKeyInfo(privateKey)
	if err != nil {
		f.rejected.Add(1)
		f.log.Warn("rejected key parameters", "err", err)
		return nil, err
	}

	switch info.PrivateKey.(type) {
	case *RSAPrivateKey:
		f.rsa.Add(1)
	case Integer:
		f.dsa.Add(1)
	}
	f.log.Debug("created private key info", "algorithm", oid.Name(info.Algorithm.Algorithm))
	return info, nil
}

// Stats 返回统计快照
func (f *Factory) Stats() Stats {
	return Stats{
		RSA:      f.rsa.Load(),
		DSA:      f.dsa.Load(),
		Rejected: f.rejected.Load(),
	}
}
