package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/argon2"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/dep2p/go-keyinfo/pkg/lib/crypto/keyinfo"
)

const (
	recordVersion = 1

	// 加密参数
	saltSize  = 16
	nonceSize = 12

	// Argon2 参数
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
)

// 记录字段编号
const (
	fieldVersion   protowire.Number = 1
	fieldAlgorithm protowire.Number = 2
	fieldEncrypted protowire.Number = 3
	fieldData      protowire.Number = 4
	fieldCreated   protowire.Number = 5
)

// record 存储记录
type record struct {
	Version   uint64
	Algorithm string
	Encrypted bool
	Data      []byte
	Created   int64
}

func (r *record) marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, r.Version)
	b = protowire.AppendTag(b, fieldAlgorithm, protowire.BytesType)
	b = protowire.AppendString(b, r.Algorithm)
	b = protowire.AppendTag(b, fieldEncrypted, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeBool(r.Encrypted))
	b = protowire.AppendTag(b, fieldData, protowire.BytesType)
	b = protowire.AppendBytes(b, r.Data)
	b = protowire.AppendTag(b, fieldCreated, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Created))
	return b
}

func unmarshalRecord(b []byte) (*record, error) {
	r := &record{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldVersion && typ == protowire.VarintType:
			r.Version, n = protowire.ConsumeVarint(b)
		case num == fieldAlgorithm && typ == protowire.BytesType:
			r.Algorithm, n = protowire.ConsumeString(b)
		case num == fieldEncrypted && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			r.Encrypted = protowire.DecodeBool(v)
		case num == fieldData && typ == protowire.BytesType:
			var v []byte
			v, n = protowire.ConsumeBytes(b)
			r.Data = append([]byte(nil), v...)
		case num == fieldCreated && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			r.Created = int64(v)
		default:
			// 未知字段跳过，保持前向兼容
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, protowire.ParseError(n))
		}
		b = b[n:]
	}

	if r.Version != recordVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidRecord, r.Version)
	}
	return r, nil
}

// ============================================================================
//                              记录编解码
// ============================================================================

// sealer 负责 PrivateKeyInfo 与记录字节之间的转换
type sealer struct {
	password []byte
}

func (s *sealer) seal(info *keyinfo.PrivateKeyInfo) ([]byte, error) {
	der, err := keyinfo.Marshal(info)
	if err != nil {
		return nil, err
	}

	r := &record{
		Version:   recordVersion,
		Algorithm: info.Algorithm.Algorithm.String(),
		Data:      der,
		Created:   time.Now().Unix(),
	}
	if len(s.password) > 0 {
		r.Data, err = encryptData(der, s.password)
		if err != nil {
			return nil, err
		}
		r.Encrypted = true
	}
	return r.marshal(), nil
}

func (s *sealer) open(data []byte) (*keyinfo.PrivateKeyInfo, error) {
	r, err := unmarshalRecord(data)
	if err != nil {
		return nil, err
	}

	der := r.Data
	if r.Encrypted {
		if len(s.password) == 0 {
			return nil, ErrInvalidPassword
		}
		der, err = decryptData(der, s.password)
		if err != nil {
			return nil, err
		}
	}

	info, err := keyinfo.Parse(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if info.Algorithm.Algorithm.String() != r.Algorithm {
		return nil, fmt.Errorf("%w: algorithm mismatch %s != %s", ErrInvalidRecord, info.Algorithm.Algorithm, r.Algorithm)
	}
	return info, nil
}

// ============================================================================
//                              加密辅助函数
// ============================================================================

// encryptData 使用 AES-GCM 加密数据，返回 salt || nonce || ciphertext
func encryptData(plaintext, password []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	gcm, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	result := make([]byte, 0, saltSize+nonceSize+len(plaintext)+gcm.Overhead())
	result = append(result, salt...)
	result = append(result, nonce...)
	return gcm.Seal(result, nonce, plaintext, nil), nil
}

// decryptData 使用 AES-GCM 解密数据
func decryptData(data, password []byte) ([]byte, error) {
	if len(data) < saltSize+nonceSize {
		return nil, ErrDecryptionFailed
	}

	salt := data[:saltSize]
	nonce := data[saltSize : saltSize+nonceSize]
	ciphertext := data[saltSize+nonceSize:]

	gcm, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func newGCM(password, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(password, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
