package keyinfo

import "fmt"

// ErrorKind 编码错误类别
type ErrorKind int

const (
	// UnsupportedKeyType 密钥参数不是可编码的变体
	UnsupportedKeyType ErrorKind = iota + 1

	// MalformedEncoding DER 数据无法解析
	MalformedEncoding
)

// String 返回错误类别名称
func (k ErrorKind) String() string {
	switch k {
	case UnsupportedKeyType:
		return "UnsupportedKeyType"
	case MalformedEncoding:
		return "MalformedEncoding"
	default:
		return "Unknown"
	}
}

// EncodingError 编码错误
type EncodingError struct {
	Kind   ErrorKind
	Detail string
}

// Error 实现 error 接口
func (e *EncodingError) Error() string {
	var msg string
	switch e.Kind {
	case UnsupportedKeyType:
		msg = "key parameters not recognised"
	case MalformedEncoding:
		msg = "malformed private key info"
	default:
		msg = "key encoding failed"
	}
	if e.Detail == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", msg, e.Detail)
}

// Is 按错误类别匹配，支持 errors.Is(err, ErrUnsupportedKeyType)
func (e *EncodingError) Is(target error) bool {
	t, ok := target.(*EncodingError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// 哨兵错误，仅用于 errors.Is 比较
var (
	// ErrUnsupportedKeyType 不支持的密钥类型
	ErrUnsupportedKeyType = &EncodingError{Kind: UnsupportedKeyType}

	// ErrMalformedEncoding DER 格式错误
	ErrMalformedEncoding = &EncodingError{Kind: MalformedEncoding}
)

func unsupported(format string, args ...any) error {
	return &EncodingError{Kind: UnsupportedKeyType, Detail: fmt.Sprintf(format, args...)}
}

func malformed(format string, args ...any) error {
	return &EncodingError{Kind: MalformedEncoding, Detail: fmt.Sprintf(format, args...)}
}
