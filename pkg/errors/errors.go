package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvariantViolation 存储层违反了契约保证（例如自然键匹配到多行）。
// 不属于 Signal，调用方不得吞掉，应按内部错误处理。
var ErrInvariantViolation = errors.New("store invariant violated")

// Signal 统一的可恢复失败值：Code 与 HTTP 状态码一一对应，Message 原样返回给客户端
type Signal struct {
	Code    int
	Message string
	Err     error
}

func (s *Signal) Error() string {
	if s.Err != nil {
		return fmt.Sprintf("%d %s: %v", s.Code, s.Message, s.Err)
	}
	return fmt.Sprintf("%d %s", s.Code, s.Message)
}

func (s *Signal) Unwrap() error { return s.Err }

// Is 按 Code 比较，便于 errors.Is(err, errors.ErrNotFound) 之类的判断
func (s *Signal) Is(target error) bool {
	t, ok := target.(*Signal)
	if !ok {
		return false
	}
	return t.Message == "" && t.Code == s.Code
}

// ── 分类哨兵（仅用于 errors.Is） ──

var (
	ErrNotFound         = &Signal{Code: http.StatusNotFound}
	ErrConflict         = &Signal{Code: http.StatusConflict}
	ErrStoreUnavailable = &Signal{Code: http.StatusInternalServerError}
)

// NotFound 404：记录不存在
func NotFound(format string, args ...any) *Signal {
	return &Signal{Code: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict 409：唯一约束冲突
func Conflict(message string, cause error) *Signal {
	return &Signal{Code: http.StatusConflict, Message: message, Err: cause}
}

// BadRequest 400：业务规则拒绝
func BadRequest(format string, args ...any) *Signal {
	return &Signal{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// StoreUnavailable 500：数据库通信失败，唯一可由调用方重试的情况
func StoreUnavailable(cause error) *Signal {
	return &Signal{Code: http.StatusInternalServerError, Message: "database is unavailable", Err: cause}
}

// AsSignal 从错误链中取出 Signal
func AsSignal(err error) (*Signal, bool) {
	var s *Signal
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}
