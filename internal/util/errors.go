package util

import (
	"errors"
)

// 三类边界错误：控制器层用 errors.Is 判断，其余一律按内部错误处理
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("permission denied")
	ErrInvalidInput = errors.New("invalid input")
)

var (
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
)
