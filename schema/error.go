package schema

import "github.com/ardnew/shopt/getopt"

var (
	ErrDecode            = getopt.NewError("decode signature document")
	ErrInvalidDocument   = getopt.NewError("invalid signature document")
	ErrEmptyName         = getopt.NewError("empty name")
	ErrDuplicateAlias    = getopt.NewError("alias declared by more than one option")
	ErrDuplicateKey      = getopt.NewError("key bound by more than one option")
	ErrDuplicateArgument = getopt.NewError("argument declared more than once")
	ErrInvalidMode       = getopt.ErrInvalidMode
	ErrVariadicPosition  = getopt.NewError("only the last argument may be variadic")
)
