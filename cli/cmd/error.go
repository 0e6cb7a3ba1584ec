package cmd

import "github.com/ardnew/shopt/getopt"

var (
	ErrParse      = getopt.NewError("parse command line")
	ErrWriteFile  = getopt.NewError("write file")
	ErrFileExists = getopt.NewError("file exists (use --force to overwrite)")
	ErrSignature  = getopt.NewError("load signature")
)
