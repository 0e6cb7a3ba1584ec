// Package schema loads signature documents: YAML (or JSON) descriptions of
// a command's options and positional arguments.
//
//	name: foo-bar:baz
//	help: Example command
//	options:
//	  - names: f,foo
//	    argument: optional
//	    multiple: true
//	  - names: [b, --bar]
//	    argument: required
//	arguments:
//	  - name: path
//	options_position: 0
//	options_type: BazOptions
//
// [Document.Signature] validates a document and builds the
// [getopt.Signature] it describes.
package schema
