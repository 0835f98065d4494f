// Package formats reads and writes mesh interchange formats.
package formats
