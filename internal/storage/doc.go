// Package storage provides the file and memory implementations of
// types.Storage and Open, which builds whichever backend a Config selects.
package storage
