package cache

import (
	"errors"

	"github.com/IvanBrykalov/setcache/policy"
)

var (
	// ErrInvalidConfig is returned by New for a non-positive shard count or
	// shard size.
	ErrInvalidConfig = errors.New("cache: invalid configuration")

	// ErrKeyNotFound is what Get returns for an absent key under the default
	// miss policy.
	ErrKeyNotFound = policy.ErrNotFound

	// ErrInsufficientSpace is returned by CopyTo when the destination cannot
	// hold every resident entry. Nothing is copied in that case.
	ErrInsufficientSpace = errors.New("cache: destination too small")

	// ErrOffsetOutOfRange is returned by CopyTo for an offset outside the
	// destination slice.
	ErrOffsetOutOfRange = errors.New("cache: offset out of range")

	// ErrNoLoader is returned by GetOrLoad when no Loader was configured.
	ErrNoLoader = errors.New("cache: no Loader provided")
)
