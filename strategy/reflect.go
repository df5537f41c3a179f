/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package strategy

import (
	"reflect"

	lru "github.com/hashicorp/golang-lru"

	"dirpx.dev/objrt/apis"
	cache "dirpx.dev/objrt/rxapi/cache/strategy"
	uref "dirpx.dev/objrt/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that derives default class
// names via reflection. Results are memoized according to cfg.Cache: LRU,
// TwoQueue and ARC bound the memo at cfg.CacheSize; None disables it.
func NewReflectStrategy(cfg apis.Config) apis.Strategy {
	return &reflectStrategy{names: newMemo(cfg.Cache, cfg.CacheSize)}
}

// memo is the part of the golang-lru caches the strategy relies on.
type memo interface {
	Get(key interface{}) (interface{}, bool)
	Add(key, value interface{})
	Len() int
}

// lruMemo drops the eviction flag lru.Cache.Add reports.
type lruMemo struct{ *lru.Cache }

func (m lruMemo) Add(key, value interface{}) { m.Cache.Add(key, value) }

// newMemo builds the memo table for policy, or nil when memoization is off.
// The golang-lru constructors only fail for a non-positive size.
func newMemo(policy cache.Strategy, size int) memo {
	if !policy.Bounded() || size <= 0 {
		return nil
	}
	switch policy {
	case cache.TwoQueue:
		if c, err := lru.New2Q(size); err == nil {
			return c
		}
	case cache.ARC:
		if c, err := lru.NewARC(size); err == nil {
			return c
		}
	default:
		if c, err := lru.New(size); err == nil {
			return lruMemo{c}
		}
	}
	return nil
}

// reflectStrategy is the universal fallback that computes "pkg.Type" for
// types nobody registered. Such names are what ForName callers would use if
// they register types under their default names.
type reflectStrategy struct {
	// names memoizes derived names; nil disables memoization.
	names memo // key: cacheKey, val: string
}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects all config knobs that affect resolution.
type cacheKey struct {
	t         reflect.Type
	maxUnwrap int
}

// TryResolve derives the default class name for v's dynamic type.
func (s *reflectStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return s.TryResolveType(reflect.TypeOf(v), cfg)
}

// TryResolveType derives the default class name for t.
func (s *reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	name := s.byType(t, cfg)
	return name, name != ""
}

// byType resolves the default name for t with memoization.
func (s *reflectStrategy) byType(t reflect.Type, cfg apis.Config) string {
	if s.names == nil {
		return uref.DefaultName(t, cfg)
	}
	key := cacheKey{t: t, maxUnwrap: cfg.MaxUnwrap}
	if v, ok := s.names.Get(key); ok {
		return v.(string)
	}
	name := uref.DefaultName(t, cfg)
	s.names.Add(key, name)
	return name
}

// Len reports how many names are memoized. Used by diagnostics and tests.
func (s *reflectStrategy) Len() int {
	if s.names == nil {
		return 0
	}
	return s.names.Len()
}
