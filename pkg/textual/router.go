// Copyright 2026 Benoit Pereira da Silva
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package textual

import (
	"context"
	"sync"
)

// RoutingStrategy selects how a Router picks a route for an incoming item.
type RoutingStrategy int

const (
	// RoutingStrategyFirstMatch sends each item to the first route whose
	// predicate matches (in registration order). A route added via
	// AddProcessor has a nil predicate and therefore always matches, so it
	// behaves as a catch-all when registered last.
	RoutingStrategyFirstMatch RoutingStrategy = iota
)

type routerRoute[S Carrier[S]] struct {
	predicate Predicate[S] // nil means "always matches"
	processor Processor[S]
}

// Router is a Processor that dispatches each item to one of several branch
// processors, chosen by a RoutingStrategy.
//
// Configure a Router with AddRoute/AddProcessor before calling Apply; mutating
// it concurrently with a running Apply is not safe.
type Router[S Carrier[S]] struct {
	strategy RoutingStrategy
	routes   []routerRoute[S]
}

// NewRouter creates an empty Router using the given strategy.
func NewRouter[S Carrier[S]](strategy RoutingStrategy) *Router[S] {
	return &Router[S]{strategy: strategy}
}

// AddRoute appends a branch: items for which predicate returns true (or any
// item, if predicate is nil) are sent to processor.
func (r *Router[S]) AddRoute(predicate Predicate[S], processor Processor[S]) *Router[S] {
	r.routes = append(r.routes, routerRoute[S]{predicate: predicate, processor: processor})
	return r
}

// AddProcessor appends an always-matching branch, typically used as a
// catch-all registered after more specific routes.
func (r *Router[S]) AddProcessor(processor Processor[S]) *Router[S] {
	return r.AddRoute(nil, processor)
}

// Apply implements Processor[S].
//
// Each route's processor runs as its own stage, fed only the items dispatched
// to it; their outputs are merged onto the single returned channel. An item
// matching no route is dropped, mirroring RoutingStrategyFirstMatch with no
// catch-all registered.
func (r *Router[S]) Apply(ctx context.Context, in <-chan S) <-chan S {
	if ctx == nil {
		ctx = context.Background()
	}

	out := make(chan S)
	if len(r.routes) == 0 {
		close(out)
		return out
	}

	routeIns := make([]chan S, len(r.routes))
	routeOuts := make([]<-chan S, len(r.routes))
	for i, rt := range r.routes {
		proc := rt.processor
		if proc == nil {
			proc = passThroughProcessor[S]()
		}
		ch := make(chan S)
		routeIns[i] = ch
		routeOuts[i] = proc.Apply(ctx, ch)
	}

	var wg sync.WaitGroup
	wg.Add(len(routeOuts))
	for _, routeOut := range routeOuts {
		go func(c <-chan S) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case v, ok := <-c:
					if !ok {
						return
					}
					select {
					case <-ctx.Done():
						return
					case out <- v:
					}
				}
			}
		}(routeOut)
	}

	go func() {
		defer func() {
			for _, ch := range routeIns {
				close(ch)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case item, ok := <-in:
				if !ok {
					return
				}
				idx := -1
				for i, rt := range r.routes {
					if rt.predicate == nil || rt.predicate(ctx, item) {
						idx = i
						break
					}
				}
				if idx == -1 {
					continue
				}
				select {
				case <-ctx.Done():
					return
				case routeIns[idx] <- item:
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
