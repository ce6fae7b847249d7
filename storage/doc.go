// Copyright 2025 Poiesic Systems
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


// Package storage provides the storage abstraction layer for the matching
// engine.
//
// It defines the ScholarshipStore and VectorCache interfaces that decouple
// the matcher and indexer from the storage backend. The badger sub-package
// supplies the production implementation; tests use its in-memory mode.
//
// Constructors in implementation packages return these interfaces to
// prevent accidental coupling to backend specifics.
//
// # Change notifications
//
// The scholarship lifecycle is driven by an external CRUD collaborator.
// Writes flowing through the store fan out Events to subscribers after
// commit, which is how the embedding index is kept current incrementally
// rather than rebuilt per request.
//
// # Thread safety
//
// All implementations must be thread-safe and support concurrent access
// from multiple goroutines.
package storage
