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


// Package indexer maintains the embedding index incrementally from
// scholarship store change events, and supports full rebuilds.
//
// Event-driven upserts run asynchronously on a worker pool so store
// writes never wait on the embedding provider; failures are logged and
// retried with exponential backoff. Fingerprints of the embedding text
// make re-saves of unchanged scholarships free, and an optional
// persistent vector cache lets a restarted engine warm its index without
// touching the provider at all.
package indexer
