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


// Package index provides the in-memory embedding index for scholarships.
//
// Each approved scholarship has one unit-length vector, precomputed from
// its canonical text (name + description + eligibility summary). Queries
// are brute-force cosine scans, which is the right trade-off for a catalog
// of thousands of scholarships: no build step, exact results, and
// incremental upsert/remove as the external CRUD collaborator approves,
// edits or deletes scholarships.
//
// Reads and writes use a copy-on-write snapshot so concurrent matching
// requests never contend with index maintenance.
package index
