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


// Package core defines the domain model for the scholarship matching engine:
// applicant profiles, scholarships with their eligibility rules, and match
// results.
//
// Eligibility restrictions are modelled as tagged values (SetRule, ValueRule)
// that are either unrestricted or carry a specific non-empty set, rather
// than overloading a magic "all" string inside the engine. The "all" sentinel
// exists only in the JSON wire format, for compatibility with the data the
// external CRUD collaborator produces.
//
// Profiles are partial by construction: every attribute is optional and a
// zero value means "unknown". How unknown values interact with restricted
// rule fields is decided by the eligibility package, not here.
package core
