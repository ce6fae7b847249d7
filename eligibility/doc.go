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


// Package eligibility implements the predicate evaluator and rule-based
// scorer for scholarship matching.
//
// Evaluate is a pure function from (profile, rule) to a per-criterion
// verdict: which checks passed, which failed, and whether the applicant is
// eligible overall (all checks must pass). Scorer turns an eligible
// evaluation into a 0-100 score plus templated match reasons, and a failed
// one into eligibility warnings for semantic suggestions.
//
// The policy for partial profiles is conservative: a restricted rule field
// that cannot be verified against the profile counts as violated, never as
// silently satisfied.
package eligibility
