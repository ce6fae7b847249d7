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


// Package match implements the hybrid ranker.
//
// A match request evaluates every approved scholarship against the
// applicant profile with the eligibility package, then produces two
// buckets:
//
//   - Primary recommendations: rule-eligible scholarships. In hybrid mode
//     their final score blends the eligibility score with semantic
//     similarity (default 70/30); otherwise it equals the eligibility
//     score.
//   - Semantic suggestions: rule-ineligible scholarships that are
//     semantically close to the profile, each carrying eligibility
//     warnings so the consumer can render a caveat rather than a false
//     promise of eligibility.
//
// Embedding the profile is the only network call. It runs under a bounded
// wait; on failure or timeout the request degrades to the rule-based
// strategy and still succeeds. The response's MatchingStrategy field tells
// callers which path actually ran; they must not assume a fixed strategy.
package match
