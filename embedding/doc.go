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


// Package embedding abstracts the external embedding provider.
//
// The matcher and indexer depend only on the Embedder interface; the
// concrete provider lives in sub-packages:
//
//   - embedding/openai: production implementation for OpenAI-compatible APIs
//   - embedding/mock: deterministic test double
//
// Provider calls are the only network I/O in the engine. Every call is
// bounded by Config.Timeout, and callers treat a failed or timed-out call
// as a degradation to rule-based matching, never as a failed request.
package embedding
