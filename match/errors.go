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


package match

import "errors"

var (
	// ErrStoreRequired indicates a nil scholarship store was provided.
	ErrStoreRequired = errors.New("scholarship store is required")

	// ErrIndexRequired indicates a nil vector index was provided.
	ErrIndexRequired = errors.New("vector index is required")

	// ErrInvalidWeights indicates rule and semantic weights don't sum to 1.
	ErrInvalidWeights = errors.New("rule and semantic weights must sum to 1")
)
