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


package flow

import "errors"

var (
	// ErrMatcherRequired indicates a nil matcher was provided.
	ErrMatcherRequired = errors.New("matcher is required")

	// ErrInvalidState indicates a client-provided flow state that cannot
	// be trusted; the caller must restart the flow from the first step.
	ErrInvalidState = errors.New("invalid flow state")

	// ErrUnknownStep indicates an answer for a step id that doesn't exist.
	ErrUnknownStep = errors.New("unknown step")

	// ErrStepNotReached indicates an answer for a step beyond the current
	// position; steps are answered in order.
	ErrStepNotReached = errors.New("step not reached yet")

	// ErrFlowComplete indicates an answer submitted after the terminal step.
	ErrFlowComplete = errors.New("flow already complete")
)
