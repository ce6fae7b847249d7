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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidScholarship indicates a Scholarship failed validation.
	ErrInvalidScholarship = errors.New("invalid scholarship")

	// ErrInvalidRule indicates an EligibilityRule failed validation.
	ErrInvalidRule = errors.New("invalid eligibility rule")

	// ErrEmptyId indicates the scholarship Id field is empty.
	ErrEmptyId = errors.New("scholarship id cannot be empty")

	// ErrEmptyName indicates the scholarship Name field is empty.
	ErrEmptyName = errors.New("scholarship name cannot be empty")

	// ErrInvalidStatus indicates an invalid Status value.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidType indicates an invalid ScholarshipType value.
	ErrInvalidType = errors.New("invalid scholarship type")

	// ErrEmptyRuleSet indicates a rule field carries an empty specific set.
	// Absence of a restriction must be expressed as unrestricted instead.
	ErrEmptyRuleSet = errors.New("rule set cannot be empty")

	// ErrNegativeIncome indicates a negative income ceiling.
	ErrNegativeIncome = errors.New("income ceiling cannot be negative")
)
