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


package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/scholarmatch/core"
)

// Scholarship records are stored as JSON: the eligibility rule's tagged
// Unrestricted/Specific fields already carry a JSON codec that the HTTP API
// uses, so one codec covers both wire and storage. Vectors get a compact
// binary encoding instead, varint fingerprint followed by fixed-width
// float32s.

// MarshalScholarship serializes a Scholarship to bytes.
func MarshalScholarship(s *core.Scholarship) ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalScholarship deserializes a Scholarship from bytes.
func UnmarshalScholarship(data []byte) (*core.Scholarship, error) {
	var s core.Scholarship
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptValue, err)
	}
	return &s, nil
}

// MarshalVector serializes a fingerprint and embedding vector to bytes.
func MarshalVector(fingerprint core.Fingerprint, vector []float32) []byte {
	fp := uint64(fingerprint)
	buf := make([]byte, varint.Uint64.Size(fp)+4*len(vector))
	n := varint.Uint64.Marshal(fp, buf)
	for _, v := range vector {
		binary.LittleEndian.PutUint32(buf[n:], math.Float32bits(v))
		n += 4
	}
	return buf[:n]
}

// UnmarshalVector deserializes a fingerprint and embedding vector from bytes.
func UnmarshalVector(data []byte) (core.Fingerprint, []float32, error) {
	fp, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrCorruptValue, err)
	}
	rest := data[n:]
	if len(rest)%4 != 0 {
		return 0, nil, fmt.Errorf("%w: truncated vector", ErrCorruptValue)
	}
	vector := make([]float32, len(rest)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(rest[i*4:]))
	}
	return core.Fingerprint(fp), vector, nil
}
