// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectstore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bitmark-inc/ledgerd/fault"
)

// ObjectId - (space, type, instance) triple identifying one object
type ObjectId struct {
	Space    uint8
	Type     uint8
	Instance uint64
}

// NewObjectId - construct an id
func NewObjectId(space uint8, kind uint8, instance uint64) ObjectId {
	return ObjectId{
		Space:    space,
		Type:     kind,
		Instance: instance,
	}
}

// ParseObjectId - convert "space.type.instance"
func ParseObjectId(s string) (ObjectId, error) {
	parts := strings.Split(s, ".")
	if 3 != len(parts) {
		return ObjectId{}, fault.ErrInvalidObjectId
	}
	space, err := strconv.ParseUint(parts[0], 10, 8)
	if nil != err {
		return ObjectId{}, fault.ErrInvalidObjectId
	}
	kind, err := strconv.ParseUint(parts[1], 10, 8)
	if nil != err {
		return ObjectId{}, fault.ErrInvalidObjectId
	}
	instance, err := strconv.ParseUint(parts[2], 10, 64)
	if nil != err {
		return ObjectId{}, fault.ErrInvalidObjectId
	}
	return NewObjectId(uint8(space), uint8(kind), instance), nil
}

// IsNull - true for the zero id
func (id ObjectId) IsNull() bool {
	return 0 == id.Space && 0 == id.Type && 0 == id.Instance
}

// Is - true if the id belongs to the given space and type
func (id ObjectId) Is(space uint8, kind uint8) bool {
	return id.Space == space && id.Type == kind
}

// String - dotted form
func (id ObjectId) String() string {
	return fmt.Sprintf("%d.%d.%d", id.Space, id.Type, id.Instance)
}

// MarshalText - convert id to text for JSON
func (id ObjectId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert text into an id
func (id *ObjectId) UnmarshalText(s []byte) error {
	i, err := ParseObjectId(string(s))
	if nil != err {
		return err
	}
	*id = i
	return nil
}

// Compare - for ordering of ids
func (id ObjectId) Compare(x interface{}) int {
	other := x.(ObjectId)
	switch {
	case id.Space != other.Space:
		return compareUint64(uint64(id.Space), uint64(other.Space))
	case id.Type != other.Type:
		return compareUint64(uint64(id.Type), uint64(other.Type))
	}
	return compareUint64(id.Instance, other.Instance)
}

func (id ObjectId) typeKey() uint16 {
	return uint16(id.Space)<<8 | uint16(id.Type)
}
