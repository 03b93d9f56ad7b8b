/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package codec

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/hypermodeinc/searcharray/x"
)

// encMode uses Core Deterministic Encoding, so the same pack always encodes
// to the same bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	x.Panic(errors.Wrap(err, "CBOR encoder initialization failed"))
	decMode, err = cbor.DecOptions{}.DecMode()
	x.Panic(errors.Wrap(err, "CBOR decoder initialization failed"))
}

// Marshal encodes v to CBOR.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// MarshalPack encodes pack for storage.
func MarshalPack(pack *PosnPack) ([]byte, error) {
	data, err := Marshal(pack)
	return data, errors.Wrap(err, "while marshalling posn pack")
}

// UnmarshalPack decodes a pack written by MarshalPack.
func UnmarshalPack(data []byte) (*PosnPack, error) {
	pack := &PosnPack{}
	if err := Unmarshal(data, pack); err != nil {
		return nil, errors.Wrap(err, "while unmarshalling posn pack")
	}
	return pack, nil
}
