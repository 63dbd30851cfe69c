// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements output artifacts: raw arrays, figures, encoders
// and the evaluation metrics table
package out

import (
	"encoding/gob"
	"encoding/json"
	goio "io"

	"github.com/cpmech/gosl/chk"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder of the given type
func GetEncoder(w goio.Writer, enctype string) Encoder {
	switch enctype {
	case "gob":
		return gob.NewEncoder(w)
	case "json":
		return json.NewEncoder(w)
	}
	chk.Panic("encoder type %q is not available", enctype)
	return nil
}

// GetDecoder returns a new decoder of the given type
func GetDecoder(r goio.Reader, enctype string) Decoder {
	switch enctype {
	case "gob":
		return gob.NewDecoder(r)
	case "json":
		return json.NewDecoder(r)
	}
	chk.Panic("decoder type %q is not available", enctype)
	return nil
}
