package types

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Cbor is the deterministic CBOR codec shared by all types of the module.
var Cbor = newCborHandler()

type cborHandler struct {
	encMode cbor.EncMode
	decMode cbor.DecMode
}

func newCborHandler() cborHandler {
	encMode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Errorf("creating CBOR encoder mode: %w", err))
	}
	decMode, err := cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(fmt.Errorf("creating CBOR decoder mode: %w", err))
	}
	return cborHandler{encMode: encMode, decMode: decMode}
}

func (c cborHandler) Marshal(v any) ([]byte, error) {
	return c.encMode.Marshal(v)
}

func (c cborHandler) Unmarshal(data []byte, v any) error {
	return c.decMode.Unmarshal(data, v)
}

func (c cborHandler) GetEncoder(w io.Writer) *cbor.Encoder {
	return c.encMode.NewEncoder(w)
}

func (c cborHandler) GetDecoder(r io.Reader) *cbor.Decoder {
	return c.decMode.NewDecoder(r)
}
