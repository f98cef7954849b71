package instance

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("instance: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		MaxMapPairs: 1024,
	}.DecMode()
	if err != nil {
		panic("instance: CBOR decoder initialization failed: " + err.Error())
	}
}

func encodeContext(c domain.ShareContext) ([]byte, error) {
	b, err := encMode.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode share context: %w", err)
	}
	return b, nil
}

func decodeContext(b []byte) (domain.ShareContext, error) {
	var c domain.ShareContext
	if err := decMode.Unmarshal(b, &c); err != nil {
		return domain.ShareContext{}, fmt.Errorf("decode share context: %w", err)
	}
	return c, nil
}
