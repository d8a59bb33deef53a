package buffer

import (
	"fmt"

	"github.com/kurasadb/kurasa/storage/disk"
	"github.com/kurasadb/kurasa/util"
	"github.com/vmihailenco/msgpack"
)

// ToPageBytes encodes obj into a fresh page-sized slice, ready to be copied
// into a frame. The encoding must fit in one page.
func ToPageBytes[T any](obj T) ([]byte, error) {
	res := make([]byte, disk.PAGE_SIZE)

	data, err := msgpack.Marshal(obj)
	if err != nil {
		return nil, err
	}
	if len(data) > disk.PAGE_SIZE {
		return nil, &util.KurasaError{
			Message: fmt.Sprintf("encoded object is %d bytes, larger than a page", len(data)),
		}
	}
	copy(res, data)

	return res, nil
}

// FromPageBytes decodes a value of type T from page bytes.
func FromPageBytes[T any](data []byte) (T, error) {
	var res T

	if err := msgpack.Unmarshal(data, &res); err != nil {
		return res, err
	}

	return res, nil
}
