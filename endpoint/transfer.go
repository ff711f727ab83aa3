package endpoint

import "github.com/RileyEv/databridge/schema"

// TransferSet is the deduplicated collection of underlying buffers
// referenced by a reply's records, computed once per reply so the transport
// can move them instead of copying. Buffers are deduplicated by identity
// (the address of their first byte): the same physical buffer referenced by
// multiple records counts once. Once a reply is handed to the transport the
// hinted buffers are consumed; the endpoint must not read them again.
type TransferSet struct {
	buffers [][]byte
	hints   []int
}

// Len returns the number of distinct buffers.
func (t *TransferSet) Len() int {
	return len(t.buffers)
}

// Buffers returns the distinct buffers in first-reference order.
func (t *TransferSet) Buffers() [][]byte {
	return t.buffers
}

// Hints returns, for each distinct buffer, the index of the first record
// that references it.
func (t *TransferSet) Hints() []int {
	return t.hints
}

// NewTransferSet collects the distinct non-empty buffers behind records.
func NewTransferSet(records []schema.RawRecord) *TransferSet {
	ret := &TransferSet{}
	seen := make(map[*byte]bool, len(records))
	for i := range records {
		if len(records[i].Data) == 0 {
			continue
		}
		key := &records[i].Data[0]
		if seen[key] {
			continue
		}
		seen[key] = true
		ret.buffers = append(ret.buffers, records[i].Data)
		ret.hints = append(ret.hints, i)
	}
	return ret
}
