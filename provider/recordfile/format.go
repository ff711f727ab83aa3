package recordfile

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/RileyEv/databridge/schema"
)

// Record log framing, little endian:
//
//	[topicLen u32][topic][timestamp u64][dataLen u32][data]
//
// Payload bytes are stored and returned verbatim; the framing never touches
// record content.

// Encode serializes records into the record log framing.
func Encode(records []schema.RawRecord) []byte {
	buffer := &bytes.Buffer{}
	for i := range records {
		record := &records[i]
		_ = binary.Write(buffer, binary.LittleEndian, uint32(len(record.Topic)))
		buffer.WriteString(record.Topic)
		_ = binary.Write(buffer, binary.LittleEndian, uint64(record.Timestamp))
		_ = binary.Write(buffer, binary.LittleEndian, uint32(len(record.Data)))
		buffer.Write(record.Data)
	}
	return buffer.Bytes()
}

// Decode parses a record log. Each record's Data aliases the input buffer;
// callers own the input and must not mutate it afterwards.
func Decode(data []byte) ([]schema.RawRecord, error) {
	var records []schema.RawRecord
	offset := 0
	for offset < len(data) {
		record, next, err := decodeOne(data, offset)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
		offset = next
	}
	return records, nil
}

func decodeOne(data []byte, offset int) (schema.RawRecord, int, error) {
	var record schema.RawRecord
	if len(data)-offset < 4 {
		return record, 0, fmt.Errorf("truncated topic length at offset %d", offset)
	}
	topicLen := int(binary.LittleEndian.Uint32(data[offset:]))
	offset += 4
	if len(data)-offset < topicLen+8+4 {
		return record, 0, fmt.Errorf("truncated record header at offset %d", offset)
	}
	record.Topic = string(data[offset : offset+topicLen])
	offset += topicLen
	record.Timestamp = int64(binary.LittleEndian.Uint64(data[offset:]))
	offset += 8
	dataLen := int(binary.LittleEndian.Uint32(data[offset:]))
	offset += 4
	if len(data)-offset < dataLen {
		return record, 0, fmt.Errorf("truncated record payload at offset %d", offset)
	}
	record.Data = data[offset : offset+dataLen : offset+dataLen]
	offset += dataLen
	return record, offset, nil
}
