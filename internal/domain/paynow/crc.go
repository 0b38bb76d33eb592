package paynow

import "fmt"

const (
	crcInit       = 0xFFFF
	crcPolynomial = 0x1021
)

// crcPrefix is the tag and length of the trailing checksum field. The
// checksum covers it but not its own value.
const crcPrefix = TagCRC + "04"

// CRC16 computes CRC-16/CCITT-FALSE over data.
func CRC16(data string) uint16 {
	crc := uint16(crcInit)
	for i := 0; i < len(data); i++ {
		crc ^= uint16(data[i]) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Checksum returns CRC16 of data as four uppercase hex digits.
func Checksum(data string) string {
	return fmt.Sprintf("%04X", CRC16(data))
}
