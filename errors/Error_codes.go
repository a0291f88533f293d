package errors

import "strconv"

// ERR is the numeric code carried by every *Error.
type ERR int32

const (
	ERR_UNKNOWN          ERR = 0
	ERR_INVALID_ARGUMENT ERR = 1
	ERR_NOT_FOUND        ERR = 3
	ERR_PROCESSING       ERR = 4
	ERR_CONFIGURATION    ERR = 5
	ERR_CONTEXT_CANCELED ERR = 7

	// block and chain continuity
	ERR_BLOCK_NOT_FOUND       ERR = 10
	ERR_BLOCK_INVALID         ERR = 11
	ERR_BLOCK_EXISTS          ERR = 12
	ERR_NO_PREVIOUS_BLOCK     ERR = 14
	ERR_WRONG_PREVIOUS_HEADER ERR = 15
	ERR_BLOCK_HEADER_INVALID  ERR = 16

	// transactions
	ERR_TX_ERROR ERR = 31

	// services
	ERR_SERVICE_UNAVAILABLE ERR = 50
	ERR_SERVICE_ERROR       ERR = 52
	ERR_STATE_ERROR         ERR = 53

	// storage
	ERR_STORAGE_UNAVAILABLE ERR = 60
	ERR_STORAGE_ERROR       ERR = 62

	// publishing
	ERR_KAFKA_ERROR ERR = 70
)

var ERR_name = map[int32]string{
	0:  "UNKNOWN",
	1:  "INVALID_ARGUMENT",
	3:  "NOT_FOUND",
	4:  "PROCESSING",
	5:  "CONFIGURATION",
	7:  "CONTEXT_CANCELED",
	10: "BLOCK_NOT_FOUND",
	11: "BLOCK_INVALID",
	12: "BLOCK_EXISTS",
	14: "NO_PREVIOUS_BLOCK",
	15: "WRONG_PREVIOUS_HEADER",
	16: "BLOCK_HEADER_INVALID",
	31: "TX_ERROR",
	50: "SERVICE_UNAVAILABLE",
	52: "SERVICE_ERROR",
	53: "STATE_ERROR",
	60: "STORAGE_UNAVAILABLE",
	62: "STORAGE_ERROR",
	70: "KAFKA_ERROR",
}

func (x ERR) String() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return strconv.Itoa(int(x))
}
