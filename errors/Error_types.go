package errors

var (
	ErrInvalidArgument     = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrNotFound            = New(ERR_NOT_FOUND, "not found")
	ErrProcessing          = New(ERR_PROCESSING, "error processing")
	ErrConfiguration       = New(ERR_CONFIGURATION, "configuration error")
	ErrContextCanceled     = New(ERR_CONTEXT_CANCELED, "context canceled")
	ErrBlockNotFound       = New(ERR_BLOCK_NOT_FOUND, "block not found")
	ErrBlockInvalid        = New(ERR_BLOCK_INVALID, "block invalid")
	ErrBlockExists         = New(ERR_BLOCK_EXISTS, "block exists")
	ErrNoPreviousBlock     = New(ERR_NO_PREVIOUS_BLOCK, "previous block not found")
	ErrWrongPreviousHeader = New(ERR_WRONG_PREVIOUS_HEADER, "wrong previous header")
	ErrBlockHeaderInvalid  = New(ERR_BLOCK_HEADER_INVALID, "block header invalid")
	ErrTxError             = New(ERR_TX_ERROR, "tx error")
	ErrServiceUnavailable  = New(ERR_SERVICE_UNAVAILABLE, "service unavailable")
	ErrServiceError        = New(ERR_SERVICE_ERROR, "service error")
	ErrStateError          = New(ERR_STATE_ERROR, "state error")
	ErrStorageUnavailable  = New(ERR_STORAGE_UNAVAILABLE, "storage unavailable")
	ErrStorageError        = New(ERR_STORAGE_ERROR, "storage error")
	ErrKafkaError          = New(ERR_KAFKA_ERROR, "kafka error")
)

// errors initialization functions

func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}
func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}
func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}
func NewContextCanceledError(message string, params ...interface{}) error {
	return New(ERR_CONTEXT_CANCELED, message, params...)
}
func NewBlockNotFoundError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_NOT_FOUND, message, params...)
}
func NewBlockInvalidError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_INVALID, message, params...)
}
func NewBlockExistsError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_EXISTS, message, params...)
}
func NewNoPreviousBlockError(message string, params ...interface{}) error {
	return New(ERR_NO_PREVIOUS_BLOCK, message, params...)
}
func NewWrongPreviousHeaderError(message string, params ...interface{}) error {
	return New(ERR_WRONG_PREVIOUS_HEADER, message, params...)
}
func NewBlockHeaderInvalidError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_HEADER_INVALID, message, params...)
}
func NewTxError(message string, params ...interface{}) error {
	return New(ERR_TX_ERROR, message, params...)
}
func NewServiceUnavailableError(message string, params ...interface{}) error {
	return New(ERR_SERVICE_UNAVAILABLE, message, params...)
}
func NewServiceError(message string, params ...interface{}) error {
	return New(ERR_SERVICE_ERROR, message, params...)
}
func NewStateError(message string, params ...interface{}) error {
	return New(ERR_STATE_ERROR, message, params...)
}
func NewStorageUnavailableError(message string, params ...interface{}) error {
	return New(ERR_STORAGE_UNAVAILABLE, message, params...)
}
func NewStorageError(message string, params ...interface{}) error {
	return New(ERR_STORAGE_ERROR, message, params...)
}
func NewKafkaError(message string, params ...interface{}) error {
	return New(ERR_KAFKA_ERROR, message, params...)
}
