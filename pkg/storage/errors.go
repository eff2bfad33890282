package storage

import "errors"

// Driver names accepted by the configuration.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// ErrUnknownDriver is returned when the configured driver is neither
// DriverMongo nor DriverPostgres.
var ErrUnknownDriver = errors.New("unknown storage driver")
