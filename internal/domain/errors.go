package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("record not found")
	ErrInsufficientCredit   = errors.New("requested credit exceeds available credit")
	ErrTransactionConflict  = errors.New("transaction conflict, retry the operation")
	ErrRentalNotActive      = errors.New("rental is not active")
	ErrRentalAlreadySettled = errors.New("rental is already settled")
	// ErrMaintenanceOutOfRange means the requested maintenance count would
	// exceed the units not currently on rent.
	ErrMaintenanceOutOfRange = errors.New("maintenance count out of range")
	// ErrTotalBelowCommitted means an equipment update would set the managed
	// total below the units already on rent or in maintenance.
	ErrTotalBelowCommitted = errors.New("total managed below committed units")
)

// InsufficientStockError reports a rental line that asked for more units
// than the equipment currently has available.
type InsufficientStockError struct {
	EquipmentID int32
	Requested   int32
	Available   int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for equipment %d: requested %d, available %d",
		e.EquipmentID, e.Requested, e.Available)
}

// EquipmentNotFoundError is returned when a settlement references an
// equipment row that no longer exists.
type EquipmentNotFoundError struct {
	EquipmentID int32
}

func (e *EquipmentNotFoundError) Error() string {
	return fmt.Sprintf("equipment %d not found", e.EquipmentID)
}
