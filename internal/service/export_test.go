package service

import "time"

// SetCatalogClock replaces the clock used to expire cached catalog snapshots.
func SetCatalogClock(s WarehouseService, now func() time.Time) {
	s.(*WarehouseServiceImpl).now = now
}

// SetTokenClock replaces the clock used to stamp and validate tokens.
func SetTokenClock(s TokenService, now func() time.Time) {
	s.(*TokenServiceImpl).now = now
}
