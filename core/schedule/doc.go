package schedule

// Package schedule implements recurring operating windows and day-ahead
// mode planning. It restricts which modes a vehicle may run per weekday
// and builds per-slot mode plans. Plans can be exported to JSON or CSV.
