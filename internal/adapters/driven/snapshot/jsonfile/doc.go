// Package jsonfile loads evaluation snapshots from a JSON document on disk.
//
// The document is an object with one member per collection:
//
//	{
//	  "drivers": [...],
//	  "training_records": [...],
//	  "vehicles": {...},
//	  "maintenance_plans": [...],
//	  "stock_items": [...],
//	  "repairs": [...]
//	}
//
// A collection may be an array of records or an object keyed by record id;
// either shape yields one ordered slice in document order. Field names are
// accepted in snake_case or camelCase, scalar fields may be numbers or
// strings, and absent fields read as empty. Malformed records are never
// dropped: the engine degrades them instead.
package jsonfile
