package jsonfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driven"
	"github.com/custodia-labs/fleetwatch/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.SnapshotSource = (*Source)(nil)

// Source reads a snapshot file on every Load.
type Source struct {
	path string
}

// NewSource creates a source for the JSON file at path.
func NewSource(path string) (*Source, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: snapshot path is empty", domain.ErrInvalidInput)
	}
	return &Source{path: path}, nil
}

// Path returns the snapshot file path.
func (s *Source) Path() string {
	return s.path
}

// Load reads and parses the snapshot file.
func (s *Source) Load(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	snap, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	logger.Debug("loaded snapshot %s: %d drivers, %d plans, %d stock items, %d repairs",
		s.path, len(snap.Drivers), len(snap.MaintenancePlans), len(snap.StockItems), len(snap.Repairs))
	return snap, nil
}

// Parse decodes a snapshot document. Only a document that is not valid
// JSON, or whose root is not an object, is rejected.
func Parse(data []byte) (*domain.Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: snapshot is not valid JSON", domain.ErrInvalidInput)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: snapshot root must be an object", domain.ErrInvalidInput)
	}

	snap := &domain.Snapshot{}

	eachRecord(root, func(key string, r gjson.Result) {
		snap.Drivers = append(snap.Drivers, domain.Driver{
			ID:                idOf(r, key),
			Code:              str(r, "code", "driver_code", "driverCode"),
			Name:              str(r, "name", "full_name", "fullName"),
			Active:            flag(r, true, "active", "is_active", "isActive"),
			NewHire:           flag(r, false, "new_hire", "newHire", "is_new_hire", "isNewHire"),
			HireDate:          str(r, "hire_date", "hireDate"),
			TrainingDate:      str(r, "training_date", "trainingDate"),
			TrainingStartDate: str(r, "training_start_date", "trainingStartDate"),
			Trainer:           str(r, "trainer"),
		})
	}, "drivers")

	eachRecord(root, func(key string, r gjson.Result) {
		snap.TrainingRecords = append(snap.TrainingRecords, domain.TrainingRecord{
			ID:         idOf(r, key),
			DriverID:   str(r, "driver_id", "driverId"),
			TopicCode:  str(r, "topic_code", "topicCode", "course_code", "courseCode"),
			TopicLabel: str(r, "topic_label", "topicLabel", "topic", "course"),
			Date:       str(r, "date", "training_date", "trainingDate"),
			Trainer:    str(r, "trainer"),
			Score:      str(r, "score"),
		})
	}, "training_records", "trainingRecords", "training_history", "trainingHistory")

	eachRecord(root, func(key string, r gjson.Result) {
		snap.Vehicles = append(snap.Vehicles, domain.Vehicle{
			ID:     idOf(r, key),
			Plate:  str(r, "plate", "plate_number", "plateNumber", "license_plate", "licensePlate"),
			Active: flag(r, true, "active", "is_active", "isActive"),
		})
	}, "vehicles")

	eachRecord(root, func(key string, r gjson.Result) {
		snap.MaintenancePlans = append(snap.MaintenancePlans, domain.MaintenancePlan{
			ID:              idOf(r, key),
			VehicleID:       str(r, "vehicle_id", "vehicleId"),
			Name:            str(r, "name", "plan_name", "planName"),
			IntervalDays:    num(r, "interval_days", "intervalDays"),
			IntervalMonths:  num(r, "interval_months", "intervalMonths"),
			LastServiceDate: str(r, "last_service_date", "lastServiceDate"),
			NextDueDate:     str(r, "next_due_date", "nextDueDate"),
		})
	}, "maintenance_plans", "maintenancePlans")

	eachRecord(root, func(key string, r gjson.Result) {
		snap.StockItems = append(snap.StockItems, domain.StockItem{
			ID:       idOf(r, key),
			Code:     str(r, "code", "part_code", "partCode"),
			Name:     str(r, "name"),
			Quantity: float(r, "quantity", "qty"),
			MinStock: float(r, "min_stock", "minStock"),
			Unit:     str(r, "unit"),
		})
	}, "stock_items", "stockItems", "stock")

	eachRecord(root, func(key string, r gjson.Result) {
		snap.Repairs = append(snap.Repairs, domain.Repair{
			ID:            idOf(r, key),
			VehicleID:     str(r, "vehicle_id", "vehicleId"),
			Status:        repairStatus(str(r, "status")),
			Problem:       str(r, "problem", "description"),
			StartDate:     str(r, "start_date", "startDate"),
			ReportedDate:  str(r, "reported_date", "reportedDate"),
			CompletedDate: str(r, "completed_date", "completedDate"),
		})
	}, "repairs")

	return snap, nil
}

// repairStatus folds "In Progress", "in-progress" and "IN_PROGRESS" to
// the same token.
func repairStatus(raw string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(strings.ToLower(raw)))
	return strings.Join(words, "_")
}

// eachRecord calls fn for every object in the first collection found
// under names. Array elements are keyed by index, object members by name.
// Non-object entries are skipped.
func eachRecord(root gjson.Result, fn func(key string, r gjson.Result), names ...string) {
	collection := first(root, names...)
	if !collection.IsArray() && !collection.IsObject() {
		return
	}

	isMap := collection.IsObject()
	collection.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			logger.Debug("skipping non-object entry in %s", names[0])
			return true
		}
		id := ""
		if isMap {
			id = key.String()
		}
		fn(id, value)
		return true
	})
}

// first returns the first member of r among names that is present and not null.
func first(r gjson.Result, names ...string) gjson.Result {
	for _, name := range names {
		v := r.Get(name)
		if v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

// idOf prefers the record's own id over its map key.
func idOf(r gjson.Result, key string) string {
	if id := str(r, "id"); id != "" {
		return id
	}
	return key
}

func str(r gjson.Result, names ...string) string {
	v := first(r, names...)
	switch v.Type {
	case gjson.String:
		return strings.TrimSpace(v.Str)
	case gjson.Number:
		return v.Raw
	default:
		return ""
	}
}

func float(r gjson.Result, names ...string) float64 {
	v := first(r, names...)
	switch v.Type {
	case gjson.Number, gjson.String:
		return v.Float()
	default:
		return 0
	}
}

func num(r gjson.Result, names ...string) int {
	return int(float(r, names...))
}

// flag reads a boolean that may be encoded as a bool, a number or a word.
func flag(r gjson.Result, def bool, names ...string) bool {
	v := first(r, names...)
	switch v.Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(v.Str)) {
		case "true", "yes", "y", "1", "active":
			return true
		case "false", "no", "n", "0", "inactive":
			return false
		}
	}
	return def
}
