package domain

// Repair statuses.
const (
	RepairPending    = "pending"
	RepairInProgress = "in_progress"
	RepairCompleted  = "completed"
)

// Driver is a driver record from the inbound snapshot.
type Driver struct {
	ID                string
	Code              string
	Name              string
	Active            bool
	NewHire           bool
	HireDate          string
	TrainingDate      string
	TrainingStartDate string
	Trainer           string
}

// TrainingRecord is a historical training entry.
type TrainingRecord struct {
	ID         string
	DriverID   string
	TopicCode  string
	TopicLabel string
	Date       string
	Trainer    string
	Score      string
}

// Vehicle is a vehicle record.
type Vehicle struct {
	ID     string
	Plate  string
	Active bool
}

// MaintenancePlan is a preventive-maintenance plan for a vehicle.
type MaintenancePlan struct {
	ID              string
	VehicleID       string
	Name            string
	IntervalDays    int
	IntervalMonths  int
	LastServiceDate string
	NextDueDate     string
}

// Interval returns the plan's recurrence, preferring months over days.
func (p MaintenancePlan) Interval() Interval {
	if p.IntervalMonths > 0 {
		return Months(p.IntervalMonths)
	}
	return Days(p.IntervalDays)
}

// StockItem is an inventory item with a reorder point.
type StockItem struct {
	ID       string
	Code     string
	Name     string
	Quantity float64
	MinStock float64
	Unit     string
}

// Repair is a work order.
type Repair struct {
	ID            string
	VehicleID     string
	Status        string
	Problem       string
	StartDate     string
	ReportedDate  string
	CompletedDate string
}

// Snapshot is the immutable inbound data for one evaluation pass.
// Every collection is a single ordered slice regardless of storage shape.
type Snapshot struct {
	Drivers          []Driver
	TrainingRecords  []TrainingRecord
	Vehicles         []Vehicle
	MaintenancePlans []MaintenancePlan
	StockItems       []StockItem
	Repairs          []Repair
}

// VehicleByID returns the vehicle with id, or false.
func (s *Snapshot) VehicleByID(id string) (Vehicle, bool) {
	for _, v := range s.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return Vehicle{}, false
}

// TrainingRecordsFor returns the driver's records in snapshot order.
func (s *Snapshot) TrainingRecordsFor(driverID string) []TrainingRecord {
	var out []TrainingRecord
	for _, r := range s.TrainingRecords {
		if r.DriverID == driverID {
			out = append(out, r)
		}
	}
	return out
}
