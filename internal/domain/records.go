package domain

// PartRecord is what the geometry reader measured from the solid model, plus the
// identity properties already stored on it. Missing values are empty or nil.
type PartRecord struct {
	Material    string   `json:"material" yaml:"material"`
	Thickness   *float64 `json:"thickness_in,omitempty" yaml:"thickness_in"`
	FilePath    string   `json:"file_path" yaml:"file_path"`
	PartNumber  string   `json:"part_number,omitempty" yaml:"part_number"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Revision    string   `json:"revision,omitempty" yaml:"revision"`
}

// DrawingRecord is what the drawing analyzer extracted from the 2D drawing.
// Thickness is kept as printed (e.g. `.125"`, `3 mm`, `11 GA`).
type DrawingRecord struct {
	PartNumber   string        `json:"part_number" yaml:"part_number"`
	Description  string        `json:"description" yaml:"description"`
	Revision     string        `json:"revision" yaml:"revision"`
	Material     string        `json:"material" yaml:"material"`
	Thickness    string        `json:"thickness" yaml:"thickness"`
	RoutingHints []RoutingHint `json:"routing_hints" yaml:"routing_hints"`
	BOM          []BOMRow      `json:"bom" yaml:"bom"`
}

// RoutingHint is a manufacturing note the analyzer classified into an operation.
type RoutingHint struct {
	Operation    RoutingOp `json:"operation" yaml:"operation"`
	WorkCenter   string    `json:"work_center,omitempty" yaml:"work_center"`
	NoteText     string    `json:"note_text" yaml:"note_text"`
	SourceNote   string    `json:"source_note,omitempty" yaml:"source_note"`
	Confidence   float64   `json:"confidence" yaml:"confidence"`
	SetupMinutes *float64  `json:"setup_minutes,omitempty" yaml:"setup_minutes"`
	RunMinutes   *float64  `json:"run_minutes,omitempty" yaml:"run_minutes"`
}

// BOMRow is a single row of the drawing's bill of materials table.
type BOMRow struct {
	ItemNumber  string `json:"item_number" yaml:"item_number"`
	PartNumber  string `json:"part_number" yaml:"part_number"`
	Description string `json:"description" yaml:"description"`
	Quantity    int    `json:"quantity" yaml:"quantity"`
}
