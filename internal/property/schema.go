package property

import (
	"fmt"
	"strconv"
)

// Field identifies one fixed property in the ERP-facing schema. The wire keys are a
// contract with the ERP import; casing and underscores must not change.
type Field int

const (
	FieldDescription Field = iota
	FieldRevision
	FieldPrint
	FieldOptiMaterial
	FieldDeburrEnable
	FieldDeburrNote
	FieldTapEnable
	FieldTapNote
	FieldOverrideWorkCenter
	FieldOverrideNote
	FieldOutsideNote
	FieldOutsideWorkCenter
)

var fieldKeys = map[Field]string{
	FieldDescription:        "Description",
	FieldRevision:           "Revision",
	FieldPrint:              "Print",
	FieldOptiMaterial:       "OptiMaterial",
	FieldDeburrEnable:       "F210",
	FieldDeburrNote:         "F210_RN",
	FieldTapEnable:          "F220",
	FieldTapNote:            "F220_RN",
	FieldOverrideWorkCenter: "OP20",
	FieldOverrideNote:       "OP20_RN",
	FieldOutsideNote:        "OS_RN",
	FieldOutsideWorkCenter:  "OS_WC",
}

// Key returns the exact wire-format property name.
func (f Field) Key() string {
	return fieldKeys[f]
}

// OtherSlotCount is the number of flexible "Other" routing slots in the schema.
const OtherSlotCount = 6

// OtherSlot holds the property names of one flexible routing slot.
type OtherSlot struct {
	Number     int
	Enable     string
	OpNumber   string
	WorkCenter string
	Setup      string
	Run        string
	Note       string
}

var otherSlots = buildOtherSlots()

// Slot 1 is unnumbered. Slots 2..6 append the number to every name, and the op
// field becomes Other_OP{N}, not OtherOP{N}.
func buildOtherSlots() [OtherSlotCount]OtherSlot {
	var slots [OtherSlotCount]OtherSlot
	slots[0] = OtherSlot{
		Number:     1,
		Enable:     "OtherWC_CB",
		OpNumber:   "OtherOP",
		WorkCenter: "Other_WC",
		Setup:      "Other_S",
		Run:        "Other_R",
		Note:       "Other_RN",
	}
	for n := 2; n <= OtherSlotCount; n++ {
		suffix := strconv.Itoa(n)
		slots[n-1] = OtherSlot{
			Number:     n,
			Enable:     "OtherWC_CB" + suffix,
			OpNumber:   "Other_OP" + suffix,
			WorkCenter: "Other_WC" + suffix,
			Setup:      "Other_S" + suffix,
			Run:        "Other_R" + suffix,
			Note:       "Other_RN" + suffix,
		}
	}
	return slots
}

// OtherSlotKeys returns the property names of flexible slot n (1-based).
func OtherSlotKeys(n int) (OtherSlot, bool) {
	if n < 1 || n > OtherSlotCount {
		return OtherSlot{}, false
	}
	return otherSlots[n-1], true
}

// OperationKeys holds the property names of one assembly routing operation.
type OperationKeys struct {
	WorkCenter string
	Setup      string
	Run        string
	Note       string
}

// AssemblyOperationKeys returns the names for operation n. The work center is stored
// directly in OP{n}; there is no OP{n}_WC property.
func AssemblyOperationKeys(n int) OperationKeys {
	op := fmt.Sprintf("OP%d", n)
	return OperationKeys{
		WorkCenter: op,
		Setup:      op + "_S",
		Run:        op + "_R",
		Note:       op + "_RN",
	}
}

// SchemaKeys lists every fixed and flexible-slot property name the part mapper can write.
func SchemaKeys() []string {
	keys := make([]string, 0, len(fieldKeys)+OtherSlotCount*6)
	for f := FieldDescription; f <= FieldOutsideWorkCenter; f++ {
		keys = append(keys, f.Key())
	}
	for _, s := range otherSlots {
		keys = append(keys, s.Enable, s.OpNumber, s.WorkCenter, s.Setup, s.Run, s.Note)
	}
	return keys
}
