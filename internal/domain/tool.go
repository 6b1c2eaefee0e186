package domain

type ToolBrand string

const (
	ToolBrandStihl  ToolBrand = "Stihl"
	ToolBrandWerner ToolBrand = "Werner"
	ToolBrandDeWalt ToolBrand = "DeWalt"
	ToolBrandRidgid ToolBrand = "Ridgid"
)

type ToolCode string

const (
	ToolCodeCHNS ToolCode = "CHNS"
	ToolCodeLADW ToolCode = "LADW"
	ToolCodeJAKD ToolCode = "JAKD"
	ToolCodeJAKR ToolCode = "JAKR"
)

type ToolType string

const (
	ToolTypeChainsaw   ToolType = "Chainsaw"
	ToolTypeLadder     ToolType = "Ladder"
	ToolTypeJackhammer ToolType = "Jackhammer"
)

// Tool identifies a rentable tool model. Identity is the combination of all
// three fields; Code is the stable lookup key and Type selects the price row.
type Tool struct {
	Brand ToolBrand `json:"brand"`
	Code  ToolCode  `json:"code"`
	Type  ToolType  `json:"type"`
}

// Equal reports whether two tools have the same identity
func (t Tool) Equal(other Tool) bool {
	return t.Brand == other.Brand && t.Code == other.Code && t.Type == other.Type
}
