package models

// Trade is one entry of the catalog with the number of artisans practicing it.
type Trade struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}

// Trade names of the fixed catalog.
const (
	TradeElectrician = "Électricien"
	TradePlumber     = "Plombier"
	TradeCarpenter   = "Menuisier"
	TradeMechanic    = "Mécanicien"
	TradePainter     = "Peintre"
	TradeMason       = "Maçon"
)

// Catalog is the closed trade taxonomy, in display order. Profiles whose
// trade is not listed here never show up in catalog counts.
var Catalog = []Trade{
	{ID: "1", Name: TradeElectrician, Icon: "⚡"},
	{ID: "2", Name: TradePlumber, Icon: "🔧"},
	{ID: "3", Name: TradeCarpenter, Icon: "🪚"},
	{ID: "4", Name: TradeMechanic, Icon: "🔩"},
	{ID: "5", Name: TradePainter, Icon: "🎨"},
	{ID: "6", Name: TradeMason, Icon: "🧱"},
}
